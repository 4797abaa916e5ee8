package handler

import (
	"net/http"
	"strconv"

	"user-directory/internal/usecase/user"
	apperrors "user-directory/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for the user directory.
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for adding a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// CreateUserResponse acknowledges an insert with the assigned id.
type CreateUserResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// UserResponse represents a single user in API responses.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsersResponse is the pagination envelope for GET /users.
type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	NextCursor *int64         `json:"nextCursor"`
	HasMore    bool           `json:"hasMore"`
	Count      int            `json:"count"`
}

// SearchUsersResponse is the envelope for GET /search.
type SearchUsersResponse struct {
	Results []UserResponse `json:"results"`
	Count   int            `json:"count"`
}

// Home handles GET /.
func (h *UserHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend server is running"})
}

// CreateUser handles POST /users. Missing fields are rejected before the
// store is touched. The endpoint is not idempotent: resubmitting the same
// body creates another row.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateUserResponse{
		Message: "User added successfully",
		ID:      resp.ID,
	})
}

// ListUsers handles GET /users with cursor pagination.
// A malformed limit falls back to the default; a malformed cursor is a 400.
func (h *UserHandler) ListUsers(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	if err != nil {
		limit = 0 // usecase applies the default
	}

	var cursor int64
	if cursorStr := c.Query("cursor"); cursorStr != "" {
		cursor, err = strconv.ParseInt(cursorStr, 10, 64)
		if err != nil || cursor < 0 {
			h.log.Warn("invalid cursor", zap.String("cursor", cursorStr))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
	}

	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Cursor: cursor,
		Limit:  limit,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Users:      users,
		NextCursor: resp.NextCursor,
		HasMore:    resp.HasMore,
		Count:      len(users),
	})
}

// SearchUsers handles GET /search. An empty q yields an empty result set,
// not an error.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "0"), 10, 64)
	if err != nil {
		limit = 0
	}

	resp, err := h.uc.SearchUsers(c.Request.Context(), user.SearchUsersRequest{
		Query: c.Query("q"),
		Limit: limit,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	results := make([]UserResponse, len(resp.Results))
	for i, u := range resp.Results {
		results[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}

	c.JSON(http.StatusOK, SearchUsersResponse{
		Results: results,
		Count:   len(results),
	})
}

// GetUser handles GET /users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.log.Warn("invalid user id", zap.String("id", idStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be a valid number"})
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// handleError maps usecase errors to an HTTP status and a plain message.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	c.JSON(status, gin.H{"error": apperrors.ClientMessage(err)})
}
