package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-directory/internal/usecase/user"
	apperrors "user-directory/pkg/errors"
)

// MockUserUsecase is a mock implementation of the user.Usecase interface
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, in user.CreateUserRequest) (*user.CreateUserResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.CreateUserResponse), args.Error(1)
}

func (m *MockUserUsecase) GetUser(ctx context.Context, in user.GetUserRequest) (*user.GetUserResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.GetUserResponse), args.Error(1)
}

func (m *MockUserUsecase) ListUsers(ctx context.Context, in user.ListUsersRequest) (*user.ListUsersResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.ListUsersResponse), args.Error(1)
}

func (m *MockUserUsecase) SearchUsers(ctx context.Context, in user.SearchUsersRequest) (*user.SearchUsersResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.SearchUsersResponse), args.Error(1)
}

func setupTestHandler(t *testing.T) (*UserHandler, *MockUserUsecase, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	mockUC := new(MockUserUsecase)
	h := NewUserHandler(mockUC, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/", h.Home)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.POST("/users", h.CreateUser)
	r.GET("/search", h.SearchUsers)

	return h, mockUC, r
}

func doRequest(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHome(t *testing.T) {
	_, _, r := setupTestHandler(t)

	w := doRequest(r, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Backend server is running", body["message"])
}

func TestCreateUser_Handler_Success(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	mockUC.On("CreateUser", mock.Anything, user.CreateUserRequest{
		Name:  "John Doe",
		Email: "john@example.com",
	}).Return(&user.CreateUserResponse{ID: 4}, nil)

	w := doRequest(r, http.MethodPost, "/users",
		[]byte(`{"name":"John Doe","email":"john@example.com"}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var body CreateUserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "User added successfully", body.Message)
	assert.Equal(t, int64(4), body.ID)

	mockUC.AssertExpectations(t)
}

func TestCreateUser_Handler_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing email", `{"name":"John"}`},
		{"missing name", `{"email":"j@x.com"}`},
		{"empty name", `{"name":"","email":"j@x.com"}`},
		{"not json", `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockUC, r := setupTestHandler(t)

			w := doRequest(r, http.MethodPost, "/users", []byte(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "name and email are required", body["error"])

			mockUC.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateUser_Handler_StoreError(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	mockUC.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewStoreUnavailableError("insert user", errors.New("dial tcp: refused")))

	w := doRequest(r, http.MethodPost, "/users",
		[]byte(`{"name":"John","email":"j@x.com"}`))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// The driver error must not leak to the client
	assert.Equal(t, "store unavailable", body["error"])
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestListUsers_Handler_Success(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	next := int64(2)
	mockUC.On("ListUsers", mock.Anything, user.ListUsersRequest{Cursor: 0, Limit: 2}).
		Return(&user.ListUsersResponse{
			Users: []user.User{
				{ID: 1, Name: "Alice", Email: "a@x.com"},
				{ID: 2, Name: "Bob", Email: "b@x.com"},
			},
			NextCursor: &next,
			HasMore:    true,
		}, nil)

	w := doRequest(r, http.MethodGet, "/users?limit=2", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body ListUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Users, 2)
	assert.Equal(t, 2, body.Count)
	assert.True(t, body.HasMore)
	require.NotNil(t, body.NextCursor)
	assert.Equal(t, int64(2), *body.NextCursor)
}

func TestListUsers_Handler_CursorPassedThrough(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	mockUC.On("ListUsers", mock.Anything, user.ListUsersRequest{Cursor: 17, Limit: 0}).
		Return(&user.ListUsersResponse{Users: []user.User{}}, nil)

	w := doRequest(r, http.MethodGet, "/users?cursor=17", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestListUsers_Handler_InvalidCursor(t *testing.T) {
	for _, cursor := range []string{"abc", "12.5", "-3"} {
		t.Run(cursor, func(t *testing.T) {
			_, mockUC, r := setupTestHandler(t)

			w := doRequest(r, http.MethodGet, "/users?cursor="+cursor, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "invalid cursor", body["error"])

			mockUC.AssertNotCalled(t, "ListUsers", mock.Anything, mock.Anything)
		})
	}
}

func TestListUsers_Handler_MalformedLimitFallsBack(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	// Limit 0 lets the usecase apply its default
	mockUC.On("ListUsers", mock.Anything, user.ListUsersRequest{Cursor: 0, Limit: 0}).
		Return(&user.ListUsersResponse{Users: []user.User{}}, nil)

	w := doRequest(r, http.MethodGet, "/users?limit=abc", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestSearchUsers_Handler_Success(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	mockUC.On("SearchUsers", mock.Anything, user.SearchUsersRequest{Query: "am", Limit: 0}).
		Return(&user.SearchUsersResponse{
			Results: []user.User{{ID: 3, Name: "Amanda", Email: "am@x.com"}},
		}, nil)

	w := doRequest(r, http.MethodGet, "/search?q=am", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body SearchUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Amanda", body.Results[0].Name)
}

func TestSearchUsers_Handler_EmptyQuery(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	mockUC.On("SearchUsers", mock.Anything, user.SearchUsersRequest{Query: "", Limit: 0}).
		Return(&user.SearchUsersResponse{Results: []user.User{}}, nil)

	w := doRequest(r, http.MethodGet, "/search", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body SearchUsersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Results)
	assert.Equal(t, 0, body.Count)
}

func TestGetUser_Handler_Success(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	mockUC.On("GetUser", mock.Anything, user.GetUserRequest{ID: 1}).
		Return(&user.GetUserResponse{ID: 1, Name: "Alice", Email: "a@x.com"}, nil)

	w := doRequest(r, http.MethodGet, "/users/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Alice", body.Name)
}

func TestGetUser_Handler_InvalidID(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	w := doRequest(r, http.MethodGet, "/users/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestGetUser_Handler_NotFound(t *testing.T) {
	_, mockUC, r := setupTestHandler(t)

	mockUC.On("GetUser", mock.Anything, user.GetUserRequest{ID: 999}).
		Return(nil, apperrors.NewNotFoundError("user", "user with id 999 not found"))

	w := doRequest(r, http.MethodGet, "/users/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "not found")
}
