package user

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/security"

	"github.com/go-playground/validator/v10"
)

// Listing limits. Out-of-range limits are clamped rather than rejected.
const (
	DefaultPageLimit   = 20
	MaxPageLimit       = 100
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// Repository defines the interface for user data access operations.
// Implementations acquire and release their own connection per call;
// nothing is held across calls.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Page(ctx context.Context, cursor, limit int64) ([]domain.User, bool, error)
	SearchByName(ctx context.Context, query string, limit int64) ([]domain.User, error)
}

// Service implements the business logic for the user directory.
type Service struct {
	repo     Repository
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new Service with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a
// field-level ValidationError.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		field := ""
		for _, e := range validationErrors {
			if field == "" {
				field = e.Field()
			}
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError(field, strings.Join(messages, ", "))
	}
	return err
}

// CreateUser inserts a new user after checking that both fields are present.
func (s *Service) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	s.log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email))

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("create user validation failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	id, err := s.repo.Create(ctx, &domain.User{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		s.log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	return &CreateUserResponse{ID: id}, nil
}

// GetUser retrieves a single user by id.
func (s *Service) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	if in.ID <= 0 {
		s.log.Warn("get user validation failed", zap.Int64("id", in.ID))
		return nil, apperrors.NewValidationError("id", "must be a positive integer")
	}

	u, err := s.repo.GetByID(ctx, in.ID)
	if err != nil {
		s.log.Error("failed to get user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, err
	}

	return &GetUserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}, nil
}

// ListUsers returns one page of users ordered by ascending id, resuming
// after the given cursor.
func (s *Service) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if in.Cursor < 0 {
		s.log.Warn("list users validation failed", zap.Int64("cursor", in.Cursor))
		return nil, apperrors.NewValidationError("cursor", "must not be negative")
	}
	if in.Limit <= 0 {
		in.Limit = DefaultPageLimit
	}
	if in.Limit > MaxPageLimit {
		in.Limit = MaxPageLimit
	}

	s.log.Debug("listing users", zap.Int64("cursor", in.Cursor), zap.Int64("limit", in.Limit))

	domainUsers, hasMore, err := s.repo.Page(ctx, in.Cursor, in.Limit)
	if err != nil {
		s.log.Error("failed to list users", zap.Int64("cursor", in.Cursor), zap.Error(err))
		return nil, err
	}

	page := domain.NewPage(domainUsers, hasMore)

	users := make([]User, len(page.Users))
	for i, du := range page.Users {
		users[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	return &ListUsersResponse{
		Users:      users,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}, nil
}

// SearchUsers returns up to Limit users whose name matches the query.
// An empty query is never a full scan: it yields an empty result set.
func (s *Service) SearchUsers(ctx context.Context, in SearchUsersRequest) (*SearchUsersResponse, error) {
	query, err := security.ValidateSearchQuery(in.Query)
	if err != nil {
		s.log.Warn("search query rejected", zap.String("query", in.Query), zap.Error(err))
		return nil, apperrors.NewValidationError("q", err.Error())
	}
	if query == "" {
		return &SearchUsersResponse{Results: []User{}}, nil
	}

	if in.Limit <= 0 {
		in.Limit = DefaultSearchLimit
	}
	if in.Limit > MaxSearchLimit {
		in.Limit = MaxSearchLimit
	}

	s.log.Debug("searching users", zap.String("query", query), zap.Int64("limit", in.Limit))

	domainUsers, err := s.repo.SearchByName(ctx, query, in.Limit)
	if err != nil {
		s.log.Error("failed to search users", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	results := make([]User, len(domainUsers))
	for i, du := range domainUsers {
		results[i] = User{
			ID:    du.ID,
			Name:  du.Name,
			Email: du.Email,
		}
	}

	return &SearchUsersResponse{Results: results}, nil
}
