package postgres

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/security"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
// Every call checks a connection out of the pool for its own scope only.
type UserRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Create inserts a new user and returns the id the database assigned.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:  u.Name,
		Email: u.Email,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return 0, apperrors.NewStoreUnavailableError("insert user", err)
	}

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// GetByID retrieves a user by its unique id.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("user not found", zap.Int64("id", id))
			return nil, apperrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%d", id))
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.Int64("id", id))
		return nil, apperrors.NewStoreUnavailableError("get user", err)
	}

	return &user.User{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
	}, nil
}

// Page returns up to limit users with id greater than cursor, ordered by
// ascending id, plus whether more rows exist past the page end. It selects
// limit+1 rows and drops the probe row.
func (r *UserRepoPG) Page(ctx context.Context, cursor, limit int64) ([]user.User, bool, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).
		Where("id > ?", cursor).
		Order("id ASC").
		Limit(int(limit) + 1).
		Find(&models).Error; err != nil {
		r.log.Error("failed to page users from db", zap.Error(err),
			zap.Int64("cursor", cursor), zap.Int64("limit", limit))
		return nil, false, apperrors.NewStoreUnavailableError("page users", err)
	}

	hasMore := int64(len(models)) > limit
	if hasMore {
		models = models[:limit]
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = user.User{
			ID:    model.ID,
			Name:  model.Name,
			Email: model.Email,
		}
	}

	return users, hasMore, nil
}

// SearchByName returns up to limit users whose name starts with query,
// case-insensitively, ordered by name then id so identical queries come
// back in the same order.
func (r *UserRepoPG) SearchByName(ctx context.Context, query string, limit int64) ([]user.User, error) {
	if query == "" {
		return []user.User{}, nil
	}

	pattern := security.EscapeLike(query) + "%"

	var models []UserSchema
	if err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, pattern).
		Order("name ASC, id ASC").
		Limit(int(limit)).
		Find(&models).Error; err != nil {
		r.log.Error("failed to search users in db", zap.Error(err), zap.String("query", query))
		return nil, apperrors.NewStoreUnavailableError("search users", err)
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = user.User{
			ID:    model.ID,
			Name:  model.Name,
			Email: model.Email,
		}
	}

	return users, nil
}
