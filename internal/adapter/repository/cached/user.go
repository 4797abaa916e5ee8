package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-directory/internal/adapter/cache"
	domain "user-directory/internal/domain/user"
	"user-directory/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with a cache-aside layer
// for single-user reads. Pages and search results pass straight through.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the DB repository. Records are immutable after
// insert, so there is nothing to invalidate.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user with cache-aside and single-flight so a cold
// key hits the database once regardless of concurrent readers.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			return cachedUser, nil
		}
	}

	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Another request may have populated the cache while we waited
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// Page delegates to the DB repository; pages are never cached.
func (r *CachedUserRepository) Page(ctx context.Context, cursor, limit int64) ([]domain.User, bool, error) {
	return r.dbRepo.Page(ctx, cursor, limit)
}

// SearchByName delegates to the DB repository; results are never cached.
func (r *CachedUserRepository) SearchByName(ctx context.Context, query string, limit int64) ([]domain.User, error) {
	return r.dbRepo.SearchByName(ctx, query, limit)
}
