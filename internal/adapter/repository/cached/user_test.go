package cached

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-directory/internal/adapter/cache"
	domain "user-directory/internal/domain/user"
	apperrors "user-directory/pkg/errors"
)

// countingRepo is a Repository stub that records how often each method
// hits the underlying store.
type countingRepo struct {
	mu           sync.Mutex
	users        map[int64]domain.User
	getCalls     int
	pageCalls    int
	searchCalls  int
	failNextByID bool
}

func newCountingRepo(users ...domain.User) *countingRepo {
	m := make(map[int64]domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &countingRepo{users: m}
}

func (r *countingRepo) Create(ctx context.Context, u *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := int64(len(r.users) + 1)
	u.ID = id
	r.users[id] = *u
	return id, nil
}

func (r *countingRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	if r.failNextByID {
		r.failNextByID = false
		return nil, apperrors.NewStoreUnavailableError("get user", nil)
	}
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user", "")
	}
	return &u, nil
}

func (r *countingRepo) Page(ctx context.Context, cursor, limit int64) ([]domain.User, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pageCalls++
	return nil, false, nil
}

func (r *countingRepo) SearchByName(ctx context.Context, query string, limit int64) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchCalls++
	return nil, nil
}

func setupCachedRepo(t *testing.T, db *countingRepo) *CachedUserRepository {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	uc := cache.NewRedisUserCache(client, time.Minute, log)
	return NewCachedUserRepository(db, uc, log).(*CachedUserRepository)
}

func TestCachedRepo_GetByID_SecondReadServedFromCache(t *testing.T) {
	db := newCountingRepo(domain.User{ID: 1, Name: "Alice", Email: "a@x.com"})
	repo := setupCachedRepo(t, db)
	ctx := context.Background()

	u, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, 1, db.getCalls)

	u, err = repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, 1, db.getCalls, "second read must not hit the store")
}

func TestCachedRepo_GetByID_NotFoundNotCached(t *testing.T) {
	db := newCountingRepo()
	repo := setupCachedRepo(t, db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 99)
	require.Error(t, err)

	var nf *apperrors.NotFoundError
	assert.ErrorAs(t, err, &nf)

	// A later successful insert is visible, the miss was not pinned
	id, err := repo.Create(ctx, &domain.User{Name: "Bob", Email: "b@x.com"})
	require.NoError(t, err)

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
}

func TestCachedRepo_GetByID_StoreErrorPropagates(t *testing.T) {
	db := newCountingRepo(domain.User{ID: 1, Name: "Alice", Email: "a@x.com"})
	db.failNextByID = true
	repo := setupCachedRepo(t, db)

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)

	var su *apperrors.StoreUnavailableError
	assert.ErrorAs(t, err, &su)
}

func TestCachedRepo_PageAndSearchPassThrough(t *testing.T) {
	db := newCountingRepo()
	repo := setupCachedRepo(t, db)
	ctx := context.Background()

	_, _, err := repo.Page(ctx, 0, 10)
	require.NoError(t, err)
	_, _, err = repo.Page(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, db.pageCalls, "pages are never cached")

	_, err = repo.SearchByName(ctx, "a", 10)
	require.NoError(t, err)
	_, err = repo.SearchByName(ctx, "a", 10)
	require.NoError(t, err)
	assert.Equal(t, 2, db.searchCalls, "search results are never cached")
}

func TestCachedRepo_GetByID_ConcurrentColdReadsHitStoreOnce(t *testing.T) {
	db := newCountingRepo(domain.User{ID: 1, Name: "Alice", Email: "a@x.com"})
	repo := setupCachedRepo(t, db)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u, err := repo.GetByID(ctx, 1)
			assert.NoError(t, err)
			assert.Equal(t, "Alice", u.Name)
		}()
	}
	wg.Wait()

	// Single-flight collapses the concurrent cold reads
	assert.LessOrEqual(t, db.getCalls, 2)
}
