package client

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"user-directory/internal/usecase/user"
	apperrors "user-directory/pkg/errors"
)

// ListState is the lifecycle of the main user list.
type ListState int

// List states.
const (
	ListIdle ListState = iota
	ListLoading
	ListLoaded
	ListError
)

// SearchState is the lifecycle of the search box, independent of the list.
type SearchState int

// Search states.
const (
	SearchIdle SearchState = iota
	Searching
	Suggesting
)

// Form holds the add-user input fields.
type Form struct {
	Name  string
	Email string
}

// Snapshot is a copy of the controller's view state at one point in time.
type Snapshot struct {
	ListState   ListState
	SearchState SearchState
	Users       []User
	Cursor      *int64
	HasMore     bool
	Query       string
	Suggestions []User
	Selected    *User
	Form        Form
	Err         error
}

// Controller maintains the in-memory view over the directory API: the
// loaded list with its cursor, the search suggestions, and the add-user
// form. All state lives in one place and is mutated only by its methods.
//
// Every search request carries a sequence number; a response whose
// sequence is no longer the latest issued is discarded, so a slow reply
// to a superseded query can never overwrite newer suggestions.
type Controller struct {
	mu sync.Mutex

	api *Client
	log *zap.Logger

	pageLimit   int
	searchLimit int

	listState ListState
	users     []User
	cursor    *int64
	hasMore   bool
	lastErr   error

	searchState SearchState
	searchSeq   uint64
	query       string
	suggestions []User
	selected    *User

	form Form
}

// NewController creates a Controller over the given API client.
func NewController(api *Client, log *zap.Logger) *Controller {
	return &Controller{
		api:         api,
		log:         log,
		pageLimit:   user.DefaultPageLimit,
		searchLimit: user.DefaultSearchLimit,
	}
}

// Load fetches the first page, replacing any loaded list.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.listState == ListLoading {
		c.mu.Unlock()
		return nil
	}
	c.listState = ListLoading
	c.mu.Unlock()

	page, err := c.api.Page(ctx, nil, c.pageLimit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.listState = ListError
		c.lastErr = err
		c.log.Warn("initial page load failed", zap.Error(err))
		return err
	}

	c.users = page.Users
	c.cursor = page.NextCursor
	c.hasMore = page.HasMore
	c.listState = ListLoaded
	c.lastErr = nil
	return nil
}

// LoadMore appends the next page using the last-known cursor. It is a
// no-op unless more rows exist and no load is in flight. Rows inserted
// on the server between pages may surface as duplicates; the controller
// does not deduplicate.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasMore || c.listState == ListLoading {
		c.mu.Unlock()
		return nil
	}
	cursor := c.cursor
	c.listState = ListLoading
	c.mu.Unlock()

	page, err := c.api.Page(ctx, cursor, c.pageLimit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.listState = ListError
		c.lastErr = err
		c.log.Warn("load more failed", zap.Error(err))
		return err
	}

	c.users = append(c.users, page.Users...)
	c.cursor = page.NextCursor
	c.hasMore = page.HasMore
	c.listState = ListLoaded
	c.lastErr = nil
	return nil
}

// SetQuery records a keystroke and issues a search for non-empty input.
// Clearing the query also invalidates any search still in flight.
func (c *Controller) SetQuery(ctx context.Context, q string) error {
	c.mu.Lock()
	c.query = q
	c.searchSeq++
	seq := c.searchSeq

	if strings.TrimSpace(q) == "" {
		c.suggestions = nil
		c.searchState = SearchIdle
		c.mu.Unlock()
		return nil
	}
	c.searchState = Searching
	c.mu.Unlock()

	results, err := c.api.Search(ctx, q, c.searchLimit)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.searchSeq {
		// Superseded by a newer keystroke; drop the response
		c.log.Debug("discarding stale search response", zap.String("query", q))
		return nil
	}
	if err != nil {
		c.suggestions = nil
		c.searchState = SearchIdle
		c.log.Warn("search failed", zap.String("query", q), zap.Error(err))
		return err
	}

	c.suggestions = results
	c.searchState = Suggesting
	return nil
}

// SelectSuggestion copies a suggestion into the form and clears the
// suggestion list.
func (c *Controller) SelectSuggestion(u User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = &u
	c.query = u.Name
	c.form = Form{Name: u.Name, Email: u.Email}
	c.suggestions = nil
	c.searchState = SearchIdle
	c.searchSeq++ // drop any search still in flight
}

// SetForm updates the add-user form fields.
func (c *Controller) SetForm(name, email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{Name: name, Email: email}
}

// Submit posts the form. Both fields must be non-empty before any HTTP
// call is made. On success the form and search state are cleared and the
// first page is refetched; on failure the loaded list is left untouched.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	if strings.TrimSpace(form.Name) == "" {
		return apperrors.NewValidationError("name", "is required")
	}
	if strings.TrimSpace(form.Email) == "" {
		return apperrors.NewValidationError("email", "is required")
	}

	id, err := c.api.Create(ctx, form.Name, form.Email)
	if err != nil {
		c.log.Warn("submit failed", zap.Error(err))
		return err
	}
	c.log.Info("user added", zap.Int64("id", id))

	c.mu.Lock()
	c.form = Form{}
	c.query = ""
	c.suggestions = nil
	c.selected = nil
	c.searchState = SearchIdle
	c.searchSeq++
	c.mu.Unlock()

	return c.Load(ctx)
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		ListState:   c.listState,
		SearchState: c.searchState,
		Users:       append([]User(nil), c.users...),
		HasMore:     c.hasMore,
		Query:       c.query,
		Suggestions: append([]User(nil), c.suggestions...),
		Form:        c.form,
		Err:         c.lastErr,
	}
	if c.cursor != nil {
		cur := *c.cursor
		s.Cursor = &cur
	}
	if c.selected != nil {
		sel := *c.selected
		s.Selected = &sel
	}
	return s
}
