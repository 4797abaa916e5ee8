package user

// CreateUserRequest represents the request payload for inserting a user.
// Presence is the only rule enforced: email format and uniqueness are
// deliberately not checked.
type CreateUserRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

// CreateUserResponse represents the response payload after inserting a user.
type CreateUserResponse struct {
	ID int64
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64
}

// GetUserResponse represents the response payload for user details.
type GetUserResponse struct {
	ID    int64
	Name  string
	Email string
}

// ListUsersRequest represents a cursor-paginated listing request.
// Cursor is the id of the last user already seen; zero means start
// from the smallest id.
type ListUsersRequest struct {
	Cursor int64
	Limit  int64
}

// ListUsersResponse represents one listing page.
type ListUsersResponse struct {
	Users      []User
	NextCursor *int64
	HasMore    bool
}

// SearchUsersRequest represents a name-search request.
type SearchUsersRequest struct {
	Query string
	Limit int64
}

// SearchUsersResponse represents an ordered set of matching users.
type SearchUsersResponse struct {
	Results []User
}

// User represents a user DTO for API responses.
type User struct {
	ID    int64
	Name  string
	Email string
}
