package user

import "context"

// Usecase defines the interface for directory business logic operations.
type Usecase interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error)
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	SearchUsers(ctx context.Context, in SearchUsersRequest) (*SearchUsersResponse, error)
}
