package user

// User represents a user record in the directory.
type User struct {
	ID    int64  // ID is assigned by the store on insert and never changes
	Name  string // Name is the full name of the user
	Email string // Email is the contact address of the user
}
