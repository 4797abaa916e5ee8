package user

// Page is one bounded batch of users plus continuation metadata.
// Users are ordered by ascending id; NextCursor is the id of the last
// user in the batch when more rows exist, nil otherwise.
type Page struct {
	Users      []User
	NextCursor *int64
	HasMore    bool
}

// NewPage builds a Page from an ordered batch of users.
func NewPage(users []User, hasMore bool) *Page {
	p := &Page{
		Users:   users,
		HasMore: hasMore,
	}
	if hasMore && len(users) > 0 {
		last := users[len(users)-1].ID
		p.NextCursor = &last
	}
	return p
}
