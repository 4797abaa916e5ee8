package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	users := []User{
		{ID: 1, Name: "Alice", Email: "a@x.com"},
		{ID: 2, Name: "Bob", Email: "b@x.com"},
	}

	p := NewPage(users, true)
	assert.True(t, p.HasMore)
	require.NotNil(t, p.NextCursor)
	assert.Equal(t, int64(2), *p.NextCursor, "cursor is the last id of the page")

	p = NewPage(users, false)
	assert.False(t, p.HasMore)
	assert.Nil(t, p.NextCursor)
}

func TestNewPage_Empty(t *testing.T) {
	p := NewPage(nil, false)
	assert.Empty(t, p.Users)
	assert.False(t, p.HasMore)
	assert.Nil(t, p.NextCursor)
}
