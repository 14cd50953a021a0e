package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersSheet() *memsheet {
	return newMemsheet(
		[]string{"Email Address", "Password", "username", "full_name"},
		[]string{"a@x.org", "********", "alice", "Alice Adams"},
		[]string{"B@X.org", "********", "", "Bob Brown"},
		[]string{"c@x.org", "********", "", ""},
		[]string{"a@x.org", "********", "alice2", ""},
		[]string{"", "********", "nobody", ""},
	)
}

func TestLoadUsers(t *testing.T) {
	store := newTestStore(t, map[Dataset]*memsheet{Credentials: usersSheet()})

	users, err := store.LoadUsers(context.Background())
	require.NoError(t, err)

	expected := []User{
		{Email: "a@x.org", Name: "alice"},
		{Email: "B@X.org", Name: ""},
		{Email: "c@x.org", Name: ""},
	}

	assert.Equal(t, expected, users)
}

func TestCheckUser(t *testing.T) {
	sheet := usersSheet()
	store := newTestStore(t, map[Dataset]*memsheet{Credentials: sheet})

	tests := map[string]bool{
		"a@x.org":      true,
		" b@x.org ":    true,
		"C@X.ORG":      true,
		"d@x.org":      false,
		"":             false,
		"nobody@x.org": false,
	}

	for email, expected := range tests {
		ok, err := store.CheckUser(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, expected, ok, "email '%v'", email)
	}

	assert.Equal(t, 1, sheet.count("values"))
}

func TestUserName(t *testing.T) {
	sheet := usersSheet()
	store := newTestStore(t, map[Dataset]*memsheet{Credentials: sheet})

	tests := map[string]string{
		"a@x.org": "alice",
		"c@x.org": "c@x.org",
		"d@x.org": "d@x.org",
	}

	for email, expected := range tests {
		name, err := store.UserName(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, expected, name)
	}

	assert.Contains(t, store.Cache().Keys(), KeyUserName("a@x.org"))
	assert.Contains(t, store.Cache().Keys(), KeyUsers)
	assert.Equal(t, 1, sheet.count("values"))
}

func TestUserNameWithNameColumn(t *testing.T) {
	sheet := newMemsheet(
		[]string{"email", "username", "Name"},
		[]string{"a@x.org", "alice", "Alice Adams"},
	)

	store := newTestStore(t, map[Dataset]*memsheet{Credentials: sheet})

	name, err := store.UserName(context.Background(), "a@x.org")
	require.NoError(t, err)
	assert.Equal(t, "Alice Adams", name)
}
