package store

import (
	"context"
	"strings"
)

// LoadUsers returns the users in the credentials worksheet. Rows without an email address are
// ignored and only the first row for an email address is kept.
func (s *Store) LoadUsers(ctx context.Context) ([]User, error) {
	return cached(s, KeyUsers, func() ([]User, error) {
		records, err := s.load(ctx, userSchema)
		if err != nil {
			return nil, err
		}

		users := []User{}
		seen := map[string]bool{}
		for _, r := range records {
			u := userFromRecord(r)
			k := strings.ToLower(u.Email)
			if k != "" && !seen[k] {
				users = append(users, u)
				seen[k] = true
			}
		}

		return users, nil
	})
}

// CheckUser returns true if the email address is listed in the credentials worksheet. Addresses
// are compared case-insensitively.
func (s *Store) CheckUser(ctx context.Context, email string) (bool, error) {
	users, err := s.LoadUsers(ctx)
	if err != nil {
		return false, err
	}

	if _, ok := lookup(users, email); ok {
		return true, nil
	}

	return false, nil
}

// UserName returns the display name for a user, falling back to the email address if the user
// has no name or is not listed in the credentials worksheet.
func (s *Store) UserName(ctx context.Context, email string) (string, error) {
	return cached(s, KeyUserName(email), func() (string, error) {
		users, err := s.LoadUsers(ctx)
		if err != nil {
			return "", err
		}

		if u, ok := lookup(users, email); ok && u.Name != "" {
			return u.Name, nil
		}

		return email, nil
	})
}

func lookup(users []User, email string) (User, bool) {
	email = strings.TrimSpace(email)
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}

	return User{}, false
}
