package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUser_DefaultRole(t *testing.T) {
	u, err := NewUser("  alice ", "secret")
	require.NoError(t, err)
	require.Equal(t, RoleUser, u.Role)
	require.Equal(t, "alice", u.Username)
	require.True(t, u.CheckPassword("secret"))
	require.False(t, u.CheckPassword("other"))
}

func TestNewUser_Rejects(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
	}{
		{"blank username", "  ", "pw"},
		{"blank password", "bob", ""},
		{"comma in username", "a,b", "pw"},
		{"comma in password", "bob", "p,w"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.username, tc.password)
			require.ErrorIs(t, err, ErrInvalidUser)
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("Admin")
	require.NoError(t, err)
	require.Equal(t, RoleAdmin, r)

	r, err = ParseRole("user")
	require.NoError(t, err)
	require.Equal(t, RoleUser, r)

	_, err = ParseRole("root")
	require.Error(t, err)
}
