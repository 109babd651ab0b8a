package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, []string{"manager", "user"})
	require.NoError(t, err)

	principal, err := issuer.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, userID, principal.ID)
	assert.True(t, principal.Roles.Has(RoleManager))
	assert.True(t, principal.Roles.Has(RoleUser))
	assert.False(t, principal.Roles.Has(RoleAdmin))
}

func TestVerify_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"wrong secret", mustIssue(t, NewTokenIssuer("other-secret", time.Hour))},
		{"expired", mustIssue(t, NewTokenIssuer("test-secret", -time.Minute))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func mustIssue(t *testing.T, issuer *TokenIssuer) string {
	t.Helper()
	token, err := issuer.Issue(uuid.New(), []string{"user"})
	require.NoError(t, err)
	return token
}

func TestRoleSet(t *testing.T) {
	s := RolesOf("admin", "user")

	assert.True(t, s.Has(RoleAdmin))
	assert.True(t, s.Has(RoleUser))
	assert.False(t, s.Has(RoleManager))
	assert.ElementsMatch(t, []string{"admin", "user"}, s.Names())

	var p *Principal
	assert.False(t, p.HasRole(RoleAdmin), "nil principal has no roles")
}
