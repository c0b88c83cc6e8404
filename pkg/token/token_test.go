package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", "jobdeck", time.Hour)

	signed, err := m.Issue("user-1", "company")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "company", claims.Role)
	assert.Equal(t, "jobdeck", claims.Issuer)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := NewManager("secret-a", "jobdeck", time.Hour).Issue("user-1", "seeker")
	require.NoError(t, err)

	_, err = NewManager("secret-b", "jobdeck", time.Hour).Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", "jobdeck", -time.Minute)

	signed, err := m.Issue("user-1", "seeker")
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret", "jobdeck", time.Hour)

	for _, tok := range []string{"", "not.a.token", "aaaa"} {
		_, err := m.Parse(tok)
		assert.Error(t, err, "token=%q", tok)
	}
}

func TestParseRejectsWrongAlgorithm(t *testing.T) {
	m := NewManager("test-secret", "jobdeck", time.Hour)

	// A token signed with "none" must never verify, even with a valid
	// payload shape.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1", Role: "company"})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.Error(t, err)
}
