package session

import (
	"context"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims map[string]interface{}, exp time.Time) string {
	t.Helper()
	tok := jwt.New()
	for k, v := range claims {
		require.NoError(t, tok.Set(k, v))
	}
	require.NoError(t, tok.Set(jwt.ExpirationKey, exp))
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, []byte("backend-secret")))
	require.NoError(t, err)
	return string(signed)
}

func TestNew_ReadsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, map[string]interface{}{
		jwt.SubjectKey: "emp-1",
		"email":        "alice@example.com",
		"firstName":    "Alice",
		"lastName":     "Uwase",
	}, exp)

	s, err := New("Bearer " + raw)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", s.Subject())
	assert.Equal(t, "alice@example.com", s.Email())
	assert.Equal(t, "Alice Uwase", s.Name())
	assert.True(t, exp.Equal(s.ExpiresAt()))
	assert.True(t, s.Valid())
	assert.Len(t, s.Fingerprint(), 64)
}

func TestNew_OpaqueToken(t *testing.T) {
	s, err := New("not-a-jwt")
	require.NoError(t, err)
	assert.Empty(t, s.Subject())
	assert.True(t, s.ExpiresAt().IsZero())
	assert.True(t, s.Valid())

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "not-a-jwt", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
}

func TestNew_EmptyToken(t *testing.T) {
	_, err := New("   ")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = New("Bearer ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestSession_Invalidate(t *testing.T) {
	s, err := New("opaque")
	require.NoError(t, err)

	s.Invalidate()
	s.Invalidate()

	assert.False(t, s.Valid())
	_, err = s.Token()
	assert.ErrorIs(t, err, ErrSessionInvalidated)
}

func TestSession_Expired(t *testing.T) {
	exp := time.Now().Add(time.Minute)
	s, err := New(signedToken(t, map[string]interface{}{"user_id": "u-9"}, exp))
	require.NoError(t, err)
	assert.Equal(t, "u-9", s.Subject())

	s.now = func() time.Time { return exp.Add(time.Second) }
	assert.False(t, s.Valid())
	_, err = s.Token()
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestFingerprint_StablePerToken(t *testing.T) {
	a, _ := New("token-a")
	a2, _ := New("Bearer token-a")
	b, _ := New("token-b")

	assert.Equal(t, a.Fingerprint(), a2.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s, _ := New("opaque")
	got, ok := FromContext(NewContext(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)
}
