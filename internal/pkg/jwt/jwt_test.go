package jwt

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verified(t *testing.T, svc Service, req *http.Request) (subject string, verifyErr error) {
	t.Helper()
	h := svc.Verifier()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		verifyErr = err
		if token != nil {
			subject = token.Subject()
		}
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return subject, verifyErr
}

func signed(t *testing.T, svc Service, subject string) string {
	t.Helper()
	_, token, err := svc.JWTAuth().Encode(map[string]interface{}{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	require.NoError(t, err)
	return token
}

func TestVerifier_HeaderAndQuery(t *testing.T) {
	svc := NewJWTService("test-secret")
	require.True(t, svc.Enabled())

	token := signed(t, svc, "emp-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	sub, err := verified(t, svc, req)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", sub)

	req = httptest.NewRequest(http.MethodGet, "/events?jwt="+token, nil)
	sub, err = verified(t, svc, req)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", sub)
}

func TestVerifier_RejectsForeignSignature(t *testing.T) {
	token := signed(t, NewJWTService("other-secret"), "emp-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err := verified(t, NewJWTService("test-secret"), req)
	assert.Error(t, err)
}

func TestDisabled(t *testing.T) {
	svc := NewJWTService("")
	assert.False(t, svc.Enabled())
	assert.Nil(t, svc.JWTAuth())

	called := false
	svc.Verifier()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
