// Package jwt verifies bearer tokens locally when the BFF shares the
// backend's signing secret.
package jwt

import (
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const acceptableSkew = 30 * time.Second

type Service interface {
	// Enabled reports whether a secret is configured. Without one, tokens are
	// only extracted and the backend remains the sole verifier.
	Enabled() bool
	JWTAuth() *jwtauth.JWTAuth
	// Verifier decodes the token from the Authorization header or the "jwt"
	// query parameter (EventSource cannot set headers) into the request
	// context. It is a pass-through when disabled.
	Verifier() func(http.Handler) http.Handler
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	s := &JWTService{}
	if secretKey != "" {
		s.tokenAuth = jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(acceptableSkew))
	}
	return s
}

func (j *JWTService) Enabled() bool {
	return j.tokenAuth != nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) Verifier() func(http.Handler) http.Handler {
	if j.tokenAuth == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return jwtauth.Verify(j.tokenAuth, jwtauth.TokenFromHeader, jwtauth.TokenFromQuery)
}
