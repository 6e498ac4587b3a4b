package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var tokenRegex = regexp.MustCompile(`^Token token="(.*)"`)

// loginContextKey carries the authenticated login through the request
// context.
type loginContextKey struct{}

// TokenAuthenticator issues and validates bearer tokens signed with the
// server's API key.
type TokenAuthenticator struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenAuthenticator creates a token authenticator.
func NewTokenAuthenticator(secret []byte, ttl time.Duration) *TokenAuthenticator {
	return &TokenAuthenticator{secret: secret, ttl: ttl}
}

// IssueToken signs a token for the given login.
func (a *TokenAuthenticator) IssueToken(login string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": login,
		"iat": now.Unix(),
		"exp": now.Add(a.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Login extracts the authenticated login from a request context.
func Login(ctx context.Context) string {
	login, _ := ctx.Value(loginContextKey{}).(string)
	return login
}

// Middleware returns an HTTP middleware that validates bearer tokens.
func (a *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Authorization missing"))
			return
		}

		tokenMatches := tokenRegex.FindStringSubmatch(authHeader)
		if len(tokenMatches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Malformed authorization header"))
			return
		}

		token, err := jwt.Parse(
			tokenMatches[1],
			func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return a.secret, nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Invalid or expired token"))
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("Malformed authorization token"))
			return
		}

		ctx := context.WithValue(r.Context(), loginContextKey{}, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
