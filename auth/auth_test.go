package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToken_RoundTrip(t *testing.T) {
	SetSecret("test-secret")
	uid, ok := ParseToken(Token(42))
	assert.True(t, ok)
	assert.Equal(t, uint(42), uid)

	_, ok = ParseToken("42.forged")
	assert.False(t, ok)
	_, ok = ParseToken("nodot")
	assert.False(t, ok)
	_, ok = ParseToken(Token(0))
	assert.False(t, ok)
}

func TestMiddleware_RequireAuth(t *testing.T) {
	SetSecret("test-secret")
	t.Cleanup(func() { SetUserVerifier(nil) })

	var seen uint
	h := Middleware(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/templates", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: Token(7)})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(7), seen)

	SetUserVerifier(func(context.Context, uint) bool { return false })
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), CookieName+"=")
}
