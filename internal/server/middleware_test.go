package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthRequired_MissingToken(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)

	req := httptest.NewRequest(http.MethodGet, "/api/feed?page=2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	// The original URL rides along so the client can return the user there
	// after login.
	assert.Equal(t, "/api/feed?page=2", body["forwarding_url"])
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)

	resp := doJSON(t, app, http.MethodGet, "/api/feed", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_ValidToken(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)
	user := createUser(t, s, "lana", false)

	resp := doJSON(t, app, http.MethodGet, "/api/feed", tokenFor(t, s, user.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	s := newTestServer(t)
	mr := miniredis.RunT(t)
	s.redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := newTestApp(t, s)
	user := createUser(t, s, "lana", false)
	token := tokenFor(t, s, user.ID)

	resp := doJSON(t, app, http.MethodGet, "/api/feed", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Logout blacklists the JTI; the same token stops working.
	resp = doJSON(t, app, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/feed", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestAuthRequired_WrongIssuer(t *testing.T) {
	s := newTestServer(t)
	app := newTestApp(t, s)
	createUser(t, s, "lana", false)

	// A token signed with the right key but a foreign issuer is rejected.
	foreign := issueTokenWithClaims(t, s, map[string]any{"iss": "other-api"})

	resp := doJSON(t, app, http.MethodGet, "/api/feed", foreign, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

// issueTokenWithClaims builds a token like generateToken but with overrides.
func issueTokenWithClaims(t *testing.T, s *Server, overrides map[string]any) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "1",
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": s.generateJTI(),
	}
	for k, v := range overrides {
		claims[k] = v
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.JWTSecret))
	require.NoError(t, err)
	return token
}
