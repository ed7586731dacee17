package middleware

import (
	"net/http"
	"net/http/httptest"
	"storefront-backend/internal/auth"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	var seen string
	e.GET("/", func(c echo.Context) error {
		seen = AccountID(c)
		return c.NoContent(http.StatusOK)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestAccountAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	good, err := tokens.IssueAccount("acc-1")
	require.NoError(t, err)
	admin, err := tokens.IssueAdmin("admin@shop.test")
	require.NoError(t, err)

	rec, seen := serve(t, AccountAuth(tokens), good)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "acc-1", seen)

	rec, _ = serve(t, AccountAuth(tokens), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Authorized, Login Again")

	rec, _ = serve(t, AccountAuth(tokens), "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Token")

	// admin tokens have no subject
	rec, _ = serve(t, AccountAuth(tokens), admin)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminAuth(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	admin, err := tokens.IssueAdmin("admin@shop.test")
	require.NoError(t, err)
	impostor, err := tokens.IssueAdmin("someone@shop.test")
	require.NoError(t, err)
	user, err := tokens.IssueAccount("acc-1")
	require.NoError(t, err)

	rec, _ := serve(t, AdminAuth(tokens, "admin@shop.test"), admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, token := range []string{"", impostor, user} {
		rec, _ = serve(t, AdminAuth(tokens, "admin@shop.test"), token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Not Authorized Login Again")
	}

	rec, _ = serve(t, AdminAuth(tokens, ""), admin)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
