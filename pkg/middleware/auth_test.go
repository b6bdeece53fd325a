package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenlands/pkg/apperr"
	"greenlands/pkg/policy"
	"greenlands/pkg/token"
)

func authRequest(t *testing.T, tm *token.Manager, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, RequireAuth(tm)(next)(c))
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	tm := token.NewManager("s", time.Hour)
	called := false
	rec := authRequest(t, tm, "", func(c echo.Context) error {
		called = true
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "handler must not run")

	var body apperr.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeUnauthenticated, body.Code)
}

func TestRequireAuthBadToken(t *testing.T) {
	tm := token.NewManager("s", time.Hour)
	rec := authRequest(t, tm, "Bearer not-a-token", func(c echo.Context) error { return nil })

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body apperr.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeInvalidToken, body.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := token.NewManager("s", -time.Minute)
	raw, err := expired.Issue(policy.Identity{ID: 1, Role: policy.RoleFarmer})
	require.NoError(t, err)

	tm := token.NewManager("s", time.Hour)
	rec := authRequest(t, tm, "Bearer "+raw, func(c echo.Context) error { return nil })
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	tm := token.NewManager("s", time.Hour)
	raw, err := tm.Issue(policy.Identity{ID: 9, Role: policy.RoleAdmin})
	require.NoError(t, err)

	rec := authRequest(t, tm, "Bearer "+raw, func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		assert.Equal(t, uint(9), id.ID)
		assert.Equal(t, policy.RoleAdmin, id.Role)
		return c.NoContent(http.StatusOK)
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoles(t *testing.T) {
	e := echo.New()
	gate := RequireRoles(policy.RouteFinance)
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(id policy.Identity) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		SetIdentity(c, id)
		require.NoError(t, gate(ok)(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run(policy.Identity{ID: 1, Role: policy.RoleFarmer}).Code)
	assert.Equal(t, http.StatusOK, run(policy.Identity{ID: 2, Role: policy.RoleAdmin}).Code)

	rec := run(policy.Identity{ID: 3, Role: policy.RoleGovernment})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body apperr.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperr.CodeForbidden, body.Code)
}
