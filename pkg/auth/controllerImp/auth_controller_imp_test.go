package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/apperr"
	"greenlands/pkg/auth/controller"
	"greenlands/pkg/policy"
	"greenlands/pkg/token"
	userRepoImp "greenlands/pkg/user/repositoryImp"
	"greenlands/pkg/validate"
)

func newTestCtrl(t *testing.T) (controller.AuthController, *echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))

	e := echo.New()
	e.Validator = validate.New()
	tm := token.NewManager("test-secret", time.Hour)
	return New(userRepoImp.New(db), tm), e, db
}

func doJSON(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterAndLogin(t *testing.T) {
	ctrl, e, _ := newTestCtrl(t)

	c, rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"Alice@Example.com","password":"hunter22","role":"farmer","location":"North Valley"}`)
	require.NoError(t, ctrl.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string        `json:"token"`
		User  entities.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email, "email stored lowercase")
	assert.True(t, resp.User.IsActive)
	assert.NotContains(t, rec.Body.String(), "hunter22", "password never serialized")

	// token asserts the registered identity
	id, err := token.NewManager("test-secret", time.Hour).Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.ID)
	assert.Equal(t, policy.RoleFarmer, id.Role)

	// login with the same credentials, case-insensitive email
	c, rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"hunter22"}`)
	require.NoError(t, ctrl.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctrl, e, _ := newTestCtrl(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"hunter22"}`
	c, rec := doJSON(e, http.MethodPost, "/api/auth/register", body)
	require.NoError(t, ctrl.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = doJSON(e, http.MethodPost, "/api/auth/register", body)
	require.NoError(t, ctrl.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errBody apperr.Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	assert.Equal(t, apperr.CodeDuplicateEmail, errBody.Code)
}

func TestRegisterValidation(t *testing.T) {
	ctrl, e, _ := newTestCtrl(t)

	cases := []struct {
		name string
		body string
	}{
		{"short password", `{"name":"A","email":"a@b.com","password":"12345"}`},
		{"bad email", `{"name":"A","email":"not-an-email","password":"123456"}`},
		{"missing name", `{"email":"a@b.com","password":"123456"}`},
		{"bad role", `{"name":"A","email":"a@b.com","password":"123456","role":"superuser"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := doJSON(e, http.MethodPost, "/api/auth/register", tc.body)
			require.NoError(t, ctrl.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"errors"`)
		})
	}
}

func TestLoginGenericFailures(t *testing.T) {
	ctrl, e, db := newTestCtrl(t)

	c, rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"hunter22"}`)
	require.NoError(t, ctrl.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// unknown email, wrong password and deactivated account are
	// indistinguishable on the wire
	attempt := func(body string) apperr.Body {
		c, rec := doJSON(e, http.MethodPost, "/api/auth/login", body)
		require.NoError(t, ctrl.Login(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		var b apperr.Body
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
		return b
	}

	unknown := attempt(`{"email":"nobody@example.com","password":"hunter22"}`)
	wrongPw := attempt(`{"email":"alice@example.com","password":"wrong-pass"}`)
	assert.Equal(t, unknown, wrongPw)
	assert.Equal(t, apperr.CodeInvalidCredentials, unknown.Code)
	assert.Equal(t, "Invalid credentials", unknown.Message)

	require.NoError(t, db.Model(&entities.User{}).Where("email = ?", "alice@example.com").
		Update("is_active", false).Error)
	inactive := attempt(`{"email":"alice@example.com","password":"hunter22"}`)
	assert.Equal(t, unknown, inactive)
}

func TestPolicyEndpointServesTable(t *testing.T) {
	ctrl, e, _ := newTestCtrl(t)

	c, rec := doJSON(e, http.MethodGet, "/api/auth/policy", "")
	require.NoError(t, ctrl.Policy(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Roles  []string            `json:"roles"`
		Routes map[string][]string `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.ElementsMatch(t, policy.Roles, resp.Roles)
	assert.Equal(t, policy.AllowedRoles(policy.RouteFinance), resp.Routes[policy.RouteFinance])
}
