// Package apperr translates failures into the wire taxonomy at the route
// boundary. Every error body carries a human message plus a stable code so
// clients no longer have to pattern-match on text.
package apperr

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	CodeValidation         = "VALIDATION"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeServer             = "SERVER_ERROR"
)

type Body struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"` // detail, development only
}

// FieldError is the per-field validation shape dashboards already consume.
type FieldError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

// Development toggles detail passthrough on 500s. Set once at startup.
var Development = false

func JSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, Body{Message: message, Code: code})
}

func Validation(c echo.Context, message string) error {
	return JSON(c, http.StatusBadRequest, CodeValidation, message)
}

// Fields returns a 400 with the per-field error list.
func Fields(c echo.Context, errs []FieldError) error {
	return c.JSON(http.StatusBadRequest, map[string]any{"errors": errs})
}

func Unauthenticated(c echo.Context, message string) error {
	return JSON(c, http.StatusUnauthorized, CodeUnauthenticated, message)
}

func InvalidToken(c echo.Context) error {
	return JSON(c, http.StatusUnauthorized, CodeInvalidToken, "Token is not valid")
}

// InvalidCredentials never reveals whether the email or the password was
// wrong.
func InvalidCredentials(c echo.Context) error {
	return JSON(c, http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
}

func DuplicateEmail(c echo.Context) error {
	return JSON(c, http.StatusBadRequest, CodeDuplicateEmail, "User already exists")
}

// Forbidden is 403; ownership and role failures used to answer 401,
// which confused clients into re-prompting for login.
func Forbidden(c echo.Context) error {
	return JSON(c, http.StatusForbidden, CodeForbidden, "Not authorized")
}

func NotFound(c echo.Context, message string) error {
	return JSON(c, http.StatusNotFound, CodeNotFound, message)
}

func Server(c echo.Context, err error) error {
	b := Body{Message: "Server error", Code: CodeServer}
	if Development && err != nil {
		b.Error = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, b)
}
