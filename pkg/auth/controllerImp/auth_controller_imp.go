package controllerImp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/apperr"
	"greenlands/pkg/auth/controller"
	"greenlands/pkg/middleware"
	"greenlands/pkg/policy"
	"greenlands/pkg/token"
	"greenlands/pkg/user/repository"
	"greenlands/pkg/validate"
)

type authCtrl struct {
	users  repository.UserRepository
	tokens *token.Manager
}

func New(users repository.UserRepository, tokens *token.Manager) controller.AuthController {
	return &authCtrl{users: users, tokens: tokens}
}

type registerReq struct {
	Name       string               `json:"name" validate:"required"`
	Email      string               `json:"email" validate:"required,email"`
	Password   string               `json:"password" validate:"required,min=6"`
	Role       string               `json:"role"`
	Phone      string               `json:"phone"`
	Location   string               `json:"location"`
	Department string               `json:"department"`
	Position   string               `json:"position"`
	FarmDetails *entities.FarmDetails `json:"farmDetails"`
}

type authResp struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

func (h *authCtrl) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}
	if req.Role == "" {
		req.Role = policy.RoleFarmer
	}
	if !policy.ValidRole(req.Role) {
		return apperr.Fields(c, []apperr.FieldError{{Msg: "Role is invalid", Param: "role"}})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.users.FindByEmail(email); err == nil {
		return apperr.DuplicateEmail(c)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Server(c, err)
	}

	u := &entities.User{
		Name:        req.Name,
		Email:       email,
		Password:    string(hash),
		Role:        req.Role,
		Phone:       req.Phone,
		Location:    req.Location,
		Department:  req.Department,
		Position:    req.Position,
		IsActive:    true,
		LastLogin:   time.Now(),
		Preferences: entities.DefaultPreferences(),
	}
	if req.FarmDetails != nil {
		u.FarmDetails = *req.FarmDetails
	}
	if err := h.users.Create(u); err != nil {
		// uniqueIndex backstop for concurrent registration
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return apperr.DuplicateEmail(c)
		}
		return apperr.Server(c, err)
	}

	tok, err := h.tokens.Issue(policy.Identity{ID: u.ID, Role: u.Role})
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusCreated, authResp{Token: tok, User: u})
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *authCtrl) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}

	u, err := h.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same answer as a password mismatch
			return apperr.InvalidCredentials(c)
		}
		return apperr.Server(c, err)
	}
	if !u.IsActive {
		return apperr.InvalidCredentials(c)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		return apperr.InvalidCredentials(c)
	}

	if err := h.users.TouchLastLogin(u.ID); err != nil {
		return apperr.Server(c, err)
	}
	u.LastLogin = time.Now()

	tok, err := h.tokens.Issue(policy.Identity{ID: u.ID, Role: u.Role})
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, authResp{Token: tok, User: u})
}

func (h *authCtrl) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthenticated(c, "No token, authorization denied")
	}
	u, err := h.users.FindByID(id.ID)
	if err != nil {
		return apperr.NotFound(c, "User not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"user": u})
}

type profileReq struct {
	Name        string                `json:"name"`
	Phone       string                `json:"phone"`
	Location    string                `json:"location"`
	Avatar      string                `json:"avatar"`
	Preferences *entities.Preferences `json:"preferences"`
}

func (h *authCtrl) UpdateProfile(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthenticated(c, "No token, authorization denied")
	}
	var req profileReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	u, err := h.users.FindByID(id.ID)
	if err != nil {
		return apperr.NotFound(c, "User not found")
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Phone != "" {
		u.Phone = req.Phone
	}
	if req.Location != "" {
		u.Location = req.Location
	}
	if req.Avatar != "" {
		u.Avatar = req.Avatar
	}
	if req.Preferences != nil {
		u.Preferences = *req.Preferences
	}
	if err := h.users.Save(u); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": u})
}

// Policy serves the role-policy table so the SPA route guard and the server
// gate from the same data.
func (h *authCtrl) Policy(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"roles":  policy.Roles,
		"routes": policy.Table(),
	})
}
