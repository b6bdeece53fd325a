package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"greenlands/pkg/apperr"
	"greenlands/pkg/middleware"
	"greenlands/pkg/policy"
	"greenlands/pkg/user/repository"
	"greenlands/pkg/validate"
)

type GovernmentCtrl struct{ users repository.UserRepository }

func New(users repository.UserRepository) *GovernmentCtrl {
	return &GovernmentCtrl{users: users}
}

func (h *GovernmentCtrl) List(c echo.Context) error {
	officials, err := h.users.ActiveByRole(policy.RoleGovernment)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, officials)
}

func (h *GovernmentCtrl) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	official, err := h.users.ActiveByRoleAndID(policy.RoleGovernment, uint(id))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	return c.JSON(http.StatusOK, official)
}

type updateReq struct {
	Name        string   `json:"name" validate:"required"`
	Phone       string   `json:"phone" validate:"required"`
	Department  string   `json:"department" validate:"required"`
	Position    string   `json:"position" validate:"required"`
	Permissions []string `json:"permissions"`
}

func (h *GovernmentCtrl) Update(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	if !policy.CanMutate(ident, uint(id)) {
		return apperr.Forbidden(c)
	}

	var req updateReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}
	for _, p := range req.Permissions {
		if !policy.ValidPermission(p) {
			return apperr.Fields(c, []apperr.FieldError{{Msg: "Permission is invalid", Param: "permissions"}})
		}
	}

	official, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	official.Name = req.Name
	official.Phone = req.Phone
	official.Department = req.Department
	official.Position = req.Position
	if req.Permissions != nil {
		official.Permissions = req.Permissions
	}
	if err := h.users.Save(official); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, official)
}

func (h *GovernmentCtrl) ByDepartment(c echo.Context) error {
	officials, err := h.users.OfficialsByDepartment(c.Param("department"))
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, officials)
}

type permissionReq struct {
	Permission string `json:"permission" validate:"required"`
}

// AddPermission is admin-only (route-gated) and idempotent.
func (h *GovernmentCtrl) AddPermission(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	var req permissionReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}
	if !policy.ValidPermission(req.Permission) {
		return apperr.Fields(c, []apperr.FieldError{{Msg: "Permission is invalid", Param: "permission"}})
	}

	official, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	for _, p := range official.Permissions {
		if p == req.Permission {
			return c.JSON(http.StatusOK, official)
		}
	}
	official.Permissions = append(official.Permissions, req.Permission)
	if err := h.users.Save(official); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, official)
}

func (h *GovernmentCtrl) RemovePermission(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	official, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Government official not found")
	}
	target := c.Param("permission")
	kept := official.Permissions[:0]
	for _, p := range official.Permissions {
		if p != target {
			kept = append(kept, p)
		}
	}
	official.Permissions = kept
	if err := h.users.Save(official); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, official)
}
