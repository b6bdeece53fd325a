package controllerImp

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"greenlands/entities"
	"greenlands/pkg/apperr"
	landrepo "greenlands/pkg/land/repository"
	"greenlands/pkg/middleware"
	"greenlands/pkg/policy"
	"greenlands/pkg/user/repository"
	"greenlands/pkg/validate"
)

type FarmerCtrl struct {
	users repository.UserRepository
	lands landrepo.LandRepository
}

func New(users repository.UserRepository, lands landrepo.LandRepository) *FarmerCtrl {
	return &FarmerCtrl{users: users, lands: lands}
}

func (h *FarmerCtrl) List(c echo.Context) error {
	farmers, err := h.users.ActiveByRole(policy.RoleFarmer)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, farmers)
}

func (h *FarmerCtrl) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	farmer, err := h.users.ActiveByRoleAndID(policy.RoleFarmer, uint(id))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	return c.JSON(http.StatusOK, farmer)
}

type updateReq struct {
	Name        string                `json:"name" validate:"required"`
	Phone       string                `json:"phone" validate:"required"`
	Location    string                `json:"location" validate:"required"`
	FarmDetails *entities.FarmDetails `json:"farmDetails"`
}

func (h *FarmerCtrl) Update(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
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

	farmer, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	farmer.Name = req.Name
	farmer.Phone = req.Phone
	farmer.Location = req.Location
	if req.FarmDetails != nil {
		farmer.FarmDetails = *req.FarmDetails
	}
	if err := h.users.Save(farmer); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, farmer)
}

func (h *FarmerCtrl) ByLocation(c echo.Context) error {
	farmers, err := h.users.FarmersByLocation(c.Param("location"))
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, farmers)
}

type cropReq struct {
	Crop string `json:"crop" validate:"required"`
}

// AddCrop has set semantics: adding a crop the farmer already grows is a
// no-op, never a duplicate.
func (h *FarmerCtrl) AddCrop(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	if !policy.CanMutate(ident, uint(id)) {
		return apperr.Forbidden(c)
	}

	var req cropReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}

	farmer, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	if !contains(farmer.FarmDetails.Crops, req.Crop) {
		farmer.FarmDetails.Crops = append(farmer.FarmDetails.Crops, req.Crop)
		if err := h.users.Save(farmer); err != nil {
			return apperr.Server(c, err)
		}
	}
	return c.JSON(http.StatusOK, farmer)
}

func (h *FarmerCtrl) RemoveCrop(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	if !policy.CanMutate(ident, uint(id)) {
		return apperr.Forbidden(c)
	}

	farmer, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	target := c.Param("crop")
	kept := farmer.FarmDetails.Crops[:0]
	for _, crop := range farmer.FarmDetails.Crops {
		if crop != target {
			kept = append(kept, crop)
		}
	}
	farmer.FarmDetails.Crops = kept
	if err := h.users.Save(farmer); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, farmer)
}

type equipmentReq struct {
	Equipment string `json:"equipment" validate:"required"`
}

func (h *FarmerCtrl) AddEquipment(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	if !policy.CanMutate(ident, uint(id)) {
		return apperr.Forbidden(c)
	}

	var req equipmentReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := c.Validate(&req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}

	farmer, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	if !contains(farmer.FarmDetails.Equipment, req.Equipment) {
		farmer.FarmDetails.Equipment = append(farmer.FarmDetails.Equipment, req.Equipment)
		if err := h.users.Save(farmer); err != nil {
			return apperr.Server(c, err)
		}
	}
	return c.JSON(http.StatusOK, farmer)
}

// Report exports the farmer's land records, CSV by default, xlsx on request.
// Owner or admin only.
func (h *FarmerCtrl) Report(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	if !policy.CanMutate(ident, uint(id)) {
		return apperr.Forbidden(c)
	}
	farmer, err := h.users.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	lands, err := h.lands.ByFarmer(uint(id))
	if err != nil {
		return apperr.Server(c, err)
	}

	if c.QueryParam("format") == "xlsx" {
		return h.writeXLSXReport(c, farmer, lands)
	}
	return h.writeCSVReport(c, farmer, lands)
}

var reportHeader = []string{"Farmer", "Email", "LandName", "Area", "Crop", "SoilType", "Status", "LastUpdated"}

func reportRow(farmer *entities.User, l entities.Land) []string {
	return []string{
		farmer.Name,
		farmer.Email,
		l.Name,
		strconv.FormatFloat(l.Area, 'f', -1, 64),
		l.Crop,
		l.SoilType,
		l.Status,
		l.LastUpdated.Format("2006-01-02 15:04:05"),
	}
}

func (h *FarmerCtrl) writeCSVReport(c echo.Context, farmer *entities.User, lands []entities.Land) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="farmer_report_%s.csv"`, safeName(farmer.Name)))
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write(reportHeader); err != nil {
		return err
	}
	for _, l := range lands {
		if err := w.Write(reportRow(farmer, l)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (h *FarmerCtrl) writeXLSXReport(c echo.Context, farmer *entities.User, lands []entities.Land) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, hd := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hd)
	}
	for rowIdx, l := range lands {
		for colIdx, v := range reportRow(farmer, l) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="farmer_report_%s.xlsx"`, safeName(farmer.Name)))
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}

func safeName(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
