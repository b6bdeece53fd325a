package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"greenlands/entities"
	"greenlands/pkg/apperr"
	"greenlands/pkg/land/controller"
	"greenlands/pkg/land/repository"
	"greenlands/pkg/middleware"
	"greenlands/pkg/policy"
	"greenlands/pkg/validate"
)

type LandCtrl struct{ repo repository.LandRepository }

func New(repo repository.LandRepository) controller.LandController {
	return &LandCtrl{repo}
}

type landReq struct {
	Name        string    `json:"name" validate:"required"`
	Area        float64   `json:"area" validate:"required,gt=0"`
	Crop        string    `json:"crop" validate:"required"`
	SoilType    string    `json:"soilType" validate:"required"`
	Status      string    `json:"status"`
	Coordinates []float64 `json:"coordinates"`

	Description    string `json:"description"`
	IrrigationType string `json:"irrigationType"`
}

func (req *landReq) check(c echo.Context, coordsRequired bool) error {
	if err := c.Validate(req); err != nil {
		return apperr.Fields(c, validate.Fields(err))
	}
	if !entities.ValidSoilType(req.SoilType) {
		return apperr.Fields(c, []apperr.FieldError{{Msg: "Soil type is invalid", Param: "soilType"}})
	}
	if req.Status != "" && !entities.ValidLandStatus(req.Status) {
		return apperr.Fields(c, []apperr.FieldError{{Msg: "Status is invalid", Param: "status"}})
	}
	if (coordsRequired || req.Coordinates != nil) && !entities.ValidCoordinates(req.Coordinates) {
		return apperr.Fields(c, []apperr.FieldError{{
			Msg:   "Coordinates must be valid latitude and longitude values",
			Param: "coordinates",
		}})
	}
	return nil
}

func (h *LandCtrl) List(c echo.Context) error {
	records, err := h.repo.All()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

func (h *LandCtrl) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Land record not found")
	}
	l, err := h.repo.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Land record not found")
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LandCtrl) Create(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	var req landReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := req.check(c, true); err != nil {
		return err
	}
	status := req.Status
	if status == "" {
		status = "Active"
	}
	l := &entities.Land{
		Name:           req.Name,
		Area:           req.Area,
		Crop:           req.Crop,
		SoilType:       req.SoilType,
		Status:         status,
		Coordinates:    req.Coordinates,
		FarmerID:       ident.ID,
		Description:    req.Description,
		IrrigationType: req.IrrigationType,
	}
	if err := h.repo.Create(l); err != nil {
		return apperr.Server(c, err)
	}
	created, err := h.repo.FindByID(l.ID)
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *LandCtrl) Update(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Land record not found")
	}
	l, err := h.repo.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Land record not found")
	}
	if !policy.CanMutate(ident, l.FarmerID) {
		return apperr.Forbidden(c)
	}

	var req landReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(c, "bad json")
	}
	if err := req.check(c, false); err != nil {
		return err
	}

	l.Name = req.Name
	l.Area = req.Area
	l.Crop = req.Crop
	l.SoilType = req.SoilType
	if req.Status != "" {
		l.Status = req.Status
	}
	if req.Coordinates != nil {
		l.Coordinates = req.Coordinates
	}
	if req.Description != "" {
		l.Description = req.Description
	}
	if req.IrrigationType != "" {
		l.IrrigationType = req.IrrigationType
	}
	if err := h.repo.Save(l); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *LandCtrl) Delete(c echo.Context) error {
	ident, _ := middleware.IdentityFrom(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return apperr.NotFound(c, "Land record not found")
	}
	l, err := h.repo.FindByID(uint(id))
	if err != nil {
		return apperr.NotFound(c, "Land record not found")
	}
	if !policy.CanMutate(ident, l.FarmerID) {
		return apperr.Forbidden(c)
	}
	if err := h.repo.Delete(l.ID); err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Land record removed"})
}

func (h *LandCtrl) ByFarmer(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("farmerId"))
	if err != nil {
		return apperr.NotFound(c, "Farmer not found")
	}
	records, err := h.repo.ByFarmer(uint(id))
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, records)
}
