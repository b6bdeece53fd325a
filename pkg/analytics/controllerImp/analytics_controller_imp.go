package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"greenlands/pkg/analytics/service"
	"greenlands/pkg/apperr"
)

type AnalyticsCtrl struct{ svc service.AnalyticsService }

func New(svc service.AnalyticsService) *AnalyticsCtrl { return &AnalyticsCtrl{svc} }

func (h *AnalyticsCtrl) Overview(c echo.Context) error {
	out, err := h.svc.Overview()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsCtrl) Land(c echo.Context) error {
	out, err := h.svc.Land()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// LandSummary backs GET /api/land/stats/summary.
func (h *AnalyticsCtrl) LandSummary(c echo.Context) error {
	out, err := h.svc.LandSummary()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsCtrl) Farmers(c echo.Context) error {
	out, err := h.svc.Farmers()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsCtrl) Government(c echo.Context) error {
	out, err := h.svc.Government()
	if err != nil {
		return apperr.Server(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AnalyticsCtrl) Trends(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Trends())
}

func (h *AnalyticsCtrl) Reports(c echo.Context) error {
	reportType := c.QueryParam("type")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if v := c.QueryParam("startDate"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			start = d
		}
	}
	end := time.Now()
	if v := c.QueryParam("endDate"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			// inclusive end of day
			end = d.Add(24*time.Hour - time.Second)
		}
	}

	rep, err := h.svc.Report(reportType, start, end)
	if err != nil {
		if errors.Is(err, service.ErrUnknownReportType) {
			return apperr.Validation(c, "Invalid report type")
		}
		return apperr.Server(c, err)
	}

	if c.QueryParam("format") == "xlsx" {
		return writeXLSX(c, rep)
	}
	return c.JSON(http.StatusOK, rep)
}

// writeXLSX streams the report as a one-sheet workbook for offline use.
func writeXLSX(c echo.Context, rep *service.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Group", "Count", "Farmers", "Total Area", "Avg Area", "Avg Yield", "Total Yield", "Total Land Area", "Total Lands"}
	for i, hd := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, hd)
	}
	for rowIdx, row := range rep.Data {
		vals := []any{row.Key, row.Count, row.Farmers, row.TotalArea, row.AvgArea, row.AvgYield, row.TotalYield, row.TotalLandArea, row.TotalLands}
		for colIdx, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s_report.xlsx"`, rep.Type))
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response())
}
