package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// ReportHandler exposes the read-only report endpoints
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Financial summarizes payments received inside a date range
func (h *ReportHandler) Financial(c echo.Context) error {
	start, err := parseDate(c.QueryParam("inicio"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
	}
	end, err := parseDate(c.QueryParam("fim"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
	}
	condominiumID, err := optionalIDQuery(c, "condominio")
	if err != nil {
		return err
	}

	report, err := h.reports.Financial(start, end, condominiumID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Occupancy summarizes unit occupancy
func (h *ReportHandler) Occupancy(c echo.Context) error {
	condominiumID, err := optionalIDQuery(c, "condominio")
	if err != nil {
		return err
	}

	report, err := h.reports.Occupancy(condominiumID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Maintenances summarizes maintenance tickets
func (h *ReportHandler) Maintenances(c echo.Context) error {
	var start, end *time.Time
	if s := c.QueryParam("inicio"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
		}
		start = &t
	}
	if s := c.QueryParam("fim"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
		}
		end = &t
	}

	var status *models.MaintenanceStatus
	if s := c.QueryParam("status"); s != "" {
		st := models.MaintenanceStatus(s)
		status = &st
	}

	report, err := h.reports.Maintenances(start, end, status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Arrears lists units with payments owed past their due date
func (h *ReportHandler) Arrears(c echo.Context) error {
	report, err := h.reports.Arrears(time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
