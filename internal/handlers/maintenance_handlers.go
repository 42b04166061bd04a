package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// MaintenanceHandler exposes maintenance ticket endpoints
type MaintenanceHandler struct {
	db *gorm.DB
}

func NewMaintenanceHandler(db *gorm.DB) *MaintenanceHandler {
	return &MaintenanceHandler{db: db}
}

type maintenanceRequest struct {
	UnitID      uint    `json:"unit_id" validate:"required"`
	Kind        string  `json:"kind" validate:"required,oneof=preventive corrective emergency"`
	Title       string  `json:"title" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"required,min=10,max=1000"`
	ExpectedAt  string  `json:"expected_at"`
	Priority    string  `json:"priority" validate:"required,oneof=low medium high urgent"`
	AssigneeID  uint    `json:"assignee_id" validate:"required"`
	Cost        float64 `json:"cost" validate:"omitempty,gt=0"`
	Note        string  `json:"note"`
}

type maintenanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress completed canceled"`
}

// Create opens a maintenance ticket against a unit
func (h *MaintenanceHandler) Create(c echo.Context) error {
	var req maintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var unit models.Unit
	if err := h.db.First(&unit, req.UnitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unit not found")
		}
		return err
	}

	now := time.Now()
	expected, err := parseDatePtr(req.ExpectedAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expected date, expected YYYY-MM-DD")
	}
	if expected != nil && expected.Before(services.DateOnly(now)) {
		return echo.NewHTTPError(http.StatusBadRequest, "expected date cannot be before the opening date")
	}

	maintenance := models.Maintenance{
		UnitID:      req.UnitID,
		Kind:        models.MaintenanceKind(req.Kind),
		Title:       req.Title,
		Description: req.Description,
		OpenedAt:    now,
		ExpectedAt:  expected,
		Status:      models.MaintenanceStatusOpen,
		Priority:    models.MaintenancePriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		Cost:        req.Cost,
		Note:        req.Note,
	}
	if err := h.db.Create(&maintenance).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, maintenance)
}

// List returns maintenance tickets, optionally filtered by unit or status
func (h *MaintenanceHandler) List(c echo.Context) error {
	query := h.db.Preload("Unit").Preload("Assignee").Order("opened_at DESC")
	if unitID := c.QueryParam("unidade"); unitID != "" {
		query = query.Where("unit_id = ?", unitID)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var maintenances []models.Maintenance
	if err := query.Find(&maintenances).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, maintenances)
}

// Get returns one maintenance ticket
func (h *MaintenanceHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var maintenance models.Maintenance
	if err := h.db.Preload("Unit").Preload("Assignee").First(&maintenance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "maintenance not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, maintenance)
}

// UpdateStatus transitions a ticket. Completing stamps the completion date.
func (h *MaintenanceHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var maintenance models.Maintenance
	if err := h.db.First(&maintenance, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "maintenance not found")
		}
		return err
	}

	var req maintenanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	maintenance.Status = models.MaintenanceStatus(req.Status)
	if maintenance.Status == models.MaintenanceStatusCompleted && maintenance.CompletedAt == nil {
		now := time.Now()
		maintenance.CompletedAt = &now
	}

	if err := h.db.Save(&maintenance).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, maintenance)
}

// Delete soft-deletes a maintenance ticket
func (h *MaintenanceHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	res := h.db.Delete(&models.Maintenance{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "maintenance not found")
	}
	return c.NoContent(http.StatusNoContent)
}
