package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
)

// UnitHandler exposes unit onboarding and management endpoints
type UnitHandler struct {
	db *gorm.DB
}

func NewUnitHandler(db *gorm.DB) *UnitHandler {
	return &UnitHandler{db: db}
}

type unitRequest struct {
	Number        string  `json:"number" validate:"required"`
	Block         string  `json:"block"`
	CondominiumID uint    `json:"condominium_id" validate:"required"`
	Owner         string  `json:"owner" validate:"omitempty,min=3,max=100"`
	Contact       string  `json:"contact"`
	Document      string  `json:"document"`
	RentAmount    float64 `json:"rent_amount" validate:"required,gt=0"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DueDate       string  `json:"due_date"`
	MeterNumber   string  `json:"meter_number"`
	Note          string  `json:"note"`
	Occupied      bool    `json:"occupied"`
}

// digitsOnly strips formatting from phone numbers and documents before
// storage, as the dashboard sends them masked.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (r *unitRequest) apply(unit *models.Unit) error {
	unit.Number = r.Number
	unit.Block = r.Block
	unit.CondominiumID = r.CondominiumID
	unit.Owner = r.Owner
	unit.Contact = digitsOnly(r.Contact)
	unit.Document = digitsOnly(r.Document)
	unit.RentAmount = r.RentAmount
	unit.MeterNumber = r.MeterNumber
	unit.Note = r.Note
	unit.Occupied = r.Occupied

	start, err := parseDatePtr(r.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
	}
	end, err := parseDatePtr(r.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
	}
	if start != nil && end != nil && !end.After(*start) {
		return echo.NewHTTPError(http.StatusBadRequest, "end date must be after start date")
	}
	unit.StartDate = start
	unit.EndDate = end

	if unit.Contact != "" && (len(unit.Contact) < 10 || len(unit.Contact) > 11) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid contact phone number")
	}
	if unit.Document != "" && len(unit.Document) != 11 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid owner document")
	}
	return nil
}

// Create onboards a new unit. The due date set here is the only manual
// assignment; afterwards the payment flow advances it.
func (h *UnitHandler) Create(c echo.Context) error {
	var req unitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var unit models.Unit
	if err := req.apply(&unit); err != nil {
		return err
	}

	if req.DueDate == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "due date is required")
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid due date, expected YYYY-MM-DD")
	}
	unit.DueDate = due

	var condominium models.Condominium
	if err := h.db.First(&condominium, req.CondominiumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "condominium not found")
		}
		return err
	}

	if err := h.db.Create(&unit).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, unit)
}

// List returns all units, optionally filtered by condominium
func (h *UnitHandler) List(c echo.Context) error {
	query := h.db.Preload("Condominium")
	if condID := c.QueryParam("condominio"); condID != "" {
		query = query.Where("condominium_id = ?", condID)
	}

	var units []models.Unit
	if err := query.Find(&units).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, units)
}

// Get returns a single unit with its condominium
func (h *UnitHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var unit models.Unit
	if err := h.db.Preload("Condominium").First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unit not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, unit)
}

// Update edits a unit's registration fields. The due date is deliberately
// not part of the payload: only payment recording advances it.
func (h *UnitHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var unit models.Unit
	if err := h.db.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "unit not found")
		}
		return err
	}

	var req unitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := req.apply(&unit); err != nil {
		return err
	}

	if err := h.db.Save(&unit).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unit)
}

// Delete soft-deletes a unit so historical payments keep their reference
func (h *UnitHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	res := h.db.Delete(&models.Unit{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "unit not found")
	}
	return c.NoContent(http.StatusNoContent)
}
