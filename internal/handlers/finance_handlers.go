package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// FinanceHandler exposes the finance entry ledger and the cash-flow summary
type FinanceHandler struct {
	db      *gorm.DB
	reports *services.ReportService
}

func NewFinanceHandler(db *gorm.DB, reports *services.ReportService) *FinanceHandler {
	return &FinanceHandler{db: db, reports: reports}
}

type financeEntryRequest struct {
	CondominiumID uint    `json:"condominium_id" validate:"required"`
	UnitID        *uint   `json:"unit_id"`
	Kind          string  `json:"kind" validate:"required,oneof=revenue expense"`
	Category      string  `json:"category" validate:"required"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	ExpectedDate  string  `json:"expected_date"`
	EffectiveDate string  `json:"effective_date"`
}

// Create registers a revenue or expense movement
func (h *FinanceHandler) Create(c echo.Context) error {
	var req financeEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	expected, err := parseDatePtr(req.ExpectedDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid expected date, expected YYYY-MM-DD")
	}
	effective, err := parseDatePtr(req.EffectiveDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid effective date, expected YYYY-MM-DD")
	}

	entry := models.FinanceEntry{
		CondominiumID: req.CondominiumID,
		UnitID:        req.UnitID,
		Kind:          models.FinanceEntryKind(req.Kind),
		Category:      req.Category,
		Description:   req.Description,
		Amount:        req.Amount,
		ExpectedDate:  expected,
		EffectiveDate: effective,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// List returns finance entries, newest effective date first
func (h *FinanceHandler) List(c echo.Context) error {
	query := h.db.Order("effective_date DESC")
	if condID := c.QueryParam("condominio"); condID != "" {
		query = query.Where("condominium_id = ?", condID)
	}

	var entries []models.FinanceEntry
	if err := query.Find(&entries).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// CashFlow returns the revenue/expense/net summary for one month
func (h *FinanceHandler) CashFlow(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("ano"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}
	month, err := strconv.Atoi(c.QueryParam("mes"))
	if err != nil || month < 1 || month > 12 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
	}

	condominiumID, err := optionalIDQuery(c, "condominio")
	if err != nil {
		return err
	}

	flow, err := h.reports.CashFlowSummary(year, time.Month(month), condominiumID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, flow)
}

func optionalIDQuery(c echo.Context, name string) (*uint, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	uid := uint(id)
	return &uid, nil
}
