package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
)

// ContractHandler exposes supplier contract endpoints
type ContractHandler struct {
	db *gorm.DB
}

func NewContractHandler(db *gorm.DB) *ContractHandler {
	return &ContractHandler{db: db}
}

type contractRequest struct {
	SupplierID         uint    `json:"supplier_id" validate:"required"`
	CondominiumID      uint    `json:"condominium_id" validate:"required"`
	Number             string  `json:"number" validate:"required,max=50"`
	StartDate          string  `json:"start_date" validate:"required"`
	EndDate            string  `json:"end_date" validate:"required"`
	Value              float64 `json:"value" validate:"required,gt=0"`
	ServiceDescription string  `json:"service_description"`
	PaymentMethod      string  `json:"payment_method"`
	PaymentInterval    string  `json:"payment_interval" validate:"omitempty,oneof=monthly quarterly semiannual annual"`
	AutoRenew          bool    `json:"auto_renew"`
	AlertDaysBefore    int     `json:"alert_days_before" validate:"omitempty,gt=0"`
}

type contractStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active closed canceled"`
}

func (r *contractRequest) apply(contract *models.Contract) error {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
	}
	if !end.After(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "end date must be after start date")
	}

	contract.SupplierID = r.SupplierID
	contract.CondominiumID = r.CondominiumID
	contract.Number = r.Number
	contract.StartDate = start
	contract.EndDate = end
	contract.Value = r.Value
	contract.ServiceDescription = r.ServiceDescription
	contract.PaymentMethod = r.PaymentMethod
	if r.PaymentInterval != "" {
		contract.PaymentInterval = models.ContractInterval(r.PaymentInterval)
	}
	contract.AutoRenew = r.AutoRenew
	if r.AlertDaysBefore > 0 {
		contract.AlertDaysBefore = r.AlertDaysBefore
	}
	return nil
}

// Create registers a contract between a supplier and a condominium
func (h *ContractHandler) Create(c echo.Context) error {
	var req contractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var supplier models.Supplier
	if err := h.db.First(&supplier, req.SupplierID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		return err
	}
	var condominium models.Condominium
	if err := h.db.First(&condominium, req.CondominiumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "condominium not found")
		}
		return err
	}

	contract := models.Contract{
		Status:          models.ContractStatusPending,
		PaymentInterval: models.ContractIntervalMonthly,
		AlertDaysBefore: 30,
	}
	if err := req.apply(&contract); err != nil {
		return err
	}

	if err := h.db.Create(&contract).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contract)
}

// List returns contracts with their supplier, optionally filtered by
// status or condominium
func (h *ContractHandler) List(c echo.Context) error {
	query := h.db.Preload("Supplier").Order("end_date ASC")
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if condID := c.QueryParam("condominio"); condID != "" {
		query = query.Where("condominium_id = ?", condID)
	}

	var contracts []models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contracts)
}

// Get returns one contract
func (h *ContractHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var contract models.Contract
	if err := h.db.Preload("Supplier").Preload("Condominium").First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "contract not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, contract)
}

// Update edits a contract's terms
func (h *ContractHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var contract models.Contract
	if err := h.db.First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "contract not found")
		}
		return err
	}

	var req contractRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := req.apply(&contract); err != nil {
		return err
	}

	if err := h.db.Save(&contract).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contract)
}

// UpdateStatus transitions a contract between its lifecycle states
func (h *ContractHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var contract models.Contract
	if err := h.db.First(&contract, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "contract not found")
		}
		return err
	}

	var req contractStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	contract.Status = models.ContractStatus(req.Status)
	if err := h.db.Save(&contract).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contract)
}
