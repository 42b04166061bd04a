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

// InventoryHandler exposes the condominium asset inventory endpoints
type InventoryHandler struct {
	db *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{db: db}
}

type inventoryItemRequest struct {
	CondominiumID    uint    `json:"condominium_id" validate:"required"`
	Name             string  `json:"name" validate:"required,min=3,max=100"`
	Description      string  `json:"description"`
	Category         string  `json:"category"`
	SerialNumber     string  `json:"serial_number"`
	AcquiredAt       string  `json:"acquired_at"`
	AcquisitionValue float64 `json:"acquisition_value" validate:"omitempty,gt=0"`
	Location         string  `json:"location"`
	WarrantyUntil    string  `json:"warranty_until"`
	SupplierID       *uint   `json:"supplier_id"`
}

type inventoryMaintenanceRequest struct {
	PerformedAt     string `json:"performed_at"`
	NextMaintenance string `json:"next_maintenance"`
	BackInService   bool   `json:"back_in_service"`
}

// Create registers an asset in a condominium's inventory
func (h *InventoryHandler) Create(c echo.Context) error {
	var req inventoryItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	acquired, err := parseDatePtr(req.AcquiredAt)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid acquisition date, expected YYYY-MM-DD")
	}
	warranty, err := parseDatePtr(req.WarrantyUntil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid warranty date, expected YYYY-MM-DD")
	}

	var condominium models.Condominium
	if err := h.db.First(&condominium, req.CondominiumID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "condominium not found")
		}
		return err
	}

	if req.SupplierID != nil {
		var supplier models.Supplier
		if err := h.db.First(&supplier, *req.SupplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
			}
			return err
		}
	}

	item := models.InventoryItem{
		CondominiumID:    req.CondominiumID,
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		SerialNumber:     req.SerialNumber,
		AcquiredAt:       acquired,
		AcquisitionValue: req.AcquisitionValue,
		Location:         req.Location,
		Status:           models.InventoryStatusActive,
		WarrantyUntil:    warranty,
		SupplierID:       req.SupplierID,
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// List returns inventory items with their condominium, optionally filtered
// by condominium or status
func (h *InventoryHandler) List(c echo.Context) error {
	query := h.db.Preload("Condominium").Preload("Supplier")
	if condID := c.QueryParam("condominio"); condID != "" {
		query = query.Where("condominium_id = ?", condID)
	}
	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one inventory item
func (h *InventoryHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var item models.InventoryItem
	if err := h.db.Preload("Condominium").Preload("Supplier").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "inventory item not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// RecordMaintenance logs a maintenance intervention on an item: stamps the
// last maintenance date and either returns the item to service or parks it
// under the maintenance status.
func (h *InventoryHandler) RecordMaintenance(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var item models.InventoryItem
	if err := h.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "inventory item not found")
		}
		return err
	}

	var req inventoryMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	performed := services.DateOnly(time.Now())
	if req.PerformedAt != "" {
		t, err := parseDate(req.PerformedAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid maintenance date, expected YYYY-MM-DD")
		}
		performed = t
	}
	next, err := parseDatePtr(req.NextMaintenance)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid next maintenance date, expected YYYY-MM-DD")
	}
	if next != nil && !next.After(performed) {
		return echo.NewHTTPError(http.StatusBadRequest, "next maintenance must be after the performed date")
	}

	item.LastMaintenance = &performed
	item.NextMaintenance = next
	if req.BackInService {
		item.Status = models.InventoryStatusActive
	} else {
		item.Status = models.InventoryStatusMaintenance
	}

	if err := h.db.Save(&item).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
