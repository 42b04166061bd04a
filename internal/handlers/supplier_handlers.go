package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
)

// SupplierHandler exposes supplier management endpoints
type SupplierHandler struct {
	db *gorm.DB
}

func NewSupplierHandler(db *gorm.DB) *SupplierHandler {
	return &SupplierHandler{db: db}
}

type supplierRequest struct {
	Name         string  `json:"name" validate:"required,min=3,max=100"`
	Document     string  `json:"document" validate:"required"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email" validate:"omitempty,email"`
	Address      string  `json:"address"`
	ServiceType  string  `json:"service_type" validate:"required,oneof=maintenance cleaning security other"`
	Rating       float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Note         string  `json:"note"`
	ContactName  string  `json:"contact_name"`
	ContactPhone string  `json:"contact_phone"`
}

func (r *supplierRequest) apply(supplier *models.Supplier) error {
	supplier.Name = r.Name
	supplier.Document = digitsOnly(r.Document)
	supplier.Phone = digitsOnly(r.Phone)
	supplier.Email = r.Email
	supplier.Address = r.Address
	supplier.ServiceType = models.SupplierServiceType(r.ServiceType)
	supplier.Rating = r.Rating
	supplier.Note = r.Note
	supplier.ContactName = r.ContactName
	supplier.ContactPhone = digitsOnly(r.ContactPhone)

	if len(supplier.Document) != 14 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid supplier document")
	}
	return nil
}

// Create registers a supplier
func (h *SupplierHandler) Create(c echo.Context) error {
	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	supplier := models.Supplier{Active: true}
	if err := req.apply(&supplier); err != nil {
		return err
	}

	if err := h.db.Create(&supplier).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, supplier)
}

// List returns active suppliers, optionally filtered by service type
func (h *SupplierHandler) List(c echo.Context) error {
	query := h.db.Where("active = ?", true)
	if serviceType := c.QueryParam("tipo"); serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
	}

	var suppliers []models.Supplier
	if err := query.Find(&suppliers).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, suppliers)
}

// Get returns one supplier, active or not
func (h *SupplierHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var supplier models.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Update edits a supplier's registration fields
func (h *SupplierHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var supplier models.Supplier
	if err := h.db.First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
		}
		return err
	}

	var req supplierRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := req.apply(&supplier); err != nil {
		return err
	}

	if err := h.db.Save(&supplier).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, supplier)
}

// Delete deactivates a supplier instead of removing it, so inventory and
// ticket history keep resolving
func (h *SupplierHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	res := h.db.Model(&models.Supplier{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "supplier not found")
	}
	return c.NoContent(http.StatusNoContent)
}
