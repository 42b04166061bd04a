package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
)

// CondominiumHandler exposes condominium management endpoints
type CondominiumHandler struct {
	db *gorm.DB
}

func NewCondominiumHandler(db *gorm.DB) *CondominiumHandler {
	return &CondominiumHandler{db: db}
}

type condominiumRequest struct {
	Name            string `json:"name" validate:"required,min=3,max=100"`
	Address         string `json:"address" validate:"required"`
	City            string `json:"city"`
	State           string `json:"state"`
	Document        string `json:"document"`
	AdministratorID uint   `json:"administrator_id"`
}

func (r *condominiumRequest) apply(cond *models.Condominium) {
	cond.Name = r.Name
	cond.Address = r.Address
	cond.City = r.City
	cond.State = r.State
	cond.Document = digitsOnly(r.Document)
	cond.AdministratorID = r.AdministratorID
}

// Create registers a new condominium
func (h *CondominiumHandler) Create(c echo.Context) error {
	var req condominiumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var cond models.Condominium
	req.apply(&cond)
	if err := h.db.Create(&cond).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cond)
}

// List returns all condominiums
func (h *CondominiumHandler) List(c echo.Context) error {
	var conds []models.Condominium
	if err := h.db.Find(&conds).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conds)
}

// Get returns one condominium with its units
func (h *CondominiumHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var cond models.Condominium
	if err := h.db.Preload("Units").First(&cond, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "condominium not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, cond)
}

// Update edits a condominium
func (h *CondominiumHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var cond models.Condominium
	if err := h.db.First(&cond, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "condominium not found")
		}
		return err
	}

	var req condominiumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	req.apply(&cond)

	if err := h.db.Save(&cond).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cond)
}

// Delete soft-deletes a condominium
func (h *CondominiumHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	res := h.db.Delete(&models.Condominium{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "condominium not found")
	}
	return c.NoContent(http.StatusNoContent)
}
