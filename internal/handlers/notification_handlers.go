package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
)

// NotificationHandler exposes the in-app notification endpoints. Every
// operation is scoped to the authenticated user from the request context.
type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

type notificationRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=100"`
	Message  string `json:"message" validate:"required,min=5,max=1000"`
	Kind     string `json:"kind" validate:"required,oneof=due_date payment general alert"`
	UnitID   *uint  `json:"unit_id"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c echo.Context) error {
	userID := getUintFromContext(c, "userID")

	query := h.db.Preload("Unit").
		Where("user_id = ?", userID).
		Order("sent_at DESC")
	if c.QueryParam("nao_lidas") == "true" {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}

// Create sends a notification to the caller's own inbox
func (h *NotificationHandler) Create(c echo.Context) error {
	var req notificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if req.UnitID != nil {
		var unit models.Unit
		if err := h.db.First(&unit, *req.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, "unit not found")
			}
			return err
		}
	}

	priority := models.NotificationPriority(req.Priority)
	if priority == "" {
		priority = models.NotificationPriorityMedium
	}

	notification := models.Notification{
		UserID:   getUintFromContext(c, "userID"),
		UnitID:   req.UnitID,
		Title:    req.Title,
		Message:  req.Message,
		Kind:     models.NotificationKind(req.Kind),
		Priority: priority,
		SentAt:   time.Now(),
	}
	if err := h.db.Create(&notification).Error; err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, notification)
}

// MarkRead marks one of the caller's notifications as read, stamping the
// read date. Re-marking an already-read notification is a no-op.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	userID := getUintFromContext(c, "userID")

	var notification models.Notification
	if err := h.db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "notification not found")
		}
		return err
	}

	if !notification.Read {
		now := time.Now()
		notification.Read = true
		notification.ReadAt = &now
		if err := h.db.Save(&notification).Error; err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, notification)
}
