package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"condogest_echo/internal/middleware"
	"condogest_echo/internal/models"
)

func newNotificationServer(db *gorm.DB, userID uint) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.JSONErrorHandler
	e.Validator = NewValidator()

	withUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("userID", userID)
			return next(c)
		}
	}

	notificationHandler := NewNotificationHandler(db)
	e.GET("/notificacoes", notificationHandler.List, withUser)
	e.POST("/notificacoes", notificationHandler.Create, withUser)
	e.PATCH("/notificacoes/:id/lida", notificationHandler.MarkRead, withUser)
	return e
}

func TestCreateNotification(t *testing.T) {
	db := setupTestDB(t)
	e := newNotificationServer(db, 1)

	rec := doJSON(e, http.MethodPost, "/notificacoes", `{"title": "Assembleia", "message": "Assembleia geral na sexta às 19h.", "kind": "general"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var notification models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &notification); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if notification.UserID != 1 {
		t.Errorf("user id = %d; want 1", notification.UserID)
	}
	if notification.Priority != models.NotificationPriorityMedium {
		t.Errorf("priority = %s; want medium default", notification.Priority)
	}
	if notification.SentAt.IsZero() {
		t.Error("expected sent date to be stamped")
	}

	badKind := doJSON(e, http.MethodPost, "/notificacoes", `{"title": "Assembleia", "message": "Assembleia geral na sexta.", "kind": "gossip"}`)
	if badKind.Code != http.StatusBadRequest {
		t.Errorf("bad kind status = %d; want 400", badKind.Code)
	}

	unknownUnit := doJSON(e, http.MethodPost, "/notificacoes", `{"title": "Vazamento", "message": "Vazamento reportado na unidade.", "kind": "alert", "unit_id": 999}`)
	if unknownUnit.Code != http.StatusNotFound {
		t.Errorf("unknown unit status = %d; want 404", unknownUnit.Code)
	}
}

func TestListNotificationsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	seedNotification := func(userID uint, read bool, sentAt time.Time) models.Notification {
		n := models.Notification{
			UserID: userID, Title: "Aviso", Message: "Mensagem de teste.",
			Kind: models.NotificationKindGeneral, Read: read, SentAt: sentAt,
		}
		if err := db.Create(&n).Error; err != nil {
			t.Fatalf("failed to seed notification: %v", err)
		}
		return n
	}
	older := seedNotification(1, true, time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC))
	newer := seedNotification(1, false, time.Date(2024, time.March, 2, 10, 0, 0, 0, time.UTC))
	seedNotification(2, false, time.Date(2024, time.March, 3, 10, 0, 0, 0, time.UTC))

	e := newNotificationServer(db, 1)

	rec := doJSON(e, http.MethodGet, "/notificacoes", "")
	var notifications []models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &notifications); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("notification count = %d; want 2 (other users' excluded)", len(notifications))
	}
	if notifications[0].ID != newer.ID || notifications[1].ID != older.ID {
		t.Errorf("expected newest first, got %d then %d", notifications[0].ID, notifications[1].ID)
	}

	unread := doJSON(e, http.MethodGet, "/notificacoes?nao_lidas=true", "")
	if err := json.Unmarshal(unread.Body.Bytes(), &notifications); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(notifications) != 1 || notifications[0].ID != newer.ID {
		t.Errorf("unread filter returned %d rows", len(notifications))
	}
}

func TestMarkNotificationRead(t *testing.T) {
	db := setupTestDB(t)
	notification := models.Notification{
		UserID: 1, Title: "Aviso", Message: "Mensagem de teste.",
		Kind: models.NotificationKindGeneral, SentAt: time.Now(),
	}
	if err := db.Create(&notification).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}

	e := newNotificationServer(db, 1)
	rec := doJSON(e, http.MethodPatch, fmt.Sprintf("/notificacoes/%d/lida", notification.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var updated models.Notification
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !updated.Read || updated.ReadAt == nil {
		t.Errorf("expected read with stamped date, got %+v", updated)
	}
	firstReadAt := *updated.ReadAt

	// Re-marking is a no-op: the original read date stands
	again := doJSON(e, http.MethodPatch, fmt.Sprintf("/notificacoes/%d/lida", notification.ID), "")
	if again.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", again.Code)
	}
	if err := json.Unmarshal(again.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.ReadAt == nil || !updated.ReadAt.Equal(firstReadAt) {
		t.Errorf("read date moved from %v to %v", firstReadAt, updated.ReadAt)
	}

	// Another user's notification is invisible
	other := newNotificationServer(db, 2)
	foreign := doJSON(other, http.MethodPatch, fmt.Sprintf("/notificacoes/%d/lida", notification.ID), "")
	if foreign.Code != http.StatusNotFound {
		t.Errorf("foreign mark status = %d; want 404", foreign.Code)
	}
}
