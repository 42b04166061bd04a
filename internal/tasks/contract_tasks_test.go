package tasks

import (
	"context"
	"testing"
	"time"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

func TestCheckContractExpiries(t *testing.T) {
	db := setupTestDB(t)

	admin := models.User{Name: "Sindica", Email: "sindica@example.com", Role: models.UserRoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	condominium := models.Condominium{Name: "Residencial Teste", AdministratorID: admin.ID}
	if err := db.Create(&condominium).Error; err != nil {
		t.Fatalf("failed to seed condominium: %v", err)
	}
	supplier := models.Supplier{Name: "Limpex", Document: "12345678000195", ServiceType: models.SupplierServiceCleaning, Active: true}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}

	today := services.DateOnly(time.Now())
	contracts := []models.Contract{
		// Inside its 30-day alert window
		{SupplierID: supplier.ID, CondominiumID: condominium.ID, Number: "CT-001",
			StartDate: today.AddDate(-1, 0, 0), EndDate: today.AddDate(0, 0, 10), Value: 2500,
			ServiceDescription: "cleaning", Status: models.ContractStatusActive, AlertDaysBefore: 30},
		// Ends far out, not yet alertable
		{SupplierID: supplier.ID, CondominiumID: condominium.ID, Number: "CT-002",
			StartDate: today.AddDate(-1, 0, 0), EndDate: today.AddDate(0, 6, 0), Value: 2500,
			ServiceDescription: "cleaning", Status: models.ContractStatusActive, AlertDaysBefore: 30},
		// Ends soon but was already canceled
		{SupplierID: supplier.ID, CondominiumID: condominium.ID, Number: "CT-003",
			StartDate: today.AddDate(-1, 0, 0), EndDate: today.AddDate(0, 0, 5), Value: 2500,
			ServiceDescription: "cleaning", Status: models.ContractStatusCanceled, AlertDaysBefore: 30},
	}
	for i := range contracts {
		if err := db.Create(&contracts[i]).Error; err != nil {
			t.Fatalf("failed to seed contract: %v", err)
		}
	}

	result, err := CheckContractExpiriesTask.HandleExecution(context.Background(), db, models.ScheduledTask{})
	if err != nil {
		t.Fatalf("HandleExecution returned error: %v", err)
	}
	if result["created_count"] != int64(1) {
		t.Errorf("created_count = %v; want 1", result["created_count"])
	}

	var notifications []models.Notification
	if err := db.Find(&notifications).Error; err != nil {
		t.Fatalf("failed to read notifications: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("notification count = %d; want 1", len(notifications))
	}
	n := notifications[0]
	if n.UserID != admin.ID {
		t.Errorf("addressed to user %d; want administrator %d", n.UserID, admin.ID)
	}
	if n.Kind != models.NotificationKindAlert {
		t.Errorf("kind = %s; want alert", n.Kind)
	}

	// A second daily run does not duplicate the unread alert
	result, err = CheckContractExpiriesTask.HandleExecution(context.Background(), db, models.ScheduledTask{})
	if err != nil {
		t.Fatalf("second run returned error: %v", err)
	}
	if result["created_count"] != int64(0) {
		t.Errorf("second run created_count = %v; want 0", result["created_count"])
	}
}

func TestCheckContractExpiriesCustomWindow(t *testing.T) {
	db := setupTestDB(t)

	admin := models.User{Name: "Sindica", Email: "sindica@example.com", Role: models.UserRoleAdmin}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}
	condominium := models.Condominium{Name: "Residencial Teste", AdministratorID: admin.ID}
	if err := db.Create(&condominium).Error; err != nil {
		t.Fatalf("failed to seed condominium: %v", err)
	}
	supplier := models.Supplier{Name: "Guarda Forte", Document: "98765432000109", ServiceType: models.SupplierServiceSecurity, Active: true}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("failed to seed supplier: %v", err)
	}

	// Ends in 45 days: outside the default window, inside its own 60-day one
	today := services.DateOnly(time.Now())
	contract := models.Contract{
		SupplierID: supplier.ID, CondominiumID: condominium.ID, Number: "CT-010",
		StartDate: today.AddDate(-1, 0, 0), EndDate: today.AddDate(0, 0, 45), Value: 9000,
		ServiceDescription: "security", Status: models.ContractStatusActive, AlertDaysBefore: 60,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("failed to seed contract: %v", err)
	}

	result, err := CheckContractExpiriesTask.HandleExecution(context.Background(), db, models.ScheduledTask{})
	if err != nil {
		t.Fatalf("HandleExecution returned error: %v", err)
	}
	if result["created_count"] != int64(1) {
		t.Errorf("created_count = %v; want 1 with the contract's own window", result["created_count"])
	}
}
