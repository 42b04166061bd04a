package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"condogest_echo/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUnit(t *testing.T, db *gorm.DB, rent float64, dueDate time.Time, occupied bool) *models.Unit {
	t.Helper()

	condominium := models.Condominium{Name: "Residencial Teste"}
	if err := db.Create(&condominium).Error; err != nil {
		t.Fatalf("failed to seed condominium: %v", err)
	}

	unit := models.Unit{
		Number:        "101",
		Block:         "A",
		CondominiumID: condominium.ID,
		Owner:         "Maria Silva",
		RentAmount:    rent,
		DueDate:       dueDate,
		Occupied:      occupied,
	}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to seed unit: %v", err)
	}
	return &unit
}

func countPayments(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Payment{}).Count(&n).Error; err != nil {
		t.Fatalf("failed to count payments: %v", err)
	}
	return n
}

func reloadUnit(t *testing.T, db *gorm.DB, id uint) *models.Unit {
	t.Helper()
	var unit models.Unit
	if err := db.First(&unit, id).Error; err != nil {
		t.Fatalf("failed to reload unit: %v", err)
	}
	return &unit
}

func TestRecordPaymentAdvancesDueDate(t *testing.T) {
	db := setupTestDB(t)
	unit := seedUnit(t, db, 1000, date(2024, time.January, 31), true)
	svc := NewPaymentService(db)

	now := time.Date(2024, time.January, 25, 14, 30, 0, 0, time.UTC)
	payment, err := svc.RecordPayment(RecordPaymentInput{
		UnitID:     unit.ID,
		Amount:     1000,
		CashAmount: 1000,
		Method:     models.PaymentMethodCash,
	}, now)
	if err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}

	if payment.Status != models.PaymentStatusPaid {
		t.Errorf("payment status = %s; want %s", payment.Status, models.PaymentStatusPaid)
	}
	if !payment.DueDate.Equal(date(2024, time.January, 31)) {
		t.Errorf("settled due date = %s; want 2024-01-31", payment.DueDate.Format("2006-01-02"))
	}
	if payment.PaidDate == nil || !payment.PaidDate.Equal(date(2024, time.January, 25)) {
		t.Errorf("paid date = %v; want 2024-01-25", payment.PaidDate)
	}
	if payment.Receipt == "" {
		t.Error("expected a receipt identifier")
	}
	if payment.Unit.ID != unit.ID {
		t.Errorf("expected preloaded unit %d, got %d", unit.ID, payment.Unit.ID)
	}

	// January 31 advances to February 29 in a leap year
	updated := reloadUnit(t, db, unit.ID)
	if !updated.DueDate.Equal(date(2024, time.February, 29)) {
		t.Errorf("unit due date = %s; want 2024-02-29", updated.DueDate.Format("2006-01-02"))
	}

	if n := countPayments(t, db); n != 1 {
		t.Errorf("payment count = %d; want 1", n)
	}
}

func TestRecordPaymentSequentialCycles(t *testing.T) {
	db := setupTestDB(t)
	unit := seedUnit(t, db, 800, date(2024, time.January, 31), true)
	svc := NewPaymentService(db)

	input := RecordPaymentInput{
		UnitID:         unit.ID,
		Amount:         800,
		TransferAmount: 800,
		Method:         models.PaymentMethodTransfer,
	}

	if _, err := svc.RecordPayment(input, date(2024, time.January, 20)); err != nil {
		t.Fatalf("first recording failed: %v", err)
	}
	second, err := svc.RecordPayment(input, date(2024, time.February, 20))
	if err != nil {
		t.Fatalf("second recording failed: %v", err)
	}

	// The second payment settles the clamped February due date and the day
	// carries over, it does not snap back to the 31st
	if !second.DueDate.Equal(date(2024, time.February, 29)) {
		t.Errorf("second settled due date = %s; want 2024-02-29", second.DueDate.Format("2006-01-02"))
	}
	updated := reloadUnit(t, db, unit.ID)
	if !updated.DueDate.Equal(date(2024, time.March, 29)) {
		t.Errorf("unit due date = %s; want 2024-03-29", updated.DueDate.Format("2006-01-02"))
	}
	if n := countPayments(t, db); n != 2 {
		t.Errorf("payment count = %d; want 2", n)
	}
}

func TestRecordPaymentConflict(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	other, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open second connection: %v", err)
	}

	settled := date(2024, time.January, 31)
	unit := seedUnit(t, db, 1000, settled, true)

	// A second connection advances the due date right before the payment
	// insert, like a concurrent recording that committed first
	err = db.Callback().Create().Before("gorm:create").Register("concurrent_recording", func(tx *gorm.DB) {
		if tx.Statement.Schema == nil || tx.Statement.Schema.Table != "payments" {
			return
		}
		if err := other.Model(&models.Unit{}).Where("id = ?", unit.ID).
			Update("due_date", NextDueDate(settled)).Error; err != nil {
			t.Errorf("concurrent update failed: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	svc := NewPaymentService(db)
	_, err = svc.RecordPayment(RecordPaymentInput{
		UnitID:     unit.ID,
		Amount:     1000,
		CashAmount: 1000,
		Method:     models.PaymentMethodCash,
	}, time.Now())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// The transaction rolled back: no payment row survives the conflict
	if n := countPayments(t, db); n != 0 {
		t.Errorf("payment count = %d; want 0", n)
	}
	// The concurrent advancement stands and is not advanced twice
	updated := reloadUnit(t, db, unit.ID)
	if !updated.DueDate.Equal(date(2024, time.February, 29)) {
		t.Errorf("unit due date = %s; want 2024-02-29", updated.DueDate.Format("2006-01-02"))
	}
}

func TestRecordPaymentUnitNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)

	_, err := svc.RecordPayment(RecordPaymentInput{
		UnitID:     999,
		Amount:     500,
		CashAmount: 500,
		Method:     models.PaymentMethodCash,
	}, time.Now())
	if !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("expected ErrUnitNotFound, got %v", err)
	}
}

func TestRecordPaymentVacantUnit(t *testing.T) {
	db := setupTestDB(t)
	unit := seedUnit(t, db, 1000, date(2024, time.March, 10), false)
	svc := NewPaymentService(db)

	input := RecordPaymentInput{
		UnitID:     unit.ID,
		Amount:     1000,
		CashAmount: 1000,
		Method:     models.PaymentMethodCash,
	}

	// Rejection is stable: retrying the same request fails the same way
	// and leaves nothing behind
	for i := 0; i < 2; i++ {
		if _, err := svc.RecordPayment(input, time.Now()); !errors.Is(err, ErrUnitVacant) {
			t.Fatalf("attempt %d: expected ErrUnitVacant, got %v", i+1, err)
		}
	}

	if n := countPayments(t, db); n != 0 {
		t.Errorf("payment count = %d; want 0", n)
	}
	updated := reloadUnit(t, db, unit.ID)
	if !updated.DueDate.Equal(date(2024, time.March, 10)) {
		t.Errorf("unit due date moved to %s", updated.DueDate.Format("2006-01-02"))
	}
}

func TestRecordPaymentAmountValidation(t *testing.T) {
	db := setupTestDB(t)
	unit := seedUnit(t, db, 1000, date(2024, time.March, 10), true)
	svc := NewPaymentService(db)

	tests := []struct {
		name   string
		amount float64
		cash   float64
	}{
		{name: "zero amount", amount: 0, cash: 0},
		{name: "negative amount", amount: -50, cash: -50},
		{name: "amount below rent", amount: 900, cash: 900},
		{name: "amount above rent", amount: 1000.02, cash: 1000.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordPayment(RecordPaymentInput{
				UnitID:     unit.ID,
				Amount:     tt.amount,
				CashAmount: tt.cash,
				Method:     models.PaymentMethodCash,
			}, time.Now())

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Rule != "amount" {
				t.Errorf("rule = %q; want amount", verr.Rule)
			}
		})
	}

	if n := countPayments(t, db); n != 0 {
		t.Errorf("payment count = %d; want 0", n)
	}
}

func TestRecordPaymentSplitValidation(t *testing.T) {
	db := setupTestDB(t)
	unit := seedUnit(t, db, 1000, date(2024, time.March, 10), true)
	svc := NewPaymentService(db)

	tests := []struct {
		name     string
		input    RecordPaymentInput
		wantRule string
	}{
		{
			name: "cash with transfer amount",
			input: RecordPaymentInput{
				Amount: 1000, CashAmount: 900, TransferAmount: 100,
				Method: models.PaymentMethodCash,
			},
			wantRule: "split",
		},
		{
			name: "transfer with cash amount",
			input: RecordPaymentInput{
				Amount: 1000, CashAmount: 100, TransferAmount: 900,
				Method: models.PaymentMethodTransfer,
			},
			wantRule: "split",
		},
		{
			name: "mixed split does not add up",
			input: RecordPaymentInput{
				Amount: 1000, CashAmount: 400, TransferAmount: 500,
				Method: models.PaymentMethodMixed,
			},
			wantRule: "split",
		},
		{
			name: "negative channel amount",
			input: RecordPaymentInput{
				Amount: 1000, CashAmount: 1100, TransferAmount: -100,
				Method: models.PaymentMethodMixed,
			},
			wantRule: "split",
		},
		{
			name: "unknown method",
			input: RecordPaymentInput{
				Amount: 1000, CashAmount: 1000,
				Method: models.PaymentMethod("check"),
			},
			wantRule: "method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UnitID = unit.ID
			_, err := svc.RecordPayment(tt.input, time.Now())

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Rule != tt.wantRule {
				t.Errorf("rule = %q; want %q", verr.Rule, tt.wantRule)
			}
		})
	}

	// No failed attempt left state behind
	if n := countPayments(t, db); n != 0 {
		t.Errorf("payment count = %d; want 0", n)
	}
	updated := reloadUnit(t, db, unit.ID)
	if !updated.DueDate.Equal(date(2024, time.March, 10)) {
		t.Errorf("unit due date moved to %s", updated.DueDate.Format("2006-01-02"))
	}
}

func TestRecordPaymentMixedWithinTolerance(t *testing.T) {
	db := setupTestDB(t)
	unit := seedUnit(t, db, 1000, date(2024, time.March, 10), true)
	svc := NewPaymentService(db)

	payment, err := svc.RecordPayment(RecordPaymentInput{
		UnitID:         unit.ID,
		Amount:         1000,
		CashAmount:     400,
		TransferAmount: 600.005,
		Method:         models.PaymentMethodMixed,
	}, time.Now())
	if err != nil {
		t.Fatalf("RecordPayment returned error: %v", err)
	}
	if payment.Method != models.PaymentMethodMixed {
		t.Errorf("method = %s; want mixed", payment.Method)
	}
}

func TestListPayments(t *testing.T) {
	db := setupTestDB(t)
	unit := seedUnit(t, db, 1000, date(2024, time.January, 31), true)
	other := models.Unit{
		Number: "202", Block: "B", CondominiumID: unit.CondominiumID,
		RentAmount: 750, DueDate: date(2024, time.January, 5), Occupied: true,
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed second unit: %v", err)
	}

	svc := NewPaymentService(db)
	if _, err := svc.RecordPayment(RecordPaymentInput{
		UnitID: unit.ID, Amount: 1000, CashAmount: 1000, Method: models.PaymentMethodCash,
	}, date(2024, time.January, 10)); err != nil {
		t.Fatalf("recording failed: %v", err)
	}
	if _, err := svc.RecordPayment(RecordPaymentInput{
		UnitID: other.ID, Amount: 750, TransferAmount: 750, Method: models.PaymentMethodTransfer,
	}, date(2024, time.January, 20)); err != nil {
		t.Fatalf("recording failed: %v", err)
	}

	all, err := svc.ListPayments(nil)
	if err != nil {
		t.Fatalf("ListPayments returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("payment count = %d; want 2", len(all))
	}
	if all[0].UnitID != other.ID {
		t.Errorf("expected newest payment first, got unit %d", all[0].UnitID)
	}
	if all[0].Unit.Number != "202" {
		t.Errorf("expected preloaded unit, got %+v", all[0].Unit)
	}

	filtered, err := svc.ListPayments(&unit.ID)
	if err != nil {
		t.Fatalf("ListPayments(unit) returned error: %v", err)
	}
	if len(filtered) != 1 || filtered[0].UnitID != unit.ID {
		t.Errorf("expected one payment for unit %d, got %d rows", unit.ID, len(filtered))
	}
}

func TestGetPaymentNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPaymentService(db)

	if _, err := svc.GetPayment(42); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("expected ErrPaymentNotFound, got %v", err)
	}
}
