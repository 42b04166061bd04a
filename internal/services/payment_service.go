package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"condogest_echo/internal/models"
)

// SplitTolerance is the rounding slack allowed when checking that the
// channel amounts add up to the payment total.
const SplitTolerance = 0.01

// PaymentService owns the rent payment recording flow and payment lookups
type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

// RecordPaymentInput carries the caller-supplied fields for a new payment
type RecordPaymentInput struct {
	UnitID         uint
	Amount         float64
	CashAmount     float64
	TransferAmount float64
	Method         models.PaymentMethod
	PaidDate       *time.Time
	Note           string
}

// RecordPayment validates and persists a single rent payment, advancing the
// unit's due date by one billing cycle. Preconditions are checked in order
// and the first failure aborts with no state change. The payment insert and
// the unit update run in one transaction; a concurrent recording against the
// same unit surfaces as ErrConflict and nothing is written.
func (s *PaymentService) RecordPayment(input RecordPaymentInput, now time.Time) (*models.Payment, error) {
	var unit models.Unit
	if err := s.db.First(&unit, input.UnitID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}

	if !unit.Occupied {
		return nil, ErrUnitVacant
	}

	if input.Amount <= 0 {
		return nil, newValidationError("amount", "payment amount must be greater than zero")
	}

	if math.Abs(input.Amount-unit.RentAmount) > SplitTolerance {
		return nil, newValidationError("amount", "payment amount must equal the unit rent amount")
	}

	if err := validateSplit(input); err != nil {
		return nil, err
	}

	paidDate := DateOnly(now)
	if input.PaidDate != nil {
		paidDate = DateOnly(*input.PaidDate)
	}

	settledDue := DateOnly(unit.DueDate)
	nextDue := NextDueDate(settledDue)

	payment := models.Payment{
		UnitID:         unit.ID,
		Amount:         input.Amount,
		CashAmount:     input.CashAmount,
		TransferAmount: input.TransferAmount,
		Method:         input.Method,
		DueDate:        settledDue,
		PaidDate:       &paidDate,
		Status:         models.PaymentStatusPaid,
		Receipt:        uuid.New().String(),
		Note:           input.Note,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		// Optimistic guard: only advance the due date we read. If another
		// recording got there first, RowsAffected is 0 and the whole
		// transaction (payment row included) rolls back.
		res := tx.Model(&models.Unit{}).
			Where("id = ? AND due_date = ?", unit.ID, unit.DueDate).
			Update("due_date", nextDue)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var created models.Payment
	if err := s.db.Preload("Unit").First(&created, payment.ID).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func validateSplit(input RecordPaymentInput) error {
	if input.CashAmount < 0 || input.TransferAmount < 0 {
		return newValidationError("split", "channel amounts must not be negative")
	}

	switch input.Method {
	case models.PaymentMethodCash:
		if input.TransferAmount != 0 {
			return newValidationError("split", "cash payments must not carry a transfer amount")
		}
		if math.Abs(input.CashAmount-input.Amount) > SplitTolerance {
			return newValidationError("split", "cash amount must equal the payment total")
		}
	case models.PaymentMethodTransfer:
		if input.CashAmount != 0 {
			return newValidationError("split", "transfer payments must not carry a cash amount")
		}
		if math.Abs(input.TransferAmount-input.Amount) > SplitTolerance {
			return newValidationError("split", "transfer amount must equal the payment total")
		}
	case models.PaymentMethodMixed:
		if math.Abs(input.CashAmount+input.TransferAmount-input.Amount) > SplitTolerance {
			return newValidationError("split", "cash and transfer amounts must add up to the payment total")
		}
	default:
		return newValidationError("method", "invalid payment method")
	}
	return nil
}

// ListPayments returns payments ordered by paid date, newest first,
// optionally filtered by unit.
func (s *PaymentService) ListPayments(unitID *uint) ([]models.Payment, error) {
	query := s.db.Preload("Unit").Order("paid_date DESC")
	if unitID != nil {
		query = query.Where("unit_id = ?", *unitID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPayment fetches a single payment with its unit
func (s *PaymentService) GetPayment(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Unit").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}
