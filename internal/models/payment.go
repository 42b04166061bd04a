package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus represents the lifecycle state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusLate     PaymentStatus = "late"
	PaymentStatusCanceled PaymentStatus = "canceled"
)

// PaymentMethod represents how a payment was settled. A mixed payment is
// split between the cash and transfer channels.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMixed    PaymentMethod = "mixed"
)

// Payment records a rent payment event against a unit. Rows are append-only:
// the recording flow creates them and never mutates them afterwards (status
// corrections belong to administrative edits).
type Payment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UnitID uint `gorm:"index" json:"unit_id"`

	Amount         float64 `gorm:"type:decimal(10,2)" json:"amount"`
	CashAmount     float64 `gorm:"type:decimal(10,2)" json:"cash_amount"`
	TransferAmount float64 `gorm:"type:decimal(10,2)" json:"transfer_amount"`

	Method   PaymentMethod `gorm:"type:varchar(20)" json:"method"`
	DueDate  time.Time     `gorm:"type:date;index" json:"due_date"` // the due date this payment settles
	PaidDate *time.Time    `gorm:"type:date" json:"paid_date"`
	Status   PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Receipt  string        `gorm:"type:varchar(50)" json:"receipt"`
	Note     string        `gorm:"type:text" json:"note"`

	// Relationships
	Unit Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
