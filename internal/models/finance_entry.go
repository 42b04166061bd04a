package models

import (
	"time"

	"gorm.io/gorm"
)

// FinanceEntryKind tags a finance entry as money in or money out
type FinanceEntryKind string

const (
	FinanceEntryKindRevenue FinanceEntryKind = "revenue"
	FinanceEntryKindExpense FinanceEntryKind = "expense"
)

// FinanceEntry is a revenue or expense movement tracked per condominium,
// feeding the cash-flow summary. Rent payments live in their own table;
// entries here cover fees, supplier bills and other out-of-band movements.
type FinanceEntry struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CondominiumID uint             `gorm:"index" json:"condominium_id"`
	UnitID        *uint            `gorm:"index" json:"unit_id"`
	Kind          FinanceEntryKind `gorm:"type:varchar(20);index" json:"kind"`
	Category      string           `gorm:"type:varchar(50)" json:"category"`
	Description   string           `gorm:"type:varchar(255)" json:"description"`
	Amount        float64          `gorm:"type:decimal(10,2)" json:"amount"`
	ExpectedDate  *time.Time       `gorm:"type:date" json:"expected_date"`
	EffectiveDate *time.Time       `gorm:"type:date;index" json:"effective_date"`

	// Relationships
	Condominium Condominium `gorm:"foreignKey:CondominiumID" json:"condominium,omitempty"`
	Unit        *Unit       `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
