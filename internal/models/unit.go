package models

import (
	"time"

	"gorm.io/gorm"
)

// Unit represents a rentable unit inside a condominium.
// DueDate holds the next date rent is owed and is only advanced by the
// payment recording flow. Units are soft-deleted so payments never lose
// their owning row.
type Unit struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Number        string `gorm:"type:varchar(20)" json:"number"`
	Block         string `gorm:"type:varchar(20)" json:"block"`
	CondominiumID uint   `gorm:"index" json:"condominium_id"`

	Owner    string `gorm:"type:varchar(100)" json:"owner"`
	Contact  string `gorm:"type:varchar(20)" json:"contact"`  // phone, digits only
	Document string `gorm:"type:varchar(20)" json:"document"` // CPF, digits only

	RentAmount  float64    `gorm:"type:decimal(10,2)" json:"rent_amount"`
	StartDate   *time.Time `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time `gorm:"type:date" json:"end_date"`
	DueDate     time.Time  `gorm:"type:date" json:"due_date"`
	MeterNumber string     `gorm:"type:varchar(50)" json:"meter_number"`
	Note        string     `gorm:"type:text" json:"note"`
	Occupied    bool       `gorm:"default:false" json:"occupied"`

	// Relationships
	Condominium Condominium `gorm:"foreignKey:CondominiumID" json:"condominium,omitempty"`
	Payments    []Payment   `gorm:"foreignKey:UnitID" json:"payments,omitempty"`
}

// UnitSnapshot is the display subset of a unit returned alongside payments
type UnitSnapshot struct {
	ID         uint      `json:"id"`
	Number     string    `json:"number"`
	Block      string    `json:"block"`
	RentAmount float64   `json:"rent_amount"`
	DueDate    time.Time `json:"due_date"`
}

// Snapshot returns the display fields of the unit
func (u Unit) Snapshot() UnitSnapshot {
	return UnitSnapshot{
		ID:         u.ID,
		Number:     u.Number,
		Block:      u.Block,
		RentAmount: u.RentAmount,
		DueDate:    u.DueDate,
	}
}
