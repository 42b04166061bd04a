package models

import (
	"time"

	"gorm.io/gorm"
)

// InventoryStatus represents the lifecycle state of an inventory item
type InventoryStatus string

const (
	InventoryStatusActive      InventoryStatus = "active"
	InventoryStatusMaintenance InventoryStatus = "maintenance"
	InventoryStatusInactive    InventoryStatus = "inactive"
	InventoryStatusDiscarded   InventoryStatus = "discarded"
)

// InventoryItem is a physical asset of a condominium (pumps, gates,
// elevators, gym equipment) tracked for maintenance and warranty.
type InventoryItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CondominiumID uint   `gorm:"index" json:"condominium_id"`
	Name          string `gorm:"type:varchar(100)" json:"name"`
	Description   string `gorm:"type:text" json:"description"`
	Category      string `gorm:"type:varchar(50)" json:"category"`
	SerialNumber  string `gorm:"type:varchar(50)" json:"serial_number"`

	AcquiredAt       *time.Time `gorm:"type:date" json:"acquired_at"`
	AcquisitionValue float64    `gorm:"type:decimal(10,2)" json:"acquisition_value"`
	Location         string     `gorm:"type:varchar(100)" json:"location"`

	Status          InventoryStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	LastMaintenance *time.Time      `gorm:"type:date" json:"last_maintenance"`
	NextMaintenance *time.Time      `gorm:"type:date" json:"next_maintenance"`
	WarrantyUntil   *time.Time      `gorm:"type:date" json:"warranty_until"`
	SupplierID      *uint           `gorm:"index" json:"supplier_id"`

	// Relationships
	Condominium Condominium `gorm:"foreignKey:CondominiumID" json:"condominium,omitempty"`
	Supplier    *Supplier   `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}
