package models

import (
	"time"

	"gorm.io/gorm"
)

// SupplierServiceType classifies what a supplier is hired for
type SupplierServiceType string

const (
	SupplierServiceMaintenance SupplierServiceType = "maintenance"
	SupplierServiceCleaning    SupplierServiceType = "cleaning"
	SupplierServiceSecurity    SupplierServiceType = "security"
	SupplierServiceOther       SupplierServiceType = "other"
)

// Supplier is a service company hired by the administration. Suppliers are
// deactivated rather than removed so inventory and ticket history keep
// resolving; listings only show active ones.
type Supplier struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string              `gorm:"type:varchar(100)" json:"name"`
	Document    string              `gorm:"type:varchar(20);uniqueIndex" json:"document"` // CNPJ, digits only
	Phone       string              `gorm:"type:varchar(20)" json:"phone"`
	Email       string              `gorm:"type:varchar(255)" json:"email"`
	Address     string              `gorm:"type:varchar(255)" json:"address"`
	ServiceType SupplierServiceType `gorm:"type:varchar(20)" json:"service_type"`
	Rating      float64             `gorm:"type:decimal(3,2);default:0" json:"rating"`
	Active      bool                `gorm:"default:true" json:"active"`
	Note        string              `gorm:"type:text" json:"note"`

	ContactName  string `gorm:"type:varchar(100)" json:"contact_name"`
	ContactPhone string `gorm:"type:varchar(20)" json:"contact_phone"`
}
