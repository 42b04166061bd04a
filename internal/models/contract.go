package models

import (
	"time"

	"gorm.io/gorm"
)

// ContractStatus represents the lifecycle state of a service contract
type ContractStatus string

const (
	ContractStatusPending  ContractStatus = "pending"
	ContractStatusActive   ContractStatus = "active"
	ContractStatusClosed   ContractStatus = "closed"
	ContractStatusCanceled ContractStatus = "canceled"
)

// ContractInterval represents how often a contract is billed
type ContractInterval string

const (
	ContractIntervalMonthly    ContractInterval = "monthly"
	ContractIntervalQuarterly  ContractInterval = "quarterly"
	ContractIntervalSemiannual ContractInterval = "semiannual"
	ContractIntervalAnnual     ContractInterval = "annual"
)

// Contract binds a supplier to a condominium for a period and a price.
// The expiry-check task alerts the administrator AlertDaysBefore days
// before EndDate.
type Contract struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	SupplierID    uint   `gorm:"index" json:"supplier_id"`
	CondominiumID uint   `gorm:"index" json:"condominium_id"`
	Number        string `gorm:"type:varchar(50);uniqueIndex" json:"number"`

	StartDate time.Time `gorm:"type:date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;index" json:"end_date"`
	Value     float64   `gorm:"type:decimal(10,2)" json:"value"`

	ServiceDescription string           `gorm:"type:text" json:"service_description"`
	Status             ContractStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentMethod      string           `gorm:"type:varchar(50)" json:"payment_method"`
	PaymentInterval    ContractInterval `gorm:"type:varchar(20);default:'monthly'" json:"payment_interval"`
	AutoRenew          bool             `gorm:"default:false" json:"auto_renew"`
	AlertDaysBefore    int              `gorm:"default:30" json:"alert_days_before"`

	// Relationships
	Supplier    Supplier    `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Condominium Condominium `gorm:"foreignKey:CondominiumID" json:"condominium,omitempty"`
}
