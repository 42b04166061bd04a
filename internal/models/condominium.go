package models

import (
	"time"

	"gorm.io/gorm"
)

// Condominium represents a managed property with many rentable units
type Condominium struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name            string `gorm:"type:varchar(100)" json:"name"`
	Address         string `gorm:"type:varchar(255)" json:"address"`
	City            string `gorm:"type:varchar(100)" json:"city"`
	State           string `gorm:"type:varchar(50)" json:"state"`
	Document        string `gorm:"type:varchar(20)" json:"document"` // registration number, digits only
	AdministratorID uint   `gorm:"index" json:"administrator_id"`

	// Relationships
	Administrator User   `gorm:"foreignKey:AdministratorID" json:"administrator,omitempty"`
	Units         []Unit `gorm:"foreignKey:CondominiumID" json:"units,omitempty"`
}
