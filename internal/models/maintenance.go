package models

import (
	"time"

	"gorm.io/gorm"
)

// MaintenanceKind represents the nature of a maintenance request
type MaintenanceKind string

const (
	MaintenanceKindPreventive MaintenanceKind = "preventive"
	MaintenanceKindCorrective MaintenanceKind = "corrective"
	MaintenanceKindEmergency  MaintenanceKind = "emergency"
)

// MaintenanceStatus represents the state of a maintenance request
type MaintenanceStatus string

const (
	MaintenanceStatusOpen       MaintenanceStatus = "open"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted  MaintenanceStatus = "completed"
	MaintenanceStatusCanceled   MaintenanceStatus = "canceled"
)

// MaintenancePriority represents how urgent a maintenance request is
type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "low"
	MaintenancePriorityMedium MaintenancePriority = "medium"
	MaintenancePriorityHigh   MaintenancePriority = "high"
	MaintenancePriorityUrgent MaintenancePriority = "urgent"
)

// Maintenance represents a maintenance ticket opened against a unit
type Maintenance struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UnitID      uint                `gorm:"index" json:"unit_id"`
	Kind        MaintenanceKind     `gorm:"type:varchar(20)" json:"kind"`
	Title       string              `gorm:"type:varchar(100)" json:"title"`
	Description string              `gorm:"type:text" json:"description"`
	OpenedAt    time.Time           `json:"opened_at"`
	ExpectedAt  *time.Time          `json:"expected_at"`
	CompletedAt *time.Time          `json:"completed_at"`
	Status      MaintenanceStatus   `gorm:"type:varchar(20);default:'open';index" json:"status"`
	Priority    MaintenancePriority `gorm:"type:varchar(20)" json:"priority"`
	AssigneeID  uint                `gorm:"index" json:"assignee_id"`
	Cost        float64             `gorm:"type:decimal(10,2)" json:"cost"`
	Note        string              `gorm:"type:text" json:"note"`

	// Relationships
	Unit     Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Assignee User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}
