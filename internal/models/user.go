package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleMember  UserRole = "member"
)

// User represents an administrative user of the back office
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name         string   `gorm:"type:varchar(255)" json:"name"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255)" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);default:'member'" json:"role"`

	// Relationships
	Condominiums []Condominium `gorm:"foreignKey:AdministratorID" json:"condominiums,omitempty"`
	Maintenances []Maintenance `gorm:"foreignKey:AssigneeID" json:"maintenances,omitempty"`
}
