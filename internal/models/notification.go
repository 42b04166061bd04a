package models

import (
	"time"

	"gorm.io/gorm"
)

// NotificationKind tags what a notification is about
type NotificationKind string

const (
	NotificationKindDueDate NotificationKind = "due_date"
	NotificationKindPayment NotificationKind = "payment"
	NotificationKindGeneral NotificationKind = "general"
	NotificationKindAlert   NotificationKind = "alert"
)

// NotificationPriority represents how urgent a notification is
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// Notification is an in-app message addressed to one user, optionally tied
// to a unit. Created by users or by the due-date reminder task; marking it
// read stamps ReadAt.
type Notification struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	UserID uint  `gorm:"index" json:"user_id"`
	UnitID *uint `gorm:"index" json:"unit_id"`

	Title    string               `gorm:"type:varchar(100)" json:"title"`
	Message  string               `gorm:"type:text" json:"message"`
	Kind     NotificationKind     `gorm:"type:varchar(20);index" json:"kind"`
	Priority NotificationPriority `gorm:"type:varchar(20);default:'medium'" json:"priority"`

	Read   bool       `gorm:"default:false;index" json:"read"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`

	// Relationships
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Unit *Unit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}
