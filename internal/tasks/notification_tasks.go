package tasks

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// DefaultReminderDaysAhead is how far ahead the reminder sweep looks when
// the task carries no days_ahead argument.
const DefaultReminderDaysAhead = 3

// SendDueRemindersTaskDef notifies each condominium administrator about
// occupied units whose rent falls due within the next few days. Scheduled
// daily alongside the overdue sweep.
type SendDueRemindersTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *SendDueRemindersTaskDef) TaskID() string {
	return "send_due_reminders"
}

// HandleExecution creates one due-date notification per upcoming unit,
// addressed to the condominium's administrator. Units that already have an
// unread due-date notification are skipped, so a daily schedule does not
// pile up duplicates.
func (t *SendDueRemindersTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	daysAhead := DefaultReminderDaysAhead
	if raw, ok := task.Arguments["days_ahead"].(float64); ok && raw > 0 {
		daysAhead = int(raw)
	}

	today := services.DateOnly(time.Now())
	horizon := today.AddDate(0, 0, daysAhead)

	var units []models.Unit
	err := db.WithContext(ctx).Preload("Condominium").
		Where("occupied = ? AND due_date >= ? AND due_date <= ?", true, today, horizon).
		Find(&units).Error
	if err != nil {
		return nil, err
	}

	var created int64
	for _, unit := range units {
		adminID := unit.Condominium.AdministratorID
		if adminID == 0 {
			continue
		}

		var pending int64
		err := db.WithContext(ctx).Model(&models.Notification{}).
			Where("unit_id = ? AND kind = ? AND read = ?", unit.ID, models.NotificationKindDueDate, false).
			Count(&pending).Error
		if err != nil {
			return nil, err
		}
		if pending > 0 {
			continue
		}

		unitID := unit.ID
		notification := models.Notification{
			UserID:   adminID,
			UnitID:   &unitID,
			Title:    fmt.Sprintf("Rent due on %s", unit.DueDate.Format("2006-01-02")),
			Message:  fmt.Sprintf("Unit %s (block %s) has rent of %.2f due on %s.", unit.Number, unit.Block, unit.RentAmount, unit.DueDate.Format("2006-01-02")),
			Kind:     models.NotificationKindDueDate,
			Priority: models.NotificationPriorityHigh,
			SentAt:   time.Now(),
		}
		if err := db.WithContext(ctx).Create(&notification).Error; err != nil {
			return nil, err
		}
		created++
	}

	return map[string]interface{}{
		"status":        "success",
		"scanned_count": int64(len(units)),
		"created_count": created,
	}, nil
}

// SendDueRemindersTask is the singleton instance of SendDueRemindersTaskDef
var SendDueRemindersTask = &SendDueRemindersTaskDef{}
