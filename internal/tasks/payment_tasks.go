package tasks

import (
	"context"
	"time"

	"gorm.io/gorm"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// MarkOverduePaymentsTaskDef flips pending payments past their due date to
// late. Scheduled daily; the recording flow never touches these rows.
type MarkOverduePaymentsTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *MarkOverduePaymentsTaskDef) TaskID() string {
	return "mark_overdue_payments"
}

// HandleExecution marks every pending payment with a settled due date before
// today as late and reports how many rows changed.
func (t *MarkOverduePaymentsTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	today := services.DateOnly(time.Now())

	res := db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ? AND due_date < ?", models.PaymentStatusPending, today).
		Update("status", models.PaymentStatusLate)
	if res.Error != nil {
		return nil, res.Error
	}

	return map[string]interface{}{
		"status":        "success",
		"updated_count": res.RowsAffected,
	}, nil
}

// MarkOverduePaymentsTask is the singleton instance of MarkOverduePaymentsTaskDef
var MarkOverduePaymentsTask = &MarkOverduePaymentsTaskDef{}
