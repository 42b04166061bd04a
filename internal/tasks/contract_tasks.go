package tasks

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// CheckContractExpiriesTaskDef warns each condominium administrator about
// active supplier contracts approaching their end date. Each contract
// carries its own alert window (alert_days_before).
type CheckContractExpiriesTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *CheckContractExpiriesTaskDef) TaskID() string {
	return "check_contract_expiries"
}

// HandleExecution creates one alert notification per expiring contract,
// addressed to the condominium's administrator. Contracts that already have
// an unread alert are skipped, so a daily schedule does not pile up
// duplicates.
func (t *CheckContractExpiriesTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	today := services.DateOnly(time.Now())

	var contracts []models.Contract
	err := db.WithContext(ctx).Preload("Supplier").Preload("Condominium").
		Where("status = ? AND end_date >= ?", models.ContractStatusActive, today).
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}

	var created int64
	var expiring int64
	for _, contract := range contracts {
		alertFrom := services.DateOnly(contract.EndDate).AddDate(0, 0, -contract.AlertDaysBefore)
		if today.Before(alertFrom) {
			continue
		}
		expiring++

		adminID := contract.Condominium.AdministratorID
		if adminID == 0 {
			continue
		}

		title := fmt.Sprintf("Contract %s expires on %s", contract.Number, contract.EndDate.Format("2006-01-02"))
		var pending int64
		err := db.WithContext(ctx).Model(&models.Notification{}).
			Where("user_id = ? AND kind = ? AND title = ? AND read = ?", adminID, models.NotificationKindAlert, title, false).
			Count(&pending).Error
		if err != nil {
			return nil, err
		}
		if pending > 0 {
			continue
		}

		notification := models.Notification{
			UserID:   adminID,
			Title:    title,
			Message:  fmt.Sprintf("The %s contract with %s ends on %s. Renew or close it before then.", contract.ServiceDescription, contract.Supplier.Name, contract.EndDate.Format("2006-01-02")),
			Kind:     models.NotificationKindAlert,
			Priority: models.NotificationPriorityHigh,
			SentAt:   time.Now(),
		}
		if err := db.WithContext(ctx).Create(&notification).Error; err != nil {
			return nil, err
		}
		created++
	}

	return map[string]interface{}{
		"status":         "success",
		"scanned_count":  int64(len(contracts)),
		"expiring_count": expiring,
		"created_count":  created,
	}, nil
}

// CheckContractExpiriesTask is the singleton instance of CheckContractExpiriesTaskDef
var CheckContractExpiriesTask = &CheckContractExpiriesTaskDef{}
