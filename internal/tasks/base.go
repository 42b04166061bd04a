package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"condogest_echo/internal/models"
)

// BuildScheduledTask assembles a worker task row from any JSON-serializable
// argument set, e.g. the nightly overdue sweep or a due-date reminder run.
// Arguments round-trip through JSON so handlers always see a plain map.
func BuildScheduledTask(taskName string, args interface{}, due time.Time, recurringInterval *string, taskType models.ScheduledTaskType, maxAttempt int) (*models.ScheduledTask, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal task arguments: %w", err)
	}

	var arguments map[string]interface{}
	if err := json.Unmarshal(raw, &arguments); err != nil {
		return nil, fmt.Errorf("task arguments must be a JSON object: %w", err)
	}

	return &models.ScheduledTask{
		TaskName:          taskName,
		Arguments:         arguments,
		Due:               due,
		RecurringInterval: recurringInterval,
		Status:            models.ScheduledTaskStatusActive,
		TaskType:          taskType,
		MaxAttempt:        maxAttempt,
	}, nil
}
