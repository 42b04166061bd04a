package tasks

import (
	"context"

	"gorm.io/gorm"

	"condogest_echo/internal/middleware"
	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// ClearReportCacheTaskDef sweeps the cached report responses, scheduled
// around midnight so the first morning request rebuilds them.
type ClearReportCacheTaskDef struct {
	Cache *services.RedisCache
}

// TaskID returns the unique identifier for this task
func (t *ClearReportCacheTaskDef) TaskID() string {
	return "clear_report_cache"
}

// HandleExecution removes every response-cache key
func (t *ClearReportCacheTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	if t.Cache == nil {
		return map[string]interface{}{"status": "skipped", "message": "cache not configured"}, nil
	}

	removed, err := t.Cache.DeletePattern(ctx, middleware.CacheKeyPrefix+"*")
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":        "success",
		"removed_count": removed,
	}, nil
}

// ClearReportCacheTask is the singleton instance of ClearReportCacheTaskDef
var ClearReportCacheTask = &ClearReportCacheTaskDef{}
