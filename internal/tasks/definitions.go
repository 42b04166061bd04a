package tasks

import "condogest_echo/internal/services"

// DefineTasks registers all available tasks. The cache client may be nil
// when Redis is not configured; cache-bound tasks then skip their run.
func DefineTasks(cache *services.RedisCache) {
	RegisterHandler(MarkOverduePaymentsTask.TaskID(), MarkOverduePaymentsTask.HandleExecution)
	RegisterHandler(SendDueRemindersTask.TaskID(), SendDueRemindersTask.HandleExecution)
	RegisterHandler(CheckContractExpiriesTask.TaskID(), CheckContractExpiriesTask.HandleExecution)

	ClearReportCacheTask.Cache = cache
	RegisterHandler(ClearReportCacheTask.TaskID(), ClearReportCacheTask.HandleExecution)
}
