package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"condogest_echo/internal/services"
)

// DashboardHandler serves the metric cards consumed by the dashboard
type DashboardHandler struct {
	reports *services.ReportService
	cache   *services.RedisCache
}

func NewDashboardHandler(reports *services.ReportService, cache *services.RedisCache) *DashboardHandler {
	return &DashboardHandler{reports: reports, cache: cache}
}

// Metrics returns entity counts, month-to-date revenue and pending payments.
// Cached for a minute: the dashboard polls and the counts move slowly.
func (h *DashboardHandler) Metrics(c echo.Context) error {
	if h.cache == nil {
		metrics, err := h.reports.Dashboard(time.Now())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, metrics)
	}

	metrics, err := services.GetOrSet(h.cache, c.Request().Context(), "cache:dashboard:metrics", time.Minute,
		func() (*services.DashboardMetrics, error) {
			return h.reports.Dashboard(time.Now())
		})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, metrics)
}
