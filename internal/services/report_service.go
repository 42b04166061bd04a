package services

import (
	"time"

	"gorm.io/gorm"

	"condogest_echo/internal/models"
)

// ReportService builds the read-only projections over payments, units,
// maintenances and finance entries. Nothing here mutates state.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// UnitArrears groups the outstanding payments of a single unit
type UnitArrears struct {
	UnitID   uint             `json:"unit_id"`
	Number   string           `json:"number"`
	Block    string           `json:"block"`
	Owner    string           `json:"owner"`
	Total    float64          `json:"total"`
	Payments []models.Payment `json:"payments"`
}

// ArrearsReport lists payments still owed past their due date
type ArrearsReport struct {
	TotalOutstanding float64       `json:"total_outstanding"`
	Units            []UnitArrears `json:"units"`
}

// Arrears returns every pending or late payment whose settled due date is
// strictly before the reference date, grouped by unit.
func (s *ReportService) Arrears(today time.Time) (*ArrearsReport, error) {
	var payments []models.Payment
	err := s.db.Preload("Unit").
		Where("status IN ?", []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusLate}).
		Where("due_date < ?", DateOnly(today)).
		Order("due_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	report := &ArrearsReport{}
	byUnit := make(map[uint]*UnitArrears)
	var order []uint
	for _, p := range payments {
		entry, ok := byUnit[p.UnitID]
		if !ok {
			entry = &UnitArrears{
				UnitID: p.UnitID,
				Number: p.Unit.Number,
				Block:  p.Unit.Block,
				Owner:  p.Unit.Owner,
			}
			byUnit[p.UnitID] = entry
			order = append(order, p.UnitID)
		}
		entry.Total += p.Amount
		entry.Payments = append(entry.Payments, p)
		report.TotalOutstanding += p.Amount
	}

	for _, id := range order {
		report.Units = append(report.Units, *byUnit[id])
	}
	return report, nil
}

// CashFlow sums paid finance entries for one month, split by kind
type CashFlow struct {
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// CashFlowSummary sums finance entries effective in the given month,
// optionally scoped to one condominium.
func (s *ReportService) CashFlowSummary(year int, month time.Month, condominiumID *uint) (*CashFlow, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := s.db.Model(&models.FinanceEntry{}).
		Where("effective_date >= ? AND effective_date < ?", start, end)
	if condominiumID != nil {
		query = query.Where("condominium_id = ?", *condominiumID)
	}

	var entries []models.FinanceEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	flow := &CashFlow{}
	for _, e := range entries {
		switch e.Kind {
		case models.FinanceEntryKindRevenue:
			flow.Revenue += e.Amount
		case models.FinanceEntryKindExpense:
			flow.Expense += e.Amount
		}
	}
	flow.Net = flow.Revenue - flow.Expense
	return flow, nil
}

// FinancialReport aggregates payments recorded inside a date range
type FinancialReport struct {
	TotalReceived float64        `json:"total_received"`
	PaymentCount  int            `json:"payment_count"`
	ByStatus      map[string]int `json:"by_status"`
}

// Financial aggregates payments whose paid date falls inside [start, end],
// optionally scoped to a condominium through the owning unit.
func (s *ReportService) Financial(start, end time.Time, condominiumID *uint) (*FinancialReport, error) {
	query := s.db.Model(&models.Payment{}).
		Where("paid_date BETWEEN ? AND ?", DateOnly(start), DateOnly(end))
	if condominiumID != nil {
		query = query.Joins("JOIN units ON units.id = payments.unit_id").
			Where("units.condominium_id = ?", *condominiumID)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}

	report := &FinancialReport{ByStatus: map[string]int{}}
	for _, p := range payments {
		report.TotalReceived += p.Amount
		report.PaymentCount++
		report.ByStatus[string(p.Status)]++
	}
	return report, nil
}

// OccupancyReport summarizes how many units are rented out
type OccupancyReport struct {
	Total      int64   `json:"total"`
	Occupied   int64   `json:"occupied"`
	Vacant     int64   `json:"vacant"`
	Percentage float64 `json:"percentage"`
}

// Occupancy counts units by occupancy flag, optionally per condominium
func (s *ReportService) Occupancy(condominiumID *uint) (*OccupancyReport, error) {
	scoped := func() *gorm.DB {
		q := s.db.Model(&models.Unit{})
		if condominiumID != nil {
			q = q.Where("condominium_id = ?", *condominiumID)
		}
		return q
	}

	report := &OccupancyReport{}
	if err := scoped().Count(&report.Total).Error; err != nil {
		return nil, err
	}
	if err := scoped().Where("occupied = ?", true).Count(&report.Occupied).Error; err != nil {
		return nil, err
	}
	report.Vacant = report.Total - report.Occupied
	if report.Total > 0 {
		report.Percentage = float64(report.Occupied) / float64(report.Total) * 100
	}
	return report, nil
}

// MaintenanceReport summarizes maintenance tickets and their cost
type MaintenanceReport struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"by_status"`
	TotalCost float64        `json:"total_cost"`
}

// Maintenances aggregates tickets opened inside an optional date range,
// optionally filtered by status.
func (s *ReportService) Maintenances(start, end *time.Time, status *models.MaintenanceStatus) (*MaintenanceReport, error) {
	query := s.db.Model(&models.Maintenance{})
	if start != nil && end != nil {
		query = query.Where("opened_at BETWEEN ? AND ?", *start, *end)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var maintenances []models.Maintenance
	if err := query.Find(&maintenances).Error; err != nil {
		return nil, err
	}

	report := &MaintenanceReport{ByStatus: map[string]int{}}
	for _, m := range maintenances {
		report.Total++
		report.ByStatus[string(m.Status)]++
		report.TotalCost += m.Cost
	}
	return report, nil
}

// DashboardMetrics is the headline card data for the dashboard
type DashboardMetrics struct {
	Condominiums    int64   `json:"condominiums"`
	Units           int64   `json:"units"`
	UnitsOccupied   int64   `json:"units_occupied"`
	MonthRevenue    float64 `json:"month_revenue"`
	PendingPayments int64   `json:"pending_payments"`
}

// Dashboard computes the metric cards: entity counts, revenue received since
// the first day of the current month and the number of pending payments.
func (s *ReportService) Dashboard(now time.Time) (*DashboardMetrics, error) {
	metrics := &DashboardMetrics{}

	if err := s.db.Model(&models.Condominium{}).Count(&metrics.Condominiums).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Unit{}).Count(&metrics.Units).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Unit{}).Where("occupied = ?", true).Count(&metrics.UnitsOccupied).Error; err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var revenue *float64
	err := s.db.Model(&models.Payment{}).
		Where("status = ? AND paid_date >= ?", models.PaymentStatusPaid, monthStart).
		Select("SUM(amount)").Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue != nil {
		metrics.MonthRevenue = *revenue
	}

	if err := s.db.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusPending).
		Count(&metrics.PendingPayments).Error; err != nil {
		return nil, err
	}

	return metrics, nil
}
