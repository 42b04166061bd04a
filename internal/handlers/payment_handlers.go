package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"condogest_echo/internal/models"
	"condogest_echo/internal/services"
)

// PaymentHandler exposes the payment recording and lookup endpoints
type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// recordPaymentRequest intentionally carries no amount/method validate tags:
// the service checks preconditions in the documented order (unit existence
// first), which a DTO-level rejection would bypass.
type recordPaymentRequest struct {
	UnitID         uint    `json:"unit_id" validate:"required"`
	Amount         float64 `json:"amount"`
	CashAmount     float64 `json:"cash_amount"`
	TransferAmount float64 `json:"transfer_amount"`
	Method         string  `json:"method"`
	PaidDate       string  `json:"paid_date"`
	Note           string  `json:"note"`
}

// Create records a rent payment and rolls the unit's due date forward
func (h *PaymentHandler) Create(c echo.Context) error {
	var req recordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	paidDate, err := parseDatePtr(req.PaidDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid paid date, expected YYYY-MM-DD")
	}

	payment, err := h.payments.RecordPayment(services.RecordPaymentInput{
		UnitID:         req.UnitID,
		Amount:         req.Amount,
		CashAmount:     req.CashAmount,
		TransferAmount: req.TransferAmount,
		Method:         models.PaymentMethod(req.Method),
		PaidDate:       paidDate,
		Note:           req.Note,
	}, time.Now())
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// List returns all payments, newest paid first
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.payments.ListPayments(nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// ListByUnit returns the payments of a single unit
func (h *PaymentHandler) ListByUnit(c echo.Context) error {
	unitID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payments, err := h.payments.ListPayments(&unitID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Get returns a single payment with its unit snapshot
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.payments.GetPayment(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, payment)
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
