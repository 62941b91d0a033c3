package contracts

import (
	"Paydue/internal/domain/obligation"

	"github.com/shopspring/decimal"
)

type ObligationCreateRequest struct {
	CategoryId         string          `json:"category_id" binding:"required"`
	Kind               string          `json:"kind" binding:"required,oneof=expense income receivable"`
	Title              string          `json:"title" binding:"omitempty,max=255"`
	Amount             decimal.Decimal `json:"amount"`
	OccurrenceCount    int             `json:"occurrence_count" binding:"omitempty,min=1"`
	StartDate          string          `json:"start_date" binding:"required,datetime=2006-01-02"`
	ScheduleKind       string          `json:"schedule_kind" binding:"required,oneof=once installment"`
	ReminderDaysBefore *int            `json:"reminder_days_before" binding:"omitempty,gte=0,lte=60"`
}

type ObligationUpdateRequest struct {
	CategoryId         *string          `json:"category_id" binding:"omitempty"`
	Kind               *string          `json:"kind" binding:"omitempty,oneof=expense income receivable"`
	Title              *string          `json:"title" binding:"omitempty,max=255"`
	Amount             *decimal.Decimal `json:"amount"`
	OccurrenceCount    *int             `json:"occurrence_count" binding:"omitempty,min=1"`
	StartDate          *string          `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	ScheduleKind       *string          `json:"schedule_kind" binding:"omitempty,oneof=once installment"`
	ReminderDaysBefore *int             `json:"reminder_days_before" binding:"omitempty,gte=0,lte=60"`
	ClearReminderDays  bool             `json:"clear_reminder_days"`
}

type ObligationCreateResponse struct {
	Message    string                 `json:"message"`
	Obligation *obligation.Obligation `json:"obligation"`
}

type ObligationSingleResponse struct {
	Obligation *obligation.Obligation `json:"obligation"`
}

type ObligationPaymentsResponse struct {
	ObligationId string                    `json:"obligationId"`
	AsOf         string                    `json:"asOf"`
	Payments     []*obligation.PaymentView `json:"payments"`
}
