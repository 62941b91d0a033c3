package contracts

import (
	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/payment"
)

// SettlementRequest carries the reference date of a settle, unsettle or
// reconcile call. An empty body means today.
type SettlementRequest struct {
	AsOf string `json:"as_of" binding:"omitempty,datetime=2006-01-02"`
}

type PaymentSingleResponse struct {
	Payment *obligation.PaymentView `json:"payment"`
}

type PaymentSettlementResponse struct {
	Message string                  `json:"message"`
	Payment *obligation.PaymentView `json:"payment"`
}

type ReconcileResponse struct {
	Reconciliation *payment.Reconciliation `json:"reconciliation"`
}

type RemindersResponse struct {
	AsOf      string             `json:"asOf"`
	Reminders []payment.Reminder `json:"reminders"`
}
