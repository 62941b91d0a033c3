package obligation

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Obligation is a planned one-off or installment commitment. It owns the
// payments generated from it and is soft-deleted through IsActive.
type Obligation struct {
	Id                 ulid.ULID       `json:"id"`
	CategoryId         ulid.ULID       `json:"categoryId"`
	Kind               Kind            `json:"kind"`
	Title              string          `json:"title"`
	Amount             decimal.Decimal `json:"amount"`
	OccurrenceCount    int             `json:"occurrenceCount"`
	StartDate          time.Time       `json:"startDate"`
	ScheduleKind       ScheduleKind    `json:"scheduleKind"`
	ReminderDaysBefore *int            `json:"reminderDaysBefore"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type Kind string

const (
	KindExpense    Kind = "expense"
	KindIncome     Kind = "income"
	KindReceivable Kind = "receivable"
)

var Kinds = []Kind{KindExpense, KindIncome, KindReceivable}

func (k Kind) IsValid() bool {
	switch k {
	case KindExpense, KindIncome, KindReceivable:
		return true
	}
	return false
}

// SettlesAsReceived reports whether a settled payment of this kind reads as
// received rather than paid.
func (k Kind) SettlesAsReceived() bool {
	return k == KindIncome || k == KindReceivable
}

type ScheduleKind string

const (
	ScheduleOnce        ScheduleKind = "once"
	ScheduleInstallment ScheduleKind = "installment"
)

func (s ScheduleKind) IsValid() bool {
	return s == ScheduleOnce || s == ScheduleInstallment
}

// Payment is one dated occurrence of an obligation.
type Payment struct {
	Id              ulid.ULID       `json:"id"`
	ObligationId    ulid.ULID       `json:"obligationId"`
	OccurrenceIndex int             `json:"occurrenceIndex"`
	DueDate         time.Time       `json:"dueDate"`
	Amount          decimal.Decimal `json:"amount"`
	PaidAt          *time.Time      `json:"paidAt"`
	Orphaned        bool            `json:"orphaned"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (p *Payment) IsSettled() bool {
	return p.PaidAt != nil
}

// PaymentView is a payment joined with the owning obligation's attributes the
// read side needs, plus its derived status.
type PaymentView struct {
	Payment
	Kind               Kind      `json:"kind"`
	CategoryId         ulid.ULID `json:"categoryId"`
	Title              string    `json:"title"`
	ReminderDaysBefore *int      `json:"reminderDaysBefore"`
	ObligationActive   bool      `json:"obligationActive"`
	Status             Status    `json:"status"`
}
