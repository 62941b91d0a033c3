package obligation

import (
	"time"

	"Paydue/internal/pkg"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusOverdue  Status = "overdue"
	StatusPaid     Status = "paid"
	StatusReceived Status = "received"
)

var Statuses = []Status{StatusPending, StatusOverdue, StatusPaid, StatusReceived}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusOverdue, StatusPaid, StatusReceived:
		return true
	}
	return false
}

func (s Status) IsSettled() bool {
	return s == StatusPaid || s == StatusReceived
}

// DeriveStatus projects the display status of a payment at asOf. Only the
// settlement is stored; overdue is never persisted.
func DeriveStatus(p *Payment, kind Kind, asOf time.Time) Status {
	if p.IsSettled() {
		if kind.SettlesAsReceived() {
			return StatusReceived
		}
		return StatusPaid
	}
	if pkg.Date(p.DueDate).Before(pkg.Date(asOf)) {
		return StatusOverdue
	}
	return StatusPending
}

// Reconcile recomputes the derived status of every view in place.
func Reconcile(views []*PaymentView, asOf time.Time) {
	for _, v := range views {
		v.Status = DeriveStatus(&v.Payment, v.Kind, asOf)
	}
}

type StatusCounts struct {
	Pending  int `json:"pending"`
	Overdue  int `json:"overdue"`
	Paid     int `json:"paid"`
	Received int `json:"received"`
}

func CountStatuses(views []*PaymentView) StatusCounts {
	var c StatusCounts
	for _, v := range views {
		switch v.Status {
		case StatusPending:
			c.Pending++
		case StatusOverdue:
			c.Overdue++
		case StatusPaid:
			c.Paid++
		case StatusReceived:
			c.Received++
		}
	}
	return c
}
