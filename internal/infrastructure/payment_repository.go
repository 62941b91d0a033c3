package infrastructure

import (
	"context"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/pkg"
	"Paydue/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	DB *gorm.DB
}

var _ obligation.PaymentRepository = (*PaymentRepository)(nil)

type paymentDB struct {
	Id              string          `gorm:"type:varchar(26);primaryKey;column:id"`
	ObligationId    string          `gorm:"type:varchar(26);not null;index:idx_payments_obligation_index;column:obligation_id"`
	OccurrenceIndex int             `gorm:"not null;index:idx_payments_obligation_index;column:occurrence_index"`
	DueDate         time.Time       `gorm:"type:date;not null;index;column:due_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null;column:amount"`
	PaidAt          *time.Time      `gorm:"column:paid_at"`
	Orphaned        bool            `gorm:"not null;default:false;column:orphaned"`
	IsActive        bool            `gorm:"not null;default:true;index;column:is_active"`
	CreatedAt       time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt       time.Time       `gorm:"not null;column:updated_at"`
}

func (paymentDB) TableName() string {
	return "payments"
}

// paymentViewDB is a payments row joined with the owning obligation.
type paymentViewDB struct {
	Payment            paymentDB `gorm:"embedded"`
	Kind               string    `gorm:"->;column:kind"`
	CategoryId         string    `gorm:"->;column:category_id"`
	Title              string    `gorm:"->;column:title"`
	ReminderDaysBefore *int      `gorm:"->;column:reminder_days_before"`
	ObligationActive   bool      `gorm:"->;column:obligation_active"`
}

const paymentViewColumns = "p.*, o.kind, o.category_id, o.title, o.reminder_days_before, o.is_active AS obligation_active"

func toDomainPayment(pdb *paymentDB) (*obligation.Payment, error) {
	id, err := pkg.ParseULID(pdb.Id)
	if err != nil {
		return nil, err
	}

	obligationID, err := pkg.ParseULID(pdb.ObligationId)
	if err != nil {
		return nil, err
	}

	var paidAt *time.Time
	if pdb.PaidAt != nil {
		t := pdb.PaidAt.UTC()
		paidAt = &t
	}

	return &obligation.Payment{
		Id:              id,
		ObligationId:    obligationID,
		OccurrenceIndex: pdb.OccurrenceIndex,
		DueDate:         pkg.Date(pdb.DueDate),
		Amount:          pdb.Amount,
		PaidAt:          paidAt,
		Orphaned:        pdb.Orphaned,
		IsActive:        pdb.IsActive,
		CreatedAt:       pdb.CreatedAt,
		UpdatedAt:       pdb.UpdatedAt,
	}, nil
}

func toDBPayment(p *obligation.Payment) *paymentDB {
	return &paymentDB{
		Id:              p.Id.String(),
		ObligationId:    p.ObligationId.String(),
		OccurrenceIndex: p.OccurrenceIndex,
		DueDate:         pkg.Date(p.DueDate),
		Amount:          p.Amount,
		PaidAt:          p.PaidAt,
		Orphaned:        p.Orphaned,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toDomainPaymentView(vdb *paymentViewDB) (*obligation.PaymentView, error) {
	p, err := toDomainPayment(&vdb.Payment)
	if err != nil {
		return nil, err
	}

	categoryID, err := pkg.ParseULID(vdb.CategoryId)
	if err != nil {
		return nil, err
	}

	return &obligation.PaymentView{
		Payment:            *p,
		Kind:               obligation.Kind(vdb.Kind),
		CategoryId:         categoryID,
		Title:              vdb.Title,
		ReminderDaysBefore: vdb.ReminderDaysBefore,
		ObligationActive:   vdb.ObligationActive,
	}, nil
}

func (r *PaymentRepository) CreateBatch(ctx context.Context, payments []*obligation.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	rows := make([]*paymentDB, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, toDBPayment(p))
	}
	return dbFrom(ctx, r.DB).Create(&rows).Error
}

func (r *PaymentRepository) Update(ctx context.Context, p *obligation.Payment) error {
	pdb := toDBPayment(p)
	result := dbFrom(ctx, r.DB).
		Model(&paymentDB{}).
		Where("id = ?", pdb.Id).
		Select("*").
		Updates(pdb)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PaymentRepository) GetForUpdate(ctx context.Context, id ulid.ULID) (*obligation.Payment, error) {
	var pdb paymentDB
	err := dbFrom(ctx, r.DB).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id.String()).
		First(&pdb).Error
	if err != nil {
		return nil, err
	}
	return toDomainPayment(&pdb)
}

func (r *PaymentRepository) GetView(ctx context.Context, id ulid.ULID) (*obligation.PaymentView, error) {
	q := r.viewQuery(ctx).Where("p.id = ?", id.String())
	return query.ExecuteOne(q, toDomainPaymentView)
}

func (r *PaymentRepository) ListByObligation(ctx context.Context, obligationID ulid.ULID) ([]*obligation.Payment, error) {
	q := query.New[paymentDB](dbFrom(ctx, r.DB), "payments").
		Where("obligation_id = ? AND is_active = ?", obligationID.String(), true).
		Order("occurrence_index ASC, created_at ASC")
	return query.ExecuteAll(q, toDomainPayment)
}

func (r *PaymentRepository) ListViews(ctx context.Context, filter obligation.PaymentFilter) ([]*obligation.PaymentView, error) {
	q := r.viewQuery(ctx).Where("p.is_active = ?", true)
	if !filter.IncludeOrphaned {
		q.Where("p.orphaned = ?", false)
	}
	if filter.ObligationId != nil {
		q.Where("p.obligation_id = ?", filter.ObligationId.String())
	}
	if filter.From != nil {
		q.Where("p.due_date >= ?", pkg.Date(*filter.From))
	}
	if filter.To != nil {
		q.Where("p.due_date <= ?", pkg.Date(*filter.To))
	}
	if filter.Kind != nil {
		q.Where("o.kind = ?", string(*filter.Kind))
	}
	if filter.CategoryId != nil {
		q.Where("o.category_id = ?", filter.CategoryId.String())
	}

	return query.ExecuteAll(q.Order("p.due_date ASC, p.occurrence_index ASC, p.id ASC"), toDomainPaymentView)
}

func (r *PaymentRepository) DeactivateByIDs(ctx context.Context, ids []ulid.ULID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}
	return dbFrom(ctx, r.DB).
		Model(&paymentDB{}).
		Where("id IN ?", keys).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": at,
		}).Error
}

func (r *PaymentRepository) viewQuery(ctx context.Context) *query.Query[paymentViewDB] {
	return query.New[paymentViewDB](dbFrom(ctx, r.DB), "payments p").
		Select(paymentViewColumns).
		Join("JOIN obligations o ON o.id = p.obligation_id")
}
