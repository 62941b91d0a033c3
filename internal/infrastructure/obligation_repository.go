package infrastructure

import (
	"context"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ObligationRepository struct {
	DB *gorm.DB
}

var _ obligation.Repository = (*ObligationRepository)(nil)

type obligationDB struct {
	Id                 string          `gorm:"type:varchar(26);primaryKey;column:id"`
	CategoryId         string          `gorm:"type:varchar(26);index;not null;column:category_id"`
	Kind               string          `gorm:"type:varchar(15);not null;index;column:kind"`
	Title              string          `gorm:"type:varchar(255);column:title"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null;column:amount"`
	OccurrenceCount    int             `gorm:"not null;column:occurrence_count"`
	StartDate          time.Time       `gorm:"type:date;not null;column:start_date"`
	ScheduleKind       string          `gorm:"type:varchar(15);not null;column:schedule_kind"`
	ReminderDaysBefore *int            `gorm:"column:reminder_days_before"`
	IsActive           bool            `gorm:"not null;default:true;index;column:is_active"`
	CreatedAt          time.Time       `gorm:"not null;column:created_at"`
	UpdatedAt          time.Time       `gorm:"not null;column:updated_at"`
}

func (obligationDB) TableName() string {
	return "obligations"
}

func toDomainObligation(odb *obligationDB) (*obligation.Obligation, error) {
	id, err := pkg.ParseULID(odb.Id)
	if err != nil {
		return nil, err
	}

	categoryID, err := pkg.ParseULID(odb.CategoryId)
	if err != nil {
		return nil, err
	}

	return &obligation.Obligation{
		Id:                 id,
		CategoryId:         categoryID,
		Kind:               obligation.Kind(odb.Kind),
		Title:              odb.Title,
		Amount:             odb.Amount,
		OccurrenceCount:    odb.OccurrenceCount,
		StartDate:          pkg.Date(odb.StartDate),
		ScheduleKind:       obligation.ScheduleKind(odb.ScheduleKind),
		ReminderDaysBefore: odb.ReminderDaysBefore,
		IsActive:           odb.IsActive,
		CreatedAt:          odb.CreatedAt,
		UpdatedAt:          odb.UpdatedAt,
	}, nil
}

func toDBObligation(o *obligation.Obligation) *obligationDB {
	return &obligationDB{
		Id:                 o.Id.String(),
		CategoryId:         o.CategoryId.String(),
		Kind:               string(o.Kind),
		Title:              o.Title,
		Amount:             o.Amount,
		OccurrenceCount:    o.OccurrenceCount,
		StartDate:          pkg.Date(o.StartDate),
		ScheduleKind:       string(o.ScheduleKind),
		ReminderDaysBefore: o.ReminderDaysBefore,
		IsActive:           o.IsActive,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func (r *ObligationRepository) Create(ctx context.Context, o *obligation.Obligation) error {
	return dbFrom(ctx, r.DB).Create(toDBObligation(o)).Error
}

// Update writes every column, zero values included, so a cleared reminder or
// a deactivation is persisted.
func (r *ObligationRepository) Update(ctx context.Context, o *obligation.Obligation) error {
	odb := toDBObligation(o)
	result := dbFrom(ctx, r.DB).
		Model(&obligationDB{}).
		Where("id = ?", odb.Id).
		Select("*").
		Updates(odb)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ObligationRepository) GetByID(ctx context.Context, id ulid.ULID) (*obligation.Obligation, error) {
	var odb obligationDB
	err := dbFrom(ctx, r.DB).
		Where("id = ?", id.String()).
		First(&odb).Error
	if err != nil {
		return nil, err
	}
	return toDomainObligation(&odb)
}

func (r *ObligationRepository) List(ctx context.Context, filter obligation.ListFilter, pagination *pkg.PaginationParams) ([]*obligation.Obligation, int64, error) {
	query := dbFrom(ctx, r.DB).Model(&obligationDB{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Kind != nil {
		query = query.Where("kind = ?", string(*filter.Kind))
	}
	if filter.CategoryId != nil {
		query = query.Where("category_id = ?", filter.CategoryId.String())
	}

	return pkg.Paginate(query, pagination, "created_at DESC, id DESC", toDomainObligation)
}
