package infrastructure

import (
	"context"
	"time"

	"Paydue/internal/domain/category"
	"Paydue/internal/domain/obligation"
	"Paydue/internal/pkg"
	"Paydue/internal/pkg/query"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

var _ category.Repository = (*CategoryRepository)(nil)

type categoryDB struct {
	Id        string    `gorm:"type:varchar(26);primaryKey;column:id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex;column:name"`
	Icon      string    `gorm:"type:varchar(50);column:icon"`
	Kind      string    `gorm:"type:varchar(15);not null;column:kind"`
	IsActive  bool      `gorm:"not null;default:true;column:is_active"`
	CreatedAt time.Time `gorm:"not null;column:created_at"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at"`
}

func (categoryDB) TableName() string {
	return "categories"
}

func toDomainCategory(cdb *categoryDB) (*category.Category, error) {
	id, err := pkg.ParseULID(cdb.Id)
	if err != nil {
		return nil, err
	}
	return &category.Category{
		Id:        id,
		Name:      cdb.Name,
		Icon:      cdb.Icon,
		Kind:      obligation.Kind(cdb.Kind),
		IsActive:  cdb.IsActive,
		CreatedAt: cdb.CreatedAt,
		UpdatedAt: cdb.UpdatedAt,
	}, nil
}

func toDBCategory(c *category.Category) *categoryDB {
	return &categoryDB{
		Id:        c.Id.String(),
		Name:      c.Name,
		Icon:      c.Icon,
		Kind:      string(c.Kind),
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *category.Category) error {
	return dbFrom(ctx, r.DB).Create(toDBCategory(c)).Error
}

func (r *CategoryRepository) Update(ctx context.Context, c *category.Category) error {
	cdb := toDBCategory(c)
	result := dbFrom(ctx, r.DB).
		Model(&categoryDB{}).
		Where("id = ?", cdb.Id).
		Select("*").
		Updates(cdb)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id ulid.ULID) (*category.Category, error) {
	var cdb categoryDB
	if err := dbFrom(ctx, r.DB).Where("id = ?", id.String()).First(&cdb).Error; err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	var cdb categoryDB
	if err := dbFrom(ctx, r.DB).Where("name = ?", name).First(&cdb).Error; err != nil {
		return nil, err
	}
	return toDomainCategory(&cdb)
}

func (r *CategoryRepository) List(ctx context.Context, pagination *pkg.PaginationParams) ([]*category.Category, int64, error) {
	active := dbFrom(ctx, r.DB).Model(&categoryDB{}).Where("is_active = ?", true)
	return pkg.Paginate(active, pagination, "name ASC", toDomainCategory)
}

func (r *CategoryRepository) ListByIDs(ctx context.Context, ids []ulid.ULID) ([]*category.Category, error) {
	if len(ids) == 0 {
		return []*category.Category{}, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	q := query.New[categoryDB](dbFrom(ctx, r.DB), "categories").
		Where("id IN ?", keys).
		Order("name ASC")
	return query.ExecuteAll(q, toDomainCategory)
}
