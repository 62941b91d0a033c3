package category

import (
	"context"
	"errors"
	"time"

	"Paydue/internal/domain/obligation"
	"Paydue/internal/domain/shared"
	appErrors "Paydue/internal/errors"
	"Paydue/internal/logger"
	"Paydue/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

func (s *Service) Create(ctx context.Context, category *Category) error {
	category.Name = shared.NormalizeName(category.Name)
	if category.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}
	if category.Kind == "" {
		category.Kind = obligation.KindExpense
	}
	if !category.Kind.IsValid() {
		return appErrors.NewValidationError("kind", "tipo invalido")
	}

	if err := s.checkNameNotExists(ctx, category.Name); err != nil {
		return err
	}

	s.initCategory(category)

	if err := s.Repository.Create(ctx, category); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.NewConflictError("categoria")
		}
		return appErrors.NewStorageError(err)
	}

	return nil
}

func (s *Service) Update(ctx context.Context, category *Category) error {
	existing, err := s.GetByID(ctx, category.Id)
	if err != nil {
		return err
	}

	category.Name = shared.NormalizeName(category.Name)
	if category.Name == "" {
		return appErrors.NewValidationError("name", "é obrigatório")
	}

	if existing.Name != category.Name {
		if err := s.checkNameNotExists(ctx, category.Name); err != nil {
			return err
		}
	}

	existing.Name = category.Name
	if category.Icon != "" {
		existing.Icon = category.Icon
	}
	existing.UpdatedAt = time.Now()

	if err := s.Repository.Update(ctx, existing); err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.NewConflictError("categoria")
		}
		return appErrors.NewStorageError(err)
	}

	*category = *existing
	return nil
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*Category, error) {
	category, err := s.Repository.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}
	return category, nil
}

func (s *Service) List(ctx context.Context, pagination *pkg.PaginationParams) ([]*Category, int64, error) {
	categories, total, err := s.Repository.List(ctx, pagination)
	if err != nil {
		return nil, 0, appErrors.NewStorageError(err)
	}
	return categories, total, nil
}

// Names maps category ids to display names. Ids with no stored category are
// left out.
func (s *Service) Names(ctx context.Context, ids []ulid.ULID) (map[ulid.ULID]string, error) {
	names := make(map[ulid.ULID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	categories, err := s.Repository.ListByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}
	for _, c := range categories {
		names[c.Id] = c.Name
	}
	return names, nil
}

// EnsureDefaults stores the default categories that are still missing.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	created := 0
	for _, category := range DefaultCategoryList(time.Now()) {
		_, err := s.Repository.GetByID(ctx, category.Id)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.NewStorageError(err)
		}

		if err := s.Repository.Create(ctx, category); err != nil {
			if shared.IsUniqueConstraintError(err) {
				continue
			}
			return appErrors.NewStorageError(err)
		}
		created++
	}

	if created > 0 {
		logger.Info().Int("created", created).Msg("Categorias padrao criadas")
	}
	return nil
}

func (s *Service) checkNameNotExists(ctx context.Context, name string) error {
	_, err := s.Repository.GetByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return appErrors.NewStorageError(err)
	}

	return appErrors.NewConflictError("categoria")
}

func (s *Service) initCategory(category *Category) {
	category.Id = pkg.GenerateULIDObject()
	category.IsActive = true
	category.CreatedAt = time.Now()
	category.UpdatedAt = time.Now()
}
