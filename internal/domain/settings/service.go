package settings

import (
	"context"
	"errors"
	"time"

	appErrors "Paydue/internal/errors"
	"Paydue/internal/logger"

	"gorm.io/gorm"
)

type Service struct {
	Repository Repository
	Defaults   Defaults
}

func NewService(repo Repository, defaults Defaults) *Service {
	return &Service{
		Repository: repo,
		Defaults:   defaults,
	}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	current, err := s.Repository.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Settings{
			NotificationsEnabled:      s.Defaults.NotificationsEnabled,
			DefaultReminderDaysBefore: s.Defaults.DefaultReminderDaysBefore,
		}, nil
	}
	if err != nil {
		return nil, appErrors.NewStorageError(err)
	}
	return current, nil
}

type UpdateRequest struct {
	NotificationsEnabled      *bool
	DefaultReminderDaysBefore *int
}

func (s *Service) Update(ctx context.Context, req *UpdateRequest) (*Settings, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.DefaultReminderDaysBefore != nil {
		days := *req.DefaultReminderDaysBefore
		if days < 0 || days > MaxReminderDaysBefore {
			return nil, appErrors.NewValidationError("default_reminder_days_before", "deve estar entre 0 e 60")
		}
		current.DefaultReminderDaysBefore = days
	}
	if req.NotificationsEnabled != nil {
		current.NotificationsEnabled = *req.NotificationsEnabled
	}
	current.UpdatedAt = time.Now()

	if err := s.Repository.Save(ctx, current); err != nil {
		return nil, appErrors.NewStorageError(err)
	}

	logger.Info().
		Bool("notifications_enabled", current.NotificationsEnabled).
		Int("default_reminder_days_before", current.DefaultReminderDaysBefore).
		Msg("Configuracoes atualizadas")

	return current, nil
}

// ReminderDaysFor resolves the reminder lead time of an obligation.
func ReminderDaysFor(own *int, current *Settings) int {
	if own != nil {
		return *own
	}
	return current.DefaultReminderDaysBefore
}
