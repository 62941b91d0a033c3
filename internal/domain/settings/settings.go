package settings

import (
	"context"
	"time"
)

const MaxReminderDaysBefore = 60

// Settings is a singleton; it is only consulted when an obligation has no
// reminder days of its own.
type Settings struct {
	NotificationsEnabled      bool      `json:"notificationsEnabled"`
	DefaultReminderDaysBefore int       `json:"defaultReminderDaysBefore"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

type Defaults struct {
	NotificationsEnabled      bool
	DefaultReminderDaysBefore int
}

type Repository interface {
	// Get returns gorm.ErrRecordNotFound until the settings were saved once.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
