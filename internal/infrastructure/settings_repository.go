package infrastructure

import (
	"context"
	"time"

	"Paydue/internal/domain/settings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const settingsRowID = 1

type SettingsRepository struct {
	DB *gorm.DB
}

var _ settings.Repository = (*SettingsRepository)(nil)

type settingsDB struct {
	Id                        int       `gorm:"primaryKey;autoIncrement:false;column:id"`
	NotificationsEnabled      bool      `gorm:"not null;column:notifications_enabled"`
	DefaultReminderDaysBefore int       `gorm:"not null;column:default_reminder_days_before"`
	UpdatedAt                 time.Time `gorm:"not null;column:updated_at"`
}

func (settingsDB) TableName() string {
	return "settings"
}

func (r *SettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	var sdb settingsDB
	if err := dbFrom(ctx, r.DB).Where("id = ?", settingsRowID).First(&sdb).Error; err != nil {
		return nil, err
	}
	return &settings.Settings{
		NotificationsEnabled:      sdb.NotificationsEnabled,
		DefaultReminderDaysBefore: sdb.DefaultReminderDaysBefore,
		UpdatedAt:                 sdb.UpdatedAt,
	}, nil
}

// Save upserts the single settings row.
func (r *SettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	sdb := &settingsDB{
		Id:                        settingsRowID,
		NotificationsEnabled:      s.NotificationsEnabled,
		DefaultReminderDaysBefore: s.DefaultReminderDaysBefore,
		UpdatedAt:                 s.UpdatedAt,
	}
	return dbFrom(ctx, r.DB).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(sdb).Error
}
