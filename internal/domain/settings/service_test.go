package settings_test

import (
	"context"
	"errors"
	"testing"

	"Paydue/internal/domain/settings"
	appErrors "Paydue/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSettingsRepository struct {
	stored  *settings.Settings
	getErr  error
	saveErr error
}

func (f *fakeSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f.stored
	return &cp, nil
}

func (f *fakeSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *s
	f.stored = &cp
	return nil
}

var defaults = settings.Defaults{NotificationsEnabled: true, DefaultReminderDaysBefore: 3}

func TestGetFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	svc := settings.NewService(&fakeSettingsRepository{}, defaults)
	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, got.NotificationsEnabled)
	assert.Equal(t, 3, got.DefaultReminderDaysBefore)
}

func TestGetStorageError(t *testing.T) {
	t.Parallel()

	svc := settings.NewService(&fakeSettingsRepository{getErr: errors.New("io")}, defaults)
	_, err := svc.Get(context.Background())
	assert.True(t, appErrors.IsStorage(err))
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	repo := &fakeSettingsRepository{}
	svc := settings.NewService(repo, defaults)

	days := 7
	disabled := false
	got, err := svc.Update(context.Background(), &settings.UpdateRequest{
		NotificationsEnabled:      &disabled,
		DefaultReminderDaysBefore: &days,
	})
	require.NoError(t, err)
	assert.False(t, got.NotificationsEnabled)
	assert.Equal(t, 7, repo.stored.DefaultReminderDaysBefore)

	// partial update keeps the rest
	enabled := true
	got, err = svc.Update(context.Background(), &settings.UpdateRequest{NotificationsEnabled: &enabled})
	require.NoError(t, err)
	assert.Equal(t, 7, got.DefaultReminderDaysBefore)
}

func TestUpdateValidation(t *testing.T) {
	t.Parallel()

	svc := settings.NewService(&fakeSettingsRepository{}, defaults)
	for _, days := range []int{-1, settings.MaxReminderDaysBefore + 1} {
		d := days
		_, err := svc.Update(context.Background(), &settings.UpdateRequest{DefaultReminderDaysBefore: &d})
		assert.True(t, appErrors.IsValidation(err), "days=%d", days)
	}
}

func TestReminderDaysFor(t *testing.T) {
	t.Parallel()

	current := &settings.Settings{DefaultReminderDaysBefore: 5}
	own := 0
	assert.Equal(t, 0, settings.ReminderDaysFor(&own, current))
	assert.Equal(t, 5, settings.ReminderDaysFor(nil, current))
}
