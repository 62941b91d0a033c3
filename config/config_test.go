package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Contains(t, cfg.Database.DSN, "dbname=paydue")
	assert.Equal(t, 3, cfg.Reminders.DefaultDaysBefore)
	assert.True(t, cfg.Reminders.NotificationsEnabled)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadSQLiteUsesPath(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_PATH", "/tmp/ledger.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/ledger.db", cfg.Database.DSN)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("driver", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "oracle")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("reminder days", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("REMINDER_DEFAULT_DAYS_BEFORE", "-1")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestSplitList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
}
