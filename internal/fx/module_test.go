package fx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestAppModuleGraph(t *testing.T) {
	require.NoError(t, fx.ValidateApp(AppModule))
}

func TestAppStartsOnSQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "paydue.db"))
	t.Setenv("SERVER_PORT", "0")
	t.Setenv("LOG_LEVEL", "error")

	app := fxtest.New(t, AppModule)
	app.RequireStart()
	app.RequireStop()
}
