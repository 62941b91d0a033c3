package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	assert.False(t, IsUniqueConstraintError(nil))
	assert.True(t, IsUniqueConstraintError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueConstraintError(errors.New("UNIQUE constraint failed: categories.name")))
	assert.True(t, IsUniqueConstraintError(errors.New("Error 1062: Duplicate entry 'x'")))
	assert.False(t, IsUniqueConstraintError(errors.New("connection refused")))
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Aluguel Casa", NormalizeName("  aluguel   CASA "))
	assert.Equal(t, "Água", NormalizeName("água"))
	assert.Equal(t, "", NormalizeName("   "))
}
