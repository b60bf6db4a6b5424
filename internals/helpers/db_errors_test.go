package helper

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))

	// wrapped errors still match
	assert.True(t, IsUniqueViolation(fmt.Errorf("create payroll: %w", &pgconn.PgError{Code: "23505"})))

	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"})) // FK violation
	assert.False(t, IsUniqueViolation(errors.New("connection reset")))
	assert.False(t, IsUniqueViolation(nil))
}

// A duplicate period insert races straight into the composite unique index;
// the 23505 it raises must surface as a 409 naming the precondition, never
// as a generic 500.
func TestMapDBErrorUniqueViolation(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: "23505"}, "payroll already generated for this period")
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Equal(t, "payroll already generated for this period", fe.Message)

	err = MapDBError(gorm.ErrDuplicatedKey, "salary structure already exists for staff")
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
	assert.Equal(t, "salary structure already exists for staff", fe.Message)
}

func TestMapDBError(t *testing.T) {
	assert.NoError(t, MapDBError(nil, "unused"))

	// fiber errors pass through unchanged
	orig := fiber.NewError(fiber.StatusConflict, "fee assignment is already fully paid")
	assert.Equal(t, orig, MapDBError(orig, "unused"))

	err := MapDBError(gorm.ErrRecordNotFound, "unused")
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusNotFound, fe.Code)

	err = MapDBError(errors.New("connection reset"), "unused")
	fe, ok = err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusInternalServerError, fe.Code)
}
