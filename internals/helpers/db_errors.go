package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a Postgres 23505 (or gorm's
// portable duplicated-key error). Used to map constraint races to 409
// instead of a generic 500.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// MapDBError normalizes storage errors into the fiber error taxonomy.
// duplicateMsg names the violated uniqueness precondition for the caller.
func MapDBError(err error, duplicateMsg string) error {
	if err == nil {
		return nil
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	if IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusConflict, duplicateMsg)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "record not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
