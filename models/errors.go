package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrReasonNotFound is returned when a return reason is not found.
	ErrReasonNotFound = errors.New("return reason not found")

	// ErrDuplicate marks a unique constraint violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey marks a reference to a row that does not exist.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrNumberExhausted is returned when no free complaint number was found
	// within the allowed attempts.
	ErrNumberExhausted = errors.New("complaint number attempts exhausted")
)

// PostgreSQL SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// classify maps driver specific integrity errors onto ErrDuplicate and
// ErrForeignKey. The original error stays in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrForeignKey) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", ErrDuplicate, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", ErrForeignKey, err)
		}
		return err
	}

	// sqlite reports constraint failures only through the message.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	}
	return err
}

// IsIntegrity reports whether err is a unique or foreign key violation.
func IsIntegrity(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrForeignKey)
}
