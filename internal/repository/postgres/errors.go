package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"chatstore/internal/domain"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// IsPgTransientError checks if error is a connection-level failure that is
// safe to retry: SQLSTATE class 08 (connection exception), server shutdown
// codes, pool exhaustion, network timeouts, and cancelled dials.
func IsPgTransientError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "08") {
			return true
		}
		switch pgErr.Code {
		case "57P01", "57P02", "57P03", "53300":
			// admin_shutdown, crash_shutdown, cannot_connect_now,
			// too_many_connections
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// wrapError maps driver-level failures onto the domain taxonomy. Callers
// handle no-rows and duplicates themselves (those depend on the operation's
// contract); everything else funnels through here.
func wrapError(op string, err error) error {
	if IsPgForeignKeyError(err) {
		return &domain.ConstraintError{
			Message: fmt.Sprintf("%s: %v", op, err),
		}
	}
	if IsPgTransientError(err) {
		return &domain.TransientError{
			Message: fmt.Sprintf("%s: %v", op, err),
			Err:     err,
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
