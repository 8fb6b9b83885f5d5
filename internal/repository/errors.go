package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"gastronet/internal/models"
)

// storeError wraps a raw database failure as an application error.
// Transient connectivity failures surface as UNAVAILABLE so handlers
// return 503 instead of 500; everything else is INTERNAL_ERROR.
func storeError(err error) *models.AppError {
	if isTransientError(err) {
		return models.NewUnavailableError(err)
	}
	return models.NewInternalError(err)
}

func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL SQLSTATE class 08 (connection exceptions) and the usual
	// dialer failures when the server is down or restarting.
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "sqlstate 08")
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}
