package store

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	apperrors "gemtrade/internal/errors"
)

// Postgres SQLSTATE codes that indicate a retryable failure.
var transientPgCodes = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available (lock_timeout)
	"57014": true, // query_canceled (statement_timeout)
}

// translate maps a driver or GORM error onto an AppError. AppErrors pass
// through untouched. notFound and duplicate may be nil when the operation
// cannot produce that condition.
func translate(err error, notFound, duplicate *apperrors.AppError) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if notFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(duplicate, err)
	}
	if isTransient(err) {
		return apperrors.Wrap(apperrors.ErrTransientStore, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientPgCodes[pgErr.Code]
	}
	if pgconn.Timeout(err) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}
	return false
}
