package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// The domain error taxonomy. Every storage failure surfaces as exactly
// one of these, wrapped with detail; callers test with errors.Is.
var (
	// ErrConflict reports a constraint violation (duplicate natural key,
	// dangling foreign key).
	ErrConflict = errors.New("conflict")

	// ErrNotFound reports a missing row.
	ErrNotFound = errors.New("not found")

	// ErrServiceUnavailable reports a connection or timeout failure
	// talking to storage.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrInternal reports any other storage failure.
	ErrInternal = errors.New("internal error")
)

// Translate maps a storage-layer error onto the domain taxonomy. Already
// translated errors pass through unchanged; nil stays nil.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrServiceUnavailable) || errors.Is(err, ErrInternal) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		// Class 23: integrity constraint violations.
		case strings.HasPrefix(pgErr.Code, "23"):
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Code)
		// Class 08: connection exceptions. Class 53: insufficient
		// resources. 57P01/57P02/57P03: server shutdown.
		case strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "53"),
			strings.HasPrefix(pgErr.Code, "57P"):
			return fmt.Errorf("%w: %s", ErrServiceUnavailable, pgErr.Code)
		}
		return fmt.Errorf("%w: %s", ErrInternal, pgErr.Code)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	return fmt.Errorf("%w: %v", ErrInternal, err)
}
