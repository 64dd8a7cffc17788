package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil stays nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, ErrConflict},
		{"connection failure", &pgconn.PgError{Code: "08006"}, ErrServiceUnavailable},
		{"too many connections", &pgconn.PgError{Code: "53300"}, ErrServiceUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, ErrServiceUnavailable},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, ErrInternal},
		{"deadline exceeded", context.DeadlineExceeded, ErrServiceUnavailable},
		{"bad connection", driver.ErrBadConn, ErrServiceUnavailable},
		{"net op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, ErrServiceUnavailable},
		{"anything else", errors.New("boom"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Translate(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslatePassesThroughTranslatedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: planets row", ErrNotFound)
	assert.Equal(t, wrapped, Translate(wrapped))
}

func TestTranslateWrapsPgErrorsInsideChains(t *testing.T) {
	err := fmt.Errorf("upsert planets: %w", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, Translate(err), ErrConflict)
}
