// Package store is the persistence layer: gorm queries over the users,
// restaurants, menu_items and orders tables. It knows nothing about roles;
// callers pass explicit owner filters and the store applies them in SQL.
package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"foodees-api/errs"

	"gorm.io/gorm"
)

// trackingAttempts bounds the verify/retry loop for tracking codes.
const trackingAttempts = 10

type Store struct {
	db            *gorm.DB
	newTrackingID func() string
}

type Option func(*Store)

// WithTrackingGenerator replaces the random TRACKdddd generator.
func WithTrackingGenerator(gen func() string) Option {
	return func(s *Store) { s.newTrackingID = gen }
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, newTrackingID: RandomTrackingID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB exposes the underlying handle for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// RandomTrackingID returns "TRACK" followed by four random digits.
func RandomTrackingID() string {
	return fmt.Sprintf("TRACK%04d", 1000+rand.IntN(9000))
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(what, id)
	}
	return fmt.Errorf("load %s %v: %w", what, id, err)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
