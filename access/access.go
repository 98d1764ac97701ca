// Package access is the role-scoped data-access layer. Every operation takes
// an explicit Session, checks the caller's role, then applies the caller's
// ownership as a filter on every query it issues.
package access

import (
	"io"
	"time"

	"foodees-api/errs"
	"foodees-api/models"
	"foodees-api/store"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Session identifies the authenticated caller. ID is unique per login and
// keys the caller's cart.
type Session struct {
	ID     string          `json:"session_id"`
	UserID uint            `json:"user_id"`
	Role   models.UserRole `json:"role"`
	Name   string          `json:"name"`
}

type Service struct {
	store *store.Store
	log   *logrus.Logger
	now   func() time.Time
	cost  int
}

type Option func(*Service)

func WithLogger(log *logrus.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithClock replaces time.Now for dashboard date windows.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPasswordCost sets the bcrypt cost used by Register.
func WithPasswordCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func New(st *store.Store, opts ...Option) *Service {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Service{
		store: st,
		log:   discard,
		now:   time.Now,
		cost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// require rejects sessions that are anonymous or hold a different role.
func require(sess Session, role models.UserRole, action string) error {
	if sess.UserID == 0 {
		return errs.ErrUnauthenticated
	}
	if sess.Role != role {
		return errs.NewForbiddenError(string(sess.Role), action)
	}
	return nil
}
