package access

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"foodees-api/errs"
	"foodees-api/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// Authenticate checks a phone/password pair. Unknown phones, wrong passwords
// and inactive accounts all yield errs.ErrUnauthenticated.
func (s *Service) Authenticate(ctx context.Context, phone, password string) (*models.User, error) {
	user, err := s.store.UserByPhone(ctx, strings.TrimSpace(phone))
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errs.ErrUnauthenticated
	}
	if !user.IsActive() {
		s.log.WithField("user_id", user.ID).Warn("login attempt on inactive account")
		return nil, errs.ErrUnauthenticated
	}
	return user, nil
}

// VerifySession re-checks a token's session against the account it names.
// Deleted or deactivated accounts, and accounts whose role changed since the
// token was issued, yield errs.ErrUnauthenticated.
func (s *Service) VerifySession(ctx context.Context, sess Session) error {
	if sess.UserID == 0 {
		return errs.ErrUnauthenticated
	}
	user, err := s.store.UserByID(ctx, sess.UserID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.ErrUnauthenticated
	}
	if err != nil {
		return err
	}
	if !user.IsActive() || user.Role != sess.Role {
		return errs.ErrUnauthenticated
	}
	return nil
}

type RegisterInput struct {
	Name     string          `json:"name"`
	Phone    string          `json:"phone"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

// Register creates an active account. Superadmins can't self-register.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("phone")
	}
	if !validPhone(phone) {
		return nil, errs.NewValueIsInvalidErrorWithCause("phone", errors.New("must be 10 to 15 digits"))
	}
	if len(in.Password) < minPasswordLen {
		return nil, errs.NewValueIsInvalidErrorWithCause("password",
			fmt.Errorf("must be at least %d characters", minPasswordLen))
	}
	switch in.Role {
	case models.RoleRestaurant, models.RoleCustomer, models.RoleDelivery:
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("cannot register as %q", in.Role))
	}

	hash, err := HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Phone:        phone,
		PasswordHash: hash,
		Role:         in.Role,
		Name:         name,
		Status:       models.UserActive,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return user, nil
}

// Profile returns the caller's own account.
func (s *Service) Profile(ctx context.Context, sess Session) (*models.User, error) {
	if sess.UserID == 0 {
		return nil, errs.ErrUnauthenticated
	}
	return s.store.UserByID(ctx, sess.UserID)
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func validPhone(p string) bool {
	if len(p) < 10 || len(p) > 15 {
		return false
	}
	for _, r := range p {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
