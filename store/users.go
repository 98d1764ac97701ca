package store

import (
	"context"
	"fmt"

	"foodees-api/errs"
	"foodees-api/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.conn(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewConflictError("phone "+user.Phone, "is already registered")
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *Store) UserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, notFound(err, "user with phone", phone)
	}
	return &user, nil
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.conn(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.UserRole) ([]models.User, error) {
	var users []models.User
	if err := s.conn(ctx).Where("role = ?", role).Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list %s users: %w", role, err)
	}
	return users, nil
}

func (s *Store) CountUsersByRole(ctx context.Context, role models.UserRole) (int64, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.User{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s users: %w", role, err)
	}
	return n, nil
}
