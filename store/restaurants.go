package store

import (
	"context"
	"fmt"

	"foodees-api/errs"
	"foodees-api/models"
)

func (s *Store) CreateRestaurant(ctx context.Context, r *models.Restaurant) error {
	if err := s.conn(ctx).Create(r).Error; err != nil {
		return fmt.Errorf("create restaurant: %w", err)
	}
	return nil
}

func (s *Store) RestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.conn(ctx).First(&r, id).Error; err != nil {
		return nil, notFound(err, "restaurant", id)
	}
	return &r, nil
}

// ApprovedRestaurantByOwner returns the owner's lowest-id approved restaurant.
func (s *Store) ApprovedRestaurantByOwner(ctx context.Context, ownerID uint) (*models.Restaurant, error) {
	var r models.Restaurant
	err := s.conn(ctx).
		Where("owner_id = ? AND is_approved = ?", ownerID, true).
		Order("id").
		First(&r).Error
	if err != nil {
		return nil, notFound(err, "approved restaurant for owner", ownerID)
	}
	return &r, nil
}

func (s *Store) ListRestaurants(ctx context.Context, approvedOnly bool) ([]models.Restaurant, error) {
	var rs []models.Restaurant
	q := s.conn(ctx).Order("id")
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	if err := q.Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return rs, nil
}

func (s *Store) ListRestaurantsByOwner(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	var rs []models.Restaurant
	if err := s.conn(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("list restaurants of owner %d: %w", ownerID, err)
	}
	return rs, nil
}

func (s *Store) SetRestaurantApproval(ctx context.Context, id uint, approved bool) error {
	res := s.conn(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return fmt.Errorf("set approval of restaurant %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("restaurant", id)
	}
	return nil
}

func (s *Store) CountApprovedRestaurants(ctx context.Context) (int64, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.Restaurant{}).Where("is_approved = ?", true).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count approved restaurants: %w", err)
	}
	return n, nil
}
