package store

import (
	"context"
	"fmt"

	"foodees-api/errs"
	"foodees-api/models"
)

func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if err := s.conn(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

func (s *Store) MenuItemByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.conn(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, "menu item", id)
	}
	return &item, nil
}

// ListMenuItems returns a restaurant's menu, newest first.
func (s *Store) ListMenuItems(ctx context.Context, restaurantID uint, availableOnly bool) ([]models.MenuItem, error) {
	var items []models.MenuItem
	q := s.conn(ctx).Where("restaurant_id = ?", restaurantID).Order("id DESC")
	if availableOnly {
		q = q.Where("is_available = ?", true)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list menu of restaurant %d: %w", restaurantID, err)
	}
	return items, nil
}

// DeleteMenuItem hard-deletes one item, but only from the given restaurant.
func (s *Store) DeleteMenuItem(ctx context.Context, restaurantID, itemID uint) error {
	res := s.conn(ctx).
		Where("id = ? AND restaurant_id = ?", itemID, restaurantID).
		Delete(&models.MenuItem{})
	if res.Error != nil {
		return fmt.Errorf("delete menu item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("menu item", itemID)
	}
	return nil
}

// CountMenuItemsByImage reports how many menu items still reference an image.
func (s *Store) CountMenuItemsByImage(ctx context.Context, ref string) (int64, error) {
	var n int64
	if err := s.conn(ctx).Model(&models.MenuItem{}).Where("image_path = ?", ref).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count menu items by image: %w", err)
	}
	return n, nil
}
