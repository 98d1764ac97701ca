package store

import (
	"context"
	"errors"
	"fmt"

	"foodees-api/errs"
	"foodees-api/models"

	"gorm.io/gorm"
)

// OrderFilter selects orders for a scan. Zero-valued fields are ignored.
type OrderFilter struct {
	CustomerID      uint
	RestaurantID    uint
	DeliveryID      uint
	Unassigned      bool
	Status          models.OrderStatus
	ExcludeStatuses []models.OrderStatus
	Limit           int
	Offset          int
	WithCustomer    bool
}

// OrderScope narrows a conditional update to rows owned by the caller.
type OrderScope struct {
	CustomerID   uint
	RestaurantID uint
	DeliveryID   uint
}

func (sc OrderScope) apply(q *gorm.DB) *gorm.DB {
	if sc.CustomerID != 0 {
		q = q.Where("customer_id = ?", sc.CustomerID)
	}
	if sc.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", sc.RestaurantID)
	}
	if sc.DeliveryID != 0 {
		q = q.Where("delivery_id = ?", sc.DeliveryID)
	}
	return q
}

// CreateOrder inserts a checkout together with its first history row.
// A fresh tracking code is drawn for every attempt; codes already in use,
// or lost to a concurrent insert, are retried up to trackingAttempts times.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	for attempt := 0; attempt < trackingAttempts; attempt++ {
		code := s.newTrackingID()

		var taken int64
		if err := s.conn(ctx).Model(&models.Order{}).Where("tracking_id = ?", code).Count(&taken).Error; err != nil {
			return fmt.Errorf("check tracking code: %w", err)
		}
		if taken > 0 {
			continue
		}

		order.ID = 0
		order.TrackingID = code
		err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Omit("Customer", "Restaurant", "Delivery").Create(order).Error; err != nil {
				return err
			}
			return tx.Create(&models.OrderStatusHistory{
				OrderID:   order.ID,
				ToStatus:  order.Status,
				ChangedBy: order.CustomerID,
				Note:      "order placed by customer",
			}).Error
		})
		if isUniqueViolation(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	}
	order.TrackingID = ""
	return errs.NewConflictError("tracking code", "could not be made unique")
}

func (s *Store) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := s.conn(ctx).First(&o, id).Error; err != nil {
		return nil, notFound(err, "order", id)
	}
	return &o, nil
}

// ListOrders scans orders newest first.
func (s *Store) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := s.conn(ctx).Model(&models.Order{})
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.DeliveryID != 0 {
		q = q.Where("delivery_id = ?", f.DeliveryID)
	}
	if f.Unassigned {
		q = q.Where("delivery_id IS NULL")
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if len(f.ExcludeStatuses) > 0 {
		q = q.Where("status NOT IN ?", f.ExcludeStatuses)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	if f.WithCustomer {
		q = q.Preload("Customer")
	}

	var orders []models.Order
	if err := q.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// TransitionStatus moves an order from one status to another with a single
// conditional UPDATE. It reports false when no row matched: the order does
// not exist, is outside scope, or is no longer in status from.
func (s *Store) TransitionStatus(ctx context.Context, id uint, scope OrderScope, from, to models.OrderStatus, changedBy uint, note string) (bool, error) {
	applied := false
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Order{}).Where("id = ? AND status = ?", id, from)
		res := scope.apply(q).Update("status", to)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		applied = true
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    id,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  changedBy,
			Note:       note,
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("transition order %d: %w", id, err)
	}
	return applied, nil
}

// ClaimOrder assigns agentID to a ready, unassigned order. Only one of any
// number of concurrent claimers can match the WHERE clause.
func (s *Store) ClaimOrder(ctx context.Context, id, agentID uint) (bool, error) {
	claimed := false
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND delivery_id IS NULL AND status = ?", id, models.StatusReady).
			Update("delivery_id", agentID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		claimed = true
		return tx.Create(&models.OrderStatusHistory{
			OrderID:    id,
			FromStatus: models.StatusReady,
			ToStatus:   models.StatusReady,
			ChangedBy:  agentID,
			Note:       "claimed by delivery agent",
		}).Error
	})
	if err != nil {
		return false, fmt.Errorf("claim order %d: %w", id, err)
	}
	return claimed, nil
}

func (s *Store) OrderHistory(ctx context.Context, orderID uint) ([]models.OrderStatusHistory, error) {
	var h []models.OrderStatusHistory
	err := s.conn(ctx).Where("order_id = ?", orderID).Order("id").Find(&h).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load history of order %d: %w", orderID, err)
	}
	return h, nil
}
