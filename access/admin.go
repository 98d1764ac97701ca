package access

import (
	"context"
	"time"

	"foodees-api/models"
	"foodees-api/store"

	"github.com/sirupsen/logrus"
)

// AdminPageSize is the page length of the superadmin order list.
const AdminPageSize = 50

type Dashboard struct {
	TodayOrders         int64                `json:"today_orders"`
	MonthOrders         int64                `json:"month_orders"`
	ApprovedRestaurants int64                `json:"approved_restaurants"`
	Customers           int64                `json:"customers"`
	StatusBreakdown     []store.StatusCount  `json:"status_breakdown"`
	MonthlyRevenue      []store.RevenuePoint `json:"monthly_revenue"`
}

// Dashboard summarizes platform activity. Day and month windows are UTC.
func (s *Service) Dashboard(ctx context.Context, sess Session) (*Dashboard, error) {
	if err := require(sess, models.RoleSuperAdmin, "view the dashboard"); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var d Dashboard
	var err error
	if d.TodayOrders, err = s.store.CountOrdersBetween(ctx, day, day.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	if d.MonthOrders, err = s.store.CountOrdersBetween(ctx, month, month.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	if d.ApprovedRestaurants, err = s.store.CountApprovedRestaurants(ctx); err != nil {
		return nil, err
	}
	if d.Customers, err = s.store.CountUsersByRole(ctx, models.RoleCustomer); err != nil {
		return nil, err
	}
	if d.StatusBreakdown, err = s.store.CountOrdersByStatus(ctx); err != nil {
		return nil, err
	}
	if d.MonthlyRevenue, err = s.store.RevenueByMonth(ctx); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListAllRestaurants returns every restaurant, approved or not.
func (s *Service) ListAllRestaurants(ctx context.Context, sess Session) ([]models.Restaurant, error) {
	if err := require(sess, models.RoleSuperAdmin, "list all restaurants"); err != nil {
		return nil, err
	}
	return s.store.ListRestaurants(ctx, false)
}

func (s *Service) ListDeliveryAgents(ctx context.Context, sess Session) ([]models.User, error) {
	if err := require(sess, models.RoleSuperAdmin, "list delivery agents"); err != nil {
		return nil, err
	}
	return s.store.ListUsersByRole(ctx, models.RoleDelivery)
}

// ListAllOrders pages through every order, newest first. Pages start at 1.
func (s *Service) ListAllOrders(ctx context.Context, sess Session, page int) ([]models.Order, error) {
	if err := require(sess, models.RoleSuperAdmin, "list all orders"); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	return s.store.ListOrders(ctx, store.OrderFilter{
		Limit:        AdminPageSize,
		Offset:       (page - 1) * AdminPageSize,
		WithCustomer: true,
	})
}

// ApproveRestaurant sets or clears a restaurant's approval flag.
func (s *Service) ApproveRestaurant(ctx context.Context, sess Session, restaurantID uint, approved bool) (*models.Restaurant, error) {
	if err := require(sess, models.RoleSuperAdmin, "approve restaurants"); err != nil {
		return nil, err
	}
	if err := s.store.SetRestaurantApproval(ctx, restaurantID, approved); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"restaurant_id": restaurantID, "approved": approved}).Info("restaurant approval changed")
	return s.store.RestaurantByID(ctx, restaurantID)
}
