package access

import (
	"context"
	"errors"
	"fmt"

	"foodees-api/cart"
	"foodees-api/errs"
	"foodees-api/metrics"
	"foodees-api/models"
	"foodees-api/statemachine"
	"foodees-api/store"

	"github.com/sirupsen/logrus"
)

// BrowseRestaurants lists approved restaurants.
func (s *Service) BrowseRestaurants(ctx context.Context, sess Session) ([]models.Restaurant, error) {
	if err := require(sess, models.RoleCustomer, "browse restaurants"); err != nil {
		return nil, err
	}
	return s.store.ListRestaurants(ctx, true)
}

// BrowseMenu lists the available items of an approved restaurant.
func (s *Service) BrowseMenu(ctx context.Context, sess Session, restaurantID uint) ([]models.MenuItem, error) {
	if err := require(sess, models.RoleCustomer, "browse menus"); err != nil {
		return nil, err
	}
	if _, err := s.approvedRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.store.ListMenuItems(ctx, restaurantID, true)
}

// AddToCart puts qty of a menu item into c. The cart is only modified on
// success; persisting it is up to the caller.
func (s *Service) AddToCart(ctx context.Context, sess Session, c *cart.Cart, menuItemID uint, qty int) error {
	if err := require(sess, models.RoleCustomer, "add to cart"); err != nil {
		return err
	}
	item, err := s.orderableItem(ctx, menuItemID)
	if err != nil {
		return err
	}
	if _, err := s.approvedRestaurant(ctx, item.RestaurantID); err != nil {
		return err
	}
	return c.Add(item.RestaurantID, cart.Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Quantity:   qty,
	})
}

// Checkout turns the cart into one pending order. Prices and availability are
// re-read from the menu, so the stored total never trusts the cart. The cart
// is cleared only after the order row exists.
func (s *Service) Checkout(ctx context.Context, sess Session, c *cart.Cart) (*models.Order, error) {
	if err := require(sess, models.RoleCustomer, "check out"); err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, errs.NewValueIsRequiredError("cart items")
	}
	rest, err := s.approvedRestaurant(ctx, c.RestaurantID)
	if err != nil {
		return nil, err
	}

	snapshot := make(models.ItemSnapshot, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Quantity < 1 {
			return nil, errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("item %d has quantity %d", line.MenuItemID, line.Quantity))
		}
		item, err := s.orderableItem(ctx, line.MenuItemID)
		if err != nil {
			return nil, err
		}
		if item.RestaurantID != rest.ID {
			return nil, errs.NewValueIsInvalidErrorWithCause("menu_item_id",
				fmt.Errorf("item %d is not on the menu of restaurant %d", item.ID, rest.ID))
		}
		snapshot = append(snapshot, models.SnapshotItem{Name: item.Name, Quantity: line.Quantity, Price: item.Price})
	}

	total := snapshot.Total()
	if total <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("total", errors.New("order total must be positive"))
	}

	order := &models.Order{
		CustomerID:   sess.UserID,
		RestaurantID: rest.ID,
		Items:        snapshot,
		Total:        total,
		Status:       models.StatusPending,
	}
	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, err
	}
	c.Clear()

	metrics.OrdersPlaced.Inc()
	s.log.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"tracking_id": order.TrackingID,
		"customer_id": sess.UserID,
		"total":       order.Total,
	}).Info("order placed")
	return order, nil
}

// ListMyOrders returns the caller's orders, newest first.
func (s *Service) ListMyOrders(ctx context.Context, sess Session) ([]models.Order, error) {
	if err := require(sess, models.RoleCustomer, "list own orders"); err != nil {
		return nil, err
	}
	return s.store.ListOrders(ctx, store.OrderFilter{CustomerID: sess.UserID})
}

type OrderDetail struct {
	Order   *models.Order               `json:"order"`
	History []models.OrderStatusHistory `json:"history"`
	Next    []models.OrderStatus        `json:"next_statuses"`
}

// MyOrder returns one of the caller's orders with its status history. Orders
// of other customers are reported as not found.
func (s *Service) MyOrder(ctx context.Context, sess Session, orderID uint) (*OrderDetail, error) {
	if err := require(sess, models.RoleCustomer, "view an order"); err != nil {
		return nil, err
	}
	order, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != sess.UserID {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}
	history, err := s.store.OrderHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: order, History: history, Next: statemachine.ValidTransitionsFrom(order.Status)}, nil
}

// CancelOrder cancels one of the caller's orders while it is still pending.
func (s *Service) CancelOrder(ctx context.Context, sess Session, orderID uint) (*models.Order, error) {
	if err := require(sess, models.RoleCustomer, "cancel an order"); err != nil {
		return nil, err
	}
	order, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != sess.UserID {
		return nil, errs.NewObjectNotFoundError("order", orderID)
	}
	return s.transition(ctx, sess, order, models.StatusCancelled, store.OrderScope{CustomerID: sess.UserID}, "cancelled by customer")
}

func (s *Service) approvedRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	rest, err := s.store.RestaurantByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rest.IsApproved {
		return nil, errs.NewObjectNotFoundError("restaurant", id)
	}
	return rest, nil
}

func (s *Service) orderableItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.store.MenuItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, errs.NewValueIsInvalidErrorWithCause("menu_item_id", fmt.Errorf("%s is not available", item.Name))
	}
	return item, nil
}
