package access

import (
	"context"
	"fmt"
	"strings"

	"foodees-api/errs"
	"foodees-api/models"
	"foodees-api/statemachine"
	"foodees-api/store"

	"github.com/sirupsen/logrus"
)

// MyRestaurant resolves the caller's restaurant: the lowest-id approved one
// they own. Owners with nothing approved get errs.ErrObjectNotFound from every
// restaurant-scoped operation.
func (s *Service) MyRestaurant(ctx context.Context, sess Session) (*models.Restaurant, error) {
	if err := require(sess, models.RoleRestaurant, "manage a restaurant"); err != nil {
		return nil, err
	}
	return s.store.ApprovedRestaurantByOwner(ctx, sess.UserID)
}

// MenuItemInput is what an owner may set on a new item. ImagePath is never
// bound from a request body; handlers fill it from an image they stored.
type MenuItemInput struct {
	Name        string  `json:"name"`
	HindiName   string  `json:"hindi_name"`
	Price       float64 `json:"price"`
	ImagePath   string  `json:"-"`
	IsAvailable *bool   `json:"is_available"`
}

// AddMenuItem adds an item to the caller's restaurant. Availability defaults
// to true when not given.
func (s *Service) AddMenuItem(ctx context.Context, sess Session, in MenuItemInput) (*models.MenuItem, error) {
	rest, err := s.MyRestaurant(ctx, sess)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if in.Price <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("must be positive, got %v", in.Price))
	}
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	item := &models.MenuItem{
		RestaurantID: rest.ID,
		Name:         name,
		HindiName:    strings.TrimSpace(in.HindiName),
		Price:        models.RoundMoney(in.Price),
		ImagePath:    in.ImagePath,
		IsAvailable:  available,
	}
	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"restaurant_id": rest.ID, "menu_item_id": item.ID}).Info("menu item added")
	return item, nil
}

// ListMenu returns the caller's full menu, unavailable items included.
func (s *Service) ListMenu(ctx context.Context, sess Session) ([]models.MenuItem, error) {
	rest, err := s.MyRestaurant(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.store.ListMenuItems(ctx, rest.ID, false)
}

// DeletedMenuItem is the outcome of DeleteMenuItem. ReleasedImage is set
// when the deleted item held the last reference to its image.
type DeletedMenuItem struct {
	Item          *models.MenuItem
	ReleasedImage string
}

// DeleteMenuItem removes an item from the caller's menu. Items of other
// restaurants are reported as not found.
func (s *Service) DeleteMenuItem(ctx context.Context, sess Session, itemID uint) (*DeletedMenuItem, error) {
	rest, err := s.MyRestaurant(ctx, sess)
	if err != nil {
		return nil, err
	}
	item, err := s.store.MenuItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != rest.ID {
		return nil, errs.NewObjectNotFoundError("menu item", itemID)
	}
	if err := s.store.DeleteMenuItem(ctx, rest.ID, itemID); err != nil {
		return nil, err
	}
	out := &DeletedMenuItem{Item: item}
	if item.ImagePath != "" {
		n, err := s.store.CountMenuItemsByImage(ctx, item.ImagePath)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			out.ReleasedImage = item.ImagePath
		}
	}
	return out, nil
}

// ListRestaurantOrders returns the caller's restaurant orders, optionally filtered by
// status.
func (s *Service) ListRestaurantOrders(ctx context.Context, sess Session, status string) ([]models.Order, error) {
	rest, err := s.MyRestaurant(ctx, sess)
	if err != nil {
		return nil, err
	}
	f := store.OrderFilter{RestaurantID: rest.ID, WithCustomer: true}
	if strings.TrimSpace(status) != "" {
		if f.Status, err = statemachine.ParseStatus(status); err != nil {
			return nil, err
		}
	}
	return s.store.ListOrders(ctx, f)
}

// UpdateOrderStatus moves one of the caller's orders along the kitchen flow
// or cancels it.
func (s *Service) UpdateOrderStatus(ctx context.Context, sess Session, orderID uint, rawStatus string) (*models.Order, error) {
	rest, err := s.MyRestaurant(ctx, sess)
	if err != nil {
		return nil, err
	}
	to, err := statemachine.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	order, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.RestaurantID != rest.ID {
		return nil, errs.NewForbiddenError(string(sess.Role), fmt.Sprintf("update order %d of another restaurant", orderID))
	}
	return s.transition(ctx, sess, order, to, store.OrderScope{RestaurantID: rest.ID}, "updated by restaurant")
}

// DailyRevenue is the caller's revenue per calendar day.
func (s *Service) DailyRevenue(ctx context.Context, sess Session) ([]store.RevenuePoint, error) {
	rest, err := s.MyRestaurant(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.store.DailyRevenue(ctx, rest.ID)
}

// MyRestaurants lists everything the caller owns, approved or pending.
func (s *Service) MyRestaurants(ctx context.Context, sess Session) ([]models.Restaurant, error) {
	if err := require(sess, models.RoleRestaurant, "list owned restaurants"); err != nil {
		return nil, err
	}
	return s.store.ListRestaurantsByOwner(ctx, sess.UserID)
}

type RestaurantInput struct {
	Name        string `json:"name"`
	BannerImage string `json:"banner_image"`
}

// CreateRestaurant registers a new restaurant for the caller. It stays
// invisible to customers until a superadmin approves it.
func (s *Service) CreateRestaurant(ctx context.Context, sess Session, in RestaurantInput) (*models.Restaurant, error) {
	if err := require(sess, models.RoleRestaurant, "create a restaurant"); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	r := &models.Restaurant{OwnerID: sess.UserID, Name: name, BannerImage: in.BannerImage, Rating: 4.0}
	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
