package store

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"foodees-api/errs"
	"foodees-api/models"

	"golang.org/x/crypto/bcrypt"
)

type demoUser struct {
	phone, password, name string
	role                  models.UserRole
}

var demoUsers = []demoUser{
	{"9876543210", "admin123", "Super Admin", models.RoleSuperAdmin},
	{"9876543211", "rest123", "Restaurant Owner", models.RoleRestaurant},
	{"9876543212", "cust123", "Rahul Sharma", models.RoleCustomer},
	{"9876543213", "del123", "Delivery Boy 1", models.RoleDelivery},
}

type demoRestaurant struct {
	name     string
	rating   float64
	approved bool
	menu     []models.MenuItem
}

var demoRestaurants = []demoRestaurant{
	{name: "Biryani House", rating: 4.5, approved: true, menu: []models.MenuItem{
		{Name: "Chicken Biryani", HindiName: "मुर्गा बिरयानी", Price: 250, IsAvailable: true},
		{Name: "Veg Biryani", HindiName: "वेज बिरयानी", Price: 180, IsAvailable: true},
	}},
	{name: "Pizza Corner", rating: 4.2, approved: true, menu: []models.MenuItem{
		{Name: "Margherita Pizza", HindiName: "मार्गेरिटा पिज्जा", Price: 320, IsAvailable: true},
		{Name: "Pepperoni Pizza", HindiName: "पेपरनी पिज्जा", Price: 380, IsAvailable: true},
	}},
	{name: "Chai Sutta Bar", rating: 4.8, approved: false},
}

// SeedReport counts the rows a Seed call inserted.
type SeedReport struct {
	Users       int
	Restaurants int
	MenuItems   int
}

// Seed inserts the demo accounts, restaurants and menu. Existing phones are
// left untouched and restaurants are only added for an owner that has none,
// so running it twice is a no-op. cost is the bcrypt cost for the passwords.
func (s *Store) Seed(ctx context.Context, cost int) (SeedReport, error) {
	var report SeedReport
	var owner *models.User

	for _, du := range demoUsers {
		u, err := s.UserByPhone(ctx, du.phone)
		if errors.Is(err, errs.ErrObjectNotFound) {
			hash, herr := bcrypt.GenerateFromPassword([]byte(du.password), cost)
			if herr != nil {
				return report, fmt.Errorf("seed: hash password: %w", herr)
			}
			u = &models.User{
				Phone:        du.phone,
				PasswordHash: string(hash),
				Role:         du.role,
				Name:         du.name,
				Status:       models.UserActive,
			}
			if err = s.CreateUser(ctx, u); err != nil {
				return report, fmt.Errorf("seed: %w", err)
			}
			report.Users++
		} else if err != nil {
			return report, fmt.Errorf("seed: %w", err)
		}
		if du.role == models.RoleRestaurant {
			owner = u
		}
	}

	existing, err := s.ListRestaurantsByOwner(ctx, owner.ID)
	if err != nil {
		return report, fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return report, nil
	}

	for _, dr := range demoRestaurants {
		r := &models.Restaurant{OwnerID: owner.ID, Name: dr.name, Rating: dr.rating, IsApproved: dr.approved}
		if err := s.CreateRestaurant(ctx, r); err != nil {
			return report, fmt.Errorf("seed: %w", err)
		}
		report.Restaurants++
		for _, item := range dr.menu {
			item.RestaurantID = r.ID
			if err := s.CreateMenuItem(ctx, &item); err != nil {
				return report, fmt.Errorf("seed: %w", err)
			}
			report.MenuItems++
		}
	}
	return report, nil
}

// SampleOrderCount is how many orders SeedOrders places by default.
const SampleOrderCount = 20

// sampleStops is where successive sample orders stop in the order flow, so a
// seeded database has work waiting at every stage.
var sampleStops = []models.OrderStatus{
	models.StatusDelivered,
	models.StatusDelivered,
	models.StatusReady,
	models.StatusPreparing,
	models.StatusPending,
}

// SeedOrders places n sample orders from the demo customer at random approved
// demo restaurants. Each order is walked through the normal flow, with the
// demo agent claiming and delivering the ones that get that far. It does
// nothing once the demo customer has any order. Seed must have run first.
func (s *Store) SeedOrders(ctx context.Context, n int) (int, error) {
	customer, err := s.UserByPhone(ctx, demoUsers[2].phone)
	if err != nil {
		return 0, fmt.Errorf("seed orders: %w", err)
	}
	agent, err := s.UserByPhone(ctx, demoUsers[3].phone)
	if err != nil {
		return 0, fmt.Errorf("seed orders: %w", err)
	}
	owner, err := s.UserByPhone(ctx, demoUsers[1].phone)
	if err != nil {
		return 0, fmt.Errorf("seed orders: %w", err)
	}
	placed, err := s.ListOrders(ctx, OrderFilter{CustomerID: customer.ID, Limit: 1})
	if err != nil {
		return 0, fmt.Errorf("seed orders: %w", err)
	}
	if len(placed) > 0 {
		return 0, nil
	}

	owned, err := s.ListRestaurantsByOwner(ctx, owner.ID)
	if err != nil {
		return 0, fmt.Errorf("seed orders: %w", err)
	}
	var menus [][]models.MenuItem
	for _, r := range owned {
		if !r.IsApproved {
			continue
		}
		items, err := s.ListMenuItems(ctx, r.ID, true)
		if err != nil {
			return 0, fmt.Errorf("seed orders: %w", err)
		}
		if len(items) > 0 {
			menus = append(menus, items)
		}
	}
	if len(menus) == 0 {
		return 0, errs.NewObjectNotFoundError("approved demo restaurant", owner.ID)
	}

	for i := 0; i < n; i++ {
		menu := menus[rand.IntN(len(menus))]
		item := menu[rand.IntN(len(menu))]
		qty := 1 + rand.IntN(2)
		o := &models.Order{
			CustomerID:   customer.ID,
			RestaurantID: item.RestaurantID,
			Items:        models.ItemSnapshot{{Name: item.Name, Quantity: qty, Price: item.Price}},
			Total:        models.RoundMoney(item.Price * float64(qty)),
			Status:       models.StatusPending,
		}
		if err := s.CreateOrder(ctx, o); err != nil {
			return i, fmt.Errorf("seed orders: %w", err)
		}
		if err := s.advanceSample(ctx, o, owner.ID, agent.ID, sampleStops[i%len(sampleStops)]); err != nil {
			return i + 1, err
		}
	}
	return n, nil
}

func (s *Store) advanceSample(ctx context.Context, o *models.Order, ownerID, agentID uint, stop models.OrderStatus) error {
	from := models.StatusPending
	for _, to := range []models.OrderStatus{models.StatusPreparing, models.StatusReady, models.StatusDelivered} {
		if from == stop {
			return nil
		}
		scope, actor, note := OrderScope{RestaurantID: o.RestaurantID}, ownerID, "sample order"
		if to == models.StatusDelivered {
			claimed, err := s.ClaimOrder(ctx, o.ID, agentID)
			if err != nil {
				return fmt.Errorf("seed orders: %w", err)
			}
			if !claimed {
				return fmt.Errorf("seed orders: order %d could not be claimed", o.ID)
			}
			scope, actor = OrderScope{DeliveryID: agentID}, agentID
		}
		applied, err := s.TransitionStatus(ctx, o.ID, scope, from, to, actor, note)
		if err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
		if !applied {
			return fmt.Errorf("seed orders: order %d did not move %s -> %s", o.ID, from, to)
		}
		from = to
	}
	return nil
}
