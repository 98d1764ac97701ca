package access_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"foodees-api/access"
	"foodees-api/cart"
	"foodees-api/config"
	"foodees-api/errs"
	"foodees-api/models"
	"foodees-api/store"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "secret123"

type AccessTestSuite struct {
	suite.Suite
	ctx   context.Context
	db    *gorm.DB
	store *store.Store
	svc   *access.Service
	now   time.Time

	admin        models.User
	owner        models.User
	otherOwner   models.User
	pendingOwner models.User
	customer     models.User
	otherCust    models.User
	agentA       models.User
	agentB       models.User

	restA       models.Restaurant
	restB       models.Restaurant
	restPending models.Restaurant

	biryani models.MenuItem
	veg     models.MenuItem
	pizza   models.MenuItem
}

func TestAccessTestSuite(t *testing.T) {
	suite.Run(t, new(AccessTestSuite))
}

func (s *AccessTestSuite) SetupTest() {
	s.ctx = context.Background()
	db, err := config.InitDB(filepath.Join(s.T().TempDir(), "access.db"), config.NewLogger("error"))
	s.Require().NoError(err)
	s.db = db
	s.store = store.New(db)
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	s.svc = access.New(s.store,
		access.WithPasswordCost(bcrypt.MinCost),
		access.WithClock(func() time.Time { return s.now }),
	)

	s.admin = s.createUser("9876543210", models.RoleSuperAdmin)
	s.owner = s.createUser("9876543211", models.RoleRestaurant)
	s.otherOwner = s.createUser("9876543221", models.RoleRestaurant)
	s.pendingOwner = s.createUser("9876543231", models.RoleRestaurant)
	s.customer = s.createUser("9876543212", models.RoleCustomer)
	s.otherCust = s.createUser("9876543222", models.RoleCustomer)
	s.agentA = s.createUser("9876543213", models.RoleDelivery)
	s.agentB = s.createUser("9876543223", models.RoleDelivery)

	s.restA = s.createRestaurant(s.owner.ID, "Biryani House", true)
	s.restB = s.createRestaurant(s.otherOwner.ID, "Pizza Corner", true)
	s.restPending = s.createRestaurant(s.pendingOwner.ID, "Chai Sutta Bar", false)

	s.biryani = s.createItem(s.restA.ID, "Chicken Biryani", 250)
	s.veg = s.createItem(s.restA.ID, "Veg Biryani", 180)
	s.pizza = s.createItem(s.restB.ID, "Margherita Pizza", 320)
}

func (s *AccessTestSuite) createUser(phone string, role models.UserRole) models.User {
	hash, err := access.HashPassword(testPassword, bcrypt.MinCost)
	s.Require().NoError(err)
	u := models.User{Phone: phone, PasswordHash: hash, Role: role, Name: string(role) + " " + phone, Status: models.UserActive}
	s.Require().NoError(s.store.CreateUser(s.ctx, &u))
	return u
}

func (s *AccessTestSuite) createRestaurant(owner uint, name string, approved bool) models.Restaurant {
	r := models.Restaurant{OwnerID: owner, Name: name, Rating: 4.0, IsApproved: approved}
	s.Require().NoError(s.store.CreateRestaurant(s.ctx, &r))
	return r
}

func (s *AccessTestSuite) createItem(restaurantID uint, name string, price float64) models.MenuItem {
	item := models.MenuItem{RestaurantID: restaurantID, Name: name, Price: price, IsAvailable: true}
	s.Require().NoError(s.store.CreateMenuItem(s.ctx, &item))
	return item
}

func (s *AccessTestSuite) createOrder(customerID, restaurantID uint, total float64, status models.OrderStatus, agent *uint) models.Order {
	o := models.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		Items:        models.ItemSnapshot{{Name: "Thali", Quantity: 1, Price: total}},
		Total:        total,
		Status:       status,
		DeliveryID:   agent,
	}
	s.Require().NoError(s.store.CreateOrder(s.ctx, &o))
	return o
}

func session(u models.User) access.Session {
	return access.Session{ID: "session-" + u.Phone, UserID: u.ID, Role: u.Role, Name: u.Name}
}

// Authentication

func (s *AccessTestSuite) TestAuthenticate() {
	u, err := s.svc.Authenticate(s.ctx, " 9876543212 ", testPassword)
	s.Require().NoError(err)
	s.Equal(s.customer.ID, u.ID)
	s.Equal(models.RoleCustomer, u.Role)

	_, err = s.svc.Authenticate(s.ctx, "9876543212", "wrong")
	s.ErrorIs(err, errs.ErrUnauthenticated)

	_, err = s.svc.Authenticate(s.ctx, "0000000000", testPassword)
	s.ErrorIs(err, errs.ErrUnauthenticated)
}

func (s *AccessTestSuite) TestAuthenticate_InactiveUser() {
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", s.agentB.ID).Update("status", models.UserInactive).Error)

	_, err := s.svc.Authenticate(s.ctx, s.agentB.Phone, testPassword)
	s.ErrorIs(err, errs.ErrUnauthenticated)
}

func (s *AccessTestSuite) TestVerifySession() {
	s.NoError(s.svc.VerifySession(s.ctx, session(s.agentB)))

	stale := session(s.agentB)
	stale.Role = models.RoleSuperAdmin
	s.ErrorIs(s.svc.VerifySession(s.ctx, stale), errs.ErrUnauthenticated)

	s.ErrorIs(s.svc.VerifySession(s.ctx, access.Session{ID: "gone", UserID: 9999, Role: models.RoleCustomer}), errs.ErrUnauthenticated)
	s.ErrorIs(s.svc.VerifySession(s.ctx, access.Session{}), errs.ErrUnauthenticated)

	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", s.agentB.ID).Update("status", models.UserInactive).Error)
	s.ErrorIs(s.svc.VerifySession(s.ctx, session(s.agentB)), errs.ErrUnauthenticated)
}

func (s *AccessTestSuite) TestRegister() {
	u, err := s.svc.Register(s.ctx, access.RegisterInput{Name: "Asha", Phone: "9123456780", Password: "pass1234", Role: models.RoleCustomer})
	s.Require().NoError(err)
	s.True(u.IsActive())

	logged, err := s.svc.Authenticate(s.ctx, "9123456780", "pass1234")
	s.Require().NoError(err)
	s.Equal(u.ID, logged.ID)

	_, err = s.svc.Register(s.ctx, access.RegisterInput{Name: "Dup", Phone: "9123456780", Password: "pass1234", Role: models.RoleCustomer})
	s.ErrorIs(err, errs.ErrConflict)
}

func (s *AccessTestSuite) TestRegister_Validation() {
	cases := map[string]access.RegisterInput{
		"missing name":     {Phone: "9123456780", Password: "pass1234", Role: models.RoleCustomer},
		"short phone":      {Name: "A", Phone: "12345", Password: "pass1234", Role: models.RoleCustomer},
		"letters in phone": {Name: "A", Phone: "98765abcde", Password: "pass1234", Role: models.RoleCustomer},
		"short password":   {Name: "A", Phone: "9123456780", Password: "123", Role: models.RoleCustomer},
		"superadmin":       {Name: "A", Phone: "9123456780", Password: "pass1234", Role: models.RoleSuperAdmin},
		"unknown role":     {Name: "A", Phone: "9123456780", Password: "pass1234", Role: "driver"},
	}
	for name, in := range cases {
		_, err := s.svc.Register(s.ctx, in)
		s.True(errs.IsValidation(err), name)
	}
}

func (s *AccessTestSuite) TestProfile() {
	u, err := s.svc.Profile(s.ctx, session(s.owner))
	s.Require().NoError(err)
	s.Equal(s.owner.Phone, u.Phone)

	_, err = s.svc.Profile(s.ctx, access.Session{})
	s.ErrorIs(err, errs.ErrUnauthenticated)
}

// Role checks

func (s *AccessTestSuite) TestWrongRoleIsForbidden() {
	_, err := s.svc.ListMenu(s.ctx, session(s.customer))
	s.ErrorIs(err, errs.ErrForbidden)

	_, err = s.svc.Dashboard(s.ctx, session(s.owner))
	s.ErrorIs(err, errs.ErrForbidden)

	_, err = s.svc.ClaimOrder(s.ctx, session(s.customer), 1)
	s.ErrorIs(err, errs.ErrForbidden)

	err = s.svc.AddToCart(s.ctx, session(s.agentA), &cart.Cart{}, s.biryani.ID, 1)
	s.ErrorIs(err, errs.ErrForbidden)

	_, err = s.svc.BrowseRestaurants(s.ctx, access.Session{Role: models.RoleCustomer})
	s.ErrorIs(err, errs.ErrUnauthenticated)
}

// Restaurant scoping

func (s *AccessTestSuite) TestRestaurantOrdersAreScoped() {
	mine := s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusPending, nil)
	theirs := s.createOrder(s.customer.ID, s.restB.ID, 320, models.StatusPending, nil)

	orders, err := s.svc.ListRestaurantOrders(s.ctx, session(s.owner), "")
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(mine.ID, orders[0].ID)
	s.Require().NotNil(orders[0].Customer)

	_, err = s.svc.UpdateOrderStatus(s.ctx, session(s.owner), theirs.ID, "preparing")
	s.ErrorIs(err, errs.ErrForbidden)

	o, err := s.store.OrderByID(s.ctx, theirs.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, o.Status)
}

func (s *AccessTestSuite) TestRestaurantOrders_StatusFilter() {
	s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusPending, nil)
	ready := s.createOrder(s.customer.ID, s.restA.ID, 180, models.StatusReady, nil)

	orders, err := s.svc.ListRestaurantOrders(s.ctx, session(s.owner), "READY")
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal(ready.ID, orders[0].ID)

	_, err = s.svc.ListRestaurantOrders(s.ctx, session(s.owner), "cooking")
	s.True(errs.IsValidation(err))
}

func (s *AccessTestSuite) TestDeleteMenuItem_OnlyOwnMenu() {
	_, err := s.svc.DeleteMenuItem(s.ctx, session(s.owner), s.pizza.ID)
	s.ErrorIs(err, errs.ErrObjectNotFound)

	still, err := s.store.MenuItemByID(s.ctx, s.pizza.ID)
	s.Require().NoError(err)
	s.Equal(s.restB.ID, still.RestaurantID)

	deleted, err := s.svc.DeleteMenuItem(s.ctx, session(s.owner), s.veg.ID)
	s.Require().NoError(err)
	s.Equal("Veg Biryani", deleted.Item.Name)
	s.Empty(deleted.ReleasedImage)

	menu, err := s.svc.ListMenu(s.ctx, session(s.owner))
	s.Require().NoError(err)
	s.Require().Len(menu, 1)
	s.Equal(s.biryani.ID, menu[0].ID)
}

func (s *AccessTestSuite) TestDeleteMenuItem_ReleasesImageOnlyWhenUnreferenced() {
	ref := "images/food_6c3f2a9e-1b7d-4e0a-9f5c-2d8e4a1b3c70.jpg"
	mine := models.MenuItem{RestaurantID: s.restA.ID, Name: "Raita", Price: 40, ImagePath: ref, IsAvailable: true}
	theirs := models.MenuItem{RestaurantID: s.restB.ID, Name: "Garlic Bread", Price: 90, ImagePath: ref, IsAvailable: true}
	s.Require().NoError(s.store.CreateMenuItem(s.ctx, &mine))
	s.Require().NoError(s.store.CreateMenuItem(s.ctx, &theirs))

	deleted, err := s.svc.DeleteMenuItem(s.ctx, session(s.owner), mine.ID)
	s.Require().NoError(err)
	s.Empty(deleted.ReleasedImage)

	deleted, err = s.svc.DeleteMenuItem(s.ctx, session(s.otherOwner), theirs.ID)
	s.Require().NoError(err)
	s.Equal(ref, deleted.ReleasedImage)
}

func (s *AccessTestSuite) TestAddMenuItem_IgnoresImagePathInBody() {
	var in access.MenuItemInput
	s.Require().NoError(json.Unmarshal([]byte(`{"name":"Kulfi","price":60,"image_path":"images/food_other.jpg"}`), &in))
	s.Empty(in.ImagePath)

	item, err := s.svc.AddMenuItem(s.ctx, session(s.owner), in)
	s.Require().NoError(err)
	s.Empty(item.ImagePath)
}

func (s *AccessTestSuite) TestUnapprovedRestaurantIsNotFound() {
	sess := session(s.pendingOwner)

	_, err := s.svc.MyRestaurant(s.ctx, sess)
	s.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = s.svc.ListMenu(s.ctx, sess)
	s.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = s.svc.ListRestaurantOrders(s.ctx, sess, "")
	s.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = s.svc.DailyRevenue(s.ctx, sess)
	s.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = s.svc.AddMenuItem(s.ctx, sess, access.MenuItemInput{Name: "Masala Chai", Price: 20})
	s.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = s.svc.BrowseMenu(s.ctx, session(s.customer), s.restPending.ID)
	s.ErrorIs(err, errs.ErrObjectNotFound)

	owned, err := s.svc.MyRestaurants(s.ctx, sess)
	s.Require().NoError(err)
	s.Require().Len(owned, 1)
	s.False(owned[0].IsApproved)
}

func (s *AccessTestSuite) TestAddMenuItem() {
	item, err := s.svc.AddMenuItem(s.ctx, session(s.owner), access.MenuItemInput{Name: " Paneer Tikka ", HindiName: "पनीर टिक्का", Price: 220})
	s.Require().NoError(err)
	s.Equal("Paneer Tikka", item.Name)
	s.Equal(s.restA.ID, item.RestaurantID)
	s.True(item.IsAvailable)

	off := false
	hidden, err := s.svc.AddMenuItem(s.ctx, session(s.owner), access.MenuItemInput{Name: "Seasonal", Price: 90, IsAvailable: &off})
	s.Require().NoError(err)
	s.False(hidden.IsAvailable)

	_, err = s.svc.AddMenuItem(s.ctx, session(s.owner), access.MenuItemInput{Name: "", Price: 100})
	s.ErrorIs(err, errs.ErrValueIsRequired)
	_, err = s.svc.AddMenuItem(s.ctx, session(s.owner), access.MenuItemInput{Name: "Free", Price: 0})
	s.ErrorIs(err, errs.ErrValueIsInvalid)

	visible, err := s.svc.BrowseMenu(s.ctx, session(s.customer), s.restA.ID)
	s.Require().NoError(err)
	for _, m := range visible {
		s.NotEqual(hidden.ID, m.ID)
	}
	s.Len(visible, 3)
}

func (s *AccessTestSuite) TestCreateRestaurantNeedsApproval() {
	r, err := s.svc.CreateRestaurant(s.ctx, session(s.pendingOwner), access.RestaurantInput{Name: "Dosa Plaza"})
	s.Require().NoError(err)
	s.False(r.IsApproved)

	browse, err := s.svc.BrowseRestaurants(s.ctx, session(s.customer))
	s.Require().NoError(err)
	for _, b := range browse {
		s.NotEqual(r.ID, b.ID)
	}
}

// Lifecycle

func (s *AccessTestSuite) TestOrderLifecycle_AdjacentStepsOnly() {
	o := s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusPending, nil)
	owner := session(s.owner)

	_, err := s.svc.UpdateOrderStatus(s.ctx, owner, o.ID, "ready")
	s.ErrorIs(err, errs.ErrInvalidTransition)
	s.Contains(err.Error(), "preparing")

	_, err = s.svc.UpdateOrderStatus(s.ctx, owner, o.ID, "delivered")
	s.ErrorIs(err, errs.ErrInvalidTransition)

	_, err = s.svc.UpdateOrderStatus(s.ctx, owner, o.ID, "shipped")
	s.True(errs.IsValidation(err))

	updated, err := s.svc.UpdateOrderStatus(s.ctx, owner, o.ID, "preparing")
	s.Require().NoError(err)
	s.Equal(models.StatusPreparing, updated.Status)

	updated, err = s.svc.UpdateOrderStatus(s.ctx, owner, o.ID, "ready")
	s.Require().NoError(err)
	s.Equal(models.StatusReady, updated.Status)

	_, err = s.svc.UpdateOrderStatus(s.ctx, owner, o.ID, "delivered")
	s.ErrorIs(err, errs.ErrInvalidTransition)

	history, err := s.store.OrderHistory(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Len(history, 3)
}

func (s *AccessTestSuite) TestClaimAndDeliver() {
	o := s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusReady, nil)

	available, err := s.svc.AvailableOrders(s.ctx, session(s.agentA))
	s.Require().NoError(err)
	s.Require().Len(available, 1)

	claimed, err := s.svc.ClaimOrder(s.ctx, session(s.agentA), o.ID)
	s.Require().NoError(err)
	s.Require().NotNil(claimed.DeliveryID)
	s.Equal(s.agentA.ID, *claimed.DeliveryID)

	available, err = s.svc.AvailableOrders(s.ctx, session(s.agentB))
	s.Require().NoError(err)
	s.Empty(available)

	active, err := s.svc.ActiveOrders(s.ctx, session(s.agentA))
	s.Require().NoError(err)
	s.Require().Len(active, 1)
	s.Require().NotNil(active[0].Customer)
	s.Equal(s.customer.Name, active[0].Customer.Name)

	_, err = s.svc.MarkDelivered(s.ctx, session(s.agentB), o.ID)
	s.ErrorIs(err, errs.ErrForbidden)

	done, err := s.svc.MarkDelivered(s.ctx, session(s.agentA), o.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusDelivered, done.Status)

	active, err = s.svc.ActiveOrders(s.ctx, session(s.agentA))
	s.Require().NoError(err)
	s.Empty(active)
}

func (s *AccessTestSuite) TestClaimOrder_NotReady() {
	o := s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusPreparing, nil)

	_, err := s.svc.ClaimOrder(s.ctx, session(s.agentA), o.ID)
	s.ErrorIs(err, errs.ErrConflict)
	s.Contains(err.Error(), "preparing")

	_, err = s.svc.ClaimOrder(s.ctx, session(s.agentA), 9999)
	s.ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *AccessTestSuite) TestClaimOrder_ConcurrentAgentsOneWinner() {
	o := s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusReady, nil)
	agents := []models.User{s.agentA, s.agentB}

	var wg sync.WaitGroup
	results := make([]error, len(agents))
	start := make(chan struct{})
	for i, a := range agents {
		wg.Add(1)
		go func(i int, a models.User) {
			defer wg.Done()
			<-start
			_, results[i] = s.svc.ClaimOrder(s.ctx, session(a), o.ID)
		}(i, a)
	}
	close(start)
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, errs.ErrConflict):
			conflicts++
		}
	}
	s.Equal(1, wins)
	s.Equal(1, conflicts)

	got, err := s.store.OrderByID(s.ctx, o.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got.DeliveryID)
}

// Cart and checkout

func (s *AccessTestSuite) TestCheckout() {
	sess := session(s.customer)
	c := &cart.Cart{}
	s.Require().NoError(s.svc.AddToCart(s.ctx, sess, c, s.biryani.ID, 1))
	s.Require().NoError(s.svc.AddToCart(s.ctx, sess, c, s.biryani.ID, 1))

	order, err := s.svc.Checkout(s.ctx, sess, c)
	s.Require().NoError(err)

	s.Equal(500.0, order.Total)
	s.Equal(models.StatusPending, order.Status)
	s.Nil(order.DeliveryID)
	s.Regexp(`^TRACK\d{4}$`, order.TrackingID)
	s.True(c.Empty())

	stored, err := s.store.OrderByID(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(models.ItemSnapshot{{Name: "Chicken Biryani", Quantity: 2, Price: 250}}, stored.Items)
	s.Equal(stored.Items.Total(), stored.Total)

	mine, err := s.svc.ListMyOrders(s.ctx, sess)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(order.ID, mine[0].ID)
}

func (s *AccessTestSuite) TestCheckout_UsesLivePrices() {
	sess := session(s.customer)
	c := &cart.Cart{}
	s.Require().NoError(s.svc.AddToCart(s.ctx, sess, c, s.veg.ID, 2))
	s.Require().NoError(s.db.Model(&models.MenuItem{}).Where("id = ?", s.veg.ID).Update("price", 200).Error)

	order, err := s.svc.Checkout(s.ctx, sess, c)
	s.Require().NoError(err)
	s.Equal(400.0, order.Total)
}

func (s *AccessTestSuite) TestCheckout_UnavailableItemKeepsCart() {
	sess := session(s.customer)
	c := &cart.Cart{}
	s.Require().NoError(s.svc.AddToCart(s.ctx, sess, c, s.veg.ID, 1))
	s.Require().NoError(s.db.Model(&models.MenuItem{}).Where("id = ?", s.veg.ID).Update("is_available", false).Error)

	_, err := s.svc.Checkout(s.ctx, sess, c)
	s.ErrorIs(err, errs.ErrValueIsInvalid)
	s.False(c.Empty())

	orders, err := s.svc.ListMyOrders(s.ctx, sess)
	s.Require().NoError(err)
	s.Empty(orders)
}

func (s *AccessTestSuite) TestCheckout_EmptyCart() {
	_, err := s.svc.Checkout(s.ctx, session(s.customer), &cart.Cart{})
	s.ErrorIs(err, errs.ErrValueIsRequired)
}

func (s *AccessTestSuite) TestAddToCart_Rejections() {
	sess := session(s.customer)
	c := &cart.Cart{}
	s.Require().NoError(s.svc.AddToCart(s.ctx, sess, c, s.biryani.ID, 1))

	s.True(errs.IsValidation(s.svc.AddToCart(s.ctx, sess, c, s.pizza.ID, 1)))
	s.True(errs.IsValidation(s.svc.AddToCart(s.ctx, sess, c, s.veg.ID, 0)))
	s.ErrorIs(s.svc.AddToCart(s.ctx, sess, c, 9999, 1), errs.ErrObjectNotFound)

	chai := s.createItem(s.restPending.ID, "Masala Chai", 20)
	s.ErrorIs(s.svc.AddToCart(s.ctx, sess, &cart.Cart{}, chai.ID, 1), errs.ErrObjectNotFound)

	s.Len(c.Lines, 1)
}

func (s *AccessTestSuite) TestMyOrderAndCancel() {
	o := s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusPending, nil)

	_, err := s.svc.MyOrder(s.ctx, session(s.otherCust), o.ID)
	s.ErrorIs(err, errs.ErrObjectNotFound)
	_, err = s.svc.CancelOrder(s.ctx, session(s.otherCust), o.ID)
	s.ErrorIs(err, errs.ErrObjectNotFound)

	detail, err := s.svc.MyOrder(s.ctx, session(s.customer), o.ID)
	s.Require().NoError(err)
	s.Contains(detail.Next, models.StatusCancelled)
	s.Len(detail.History, 1)

	cancelled, err := s.svc.CancelOrder(s.ctx, session(s.customer), o.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCancelled, cancelled.Status)

	_, err = s.svc.CancelOrder(s.ctx, session(s.customer), o.ID)
	s.ErrorIs(err, errs.ErrInvalidTransition)
}

func (s *AccessTestSuite) TestCustomerCannotCancelOncePreparing() {
	o := s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusPreparing, nil)

	_, err := s.svc.CancelOrder(s.ctx, session(s.customer), o.ID)
	s.ErrorIs(err, errs.ErrInvalidTransition)

	cancelled, err := s.svc.UpdateOrderStatus(s.ctx, session(s.owner), o.ID, "cancelled")
	s.Require().NoError(err)
	s.Equal(models.StatusCancelled, cancelled.Status)
}

// Earnings and dashboards

func (s *AccessTestSuite) TestEarnings() {
	for _, total := range []float64{200, 300, 500} {
		s.createOrder(s.customer.ID, s.restA.ID, total, models.StatusDelivered, &s.agentA.ID)
	}
	s.createOrder(s.customer.ID, s.restA.ID, 999, models.StatusReady, &s.agentA.ID)
	s.createOrder(s.customer.ID, s.restA.ID, 700, models.StatusDelivered, &s.agentB.ID)

	e, err := s.svc.Earnings(s.ctx, session(s.agentA))
	s.Require().NoError(err)
	s.Equal(int64(3), e.Deliveries)
	s.InDelta(200.0, e.Earnings, 1e-9)
}

func (s *AccessTestSuite) TestDashboard() {
	s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusDelivered, &s.agentA.ID)
	s.createOrder(s.customer.ID, s.restB.ID, 320, models.StatusPending, nil)

	d, err := s.svc.Dashboard(s.ctx, session(s.admin))
	s.Require().NoError(err)
	s.Equal(int64(2), d.ApprovedRestaurants)
	s.Equal(int64(2), d.Customers)
	s.Len(d.StatusBreakdown, 2)
}

func (s *AccessTestSuite) TestDashboard_Windows() {
	s.now = time.Now().UTC()
	s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusDelivered, &s.agentA.ID)

	d, err := s.svc.Dashboard(s.ctx, session(s.admin))
	s.Require().NoError(err)
	s.Equal(int64(1), d.TodayOrders)
	s.Equal(int64(1), d.MonthOrders)
	s.Require().Len(d.MonthlyRevenue, 1)
	s.Equal(250.0, d.MonthlyRevenue[0].Revenue)
}

func (s *AccessTestSuite) TestApproveRestaurant() {
	r, err := s.svc.ApproveRestaurant(s.ctx, session(s.admin), s.restPending.ID, true)
	s.Require().NoError(err)
	s.True(r.IsApproved)

	mine, err := s.svc.MyRestaurant(s.ctx, session(s.pendingOwner))
	s.Require().NoError(err)
	s.Equal(s.restPending.ID, mine.ID)

	_, err = s.svc.ApproveRestaurant(s.ctx, session(s.admin), 9999, true)
	s.ErrorIs(err, errs.ErrObjectNotFound)

	_, err = s.svc.ApproveRestaurant(s.ctx, session(s.owner), s.restPending.ID, false)
	s.ErrorIs(err, errs.ErrForbidden)
}

func (s *AccessTestSuite) TestAdminLists() {
	all, err := s.svc.ListAllRestaurants(s.ctx, session(s.admin))
	s.Require().NoError(err)
	s.Len(all, 3)

	agents, err := s.svc.ListDeliveryAgents(s.ctx, session(s.admin))
	s.Require().NoError(err)
	s.Len(agents, 2)

	for i := 0; i < access.AdminPageSize+5; i++ {
		s.createOrder(s.customer.ID, s.restA.ID, 100, models.StatusPending, nil)
	}
	first, err := s.svc.ListAllOrders(s.ctx, session(s.admin), 1)
	s.Require().NoError(err)
	s.Len(first, access.AdminPageSize)
	second, err := s.svc.ListAllOrders(s.ctx, session(s.admin), 2)
	s.Require().NoError(err)
	s.Len(second, 5)
	s.Greater(first[len(first)-1].ID, second[0].ID)
}

func (s *AccessTestSuite) TestDailyRevenue() {
	s.createOrder(s.customer.ID, s.restA.ID, 250, models.StatusDelivered, &s.agentA.ID)
	s.createOrder(s.customer.ID, s.restB.ID, 320, models.StatusDelivered, &s.agentA.ID)

	points, err := s.svc.DailyRevenue(s.ctx, session(s.owner))
	s.Require().NoError(err)
	s.Require().Len(points, 1)
	s.Equal(250.0, points[0].Revenue)
}

func (s *AccessTestSuite) TestRevenueExcludesCancelledOrders() {
	sess := session(s.customer)

	c := &cart.Cart{}
	s.Require().NoError(s.svc.AddToCart(s.ctx, sess, c, s.biryani.ID, 2))
	cancelled, err := s.svc.Checkout(s.ctx, sess, c)
	s.Require().NoError(err)
	_, err = s.svc.CancelOrder(s.ctx, sess, cancelled.ID)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.AddToCart(s.ctx, sess, c, s.veg.ID, 1))
	_, err = s.svc.Checkout(s.ctx, sess, c)
	s.Require().NoError(err)

	daily, err := s.svc.DailyRevenue(s.ctx, session(s.owner))
	s.Require().NoError(err)
	s.Require().Len(daily, 1)
	s.Equal(180.0, daily[0].Revenue)

	d, err := s.svc.Dashboard(s.ctx, session(s.admin))
	s.Require().NoError(err)
	s.Require().Len(d.MonthlyRevenue, 1)
	s.Equal(180.0, d.MonthlyRevenue[0].Revenue)
}
