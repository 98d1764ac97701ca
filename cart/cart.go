// Package cart holds the per-session shopping cart. A cart lives outside the
// database until checkout turns it into an order.
package cart

import (
	"fmt"

	"foodees-api/errs"
	"foodees-api/models"
)

type Line struct {
	MenuItemID uint    `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"qty"`
}

// Cart collects lines from a single restaurant.
type Cart struct {
	RestaurantID uint   `json:"restaurant_id"`
	Lines        []Line `json:"lines"`
}

// Add appends a line or bumps the quantity of an existing one. Lines from a
// second restaurant are rejected; an order belongs to exactly one restaurant.
func (c *Cart) Add(restaurantID uint, line Line) error {
	if line.Quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("qty", fmt.Errorf("must be at least 1, got %d", line.Quantity))
	}
	if len(c.Lines) > 0 && c.RestaurantID != restaurantID {
		return errs.NewValueIsInvalidErrorWithCause("menu_item_id",
			fmt.Errorf("cart already holds items from restaurant %d", c.RestaurantID))
	}
	c.RestaurantID = restaurantID
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == line.MenuItemID {
			c.Lines[i].Quantity += line.Quantity
			c.Lines[i].Price = line.Price
			return nil
		}
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// Total is the displayed grand total. Checkout recomputes it from live prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Price * float64(l.Quantity)
	}
	return models.RoundMoney(total)
}

func (c *Cart) Empty() bool {
	return c == nil || len(c.Lines) == 0
}

func (c *Cart) Clear() {
	c.RestaurantID = 0
	c.Lines = nil
}
