package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// OrderStatus represents all possible states of a food delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}

func (s OrderStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type Order struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	CustomerID   uint         `json:"customer_id" gorm:"not null;index"`
	Customer     *User        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	RestaurantID uint         `json:"restaurant_id" gorm:"not null;index"`
	Restaurant   *Restaurant  `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	DeliveryID   *uint        `json:"delivery_id" gorm:"index"`
	Delivery     *User        `json:"delivery,omitempty" gorm:"foreignKey:DeliveryID"`
	Items        ItemSnapshot `json:"items" gorm:"column:items_json;type:text;not null"`
	Total        float64      `json:"total" gorm:"not null"`
	Status       OrderStatus  `json:"status" gorm:"not null;default:'pending';index"`
	TrackingID   string       `json:"tracking_id" gorm:"uniqueIndex;not null"`
	CreatedAt    time.Time    `json:"created_at" gorm:"index"`
}

// SnapshotItem is one line of what was ordered, frozen at checkout.
type SnapshotItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"qty"`
	Price    float64 `json:"price,omitempty"` // unit price at checkout
}

// ItemSnapshot is the ordered list of lines captured at checkout. It is
// decoupled from menu_items so later menu edits never alter past orders, and
// is only serialized to JSON at the storage boundary.
type ItemSnapshot []SnapshotItem

// Total sums price × quantity, rounded to paise.
func (s ItemSnapshot) Total() float64 {
	var total float64
	for _, it := range s {
		total += it.Price * float64(it.Quantity)
	}
	return RoundMoney(total)
}

func (s ItemSnapshot) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal item snapshot: %w", err)
	}
	return string(b), nil
}

func (s *ItemSnapshot) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = ItemSnapshot{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scan item snapshot: unsupported type %T", src)
	}
	var items ItemSnapshot
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scan item snapshot: %w", err)
	}
	*s = items
	return nil
}

// OrderStatusHistory tracks every status change and claim
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}

// RoundMoney rounds an amount to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
