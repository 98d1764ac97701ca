package access

import (
	"context"
	"fmt"

	"foodees-api/errs"
	"foodees-api/metrics"
	"foodees-api/models"
	"foodees-api/statemachine"
	"foodees-api/store"

	"github.com/sirupsen/logrus"
)

const (
	// CommissionRate is the share of a delivered order's total paid to the agent.
	CommissionRate = 0.20

	availableOrdersLimit = 10
)

// AvailableOrders lists ready orders nobody has claimed yet.
func (s *Service) AvailableOrders(ctx context.Context, sess Session) ([]models.Order, error) {
	if err := require(sess, models.RoleDelivery, "list available orders"); err != nil {
		return nil, err
	}
	return s.store.ListOrders(ctx, store.OrderFilter{
		Unassigned: true,
		Status:     models.StatusReady,
		Limit:      availableOrdersLimit,
	})
}

// ClaimOrder assigns a ready order to the caller. When several agents race
// for the same order exactly one wins; the others get errs.ErrConflict.
func (s *Service) ClaimOrder(ctx context.Context, sess Session, orderID uint) (*models.Order, error) {
	if err := require(sess, models.RoleDelivery, "claim orders"); err != nil {
		return nil, err
	}
	claimed, err := s.store.ClaimOrder(ctx, orderID, sess.UserID)
	if err != nil {
		return nil, err
	}
	order, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	fields := logrus.Fields{"order_id": orderID, "agent_id": sess.UserID}

	if !claimed {
		metrics.DeliveryClaims.WithLabelValues("lost").Inc()
		s.log.WithFields(fields).Info("claim rejected")
		if order.DeliveryID != nil {
			return nil, errs.NewConflictError(fmt.Sprintf("order %d", orderID), "is already claimed")
		}
		if !statemachine.CanClaim(order.Status, false) {
			return nil, errs.NewConflictError(fmt.Sprintf("order %d", orderID),
				fmt.Sprintf("is %s, only ready orders can be claimed", order.Status))
		}
		return nil, errs.NewConflictError(fmt.Sprintf("order %d", orderID), "could not be claimed")
	}

	metrics.DeliveryClaims.WithLabelValues("won").Inc()
	s.log.WithFields(fields).Info("order claimed")
	return order, nil
}

// ActiveOrders lists the caller's claimed orders that are not finished yet,
// with the customer loaded.
func (s *Service) ActiveOrders(ctx context.Context, sess Session) ([]models.Order, error) {
	if err := require(sess, models.RoleDelivery, "list active deliveries"); err != nil {
		return nil, err
	}
	return s.store.ListOrders(ctx, store.OrderFilter{
		DeliveryID:      sess.UserID,
		ExcludeStatuses: []models.OrderStatus{models.StatusDelivered, models.StatusCancelled},
		WithCustomer:    true,
	})
}

// MarkDelivered closes an order the caller has claimed.
func (s *Service) MarkDelivered(ctx context.Context, sess Session, orderID uint) (*models.Order, error) {
	if err := require(sess, models.RoleDelivery, "mark orders delivered"); err != nil {
		return nil, err
	}
	order, err := s.store.OrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryID == nil || *order.DeliveryID != sess.UserID {
		return nil, errs.NewForbiddenError(string(sess.Role), fmt.Sprintf("deliver order %d assigned to another agent", orderID))
	}
	return s.transition(ctx, sess, order, models.StatusDelivered, store.OrderScope{DeliveryID: sess.UserID}, "delivered")
}

type Earnings struct {
	Deliveries int64   `json:"deliveries"`
	Earnings   float64 `json:"earnings"`
}

// Earnings is CommissionRate of the summed totals of the caller's delivered
// orders.
func (s *Service) Earnings(ctx context.Context, sess Session) (*Earnings, error) {
	if err := require(sess, models.RoleDelivery, "view earnings"); err != nil {
		return nil, err
	}
	e, err := s.store.DeliveryEarnings(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return &Earnings{
		Deliveries: e.Deliveries,
		Earnings:   models.RoundMoney(e.DeliveredTotal * CommissionRate),
	}, nil
}
