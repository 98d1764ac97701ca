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

// transition applies a lifecycle step conditioned on the status the caller
// saw. Losing a race to another writer surfaces as errs.ErrConflict.
func (s *Service) transition(ctx context.Context, sess Session, order *models.Order, to models.OrderStatus, scope store.OrderScope, note string) (*models.Order, error) {
	from := order.Status
	if err := statemachine.CanTransition(from, to, sess.Role); err != nil {
		return nil, err
	}
	applied, err := s.store.TransitionStatus(ctx, order.ID, scope, from, to, sess.UserID, note)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, errs.NewConflictError(fmt.Sprintf("order %d", order.ID), "was changed concurrently; reload and retry")
	}
	metrics.OrderTransitions.WithLabelValues(string(from), string(to)).Inc()
	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     from,
		"to":       to,
		"user_id":  sess.UserID,
	}).Info("order status changed")

	return s.store.OrderByID(ctx, order.ID)
}
