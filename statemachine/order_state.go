package statemachine

import (
	"fmt"
	"strings"

	"foodees-api/errs"
	"foodees-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus `json:"from"`
	To    models.OrderStatus `json:"to"`
	Actor models.UserRole    `json:"actor"`
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Kitchen flow, driven by the owning restaurant
	{From: models.StatusPending, To: models.StatusPreparing, Actor: models.RoleRestaurant},
	{From: models.StatusPreparing, To: models.StatusReady, Actor: models.RoleRestaurant},
	// Hand-off: only the assigned delivery agent closes the order
	{From: models.StatusReady, To: models.StatusDelivered, Actor: models.RoleDelivery},
	// Cancellation before the food is ready
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleCustomer},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: models.RoleRestaurant},
	{From: models.StatusPreparing, To: models.StatusCancelled, Actor: models.RoleRestaurant},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// TransitionError is returned for a well-formed but disallowed transition.
type TransitionError struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor models.UserRole
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s → %s is not allowed for %s (valid next states from %s: %s)",
		errs.ErrInvalidTransition, e.From, e.To, e.Actor, e.From, describeValidFrom(e.From))
}

func (e *TransitionError) Unwrap() error { return errs.ErrInvalidTransition }

// ParseStatus validates a raw status tag against the known set.
func ParseStatus(raw string) (models.OrderStatus, error) {
	s := models.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown status %q", raw))
	}
	return s, nil
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move from one state to another.
// Unknown statuses are a validation failure; known but non-adjacent pairs
// yield a *TransitionError.
func CanTransition(from, to models.OrderStatus, actor models.UserRole) error {
	if !from.Valid() {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown current status %q", from))
	}
	if !to.Valid() {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown status %q", to))
	}
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return &TransitionError{From: from, To: to, Actor: actor}
}

// CanClaim reports whether a delivery agent may take an order in this state.
func CanClaim(status models.OrderStatus, assigned bool) bool {
	return status == models.StatusReady && !assigned
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}
