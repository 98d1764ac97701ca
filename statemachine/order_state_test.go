package statemachine_test

import (
	"testing"

	"foodees-api/errs"
	"foodees-api/models"
	"foodees-api/statemachine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_AdjacentForwardSteps(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
		actor    models.UserRole
	}{
		{models.StatusPending, models.StatusPreparing, models.RoleRestaurant},
		{models.StatusPreparing, models.StatusReady, models.RoleRestaurant},
		{models.StatusReady, models.StatusDelivered, models.RoleDelivery},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.NoError(t, statemachine.CanTransition(tc.from, tc.to, tc.actor))
		})
	}
}

func TestCanTransition_RejectsEverythingElse(t *testing.T) {
	allowed := map[[3]string]bool{}
	for _, tr := range statemachine.GetAllTransitions() {
		allowed[[3]string{string(tr.From), string(tr.To), string(tr.Actor)}] = true
	}

	roles := []models.UserRole{models.RoleSuperAdmin, models.RoleRestaurant, models.RoleCustomer, models.RoleDelivery}
	for _, from := range models.AllStatuses {
		for _, to := range models.AllStatuses {
			for _, actor := range roles {
				if allowed[[3]string{string(from), string(to), string(actor)}] {
					continue
				}
				err := statemachine.CanTransition(from, to, actor)
				require.Error(t, err, "%s -> %s by %s", from, to, actor)
				assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			}
		}
	}
}

func TestCanTransition_SkippingStepsIsRejected(t *testing.T) {
	err := statemachine.CanTransition(models.StatusPending, models.StatusDelivered, models.RoleDelivery)

	var trErr *statemachine.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, models.StatusPending, trErr.From)
	assert.Contains(t, err.Error(), "preparing, cancelled")

	err = statemachine.CanTransition(models.StatusPending, models.StatusReady, models.RoleRestaurant)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestCanTransition_RestaurantCannotDeliver(t *testing.T) {
	err := statemachine.CanTransition(models.StatusReady, models.StatusDelivered, models.RoleRestaurant)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestCanTransition_UnknownStatusIsValidationFailure(t *testing.T) {
	err := statemachine.CanTransition(models.StatusPending, "teleported", models.RoleRestaurant)
	assert.True(t, errs.IsValidation(err))
	assert.NotErrorIs(t, err, errs.ErrInvalidTransition)

	err = statemachine.CanTransition("PLACED", models.StatusPreparing, models.RoleRestaurant)
	assert.True(t, errs.IsValidation(err))
}

func TestTerminalStatesHaveNoExit(t *testing.T) {
	assert.Empty(t, statemachine.ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, statemachine.ValidTransitionsFrom(models.StatusCancelled))

	err := statemachine.CanTransition(models.StatusDelivered, models.StatusPending, models.RoleRestaurant)
	assert.Contains(t, err.Error(), "none (terminal state)")
}

func TestParseStatus(t *testing.T) {
	s, err := statemachine.ParseStatus(" Ready ")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, s)

	_, err = statemachine.ParseStatus("READY_FOR_PICKUP")
	assert.True(t, errs.IsValidation(err))
}

func TestCanClaim(t *testing.T) {
	assert.True(t, statemachine.CanClaim(models.StatusReady, false))
	assert.False(t, statemachine.CanClaim(models.StatusReady, true))
	assert.False(t, statemachine.CanClaim(models.StatusPreparing, false))
}
