package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"foodees-api/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 42)

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, 42, err.ID)
		assert.Equal(t, "object not found: order 42", err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("record not found")
		err := errs.NewObjectNotFoundErrorWithCause("restaurant", "owner 2", cause)

		assert.Equal(t, "object not found: restaurant owner 2 (cause: record not found)", err.Error())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestValidationErrors(t *testing.T) {
	invalid := errs.NewValueIsInvalidError("price")
	assert.Equal(t, "value is invalid: price", invalid.Error())
	assert.True(t, errs.IsValidation(invalid))

	withCause := errs.NewValueIsInvalidErrorWithCause("status", errors.New("unknown status \"lost\""))
	assert.Equal(t, "value is invalid: status (cause: unknown status \"lost\")", withCause.Error())

	required := errs.NewValueIsRequiredError("name")
	assert.Equal(t, "value is required: name", required.Error())
	assert.True(t, errs.IsValidation(required))

	assert.False(t, errs.IsValidation(errs.NewConflictError("order", "already claimed")))
}

func TestConflictAndForbidden(t *testing.T) {
	conflict := errs.NewConflictError("order 7", "already claimed by another delivery agent")
	assert.Equal(t, "conflict: order 7 already claimed by another delivery agent", conflict.Error())
	assert.ErrorIs(t, conflict, errs.ErrConflict)

	forbidden := errs.NewForbiddenError("customer", "list delivery agents")
	assert.Equal(t, `access denied: role "customer" may not list delivery agents`, forbidden.Error())
	assert.ErrorIs(t, forbidden, errs.ErrForbidden)
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("checkout: %w", errs.NewObjectNotFoundError("menu item", 9))

	var notFound *errs.ObjectNotFoundError
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, 9, notFound.ID)
	assert.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
}
