package models_test

import (
	"testing"

	"foodees-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemSnapshotStorageFormat(t *testing.T) {
	snap := models.ItemSnapshot{
		{Name: "Chicken Biryani", Quantity: 2, Price: 250},
		{Name: "Veg Biryani", Quantity: 1, Price: 180},
	}

	v, err := snap.Value()
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"name":"Chicken Biryani","qty":2,"price":250},{"name":"Veg Biryani","qty":1,"price":180}]`,
		v.(string))

	var back models.ItemSnapshot
	require.NoError(t, back.Scan([]byte(v.(string))))
	assert.Equal(t, snap, back)
	assert.Equal(t, 680.0, back.Total())
}

func TestItemSnapshotScansLegacyRows(t *testing.T) {
	var snap models.ItemSnapshot
	require.NoError(t, snap.Scan(`[{"name":"Biryani","qty":2}]`))

	require.Len(t, snap, 1)
	assert.Equal(t, "Biryani", snap[0].Name)
	assert.Equal(t, 2, snap[0].Quantity)
	assert.Zero(t, snap[0].Price)
}

func TestItemSnapshotScanRejectsGarbage(t *testing.T) {
	var snap models.ItemSnapshot
	assert.Error(t, snap.Scan(42))
	assert.Error(t, snap.Scan("{not json"))
}

func TestNilSnapshotStoresEmptyList(t *testing.T) {
	var snap models.ItemSnapshot
	v, err := snap.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStatusAndRoleValidation(t *testing.T) {
	for _, s := range models.AllStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, models.OrderStatus("PLACED").Valid())
	assert.True(t, models.StatusDelivered.Terminal())
	assert.True(t, models.StatusCancelled.Terminal())
	assert.False(t, models.StatusReady.Terminal())

	assert.True(t, models.RoleDelivery.Valid())
	assert.False(t, models.UserRole("driver").Valid())
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 0.3, models.RoundMoney(0.1+0.2))
	assert.Equal(t, 200.0, models.RoundMoney(1000*0.2))
}
