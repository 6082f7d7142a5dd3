package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romich96/AlexCoffee/internal/models"
)

func product(id int64, price float64) *models.Product {
	return &models.Product{ID: id, Title: "Product", URL: "product", Price: price, Available: true}
}

func TestAddValidation(t *testing.T) {
	c := New()

	var ve *models.ValidationError

	err := c.Add(nil, 1)
	require.ErrorAs(t, err, &ve)

	err = c.Add(&models.Product{}, 1)
	require.ErrorAs(t, err, &ve)

	err = c.Add(product(1, 10), 0)
	require.ErrorAs(t, err, &ve)

	err = c.Add(product(1, 10), -3)
	require.ErrorAs(t, err, &ve)

	assert.Equal(t, 0, c.Size())
	assert.Zero(t, c.Total())
}

func TestAddSameProductIncrementsQuantity(t *testing.T) {
	c := New()
	p := product(1, 50)

	require.NoError(t, c.Add(p, 2))

	// A price change between adds must not re-price the position.
	p.Price = 99
	require.NoError(t, c.Add(p, 3))

	require.Len(t, c.Positions(), 1)
	pos := c.Positions()[0]
	assert.Equal(t, 5, pos.Quantity)
	assert.Equal(t, 50.0, pos.Price, "price snapshot frozen at first add")
	assert.Equal(t, 5, c.Size())
	assert.Equal(t, 250.0, c.Total())
}

func TestSizeIsTotalQuantityNotEntryCount(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 10), 4))
	require.NoError(t, c.Add(product(2, 20), 2))

	assert.Len(t, c.Positions(), 2)
	assert.Equal(t, 6, c.Size())
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 10), 1))

	c.Remove(42)

	assert.Equal(t, 1, c.Size())
	assert.Equal(t, 10.0, c.Total())
}

func TestEmptyCartTotalIsZero(t *testing.T) {
	c := New()
	assert.Zero(t, c.Total())
	assert.Zero(t, c.Size())

	require.NoError(t, c.Add(product(1, 10), 3))
	c.Clear()

	assert.Zero(t, c.Total())
	assert.Zero(t, c.Size())
	assert.Empty(t, c.Positions())
}

func TestAddRemoveSequenceKeepsSizeConsistent(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 5), 2))
	require.NoError(t, c.Add(product(2, 5), 3))
	require.NoError(t, c.Add(product(1, 5), 1))
	c.Remove(2)
	c.Remove(2) // already gone

	assert.Equal(t, 3, c.Size())
	assert.Equal(t, 15.0, c.Total())
	assert.GreaterOrEqual(t, c.Size(), 0)
}

func TestRemoveAfterSplitAddsLeavesExactTotal(t *testing.T) {
	c := New()
	// Ten single adds of 0.1 accumulate to 0.9999999999999999 while one
	// position sum is 10×0.1 = 1.0; removal must not leave the ulp gap
	// as a residual total.
	for i := 0; i < 10; i++ {
		require.NoError(t, c.Add(product(1, 0.1), 1))
	}
	require.NoError(t, c.Add(product(2, 7.30), 1))

	c.Remove(1)
	assert.Equal(t, 7.30, c.Total())

	c.Remove(2)
	assert.Zero(t, c.Total())
	assert.Zero(t, c.Size())
	assert.Empty(t, c.Positions())
}

func TestSnapshotIsIndependentOfCart(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 50), 2))

	snapshot := c.Snapshot()
	require.Len(t, snapshot, 1)

	c.Clear()
	require.NoError(t, c.Add(product(1, 70), 9))

	assert.Equal(t, 2, snapshot[0].Quantity)
	assert.Equal(t, 50.0, snapshot[0].Price)
}

func TestPositionsReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 10), 1))

	positions := c.Positions()
	positions[0].Quantity = 100

	assert.Equal(t, 1, c.Size())
	assert.Equal(t, 1, c.Positions()[0].Quantity)
}

// The documented end-to-end cart scenario.
func TestCartScenario(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(product(1, 50), 2))
	require.NoError(t, c.Add(product(2, 30), 1))
	assert.Equal(t, 3, c.Size())
	assert.Equal(t, 130.0, c.Total())

	c.Remove(1)
	assert.Equal(t, 1, c.Size())
	assert.Equal(t, 30.0, c.Total())

	snapshot := c.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, int64(2), snapshot[0].ProductID)
	assert.Equal(t, 1, snapshot[0].Quantity)
	assert.Equal(t, 30.0, snapshot[0].Price)

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
