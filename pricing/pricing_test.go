package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	require.Equal(t, 3.14, Round2(3.14159))
	require.Equal(t, 2.72, Round2(2.718))
	require.Equal(t, 5.0, Round2(5))
	// half away from zero (0.125 is exact in binary)
	require.Equal(t, 0.13, Round2(0.125))
	require.Equal(t, -0.13, Round2(-0.125))
}

func TestComputeFreeShippingOverThreshold(t *testing.T) {
	got := Compute([]Line{{Price: 60, Quantity: 2}})

	require.Equal(t, 120.0, got.ItemsPrice)
	require.Equal(t, 0.0, got.ShippingPrice)
	require.Equal(t, 18.0, got.TaxPrice)
	require.Equal(t, 138.0, got.TotalPrice)
}

func TestComputeFlatShippingUnderThreshold(t *testing.T) {
	got := Compute([]Line{{Price: 30, Quantity: 2}})

	require.Equal(t, 60.0, got.ItemsPrice)
	require.Equal(t, 10.0, got.ShippingPrice)
	require.Equal(t, 9.0, got.TaxPrice)
	require.Equal(t, 79.0, got.TotalPrice)
}

func TestComputeThresholdIsExclusive(t *testing.T) {
	// exactly 100 still pays shipping; free only over 100
	got := Compute([]Line{{Price: 50, Quantity: 2}})
	require.Equal(t, 100.0, got.ItemsPrice)
	require.Equal(t, 10.0, got.ShippingPrice)
}

func TestComputeTotalIsSumOfParts(t *testing.T) {
	carts := [][]Line{
		{{Price: 12.5, Quantity: 1}},
		{{Price: 19.99, Quantity: 3}},
		{{Price: 60, Quantity: 2}, {Price: 5.25, Quantity: 4}},
		{{Price: 0.99, Quantity: 7}},
	}

	for _, cart := range carts {
		got := Compute(cart)
		require.Equal(t, Round2(got.ItemsPrice+got.ShippingPrice+got.TaxPrice), got.TotalPrice)
		require.GreaterOrEqual(t, got.ItemsPrice, 0.0)
		if got.ItemsPrice > 100 {
			require.Equal(t, 0.0, got.ShippingPrice)
		} else {
			require.Equal(t, 10.0, got.ShippingPrice)
		}
	}
}

func TestComputeEmptyCart(t *testing.T) {
	got := Compute(nil)
	require.Equal(t, 0.0, got.ItemsPrice)
	require.Equal(t, 10.0, got.ShippingPrice)
	require.Equal(t, 0.0, got.TaxPrice)
	require.Equal(t, 10.0, got.TotalPrice)
}
