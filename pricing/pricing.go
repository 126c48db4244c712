package pricing

import "math"

const (
	freeShippingOver = 100.0
	flatShipping     = 10.0
	taxRate          = 0.15
)

// Totals is the price breakdown persisted on every order.
type Totals struct {
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Line is a priced cart row.
type Line struct {
	Price    float64
	Quantity int
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute derives the full breakdown from the cart lines. The same rule runs
// on the client; the server recomputes from submitted line items and never
// trusts client-sent totals.
//
// Shipping is free over 100, otherwise a flat 10. Tax is 15% of the items
// subtotal.
func Compute(lines []Line) Totals {
	var items float64
	for _, l := range lines {
		items += l.Price * float64(l.Quantity)
	}
	items = Round2(items)

	shipping := flatShipping
	if items > freeShippingOver {
		shipping = 0
	}

	tax := Round2(taxRate * items)

	return Totals{
		ItemsPrice:    items,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		TotalPrice:    Round2(items + shipping + tax),
	}
}
