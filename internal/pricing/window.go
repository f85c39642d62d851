// Package pricing implements the early-bird promotional window: a fixed
// calendar deadline before which a flat percentage discount applies to
// displayed charter prices.
package pricing

import (
	"math"
	"time"
)

// Window is the promotional window. It is built once at startup from
// config and passed to its consumers; it never changes afterwards.
type Window struct {
	Deadline        time.Time
	DiscountPercent float64 // 0..100
}

// Eligible reports whether the window is still open at now. The
// comparison is strict: the deadline instant itself is already closed.
func (w Window) Eligible(now time.Time) bool {
	return now.Before(w.Deadline)
}

// PriceQuote is the result of applying the window to a base price.
type PriceQuote struct {
	Original       float64 `json:"original"`
	Discounted     float64 `json:"discounted"`
	DiscountAmount float64 `json:"discount_amount"`
	Eligible       bool    `json:"eligible"`
}

// Quote applies the window to basePrice as of at. Non-positive prices
// and closed windows quote the base price unchanged with Eligible
// false; NaN and infinite prices quote zero, so the result is always
// encodable. Monetary values are rounded half-away-from-zero to 2
// decimals.
func (w Window) Quote(basePrice float64, at time.Time) PriceQuote {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return PriceQuote{}
	}
	if basePrice <= 0 || !w.Eligible(at) {
		return PriceQuote{Original: basePrice, Discounted: basePrice}
	}
	discount := round2(basePrice * w.DiscountPercent / 100)
	return PriceQuote{
		Original:       basePrice,
		Discounted:     round2(basePrice - discount),
		DiscountAmount: discount,
		Eligible:       true,
	}
}

// round2 rounds to 2 decimal places, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
