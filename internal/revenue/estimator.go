// Package revenue derives the dashboard's projected-revenue figure from
// raw booking inquiries and fleet rate cards. Inquiry data is typed by
// visitors and rate cards are half-filled, so every arithmetic stage
// validates its inputs and a bad inquiry contributes exactly 0. The
// estimate never comes out NaN or negative.
package revenue

import (
	"math"
	"time"

	"balearic_charter/internal/domain"
)

// Surcharges applied on top of the averaged charter price.
const (
	APARate = 0.30 // Advance Provisioning Allowance
	TaxRate = 0.21
)

const dateLayout = "2006-01-02"

// Estimate sums the projected revenue of every inquiry, matched against
// its yacht's rate card. Inquiries with unparseable dates, no matching
// yacht, or no positive season price are skipped. The result is rounded
// to 2 decimals and is never negative.
func Estimate(inquiries []domain.Inquiry, cards []domain.RateCard) float64 {
	byID := make(map[int64]domain.RateCard, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	var sum float64
	for _, q := range inquiries {
		days, ok := inclusiveDays(q.StartDate, q.EndDate)
		if !ok {
			continue
		}
		if q.YachtID == nil {
			continue
		}
		card, ok := byID[*q.YachtID]
		if !ok {
			continue
		}
		avg, ok := avgSeasonPrice(card)
		if !ok {
			continue
		}
		base := avg * float64(days)
		if math.IsNaN(base) || base <= 0 {
			continue
		}
		total := base * (1 + APARate + TaxRate)
		if math.IsNaN(total) || total <= 0 {
			continue
		}
		sum += total
	}
	return round2(sum)
}

// inclusiveDays parses the inquiry's date strings and returns the day
// count including both endpoints.
func inclusiveDays(start, end *string) (int, bool) {
	if start == nil || end == nil {
		return 0, false
	}
	s, err := time.Parse(dateLayout, *start)
	if err != nil {
		return 0, false
	}
	e, err := time.Parse(dateLayout, *end)
	if err != nil {
		return 0, false
	}
	return int(math.Ceil(e.Sub(s).Hours()/24)) + 1, true
}

// avgSeasonPrice averages the card's strictly-positive season prices.
// ok is false when none are set, so callers never divide by zero.
func avgSeasonPrice(c domain.RateCard) (float64, bool) {
	var total float64
	var n int
	for _, p := range []*float64{c.LowSeasonPrice, c.MediumSeasonPrice, c.HighSeasonPrice} {
		v := coerce(p)
		if v > 0 {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return total / float64(n), true
}

// coerce maps nil and non-finite prices to 0.
func coerce(p *float64) float64 {
	if p == nil {
		return 0
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) {
		return 0
	}
	return *p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
