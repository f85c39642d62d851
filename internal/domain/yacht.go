package domain

import "balearic_charter/internal/i18n"

type Yacht struct {
	ID        int64
	Slug      string
	Model     *string
	LengthM   *float64
	Cabins    *int
	Berths    *int
	YearBuilt *int

	// Seasonal base prices per week; nil or 0 means "not set".
	LowSeasonPrice    *float64
	MediumSeasonPrice *float64
	HighSeasonPrice   *float64

	Name        i18n.LocalizedField
	Description i18n.LocalizedField

	// Legacy text columns kept from the pre-i18n schema; used as the
	// last resort of the description fallback chain.
	DescriptionEN *string
	DescriptionES *string
	DescriptionDE *string
	DescriptionTx *string // original untagged column

	Images []string
}

// LegacyDescription bundles the yacht's pre-i18n columns for the
// resolver's fallback chain.
func (y Yacht) LegacyDescription() i18n.LegacyText {
	return i18n.LegacyText{
		PerLocale: map[string]string{
			i18n.LocaleEN: deref(y.DescriptionEN),
			i18n.LocaleES: deref(y.DescriptionES),
			i18n.LocaleDE: deref(y.DescriptionDE),
		},
		Generic: deref(y.DescriptionTx),
	}
}

// RateCard is the pricing projection of a yacht consumed by the
// revenue estimator and the admin dashboard.
type RateCard struct {
	ID                int64    `json:"id"`
	LowSeasonPrice    *float64 `json:"low_season_price"`
	MediumSeasonPrice *float64 `json:"medium_season_price"`
	HighSeasonPrice   *float64 `json:"high_season_price"`
}

// RateCard projects the yacht's season prices.
func (y Yacht) RateCard() RateCard {
	return RateCard{
		ID:                y.ID,
		LowSeasonPrice:    y.LowSeasonPrice,
		MediumSeasonPrice: y.MediumSeasonPrice,
		HighSeasonPrice:   y.HighSeasonPrice,
	}
}

// YachtView is the locale-resolved read model served to page renderers.
type YachtView struct {
	ID                int64    `json:"id"`
	Slug              string   `json:"slug"`
	Model             *string  `json:"model,omitempty"`
	LengthM           *float64 `json:"length_m,omitempty"`
	Cabins            *int     `json:"cabins,omitempty"`
	Berths            *int     `json:"berths,omitempty"`
	YearBuilt         *int     `json:"year_built,omitempty"`
	LowSeasonPrice    *float64 `json:"low_season_price,omitempty"`
	MediumSeasonPrice *float64 `json:"medium_season_price,omitempty"`
	HighSeasonPrice   *float64 `json:"high_season_price,omitempty"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Images            []string `json:"images,omitempty"`
	Locale            string   `json:"locale"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
