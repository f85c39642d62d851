package domain

import "balearic_charter/internal/i18n"

type Destination struct {
	ID     int64
	Slug   string
	Region *string

	Name        i18n.LocalizedField
	Description i18n.LocalizedField

	DescriptionEN *string
	DescriptionES *string
	DescriptionDE *string
	DescriptionTx *string

	Images []string
}

func (d Destination) LegacyDescription() i18n.LegacyText {
	return i18n.LegacyText{
		PerLocale: map[string]string{
			i18n.LocaleEN: deref(d.DescriptionEN),
			i18n.LocaleES: deref(d.DescriptionES),
			i18n.LocaleDE: deref(d.DescriptionDE),
		},
		Generic: deref(d.DescriptionTx),
	}
}

type DestinationView struct {
	ID          int64    `json:"id"`
	Slug        string   `json:"slug"`
	Region      *string  `json:"region,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
	Locale      string   `json:"locale"`
}
