package domain

import "balearic_charter/internal/i18n"

type CrewMember struct {
	ID       int64
	Name     string
	Role     i18n.LocalizedField
	Bio      i18n.LocalizedField
	PhotoURL *string
	Position int // display order
}

type CrewView struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Bio      string  `json:"bio"`
	PhotoURL *string `json:"photo_url,omitempty"`
	Locale   string  `json:"locale"`
}
