package domain

import "balearic_charter/internal/i18n"

// SiteStat is an admin-editable homepage counter ("120+ charters").
type SiteStat struct {
	Key      string
	Label    i18n.LocalizedField
	Value    string
	Position int
}

type SiteStatView struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Value  string `json:"value"`
	Locale string `json:"locale"`
}

// DashboardStats is the admin dashboard summary. Field names are part
// of the dashboard contract.
type DashboardStats struct {
	TotalInquiries   int     `json:"totalInquiries"`
	FleetSize        int     `json:"fleetSize"`
	GalleryImages    int     `json:"galleryImages"`
	RevenuePotential float64 `json:"revenuePotential"`
}

// GalleryImage is a standalone image in the marketing gallery, stored
// in the external object store and referenced by URL.
type GalleryImage struct {
	ID       int64               `json:"id"`
	URL      string              `json:"url"`
	Key      string              `json:"-"` // object-store key, internal
	Alt      i18n.LocalizedField `json:"-"`
	Position int                 `json:"position"`
}

// GalleryImageView is the locale-resolved gallery read model.
type GalleryImageView struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	Alt      string `json:"alt,omitempty"`
	Position int    `json:"position"`
	Locale   string `json:"locale"`
}
