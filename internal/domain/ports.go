package domain

import (
	"context"
	"errors"

	"balearic_charter/internal/i18n"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
)

// I18nField names a localized column an admin may edit.
type I18nField string

const (
	FieldName        I18nField = "name"
	FieldDescription I18nField = "description"
)

// ContentRepository is the persistence port for all site content.
type ContentRepository interface {
	// Read paths
	GetYacht(ctx context.Context, id int64) (Yacht, error)
	ListYachts(ctx context.Context) ([]Yacht, error)
	ListRateCards(ctx context.Context) ([]RateCard, error)
	GetDestination(ctx context.Context, id int64) (Destination, error)
	ListDestinations(ctx context.Context) ([]Destination, error)
	ListReviews(ctx context.Context, pg PageQuery) (ReviewsPage, error)
	ListCrew(ctx context.Context) ([]CrewMember, error)
	ListSiteStats(ctx context.Context) ([]SiteStat, error)
	ListInquiries(ctx context.Context) ([]Inquiry, error)
	CountYachts(ctx context.Context) (int, error)
	CountGalleryImages(ctx context.Context) (int, error)
	ListGalleryImages(ctx context.Context) ([]GalleryImage, error)
	GetGalleryImage(ctx context.Context, id int64) (GalleryImage, error)

	// Write paths
	UpsertYacht(ctx context.Context, y Yacht) error
	UpsertDestination(ctx context.Context, d Destination) error
	UpsertCrewMember(ctx context.Context, c CrewMember) error
	UpsertReview(ctx context.Context, r Review) error
	UpsertSiteStat(ctx context.Context, s SiteStat) error
	UpdateYachtI18n(ctx context.Context, id int64, field I18nField, f i18n.LocalizedField) error
	UpdateDestinationI18n(ctx context.Context, id int64, field I18nField, f i18n.LocalizedField) error
	InsertInquiry(ctx context.Context, q Inquiry) (int64, error)
	InsertGalleryImage(ctx context.Context, g GalleryImage) (int64, error)
	DeleteGalleryImage(ctx context.Context, id int64) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// ObjectStore is the hosted binary-blob backend holding site imagery.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

type PageQuery struct {
	Limit  int
	Cursor *string
	Sort   string
}
