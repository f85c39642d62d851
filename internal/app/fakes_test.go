package app_test

import (
	"context"
	"encoding/json"

	"balearic_charter/internal/domain"
	"balearic_charter/internal/i18n"
)

// ---- fakes ----

type fakeRepo struct {
	yachts       map[int64]domain.Yacht
	destinations map[int64]domain.Destination
	reviews      domain.ReviewsPage
	crew         []domain.CrewMember
	stats        []domain.SiteStat
	inquiries    []domain.Inquiry
	gallery      map[int64]domain.GalleryImage
	nextID       int64

	// last partial update, for asserting non-destructive patches
	lastI18nField domain.I18nField
	lastI18nValue i18n.LocalizedField
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		yachts:       map[int64]domain.Yacht{},
		destinations: map[int64]domain.Destination{},
		gallery:      map[int64]domain.GalleryImage{},
	}
}

func (f *fakeRepo) GetYacht(ctx context.Context, id int64) (domain.Yacht, error) {
	y, ok := f.yachts[id]
	if !ok {
		return domain.Yacht{}, domain.ErrNotFound
	}
	return y, nil
}
func (f *fakeRepo) ListYachts(ctx context.Context) ([]domain.Yacht, error) {
	var out []domain.Yacht
	for _, y := range f.yachts {
		out = append(out, y)
	}
	return out, nil
}
func (f *fakeRepo) ListRateCards(ctx context.Context) ([]domain.RateCard, error) {
	var out []domain.RateCard
	for _, y := range f.yachts {
		out = append(out, y.RateCard())
	}
	return out, nil
}
func (f *fakeRepo) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	d, ok := f.destinations[id]
	if !ok {
		return domain.Destination{}, domain.ErrNotFound
	}
	return d, nil
}
func (f *fakeRepo) ListDestinations(ctx context.Context) ([]domain.Destination, error) {
	var out []domain.Destination
	for _, d := range f.destinations {
		out = append(out, d)
	}
	return out, nil
}
func (f *fakeRepo) ListReviews(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	return f.reviews, nil
}
func (f *fakeRepo) ListCrew(ctx context.Context) ([]domain.CrewMember, error) { return f.crew, nil }
func (f *fakeRepo) ListSiteStats(ctx context.Context) ([]domain.SiteStat, error) {
	return f.stats, nil
}
func (f *fakeRepo) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	return f.inquiries, nil
}
func (f *fakeRepo) CountYachts(ctx context.Context) (int, error) { return len(f.yachts), nil }
func (f *fakeRepo) CountGalleryImages(ctx context.Context) (int, error) {
	return len(f.gallery), nil
}
func (f *fakeRepo) ListGalleryImages(ctx context.Context) ([]domain.GalleryImage, error) {
	var out []domain.GalleryImage
	for _, g := range f.gallery {
		out = append(out, g)
	}
	return out, nil
}
func (f *fakeRepo) GetGalleryImage(ctx context.Context, id int64) (domain.GalleryImage, error) {
	g, ok := f.gallery[id]
	if !ok {
		return domain.GalleryImage{}, domain.ErrNotFound
	}
	return g, nil
}

func (f *fakeRepo) UpsertYacht(ctx context.Context, y domain.Yacht) error {
	f.yachts[y.ID] = y
	return nil
}
func (f *fakeRepo) UpsertDestination(ctx context.Context, d domain.Destination) error {
	f.destinations[d.ID] = d
	return nil
}
func (f *fakeRepo) UpsertCrewMember(ctx context.Context, c domain.CrewMember) error {
	f.crew = append(f.crew, c)
	return nil
}
func (f *fakeRepo) UpsertReview(ctx context.Context, r domain.Review) error {
	f.reviews.Items = append(f.reviews.Items, r)
	return nil
}
func (f *fakeRepo) UpsertSiteStat(ctx context.Context, s domain.SiteStat) error {
	for i, st := range f.stats {
		if st.Key == s.Key {
			f.stats[i] = s
			return nil
		}
	}
	f.stats = append(f.stats, s)
	return nil
}
func (f *fakeRepo) UpdateYachtI18n(ctx context.Context, id int64, field domain.I18nField, fl i18n.LocalizedField) error {
	y, ok := f.yachts[id]
	if !ok {
		return domain.ErrNotFound
	}
	switch field {
	case domain.FieldName:
		y.Name = fl
	case domain.FieldDescription:
		y.Description = fl
	}
	f.yachts[id] = y
	f.lastI18nField, f.lastI18nValue = field, fl
	return nil
}
func (f *fakeRepo) UpdateDestinationI18n(ctx context.Context, id int64, field domain.I18nField, fl i18n.LocalizedField) error {
	d, ok := f.destinations[id]
	if !ok {
		return domain.ErrNotFound
	}
	switch field {
	case domain.FieldName:
		d.Name = fl
	case domain.FieldDescription:
		d.Description = fl
	}
	f.destinations[id] = d
	f.lastI18nField, f.lastI18nValue = field, fl
	return nil
}
func (f *fakeRepo) InsertInquiry(ctx context.Context, q domain.Inquiry) (int64, error) {
	f.nextID++
	q.ID = f.nextID
	f.inquiries = append(f.inquiries, q)
	return q.ID, nil
}
func (f *fakeRepo) InsertGalleryImage(ctx context.Context, g domain.GalleryImage) (int64, error) {
	f.nextID++
	g.ID = f.nextID
	f.gallery[g.ID] = g
	return g.ID, nil
}
func (f *fakeRepo) DeleteGalleryImage(ctx context.Context, id int64) error {
	if _, ok := f.gallery[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.gallery, id)
	return nil
}

type fakeCache struct {
	store map[string][]byte
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, _ := json.Marshal(v)
	c.store[key] = b
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	c.dels = append(c.dels, key)
	return nil
}

type fakeStore struct {
	uploads map[string][]byte
	deleted []string
}

func (s *fakeStore) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if s.uploads == nil {
		s.uploads = map[string][]byte{}
	}
	s.uploads[key] = data
	return "https://cdn.example.com/" + key, nil
}
func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

// ---- small helpers ----

func ptr[T any](v T) *T { return &v }
