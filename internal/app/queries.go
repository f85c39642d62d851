package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"balearic_charter/internal/domain"
	"balearic_charter/internal/i18n"
)

// QueryService serves locale-resolved read models to the page layer,
// cache-aside over the content repository.
type QueryService struct {
	repo     domain.ContentRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(r domain.ContentRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *QueryService) GetYacht(ctx context.Context, id int64, locale string) (domain.YachtView, error) {
	key := fmt.Sprintf("yacht:%d:%s", id, locale)
	var v domain.YachtView
	if ok, _ := s.cache.Get(ctx, key, &v); ok {
		return v, nil
	}
	y, err := s.repo.GetYacht(ctx, id)
	if err != nil {
		return domain.YachtView{}, err
	}
	v = presentYacht(y, locale)
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	return v, nil
}

func (s *QueryService) ListYachts(ctx context.Context, locale string) ([]domain.YachtView, error) {
	key := fmt.Sprintf("yachts:%s", locale)
	var out []domain.YachtView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	ys, err := s.repo.ListYachts(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]domain.YachtView, 0, len(ys))
	for _, y := range ys {
		out = append(out, presentYacht(y, locale))
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) GetDestination(ctx context.Context, id int64, locale string) (domain.DestinationView, error) {
	key := fmt.Sprintf("destination:%d:%s", id, locale)
	var v domain.DestinationView
	if ok, _ := s.cache.Get(ctx, key, &v); ok {
		return v, nil
	}
	d, err := s.repo.GetDestination(ctx, id)
	if err != nil {
		return domain.DestinationView{}, err
	}
	v = presentDestination(d, locale)
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
	return v, nil
}

func (s *QueryService) ListDestinations(ctx context.Context, locale string) ([]domain.DestinationView, error) {
	key := fmt.Sprintf("destinations:%s", locale)
	var out []domain.DestinationView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	ds, err := s.repo.ListDestinations(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]domain.DestinationView, 0, len(ds))
	for _, d := range ds {
		out = append(out, presentDestination(d, locale))
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) ListReviews(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	key := fmt.Sprintf("reviews:%d:%s", pg.Limit, pg.Sort)
	var out domain.ReviewsPage
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	rs, err := s.repo.ListReviews(ctx, pg)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	// copy slice to avoid aliasing the repo's backing array (prevents tests from mutating cached value)
	copyRS := deepCopyReviewsPage(rs)

	// optional size guard
	if b, _ := json.Marshal(copyRS); len(b) < 1_000_000 {
		_ = s.cache.Set(ctx, key, copyRS, int(s.cacheTTL.Seconds()))
	}
	return copyRS, nil
}

func (s *QueryService) ListCrew(ctx context.Context, locale string) ([]domain.CrewView, error) {
	key := fmt.Sprintf("crew:%s", locale)
	var out []domain.CrewView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	cs, err := s.repo.ListCrew(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]domain.CrewView, 0, len(cs))
	for _, c := range cs {
		out = append(out, domain.CrewView{
			ID:       c.ID,
			Name:     c.Name,
			Role:     i18n.Resolve(c.Role, locale),
			Bio:      i18n.Resolve(c.Bio, locale),
			PhotoURL: c.PhotoURL,
			Locale:   locale,
		})
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) ListGallery(ctx context.Context, locale string) ([]domain.GalleryImageView, error) {
	key := fmt.Sprintf("gallery:%s", locale)
	var out []domain.GalleryImageView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	gs, err := s.repo.ListGalleryImages(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]domain.GalleryImageView, 0, len(gs))
	for _, g := range gs {
		out = append(out, domain.GalleryImageView{
			ID:       g.ID,
			URL:      g.URL,
			Alt:      i18n.Resolve(g.Alt, locale),
			Position: g.Position,
			Locale:   locale,
		})
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func (s *QueryService) ListSiteStats(ctx context.Context, locale string) ([]domain.SiteStatView, error) {
	key := fmt.Sprintf("sitestats:%s", locale)
	var out []domain.SiteStatView
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}
	ss, err := s.repo.ListSiteStats(ctx)
	if err != nil {
		return nil, err
	}
	out = make([]domain.SiteStatView, 0, len(ss))
	for _, st := range ss {
		out = append(out, domain.SiteStatView{
			Key:    st.Key,
			Label:  i18n.Resolve(st.Label, locale),
			Value:  st.Value,
			Locale: locale,
		})
	}
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}

func presentYacht(y domain.Yacht, locale string) domain.YachtView {
	return domain.YachtView{
		ID:                y.ID,
		Slug:              y.Slug,
		Model:             y.Model,
		LengthM:           y.LengthM,
		Cabins:            y.Cabins,
		Berths:            y.Berths,
		YearBuilt:         y.YearBuilt,
		LowSeasonPrice:    y.LowSeasonPrice,
		MediumSeasonPrice: y.MediumSeasonPrice,
		HighSeasonPrice:   y.HighSeasonPrice,
		Name:              i18n.Resolve(y.Name, locale),
		Description:       i18n.ResolveWithLegacy(y.Description, y.LegacyDescription(), locale),
		Images:            y.Images,
		Locale:            locale,
	}
}

func presentDestination(d domain.Destination, locale string) domain.DestinationView {
	return domain.DestinationView{
		ID:          d.ID,
		Slug:        d.Slug,
		Region:      d.Region,
		Name:        i18n.Resolve(d.Name, locale),
		Description: i18n.ResolveWithLegacy(d.Description, d.LegacyDescription(), locale),
		Images:      d.Images,
		Locale:      locale,
	}
}

func deepCopyReviewsPage(in domain.ReviewsPage) domain.ReviewsPage {
	out := domain.ReviewsPage{NextCursor: in.NextCursor}
	if n := len(in.Items); n > 0 {
		out.Items = make([]domain.Review, n)
		copy(out.Items, in.Items)
	}
	return out
}
