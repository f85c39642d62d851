package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"balearic_charter/internal/domain"
	"balearic_charter/internal/i18n"
)

// SeedService imports a legacy CMS export into the content store. The
// export predates the schema and is only loosely shaped: keys vary by
// CMS version and numbers arrive as strings with comma decimals, so
// every field is looked up through an alias list and coerced
// defensively.
type SeedService struct {
	repo domain.ContentRepository
}

func NewSeedService(r domain.ContentRepository) *SeedService {
	return &SeedService{repo: r}
}

/********** alias registries (single source of truth) **********/

var yachtAliases = map[string][]string{
	"slug":       {"slug", "url_slug", "seo.slug"},
	"model":      {"model", "boat_model", "type"},
	"length":     {"length_m", "length", "loa", "specs.length"},
	"cabins":     {"cabins", "cabin_count", "specs.cabins"},
	"berths":     {"berths", "berth_count", "specs.berths"},
	"year":       {"year_built", "year", "built", "specs.year"},
	"price_low":  {"low_season_price", "price_low", "prices.low"},
	"price_med":  {"medium_season_price", "price_medium", "price_mid", "prices.medium"},
	"price_high": {"high_season_price", "price_high", "prices.high"},
	"images":     {"images", "gallery", "photos"},
}

var destinationAliases = map[string][]string{
	"slug":   {"slug", "url_slug", "seo.slug"},
	"region": {"region", "area", "island"},
	"images": {"images", "gallery", "photos"},
}

var reviewAliases = map[string][]string{
	"author": {"author", "name", "reviewer", "reviewer.name"},
	"title":  {"title", "headline", "summary"},
	"text":   {"text", "review", "comment", "body", "message"},
	"locale": {"locale", "lang", "language", "language_code"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstStrAlias: first non-empty string for a named alias set.
func firstStrAlias(m map[string]any, aliases map[string][]string, key string) *string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return &s
		}
	}
	return nil
}

// firstFloatAlias: number from alias paths (float64/int/string like "8,0").
func firstFloatAlias(m map[string]any, aliases map[string][]string, key string) *float64 {
	for _, k := range aliases[key] {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func firstIntAlias(m map[string]any, aliases map[string][]string, key string) *int {
	if f := firstFloatAlias(m, aliases, key); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {url/src}.
func firstSliceStrings(m map[string]any, aliases map[string][]string, key string) []string {
	for _, k := range aliases[key] {
		raw, ok := lookupAny(m, k).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if t != "" {
					out = append(out, t)
				}
			case map[string]any:
				if u, ok := t["url"].(string); ok && u != "" {
					out = append(out, u)
				} else if u, ok := t["src"].(string); ok && u != "" {
					out = append(out, u)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// localizedField reads a locale→string object from any of several keys.
// Flat exports ({"name_en": ...}) are handled by the per-locale suffix
// form. Only supported locales are kept.
func localizedField(m map[string]any, base string) i18n.LocalizedField {
	var out i18n.LocalizedField
	put := func(locale, val string) {
		if val == "" || !i18n.Supported(locale) {
			return
		}
		if out == nil {
			out = i18n.LocalizedField{}
		}
		if _, exists := out[locale]; !exists {
			out[locale] = val
		}
	}
	for _, key := range []string{base + "_i18n", base, "translations." + base} {
		if obj, ok := lookupAny(m, key).(map[string]any); ok {
			for loc, v := range obj {
				if s, ok := v.(string); ok {
					put(loc, strings.TrimSpace(s))
				}
			}
		}
	}
	for _, loc := range i18n.Locales {
		put(loc, strings.TrimSpace(lookupStr(m, base+"_"+loc)))
	}
	return out
}

func int64At(m map[string]any, keys ...string) (int64, bool) {
	for _, k := range keys {
		switch v := lookupAny(m, k).(type) {
		case float64:
			return int64(v), true
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

/********** record mappers **********/

func mapYacht(rec map[string]any) (domain.Yacht, error) {
	id, ok := int64At(rec, "id", "yacht_id")
	if !ok {
		return domain.Yacht{}, fmt.Errorf("yacht record has no id")
	}
	y := domain.Yacht{
		ID:                id,
		Model:             firstStrAlias(rec, yachtAliases, "model"),
		LengthM:           firstFloatAlias(rec, yachtAliases, "length"),
		Cabins:            firstIntAlias(rec, yachtAliases, "cabins"),
		Berths:            firstIntAlias(rec, yachtAliases, "berths"),
		YearBuilt:         firstIntAlias(rec, yachtAliases, "year"),
		LowSeasonPrice:    firstFloatAlias(rec, yachtAliases, "price_low"),
		MediumSeasonPrice: firstFloatAlias(rec, yachtAliases, "price_med"),
		HighSeasonPrice:   firstFloatAlias(rec, yachtAliases, "price_high"),
		Name:              localizedField(rec, "name"),
		Description:       localizedField(rec, "description"),
		Images:            firstSliceStrings(rec, yachtAliases, "images"),
	}
	if s := firstStrAlias(rec, yachtAliases, "slug"); s != nil {
		y.Slug = *s
	} else {
		y.Slug = fmt.Sprintf("yacht-%d", id)
	}
	// Legacy single-string columns from the oldest exports.
	y.DescriptionEN = trimPtr(lookupStr(rec, "description_en"))
	y.DescriptionES = trimPtr(lookupStr(rec, "description_es"))
	y.DescriptionDE = trimPtr(lookupStr(rec, "description_de"))
	if d, ok := lookupAny(rec, "description").(string); ok {
		y.DescriptionTx = trimPtr(d)
	}
	return y, nil
}

func mapDestination(rec map[string]any) (domain.Destination, error) {
	id, ok := int64At(rec, "id", "destination_id")
	if !ok {
		return domain.Destination{}, fmt.Errorf("destination record has no id")
	}
	d := domain.Destination{
		ID:          id,
		Region:      firstStrAlias(rec, destinationAliases, "region"),
		Name:        localizedField(rec, "name"),
		Description: localizedField(rec, "description"),
		Images:      firstSliceStrings(rec, destinationAliases, "images"),
	}
	if s := firstStrAlias(rec, destinationAliases, "slug"); s != nil {
		d.Slug = *s
	} else {
		d.Slug = fmt.Sprintf("destination-%d", id)
	}
	d.DescriptionEN = trimPtr(lookupStr(rec, "description_en"))
	d.DescriptionES = trimPtr(lookupStr(rec, "description_es"))
	d.DescriptionDE = trimPtr(lookupStr(rec, "description_de"))
	if raw, ok := lookupAny(rec, "description").(string); ok {
		d.DescriptionTx = trimPtr(raw)
	}
	return d, nil
}

func mapReview(rec map[string]any) (domain.Review, error) {
	id, ok := int64At(rec, "id", "review_id")
	if !ok {
		return domain.Review{}, fmt.Errorf("review record has no id")
	}
	r := domain.Review{
		ID:     id,
		Author: firstStrAlias(rec, reviewAliases, "author"),
		Locale: firstStrAlias(rec, reviewAliases, "locale"),
		Title:  firstStrAlias(rec, reviewAliases, "title"),
		Text:   firstStrAlias(rec, reviewAliases, "text"),
	}
	if yid, ok := int64At(rec, "yacht_id", "yacht"); ok {
		r.YachtID = &yid
	}
	if f := firstFloatAlias(rec, map[string][]string{"rating": {"rating", "score", "stars"}}, "rating"); f != nil {
		r.Rating = f
	}
	return r, nil
}

func mapCrewMember(rec map[string]any) (domain.CrewMember, error) {
	id, ok := int64At(rec, "id", "crew_id")
	if !ok {
		return domain.CrewMember{}, fmt.Errorf("crew record has no id")
	}
	name := strings.TrimSpace(lookupStr(rec, "name"))
	if name == "" {
		return domain.CrewMember{}, fmt.Errorf("crew record %d has no name", id)
	}
	c := domain.CrewMember{
		ID:       id,
		Name:     name,
		Role:     localizedField(rec, "role"),
		Bio:      localizedField(rec, "bio"),
		PhotoURL: trimPtr(lookupStr(rec, "photo_url")),
	}
	if p := firstIntAlias(rec, map[string][]string{"pos": {"position", "order"}}, "pos"); p != nil {
		c.Position = *p
	}
	return c, nil
}

func mapSiteStat(rec map[string]any) (domain.SiteStat, error) {
	key := strings.TrimSpace(lookupStr(rec, "key"))
	if key == "" {
		key = strings.TrimSpace(lookupStr(rec, "stat_key"))
	}
	if key == "" {
		return domain.SiteStat{}, fmt.Errorf("stat record has no key")
	}
	s := domain.SiteStat{
		Key:   key,
		Label: localizedField(rec, "label"),
		Value: strings.TrimSpace(lookupStr(rec, "value")),
	}
	if p := firstIntAlias(rec, map[string][]string{"pos": {"position", "order"}}, "pos"); p != nil {
		s.Position = *p
	}
	return s, nil
}

func trimPtr(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

/********** import entry points **********/

func (s *SeedService) ImportYacht(ctx context.Context, rec map[string]any) error {
	y, err := mapYacht(rec)
	if err != nil {
		return err
	}
	return s.repo.UpsertYacht(ctx, y)
}

func (s *SeedService) ImportDestination(ctx context.Context, rec map[string]any) error {
	d, err := mapDestination(rec)
	if err != nil {
		return err
	}
	return s.repo.UpsertDestination(ctx, d)
}

func (s *SeedService) ImportReview(ctx context.Context, rec map[string]any) error {
	r, err := mapReview(rec)
	if err != nil {
		return err
	}
	return s.repo.UpsertReview(ctx, r)
}

func (s *SeedService) ImportCrewMember(ctx context.Context, rec map[string]any) error {
	c, err := mapCrewMember(rec)
	if err != nil {
		return err
	}
	return s.repo.UpsertCrewMember(ctx, c)
}

func (s *SeedService) ImportSiteStat(ctx context.Context, rec map[string]any) error {
	st, err := mapSiteStat(rec)
	if err != nil {
		return err
	}
	return s.repo.UpsertSiteStat(ctx, st)
}
