package app

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"balearic_charter/internal/domain"
	"balearic_charter/internal/i18n"
)

// ContentService is the write side: admin translation edits, gallery
// uploads, and public booking-inquiry submissions.
type ContentService struct {
	repo  domain.ContentRepository
	cache domain.Cache
	store domain.ObjectStore
}

func NewContentService(r domain.ContentRepository, c domain.Cache, st domain.ObjectStore) *ContentService {
	return &ContentService{repo: r, cache: c, store: st}
}

// SaveYachtI18n applies a single-locale edit to one localized field.
// The patch is built against the currently stored field so translations
// in other locales are never overwritten.
func (s *ContentService) SaveYachtI18n(ctx context.Context, id int64, field domain.I18nField, locale string, value *string) error {
	y, err := s.repo.GetYacht(ctx, id)
	if err != nil {
		return err
	}
	var current i18n.LocalizedField
	switch field {
	case domain.FieldName:
		current = y.Name
	case domain.FieldDescription:
		current = y.Description
	default:
		return fmt.Errorf("%w: unknown i18n field %q", domain.ErrInvalid, field)
	}
	patched := i18n.BuildPatch(current, locale, value)
	if err := s.repo.UpdateYachtI18n(ctx, id, field, patched); err != nil {
		return err
	}
	s.invalidateYacht(ctx, id)
	return nil
}

func (s *ContentService) SaveDestinationI18n(ctx context.Context, id int64, field domain.I18nField, locale string, value *string) error {
	d, err := s.repo.GetDestination(ctx, id)
	if err != nil {
		return err
	}
	var current i18n.LocalizedField
	switch field {
	case domain.FieldName:
		current = d.Name
	case domain.FieldDescription:
		current = d.Description
	default:
		return fmt.Errorf("%w: unknown i18n field %q", domain.ErrInvalid, field)
	}
	patched := i18n.BuildPatch(current, locale, value)
	if err := s.repo.UpdateDestinationI18n(ctx, id, field, patched); err != nil {
		return err
	}
	s.invalidateDestination(ctx, id)
	return nil
}

// SaveSiteStat upserts a homepage counter, patching its localized label
// one locale at a time like every other translated field.
func (s *ContentService) SaveSiteStat(ctx context.Context, key, value, locale string, label *string) error {
	if strings.TrimSpace(key) == "" || strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: stat key and value are required", domain.ErrInvalid)
	}
	stats, err := s.repo.ListSiteStats(ctx)
	if err != nil {
		return err
	}
	stat := domain.SiteStat{Key: key, Value: value, Position: len(stats)}
	for _, st := range stats {
		if st.Key == key {
			stat = st
			stat.Value = value
			break
		}
	}
	stat.Label = i18n.BuildPatch(stat.Label, locale, label)
	if err := s.repo.UpsertSiteStat(ctx, stat); err != nil {
		return err
	}
	s.invalidatePerLocale(ctx, "sitestats:%s")
	return nil
}

// SubmitInquiry persists a booking inquiry from the public funnel.
// Dates are stored as typed; only name and email are enforced here.
func (s *ContentService) SubmitInquiry(ctx context.Context, q domain.Inquiry) (int64, error) {
	if strings.TrimSpace(q.Name) == "" || strings.TrimSpace(q.Email) == "" {
		return 0, fmt.Errorf("%w: name and email are required", domain.ErrInvalid)
	}
	if !strings.Contains(q.Email, "@") {
		return 0, fmt.Errorf("%w: email looks malformed", domain.ErrInvalid)
	}
	return s.repo.InsertInquiry(ctx, q)
}

// UploadGalleryImage stores the blob first, then the row; a failed
// insert leaves an orphan blob rather than a row pointing nowhere. An
// optional alt text is stored under altLocale for the gallery page.
func (s *ContentService) UploadGalleryImage(ctx context.Context, filename, contentType string, data []byte, altLocale string, alt *string) (domain.GalleryImage, error) {
	if len(data) == 0 {
		return domain.GalleryImage{}, fmt.Errorf("%w: empty upload", domain.ErrInvalid)
	}
	if altLocale == "" {
		altLocale = i18n.DefaultLocale
	}
	if !i18n.Supported(altLocale) {
		return domain.GalleryImage{}, fmt.Errorf("%w: unsupported locale %q", domain.ErrInvalid, altLocale)
	}
	key := fmt.Sprintf("gallery/%d_%s", time.Now().UnixNano(), sanitizeFilename(filename))
	url, err := s.store.Upload(ctx, key, contentType, data)
	if err != nil {
		return domain.GalleryImage{}, err
	}
	n, err := s.repo.CountGalleryImages(ctx)
	if err != nil {
		return domain.GalleryImage{}, err
	}
	g := domain.GalleryImage{
		URL:      url,
		Key:      key,
		Alt:      i18n.BuildPatch(nil, altLocale, alt),
		Position: n,
	}
	id, err := s.repo.InsertGalleryImage(ctx, g)
	if err != nil {
		return domain.GalleryImage{}, err
	}
	g.ID = id
	s.invalidatePerLocale(ctx, "gallery:%s")
	return g, nil
}

// DeleteGalleryImage removes the row, then best-effort deletes the
// blob; a leftover blob is invisible to the site.
func (s *ContentService) DeleteGalleryImage(ctx context.Context, id int64) error {
	g, err := s.repo.GetGalleryImage(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteGalleryImage(ctx, id); err != nil {
		return err
	}
	if g.Key != "" {
		if err := s.store.Delete(ctx, g.Key); err != nil {
			log.Warn().Int64("id", id).Str("key", g.Key).Err(err).Msg("gallery blob delete failed")
		}
	}
	s.invalidatePerLocale(ctx, "gallery:%s")
	return nil
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." {
		return "upload"
	}
	return name
}

// A translation edit affects every locale's cached view: the edited
// locale directly, the rest through the fallback chain.
func (s *ContentService) invalidateYacht(ctx context.Context, id int64) {
	for _, l := range i18n.Locales {
		_ = s.cache.Del(ctx, fmt.Sprintf("yacht:%d:%s", id, l))
	}
	s.invalidatePerLocale(ctx, "yachts:%s")
}

func (s *ContentService) invalidateDestination(ctx context.Context, id int64) {
	for _, l := range i18n.Locales {
		_ = s.cache.Del(ctx, fmt.Sprintf("destination:%d:%s", id, l))
	}
	s.invalidatePerLocale(ctx, "destinations:%s")
}

func (s *ContentService) invalidatePerLocale(ctx context.Context, keyFmt string) {
	for _, l := range i18n.Locales {
		_ = s.cache.Del(ctx, fmt.Sprintf(keyFmt, l))
	}
}
