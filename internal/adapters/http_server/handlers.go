package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"balearic_charter/internal/adapters/observability"
	"balearic_charter/internal/app"
	"balearic_charter/internal/domain"
	"balearic_charter/internal/i18n"
	"balearic_charter/internal/pricing"
)

type Handlers struct {
	Q        *app.QueryService
	C        *app.ContentService
	S        *app.StatsService
	Window   pricing.Window
	AdminKey string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/promo", h.getPromo)
		r.Post("/inquiries", h.createInquiry)

		r.Route("/{locale}", func(r chi.Router) {
			r.Get("/yachts", h.listYachts)
			r.Get("/yachts/{id}", h.getYacht)
			r.Get("/destinations", h.listDestinations)
			r.Get("/destinations/{id}", h.getDestination)
			r.Get("/reviews", h.listReviews)
			r.Get("/crew", h.listCrew)
			r.Get("/stats", h.listSiteStats)
			r.Get("/gallery", h.listGallery)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireKey(h.AdminKey))
			r.Get("/stats", h.dashboard)
			r.Get("/inquiries", h.listInquiries)
			r.Patch("/yachts/{id}/i18n", h.patchYachtI18n)
			r.Patch("/destinations/{id}/i18n", h.patchDestinationI18n)
			r.Put("/stats/{key}", h.putSiteStat)
			r.Post("/gallery", h.uploadGalleryImage)
			r.Delete("/gallery/{id}", h.deleteGalleryImage)
		})
	})
}

// selectLocale reads the path's locale segment. Anything outside the
// supported set degrades to the default rather than erroring; the
// public site must always render.
func selectLocale(r *http.Request) string {
	l := chi.URLParam(r, "locale")
	if i18n.Supported(l) {
		return l
	}
	return i18n.DefaultLocale
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable sends v with an ETag, short-circuiting on If-None-Match.
func writeCacheable(w http.ResponseWriter, r *http.Request, locale string, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	if locale != "" {
		w.Header().Set("Content-Language", locale)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// ---- public content ----

func (h *Handlers) getYacht(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	locale := selectLocale(r)
	resp, err := h.Q.GetYacht(r.Context(), id, locale)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "yacht not found")
		return
	}
	writeCacheable(w, r, resp.Locale, resp)
}

func (h *Handlers) listYachts(w http.ResponseWriter, r *http.Request) {
	locale := selectLocale(r)
	out, err := h.Q.ListYachts(r.Context(), locale)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list yachts")
		return
	}
	writeCacheable(w, r, locale, out)
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	locale := selectLocale(r)
	resp, err := h.Q.GetDestination(r.Context(), id, locale)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "destination not found")
		return
	}
	writeCacheable(w, r, resp.Locale, resp)
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	locale := selectLocale(r)
	out, err := h.Q.ListDestinations(r.Context(), locale)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list destinations")
		return
	}
	writeCacheable(w, r, locale, out)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	// Newest first; aligns with DB index on (created_at, id)
	page := domain.PageQuery{Limit: limit, Cursor: nil, Sort: "-created_at"}
	out, err := h.Q.ListReviews(r.Context(), page)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list reviews")
		return
	}
	writeCacheable(w, r, "", out)
}

func (h *Handlers) listCrew(w http.ResponseWriter, r *http.Request) {
	locale := selectLocale(r)
	out, err := h.Q.ListCrew(r.Context(), locale)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list crew")
		return
	}
	writeCacheable(w, r, locale, out)
}

func (h *Handlers) listGallery(w http.ResponseWriter, r *http.Request) {
	locale := selectLocale(r)
	out, err := h.Q.ListGallery(r.Context(), locale)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list gallery")
		return
	}
	writeCacheable(w, r, locale, out)
}

func (h *Handlers) listSiteStats(w http.ResponseWriter, r *http.Request) {
	locale := selectLocale(r)
	out, err := h.Q.ListSiteStats(r.Context(), locale)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list stats")
		return
	}
	writeCacheable(w, r, locale, out)
}

// ---- promo banner ----

type promoResponse struct {
	Eligible        bool                `json:"eligible"`
	Deadline        time.Time           `json:"deadline"`
	DiscountPercent float64             `json:"discount_percent"`
	Quote           *pricing.PriceQuote `json:"quote,omitempty"`
}

func (h *Handlers) getPromo(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	resp := promoResponse{
		Eligible:        h.Window.Eligible(now),
		Deadline:        h.Window.Deadline,
		DiscountPercent: h.Window.DiscountPercent,
	}
	if ps := r.URL.Query().Get("price"); ps != "" {
		// ParseFloat accepts "NaN" and "Inf"; neither is a price.
		price, err := strconv.ParseFloat(ps, 64)
		if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
			writeProblem(w, http.StatusBadRequest, "Invalid price", "price must be a finite number")
			return
		}
		q := h.Window.Quote(price, now)
		resp.Quote = &q
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- booking-inquiry funnel ----

type inquiryRequest struct {
	YachtID   *int64  `json:"yacht_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Message   *string `json:"message"`
}

func (h *Handlers) createInquiry(w http.ResponseWriter, r *http.Request) {
	var req inquiryRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a JSON inquiry")
		return
	}
	id, err := h.C.SubmitInquiry(r.Context(), domain.Inquiry{
		YachtID:   req.YachtID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			writeProblem(w, http.StatusBadRequest, "Invalid inquiry", err.Error())
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not save inquiry")
		return
	}
	observability.InquiriesSubmitted.Inc()
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// ---- admin ----

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.S.Dashboard(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not compute dashboard stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) listInquiries(w http.ResponseWriter, r *http.Request) {
	out, err := h.S.Inquiries(r.Context())
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list inquiries")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type i18nPatchRequest struct {
	Field  string  `json:"field"`
	Locale string  `json:"locale"`
	Value  *string `json:"value"` // null clears the locale
}

func decodeI18nPatch(r *http.Request) (int64, i18nPatchRequest, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, i18nPatchRequest{}, errors.New("id must be a number")
	}
	var req i18nPatchRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 256<<10)).Decode(&req); err != nil {
		return 0, i18nPatchRequest{}, errors.New("expected a JSON patch body")
	}
	if !i18n.Supported(req.Locale) {
		return 0, i18nPatchRequest{}, errors.New("unsupported locale")
	}
	return id, req, nil
}

func (h *Handlers) patchYachtI18n(w http.ResponseWriter, r *http.Request) {
	id, req, err := decodeI18nPatch(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid patch", err.Error())
		return
	}
	err = h.C.SaveYachtI18n(r.Context(), id, domain.I18nField(req.Field), req.Locale, req.Value)
	h.writeI18nPatchResult(w, err, "yacht")
}

func (h *Handlers) patchDestinationI18n(w http.ResponseWriter, r *http.Request) {
	id, req, err := decodeI18nPatch(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid patch", err.Error())
		return
	}
	err = h.C.SaveDestinationI18n(r.Context(), id, domain.I18nField(req.Field), req.Locale, req.Value)
	h.writeI18nPatchResult(w, err, "destination")
}

func (h *Handlers) writeI18nPatchResult(w http.ResponseWriter, err error, what string) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", what+" not found")
	case errors.Is(err, domain.ErrInvalid):
		writeProblem(w, http.StatusBadRequest, "Invalid patch", err.Error())
	default:
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not save "+what)
	}
}

type siteStatRequest struct {
	Value  string  `json:"value"`
	Locale string  `json:"locale"`
	Label  *string `json:"label"`
}

func (h *Handlers) putSiteStat(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var req siteStatRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a JSON stat body")
		return
	}
	if req.Locale == "" {
		req.Locale = i18n.DefaultLocale
	}
	if !i18n.Supported(req.Locale) {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "unsupported locale")
		return
	}
	if err := h.C.SaveSiteStat(r.Context(), key, req.Value, req.Locale, req.Label); err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			writeProblem(w, http.StatusBadRequest, "Invalid stat", err.Error())
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not save stat")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

const maxUploadBytes = 10 << 20

func (h *Handlers) uploadGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid upload", "expected multipart form with a file field")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid upload", "file field is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid upload", "could not read file")
		return
	}
	var alt *string
	if v := r.FormValue("alt"); v != "" {
		alt = &v
	}
	g, err := h.C.UploadGalleryImage(r.Context(), hdr.Filename, hdr.Header.Get("Content-Type"), data, r.FormValue("alt_locale"), alt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalid) {
			writeProblem(w, http.StatusBadRequest, "Invalid upload", err.Error())
			return
		}
		writeProblem(w, http.StatusBadGateway, "Storage Error", "could not store image")
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *Handlers) deleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return
	}
	if err := h.C.DeleteGalleryImage(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "image not found")
			return
		}
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not delete image")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
