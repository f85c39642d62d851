package httpserver_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpserver "balearic_charter/internal/adapters/http_server"
	"balearic_charter/internal/pricing"
)

func newTestServer(h *httpserver.Handlers) *httptest.Server {
	srv := httpserver.New()
	srv.MountHandlers(h)
	return httptest.NewServer(srv.Mux())
}

func TestGetPromo_OpenWindow(t *testing.T) {
	ts := newTestServer(&httpserver.Handlers{
		Window: pricing.Window{Deadline: time.Now().Add(24 * time.Hour), DiscountPercent: 10},
	})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/promo?price=1000")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Eligible bool `json:"eligible"`
		Quote    *struct {
			Original       float64 `json:"original"`
			Discounted     float64 `json:"discounted"`
			DiscountAmount float64 `json:"discount_amount"`
			Eligible       bool    `json:"eligible"`
		} `json:"quote"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Eligible || body.Quote == nil {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Quote.Discounted != 900 || body.Quote.DiscountAmount != 100 {
		t.Fatalf("unexpected quote: %+v", body.Quote)
	}
}

func TestGetPromo_ClosedWindow(t *testing.T) {
	ts := newTestServer(&httpserver.Handlers{
		Window: pricing.Window{Deadline: time.Now().Add(-time.Hour), DiscountPercent: 10},
	})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/promo")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()

	var body struct {
		Eligible bool            `json:"eligible"`
		Quote    json.RawMessage `json:"quote"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Eligible {
		t.Fatalf("window should be closed")
	}
	if len(body.Quote) != 0 {
		t.Fatalf("no price requested, quote should be omitted: %s", body.Quote)
	}
}

func TestGetPromo_BadPrice(t *testing.T) {
	ts := newTestServer(&httpserver.Handlers{
		Window: pricing.Window{Deadline: time.Now().Add(time.Hour), DiscountPercent: 10},
	})
	defer ts.Close()

	// ParseFloat accepts NaN/Inf spellings; the handler must not
	for _, price := range []string{"lots", "NaN", "Inf", "-Inf", "+Inf"} {
		res, err := http.Get(ts.URL + "/v1/promo?price=" + price)
		if err != nil {
			t.Fatalf("GET price=%s: %v", price, err)
		}
		res.Body.Close()
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("price=%s: status %d, want 400", price, res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("price=%s: content type %q", price, ct)
		}
	}
}

func TestAdminRoutes_RequireKey(t *testing.T) {
	ts := newTestServer(&httpserver.Handlers{AdminKey: "sekrit"})
	defer ts.Close()

	// no key
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/admin/gallery/abc", nil)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("req: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", res.StatusCode)
	}

	// wrong key
	req.Header.Set("X-Admin-Key", "guess")
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("req: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", res.StatusCode)
	}

	// right key reaches the handler (bad id -> 400, not 401)
	req.Header.Set("X-Admin-Key", "sekrit")
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("req: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", res.StatusCode)
	}
}
