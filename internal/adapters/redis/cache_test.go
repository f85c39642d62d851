package redisad_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"balearic_charter/internal/adapters/observability"
	redisad "balearic_charter/internal/adapters/redis"
	"balearic_charter/internal/domain"
)

func TestCache_RoundTripAndMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var got domain.YachtView
	ok, err := c.Get(ctx, "yacht:1:en", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	want := domain.YachtView{ID: 1, Slug: "oceanis-46", Name: "Oceanis 46", Locale: "en"}
	if err := c.Set(ctx, "yacht:1:en", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err = c.Get(ctx, "yacht:1:en", &got)
	if err != nil || !ok {
		t.Fatalf("get after set: ok=%v err=%v", ok, err)
	}
	if got.ID != 1 || got.Name != "Oceanis 46" || got.Locale != "en" {
		t.Fatalf("unexpected cached view: %+v", got)
	}
}

func TestCache_MetricsLabelledByKeyspace(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "yacht:7:es", "v", 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	var s string
	if ok, err := c.Get(ctx, "yacht:7:es", &s); err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}

	reg := observability.InitRegistry()
	rr := httptest.NewRecorder()
	observability.MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		`charter_cache_events_total{cache="yacht",event="set"}`,
		`charter_cache_events_total{cache="yacht",event="hit"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in metrics output", want)
		}
	}
}

func TestCache_Del(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var s string
	ok, _ := c.Get(ctx, "k", &s)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}
