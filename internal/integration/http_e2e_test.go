//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	httpserver "balearic_charter/internal/adapters/http_server"
	rediscache "balearic_charter/internal/adapters/redis"
	"balearic_charter/internal/app"
	"balearic_charter/internal/domain"
	"balearic_charter/internal/i18n"
	"balearic_charter/internal/pricing"
	mysqlrepo "balearic_charter/internal/storage/mysql"
)

// ---------- helpers ----------
func pstr(s string) *string     { return &s }
func pfloat(f float64) *float64 { return &f }

func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// ---------- the test ----------
func TestHTTP_EndToEnd_PublicAndAdmin(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=charter",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "charter")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Seed one yacht with a Spanish name and legacy-only description
	yachtID := int64(22002)
	if err := repo.UpsertYacht(ctx, domain.Yacht{
		ID:                yachtID,
		Slug:              "mar-blava",
		LowSeasonPrice:    pfloat(1000),
		MediumSeasonPrice: pfloat(1200),
		HighSeasonPrice:   pfloat(1400),
		Name:              i18n.LocalizedField{"en": "Mar Blava", "es": "Mar Blava II"},
		DescriptionES:     pstr("Velero clásico"),
		DescriptionTx:     pstr("Classic sailer"),
		Images:            []string{},
	}); err != nil {
		t.Fatalf("UpsertYacht: %v", err)
	}

	// Real router + services; cache backed by miniredis
	mr := miniredis.RunT(t)
	cache := rediscache.New(mr.Addr(), "", 0)

	q := app.NewQueryService(repo, cache, time.Minute)
	c := app.NewContentService(repo, cache, nil)
	s := app.NewStatsService(repo)

	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{
		Q:        q,
		C:        c,
		S:        s,
		Window:   pricing.Window{Deadline: time.Now().Add(24 * time.Hour), DiscountPercent: 10},
		AdminKey: "e2e-key",
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	// Public read: es locale resolves the name, legacy column covers the description
	res, err := http.Get(fmt.Sprintf("%s/v1/es/yachts/%d", ts.URL, yachtID))
	if err != nil {
		t.Fatalf("GET yacht: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected ETag")
	}
	var yv domain.YachtView
	if err := json.NewDecoder(res.Body).Decode(&yv); err != nil {
		t.Fatalf("decode: %v", err)
	}
	res.Body.Close()
	if yv.Name != "Mar Blava II" || yv.Description != "Velero clásico" || yv.Locale != "es" {
		t.Fatalf("unexpected view: %+v", yv)
	}

	// Conditional revalidation
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/v1/es/yachts/%d", ts.URL, yachtID), nil)
	req.Header.Set("If-None-Match", etag)
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET revalidate: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusNotModified {
		t.Fatalf("status %d, want 304", res.StatusCode)
	}

	// Submit an inquiry through the public funnel
	body, _ := json.Marshal(map[string]any{
		"yacht_id":   yachtID,
		"name":       "Carla",
		"email":      "carla@example.com",
		"start_date": "2026-06-01",
		"end_date":   "2026-06-07",
	})
	res, err = http.Post(ts.URL+"/v1/inquiries", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST inquiry: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status %d, want 201", res.StatusCode)
	}

	// Admin dashboard reflects the seeded fleet and the new inquiry
	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/v1/admin/stats", nil)
	req.Header.Set("X-Admin-Key", "e2e-key")
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET dashboard: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	var stats domain.DashboardStats
	if err := json.NewDecoder(res.Body).Decode(&stats); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if stats.TotalInquiries != 1 || stats.FleetSize != 1 {
		t.Fatalf("unexpected dashboard: %+v", stats)
	}
	// 7 charter days at the 1200 average week rate, grossed up for APA and tax
	if stats.RevenuePotential != 12684.00 {
		t.Fatalf("revenue = %v", stats.RevenuePotential)
	}
}
