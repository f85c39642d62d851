package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"balearic_charter/internal/adapters/observability"
	"balearic_charter/internal/app"
	"balearic_charter/internal/shared"
	mysqlrepo "balearic_charter/internal/storage/mysql"
)

// seedFile is the legacy CMS export: one array of loosely-shaped
// records per content kind.
type seedFile struct {
	Fleet        []map[string]any `json:"fleet"`
	Destinations []map[string]any `json:"destinations"`
	Reviews      []map[string]any `json:"reviews"`
	Crew         []map[string]any `json:"crew"`
	Stats        []map[string]any `json:"stats"`
}

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "seeder")

	log.Info().
		Str("file", cfg.SeedFile).
		Int("workers", cfg.Workers).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("read seed file failed")
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		log.Fatal().Err(err).Msg("parse seed file failed")
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	svc := app.NewSeedService(mysqlrepo.New(db))
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	run := func(kind string, recs []map[string]any, do func(context.Context, map[string]any) error) {
		for _, rec := range recs {
			rec := rec

			// acquire before launching the goroutine; release inside it
			if err := sem.Acquire(ctx, int64(1)); err != nil {
				log.Fatal().Err(err).Msg("semaphore acquire failed")
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				defer sem.Release(int64(1))

				if err := do(ctx, rec); err != nil {
					log.Warn().Str("kind", kind).Err(err).Msg("import failed")
					return
				}
				log.Info().Str("kind", kind).Msg("import ok")
			}()
		}
	}

	// Fleet and destinations first: reviews reference yachts by id.
	run("yacht", seed.Fleet, svc.ImportYacht)
	run("destination", seed.Destinations, svc.ImportDestination)
	wg.Wait()

	run("review", seed.Reviews, svc.ImportReview)
	run("crew", seed.Crew, svc.ImportCrewMember)
	run("stat", seed.Stats, svc.ImportSiteStat)
	wg.Wait()

	log.Info().Msg("seeding completed")
}
