package main

import (
	"context"
	"fmt"
	"os"

	"catalog/internal/config"
	"catalog/internal/store/postgres"
	"catalog/internal/store/seed"

	"github.com/rs/zerolog/log"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: go run tools/seed_courses.go <courses.yaml>")
		os.Exit(1)
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("open seed file")
	}
	defer f.Close()

	courses, err := seed.Load(f)
	if err != nil {
		log.Fatal().Err(err).Msg("load seed file")
	}

	cfg := config.Load() // reads DB_DSN from env
	ctx := context.Background()
	pool := postgres.MustOpen(ctx, cfg.DB.DSN, cfg.ConnectTimeout)
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap failed")
	}

	repo := postgres.NewCourseRepository(pool)
	for _, c := range courses {
		if err := repo.Save(ctx, c); err != nil {
			log.Fatal().Err(err).Str("title", c.Title).Msg("save course")
		}
	}
	log.Info().Int("count", len(courses)).Msg("courses seeded")
}
