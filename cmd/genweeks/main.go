// Command genweeks pre-generates the canonical week records for one ISO
// year. Week rows are otherwise created lazily on first reference; running
// this ahead of time keeps month views complete from day one. Safe to
// re-run.
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hourglass/timesheet/internal/repositories"
	"github.com/hourglass/timesheet/internal/services"
	"github.com/hourglass/timesheet/pkg/config"
	"github.com/hourglass/timesheet/pkg/database"
)

func main() {
	year := flag.Int("year", time.Now().UTC().Year(), "ISO year to generate weeks for")
	flag.Parse()

	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	weekService := services.NewWeekService(repositories.NewWeekRepository(database.DB))

	count, err := weekService.GenerateWeeksForYear(*year)
	if err != nil {
		log.Fatalf("Failed to generate weeks: %v", err)
	}

	log.Printf("Generated %d weeks for ISO year %d", count, *year)
}
