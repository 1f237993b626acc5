package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/unifylabs/unify-backend/internal/config"
	"github.com/unifylabs/unify-backend/internal/database"
	"github.com/unifylabs/unify-backend/internal/logger"
	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

// slotRow is one line of the timetable CSV export the registrar hands us.
type slotRow struct {
	CourseCode string `csv:"course_code"`
	Section    int    `csv:"section"`
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
	Kind       string `csv:"kind"`
}

func main() {
	var (
		file string
		year int
		term string
	)
	flag.StringVar(&file, "file", "", "Path to the timetable CSV")
	flag.IntVar(&year, "year", 0, "Academic year the slots belong to")
	flag.StringVar(&term, "term", "", "Term (FALL, SPRING or SUMMER)")
	flag.Parse()

	if file == "" || year == 0 {
		flag.Usage()
		os.Exit(2)
	}
	switch term {
	case "FALL", "SPRING", "SUMMER":
	default:
		fmt.Println("Error: term must be FALL, SPRING or SUMMER")
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Str("file", file).Msg("Failed to open CSV")
	}
	defer f.Close()

	var rows []*slotRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse CSV")
	}

	// Parse and validate every row before touching the database. A
	// single malformed row rejects the whole file.
	slots := make([]model.TimeSlot, 0, len(rows))
	for i, row := range rows {
		day, err := model.ParseWeekday(row.Day)
		if err != nil {
			log.Fatal().Err(err).Int("row", i+1).Msg("Bad day value")
		}
		start, err := model.ParseClock(row.Start)
		if err != nil {
			log.Fatal().Err(err).Int("row", i+1).Msg("Bad start time")
		}
		end, err := model.ParseClock(row.End)
		if err != nil {
			log.Fatal().Err(err).Int("row", i+1).Msg("Bad end time")
		}

		slot := model.TimeSlot{
			CourseCode: strings.ToUpper(strings.TrimSpace(row.CourseCode)),
			Section:    row.Section,
			Day:        day,
			Start:      start,
			End:        end,
			Kind:       model.SlotKind(row.Kind),
		}
		if err := slot.Validate(); err != nil {
			log.Fatal().Err(err).Int("row", i+1).Msg("Invalid slot")
		}
		slots = append(slots, slot)
	}

	slotRepo := repository.NewSlotRepository(pool)
	if err := slotRepo.CreateBatch(ctx, year, term, slots); err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("Imported %d slots for %s %d\n", len(slots), term, year)
}
