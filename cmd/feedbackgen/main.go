// Command feedbackgen generates weekly coaching feedback for every user in
// the database and exits. It is meant to run from cron at the start of each
// week.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/okoskine/fitcoach/internal/coaching"
	"github.com/okoskine/fitcoach/internal/envstruct"
	"github.com/okoskine/fitcoach/internal/errors"
	"github.com/okoskine/fitcoach/internal/logging"
	"github.com/okoskine/fitcoach/internal/sqlite"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"FITCOACH_SQLITE_URL" envDefault:"./fitcoach.sqlite3"`
	// WeekStart is the first day of the week to analyze in YYYY-MM-DD format.
	// When empty, the Monday of the current week is used.
	WeekStart string `env:"FITCOACH_WEEK_START" envDefault:""`
	// CoachName is recorded on the generated feedback.
	CoachName string `env:"FITCOACH_COACH_NAME" envDefault:"fitcoach"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	weekStart, err := resolveWeekStart(cfg.WeekStart, time.Now())
	if err != nil {
		return errors.Wrap(err, "resolve week start", slog.String("week_start", cfg.WeekStart))
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.LogAttrs(ctx, slog.LevelError, "close db", errors.SlogError(closeErr))
		}
	}()

	service := coaching.NewService(db, logger)
	if err := service.GenerateForAllUsers(ctx, weekStart, cfg.CoachName); err != nil {
		return errors.Wrap(err, "generate feedback for all users",
			slog.String("week_start", weekStart.Format(time.DateOnly)))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "feedback generation finished",
		slog.String("week_start", weekStart.Format(time.DateOnly)))
	return nil
}

// resolveWeekStart parses the configured week start or falls back to the
// Monday of the week containing now.
func resolveWeekStart(configured string, now time.Time) (time.Time, error) {
	if configured != "" {
		return time.Parse(time.DateOnly, configured)
	}
	// time.Weekday numbers Sunday as 0, so shift it to the end of the week.
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC), nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "feedback generation failed", errors.SlogError(err))
		os.Exit(1)
	}
}
