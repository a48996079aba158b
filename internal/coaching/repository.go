package coaching

import (
	"context"
	"log/slog"
	"time"

	"github.com/okoskine/fitcoach/internal/sqlite"
)

const (
	dateFormat      = time.DateOnly
	timestampFormat = "2006-01-02T15:04:05.000Z"
)

// The engine's collaborators are plain providers and a sink: how the records
// are stored is irrelevant to the analysis contract. The SQLite
// implementations below are the default collaborators; callers with their
// own persistence can substitute theirs.

// userRepository lists the users known to the system.
type userRepository interface {
	ListIDs(ctx context.Context) ([]int64, error)
}

// profileRepository stores the single current profile snapshot per user.
type profileRepository interface {
	Get(ctx context.Context, userID int64) (Profile, error)
	Set(ctx context.Context, userID int64, profile Profile) error
}

// measurementRepository provides the append-only measurement history.
type measurementRepository interface {
	List(ctx context.Context, userID int64) ([]BodyMeasurement, error)
	Add(ctx context.Context, userID int64, measurement BodyMeasurement) error
}

// workoutLogRepository provides workout logs in an arbitrary date range.
type workoutLogRepository interface {
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]WorkoutLog, error)
	Save(ctx context.Context, userID int64, log WorkoutLog) error
}

// feedbackRepository is both the prior-feedback provider and the
// persistence sink, keyed by (user, week).
type feedbackRepository interface {
	Get(ctx context.Context, userID int64, weekStart time.Time) (FeedbackRecord, error)
	// ListBefore returns up to limit records with week starts before
	// weekStart, newest first.
	ListBefore(ctx context.Context, userID int64, weekStart time.Time, limit int) ([]FeedbackRecord, error)
	Upsert(ctx context.Context, userID int64, record FeedbackRecord) error
	UpdateNarrative(ctx context.Context, userID int64, weekStart time.Time, narrative string) error
}

// repository bundles the collaborator implementations the service uses.
type repository struct {
	users        userRepository
	profiles     profileRepository
	measurements measurementRepository
	workouts     workoutLogRepository
	feedback     feedbackRepository
}

// baseRepository holds the shared dependencies of the SQLite repositories.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

// newRepository wires the SQLite-backed collaborators.
func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	base := newBaseRepository(db, logger)
	return &repository{
		users:        &sqliteUserRepository{baseRepository: base},
		profiles:     &sqliteProfileRepository{baseRepository: base},
		measurements: &sqliteMeasurementRepository{baseRepository: base},
		workouts:     &sqliteWorkoutLogRepository{baseRepository: base},
		feedback:     &sqliteFeedbackRepository{baseRepository: base},
	}
}

func formatDate(date time.Time) string {
	return date.Format(dateFormat)
}

func parseDate(dateStr string) (time.Time, error) {
	return time.Parse(dateFormat, dateStr)
}
