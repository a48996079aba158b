package coaching

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okoskine/fitcoach/internal/errors"
	"github.com/okoskine/fitcoach/internal/sqlite"
)

// priorRecordLimit is how many earlier feedback records the refinement rules
// look back at. Consecutive-loss detection only needs the previous week.
const priorRecordLimit = 2

// generateConcurrency bounds parallel per-user feedback runs in batch mode.
// SQLite writes are serialized on a single connection anyway, so a small
// number is enough to overlap the read-heavy analysis work.
const generateConcurrency = 4

// Service exposes the coaching operations backed by SQLite persistence.
type Service struct {
	repo   *repository
	logger *slog.Logger
}

// NewService wires a Service on top of an initialized database.
func NewService(db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   newRepository(db, logger),
		logger: logger,
	}
}

// SaveProfile validates and stores the user's current profile snapshot.
// Validation reuses the baseline calculation so that a stored profile is
// always one the calculator accepts.
func (s *Service) SaveProfile(ctx context.Context, userID int64, profile Profile) error {
	if _, err := CalculateBaseline(profile); err != nil {
		return err
	}
	return s.repo.profiles.Set(ctx, userID, profile)
}

// Profile returns the user's current profile snapshot.
func (s *Service) Profile(ctx context.Context, userID int64) (Profile, error) {
	return s.repo.profiles.Get(ctx, userID)
}

// BaselineTargets computes daily macro targets from the stored profile.
func (s *Service) BaselineTargets(ctx context.Context, userID int64) (MacroTargets, error) {
	profile, err := s.repo.profiles.Get(ctx, userID)
	if err != nil {
		return MacroTargets{}, err
	}
	return CalculateBaseline(profile)
}

// AddMeasurement records a body-composition measurement. Recording a second
// measurement for the same date replaces the first.
func (s *Service) AddMeasurement(ctx context.Context, userID int64, measurement BodyMeasurement) error {
	return s.repo.measurements.Add(ctx, userID, measurement)
}

// Measurements returns the full measurement history in date order.
func (s *Service) Measurements(ctx context.Context, userID int64) ([]BodyMeasurement, error) {
	return s.repo.measurements.List(ctx, userID)
}

// LogWorkout stores a workout log, replacing any earlier log for the date.
func (s *Service) LogWorkout(ctx context.Context, userID int64, log WorkoutLog) error {
	return s.repo.workouts.Save(ctx, userID, log)
}

// WorkoutLogs returns the workout logs within [from, to] in date order.
func (s *Service) WorkoutLogs(ctx context.Context, userID int64, from, to time.Time) ([]WorkoutLog, error) {
	return s.repo.workouts.ListRange(ctx, userID, from, to)
}

// GenerateWeeklyFeedback runs the analysis pipeline for the week starting at
// weekStart and persists the result. Regenerating an existing week replaces
// its analysis and narrative but keeps the original creation time, so manual
// narrative edits are lost on regeneration.
func (s *Service) GenerateWeeklyFeedback(ctx context.Context, userID int64, weekStart time.Time, coachName string) (FeedbackRecord, error) {
	measurements, err := s.repo.measurements.List(ctx, userID)
	if err != nil {
		return FeedbackRecord{}, err
	}
	windowStart, windowEnd := performanceWindow(weekStart)
	logs, err := s.repo.workouts.ListRange(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return FeedbackRecord{}, err
	}
	priorFeedback, err := s.repo.feedback.ListBefore(ctx, userID, weekStart, priorRecordLimit)
	if err != nil {
		return FeedbackRecord{}, err
	}

	analysis, narrative, err := generateFeedback(engineInput{
		weekStart:     weekStart,
		measurements:  measurements,
		logs:          logs,
		priorFeedback: priorFeedback,
	})
	if err != nil {
		return FeedbackRecord{}, err
	}

	// Millisecond precision matches the persisted timestamp format, so the
	// returned record equals its stored form.
	now := time.Now().UTC().Truncate(time.Millisecond)
	record := FeedbackRecord{
		WeekStart: weekStart,
		Narrative: narrative,
		Analysis:  analysis,
		CoachName: coachName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, err := s.repo.feedback.Get(ctx, userID, weekStart); err == nil {
		record.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return FeedbackRecord{}, err
	}

	if err := s.repo.feedback.Upsert(ctx, userID, record); err != nil {
		return FeedbackRecord{}, err
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "generated weekly feedback",
		slog.Int64("user_id", userID),
		slog.String("week_start", formatDate(weekStart)),
		slog.String("situation", string(analysis.Situation)),
		slog.Bool("should_deload", analysis.ShouldDeload))
	return record, nil
}

// FeedbackHistory returns up to limit feedback records before weekStart,
// newest first.
func (s *Service) FeedbackHistory(ctx context.Context, userID int64, weekStart time.Time, limit int) ([]FeedbackRecord, error) {
	return s.repo.feedback.ListBefore(ctx, userID, weekStart, limit)
}

// Feedback returns the stored record for the week starting at weekStart.
func (s *Service) Feedback(ctx context.Context, userID int64, weekStart time.Time) (FeedbackRecord, error) {
	return s.repo.feedback.Get(ctx, userID, weekStart)
}

// EditNarrative replaces the narrative of an existing feedback record while
// leaving its structured analysis untouched.
func (s *Service) EditNarrative(ctx context.Context, userID int64, weekStart time.Time, narrative string) error {
	return s.repo.feedback.UpdateNarrative(ctx, userID, weekStart, narrative)
}

// GenerateForAllUsers generates feedback for every known user for the given
// week. Users without enough measurement history are skipped with a warning
// instead of failing the batch.
func (s *Service) GenerateForAllUsers(ctx context.Context, weekStart time.Time, coachName string) error {
	userIDs, err := s.repo.users.ListIDs(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(generateConcurrency)
	for _, userID := range userIDs {
		userID := userID
		g.Go(func() error {
			_, err := s.GenerateWeeklyFeedback(ctx, userID, weekStart, coachName)
			if errors.Is(err, ErrInsufficientHistory) {
				s.logger.LogAttrs(ctx, slog.LevelWarn, "skipping user with insufficient history",
					slog.Int64("user_id", userID),
					slog.String("week_start", formatDate(weekStart)))
				return nil
			}
			if err != nil {
				return errors.Wrap(err, "generate feedback", slog.Int64("user_id", userID))
			}
			return nil
		})
	}
	return g.Wait()
}
