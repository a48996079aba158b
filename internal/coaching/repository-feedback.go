package coaching

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/okoskine/fitcoach/internal/errors"
)

type sqliteFeedbackRepository struct {
	baseRepository
}

func (r *sqliteFeedbackRepository) Get(ctx context.Context, userID int64, weekStart time.Time) (FeedbackRecord, error) {
	row := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT week_start, narrative, analysis, coach_name, created_at, updated_at
		FROM   feedback_records
		WHERE  user_id = ? AND week_start = ?`, userID, formatDate(weekStart))
	record, err := scanFeedbackRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return FeedbackRecord{}, errors.Wrap(ErrNotFound, "lookup feedback record",
			slog.Int64("user_id", userID),
			slog.String("week_start", formatDate(weekStart)))
	}
	if err != nil {
		return FeedbackRecord{}, errors.Wrap(err, "query feedback record",
			slog.Int64("user_id", userID),
			slog.String("week_start", formatDate(weekStart)))
	}
	return record, nil
}

func (r *sqliteFeedbackRepository) ListBefore(ctx context.Context, userID int64, weekStart time.Time, limit int) (records []FeedbackRecord, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT   week_start, narrative, analysis, coach_name, created_at, updated_at
		FROM     feedback_records
		WHERE    user_id = ? AND week_start < ?
		ORDER BY week_start DESC
		LIMIT    ?`, userID, formatDate(weekStart), limit)
	if err != nil {
		return nil, errors.Wrap(err, "query feedback records", slog.Int64("user_id", userID))
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	for rows.Next() {
		record, err := scanFeedbackRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan feedback record", slog.Int64("user_id", userID))
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate feedback records", slog.Int64("user_id", userID))
	}
	return records, nil
}

// Upsert keeps created_at from the first write and bumps updated_at on
// regeneration.
func (r *sqliteFeedbackRepository) Upsert(ctx context.Context, userID int64, record FeedbackRecord) error {
	analysisJSON, err := json.Marshal(record.Analysis)
	if err != nil {
		return errors.Wrap(err, "marshal analysis", slog.Int64("user_id", userID))
	}
	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO feedback_records (user_id, week_start, narrative, analysis, coach_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, week_start) DO UPDATE SET
			narrative = excluded.narrative,
			analysis = excluded.analysis,
			coach_name = excluded.coach_name,
			updated_at = excluded.updated_at`,
		userID,
		formatDate(record.WeekStart),
		record.Narrative,
		string(analysisJSON),
		record.CoachName,
		record.CreatedAt.UTC().Format(timestampFormat),
		record.UpdatedAt.UTC().Format(timestampFormat),
	)
	if err != nil {
		return errors.Wrap(err, "upsert feedback record",
			slog.Int64("user_id", userID),
			slog.String("week_start", formatDate(record.WeekStart)))
	}
	return nil
}

func (r *sqliteFeedbackRepository) UpdateNarrative(ctx context.Context, userID int64, weekStart time.Time, narrative string) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE feedback_records
		SET    narrative = ?, updated_at = ?
		WHERE  user_id = ? AND week_start = ?`,
		narrative,
		time.Now().UTC().Format(timestampFormat),
		userID,
		formatDate(weekStart),
	)
	if err != nil {
		return errors.Wrap(err, "update narrative",
			slog.Int64("user_id", userID),
			slog.String("week_start", formatDate(weekStart)))
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "count updated narratives")
	}
	if affected == 0 {
		return errors.Wrap(ErrNotFound, "update narrative",
			slog.Int64("user_id", userID),
			slog.String("week_start", formatDate(weekStart)))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFeedbackRecord(row rowScanner) (FeedbackRecord, error) {
	var (
		record       FeedbackRecord
		weekStart    string
		analysisJSON string
		createdAt    string
		updatedAt    string
	)
	if err := row.Scan(&weekStart, &record.Narrative, &analysisJSON, &record.CoachName, &createdAt, &updatedAt); err != nil {
		return FeedbackRecord{}, err
	}
	var err error
	if record.WeekStart, err = parseDate(weekStart); err != nil {
		return FeedbackRecord{}, errors.Wrap(err, "parse week start", slog.String("week_start", weekStart))
	}
	if err = json.Unmarshal([]byte(analysisJSON), &record.Analysis); err != nil {
		return FeedbackRecord{}, errors.Wrap(err, "unmarshal analysis", slog.String("week_start", weekStart))
	}
	if record.CreatedAt, err = time.Parse(timestampFormat, createdAt); err != nil {
		return FeedbackRecord{}, errors.Wrap(err, "parse created_at", slog.String("created_at", createdAt))
	}
	if record.UpdatedAt, err = time.Parse(timestampFormat, updatedAt); err != nil {
		return FeedbackRecord{}, errors.Wrap(err, "parse updated_at", slog.String("updated_at", updatedAt))
	}
	return record, nil
}
