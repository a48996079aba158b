package coaching

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/okoskine/fitcoach/internal/errors"
)

type sqliteWorkoutLogRepository struct {
	baseRepository
}

func (r *sqliteWorkoutLogRepository) ListRange(ctx context.Context, userID int64, from, to time.Time) (logs []WorkoutLog, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT   workout_date
		FROM     workout_logs
		WHERE    user_id = ? AND workout_date >= ? AND workout_date <= ?
		ORDER BY workout_date`, userID, formatDate(from), formatDate(to))
	if err != nil {
		return nil, errors.Wrap(err, "query workout logs", slog.Int64("user_id", userID))
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	var dates []time.Time
	for rows.Next() {
		var dateStr string
		if err := rows.Scan(&dateStr); err != nil {
			return nil, errors.Wrap(err, "scan workout date")
		}
		date, err := parseDate(dateStr)
		if err != nil {
			return nil, errors.Wrap(err, "parse workout date", slog.String("workout_date", dateStr))
		}
		dates = append(dates, date)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate workout logs", slog.Int64("user_id", userID))
	}

	for _, date := range dates {
		exercises, err := r.loadExercises(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		logs = append(logs, WorkoutLog{Date: date, Exercises: exercises})
	}
	return logs, nil
}

func (r *sqliteWorkoutLogRepository) loadExercises(ctx context.Context, userID int64, date time.Time) (exercises []LoggedExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT   le.id, le.name, ls.weight_kg, ls.reps, ls.rir
		FROM     logged_exercises le
		         LEFT JOIN logged_sets ls ON ls.exercise_id = le.id
		WHERE    le.user_id = ? AND le.workout_date = ?
		ORDER BY le.position, ls.set_number`, userID, formatDate(date))
	if err != nil {
		return nil, errors.Wrap(err, "query logged exercises",
			slog.Int64("user_id", userID),
			slog.String("workout_date", formatDate(date)))
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	var currentID int64
	for rows.Next() {
		var (
			exerciseID int64
			name       string
			weightKg   sql.NullFloat64
			reps       sql.NullInt64
			rir        sql.NullInt64
		)
		if err := rows.Scan(&exerciseID, &name, &weightKg, &reps, &rir); err != nil {
			return nil, errors.Wrap(err, "scan logged set")
		}
		if len(exercises) == 0 || exerciseID != currentID {
			exercises = append(exercises, LoggedExercise{Name: name})
			currentID = exerciseID
		}
		if !weightKg.Valid {
			// An exercise row without sets from the outer join.
			continue
		}
		set := LoggedSet{
			WeightKg: weightKg.Float64,
			Reps:     int(reps.Int64),
		}
		if rir.Valid {
			rirValue := int(rir.Int64)
			set.RIR = &rirValue
		}
		last := len(exercises) - 1
		exercises[last].Sets = append(exercises[last].Sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate logged sets")
	}
	return exercises, nil
}

// Save replaces any previously logged workout for the same date.
func (r *sqliteWorkoutLogRepository) Save(ctx context.Context, userID int64, log WorkoutLog) (err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin workout save")
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	dateStr := formatDate(log.Date)
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO workout_logs (user_id, workout_date)
		VALUES (?, ?)
		ON CONFLICT (user_id, workout_date) DO NOTHING`, userID, dateStr); err != nil {
		return errors.Wrap(err, "upsert workout log", slog.String("workout_date", dateStr))
	}
	if _, err = tx.ExecContext(ctx, `
		DELETE FROM logged_exercises
		WHERE user_id = ? AND workout_date = ?`, userID, dateStr); err != nil {
		return errors.Wrap(err, "clear logged exercises", slog.String("workout_date", dateStr))
	}

	for position, exercise := range log.Exercises {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO logged_exercises (user_id, workout_date, position, name)
			VALUES (?, ?, ?, ?)`, userID, dateStr, position, exercise.Name)
		if err != nil {
			return errors.Wrap(err, "insert logged exercise", slog.String("name", exercise.Name))
		}
		exerciseID, err := result.LastInsertId()
		if err != nil {
			return errors.Wrap(err, "resolve exercise id", slog.String("name", exercise.Name))
		}
		for setNumber, set := range exercise.Sets {
			var rir sql.NullInt64
			if set.RIR != nil {
				rir = sql.NullInt64{Int64: int64(*set.RIR), Valid: true}
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO logged_sets (exercise_id, set_number, weight_kg, reps, rir)
				VALUES (?, ?, ?, ?, ?)`, exerciseID, setNumber+1, set.WeightKg, set.Reps, rir); err != nil {
				return errors.Wrap(err, "insert logged set",
					slog.String("name", exercise.Name),
					slog.Int("set_number", setNumber+1))
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit workout save", slog.String("workout_date", dateStr))
	}
	return nil
}
