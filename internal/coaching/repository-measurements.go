package coaching

import (
	"context"
	"log/slog"

	"github.com/okoskine/fitcoach/internal/errors"
)

type sqliteMeasurementRepository struct {
	baseRepository
}

func (r *sqliteMeasurementRepository) List(ctx context.Context, userID int64) (measurements []BodyMeasurement, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT   measured_on, weight_kg, skeletal_muscle_kg, body_fat_kg
		FROM     body_measurements
		WHERE    user_id = ?
		ORDER BY measured_on`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query measurements", slog.Int64("user_id", userID))
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	for rows.Next() {
		var (
			measurement BodyMeasurement
			measuredOn  string
		)
		if err := rows.Scan(&measuredOn, &measurement.WeightKg, &measurement.SkeletalMuscleKg, &measurement.BodyFatKg); err != nil {
			return nil, errors.Wrap(err, "scan measurement", slog.Int64("user_id", userID))
		}
		measurement.Date, err = parseDate(measuredOn)
		if err != nil {
			return nil, errors.Wrap(err, "parse measurement date", slog.String("measured_on", measuredOn))
		}
		measurements = append(measurements, measurement)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate measurements", slog.Int64("user_id", userID))
	}
	return measurements, nil
}

func (r *sqliteMeasurementRepository) Add(ctx context.Context, userID int64, measurement BodyMeasurement) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO body_measurements (user_id, measured_on, weight_kg, skeletal_muscle_kg, body_fat_kg)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, measured_on) DO UPDATE SET
			weight_kg = excluded.weight_kg,
			skeletal_muscle_kg = excluded.skeletal_muscle_kg,
			body_fat_kg = excluded.body_fat_kg`,
		userID,
		formatDate(measurement.Date),
		measurement.WeightKg,
		measurement.SkeletalMuscleKg,
		measurement.BodyFatKg,
	)
	if err != nil {
		return errors.Wrap(err, "upsert measurement",
			slog.Int64("user_id", userID),
			slog.String("measured_on", formatDate(measurement.Date)))
	}
	return nil
}
