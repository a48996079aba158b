package coaching

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/okoskine/fitcoach/internal/errors"
)

type sqliteUserRepository struct {
	baseRepository
}

func (r *sqliteUserRepository) ListIDs(ctx context.Context) (ids []int64, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "query user ids")
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan user id")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate user ids")
	}
	return ids, nil
}

type sqliteProfileRepository struct {
	baseRepository
}

func (r *sqliteProfileRepository) Get(ctx context.Context, userID int64) (Profile, error) {
	var (
		profile   Profile
		mode      string
		sex       string
		frequency string
		goal      string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT mode, sex, age_years, height_cm, weight_kg, body_fat_pct, training_frequency, goal, protein_rate_g_per_kg
		FROM   profiles
		WHERE  user_id = ?`, userID).Scan(
		&mode,
		&sex,
		&profile.AgeYears,
		&profile.HeightCm,
		&profile.WeightKg,
		&profile.BodyFatPercent,
		&frequency,
		&goal,
		&profile.ProteinRateGPerKg,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, errors.Wrap(ErrNotFound, "lookup profile", slog.Int64("user_id", userID))
	}
	if err != nil {
		return Profile{}, errors.Wrap(err, "query profile", slog.Int64("user_id", userID))
	}
	profile.Mode = Mode(mode)
	profile.Sex = Sex(sex)
	profile.Frequency = Frequency(frequency)
	profile.Goal = Goal(goal)
	return profile, nil
}

func (r *sqliteProfileRepository) Set(ctx context.Context, userID int64, profile Profile) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO profiles (user_id, mode, sex, age_years, height_cm, weight_kg, body_fat_pct, training_frequency, goal, protein_rate_g_per_kg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			mode = excluded.mode,
			sex = excluded.sex,
			age_years = excluded.age_years,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			body_fat_pct = excluded.body_fat_pct,
			training_frequency = excluded.training_frequency,
			goal = excluded.goal,
			protein_rate_g_per_kg = excluded.protein_rate_g_per_kg`,
		userID,
		string(profile.Mode),
		string(profile.Sex),
		profile.AgeYears,
		profile.HeightCm,
		profile.WeightKg,
		profile.BodyFatPercent,
		string(profile.Frequency),
		string(profile.Goal),
		profile.ProteinRateGPerKg,
	)
	if err != nil {
		return errors.Wrap(err, "upsert profile", slog.Int64("user_id", userID))
	}
	return nil
}
