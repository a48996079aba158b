package coaching

import (
	"log/slog"
	"sort"
	"time"

	"github.com/okoskine/fitcoach/internal/errors"
)

// DirectionNoiseBandKg is the fixed noise threshold for body-composition
// deltas: changes within ±0.3 kg are labelled maintain.
const DirectionNoiseBandKg = 0.3

// Comparison anchors relative to the week start.
const (
	daysPerWeek       = 7
	weekEndOffsetDays = 6
	oneWeekAgoDays    = -7
	twoWeeksAgoDays   = -14
)

// compositionAnalysis is the result of comparing the target week's
// measurement against the closest week-ago measurement.
type compositionAnalysis struct {
	current           BodyMeasurement
	previous          BodyMeasurement
	muscleMassDeltaKg float64
	fatMassDeltaKg    float64
	weightDeltaKg     float64
	muscleDirection   Direction
	fatDirection      Direction
}

// analyzeComposition compares the latest measurement of the week starting at
// weekStart against the measurement closest to one week before (falling back
// to two weeks before). Measurements may be passed in any order.
//
// The closest-by-absolute-difference rule can select a measurement dated
// after the anchor in sparse histories. That matches the historical behavior
// and is kept deliberately.
func analyzeComposition(measurements []BodyMeasurement, weekStart time.Time) (compositionAnalysis, error) {
	sorted := make([]BodyMeasurement, len(measurements))
	copy(sorted, measurements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	weekEnd := weekStart.AddDate(0, 0, weekEndOffsetDays)
	currentIdx := latestMeasurementAt(sorted, weekEnd)
	if currentIdx < 0 {
		return compositionAnalysis{}, errors.Wrap(ErrInsufficientHistory,
			"no measurement recorded for target week",
			slog.Time("week_start", weekStart))
	}
	current := sorted[currentIdx]

	candidates := make([]BodyMeasurement, 0, len(sorted)-1)
	candidates = append(candidates, sorted[:currentIdx]...)
	candidates = append(candidates, sorted[currentIdx+1:]...)

	previous, found := closestMeasurement(candidates, weekStart.AddDate(0, 0, oneWeekAgoDays))
	if !found {
		previous, found = closestMeasurement(candidates, weekStart.AddDate(0, 0, twoWeeksAgoDays))
	}
	if !found {
		return compositionAnalysis{}, errors.Wrap(ErrInsufficientHistory,
			"at least two measurements are required for trend analysis",
			slog.Int("measurement_count", len(sorted)))
	}

	muscleDelta := leanMassKg(current) - leanMassKg(previous)
	fatDelta := current.BodyFatKg - previous.BodyFatKg
	weightDelta := current.WeightKg - previous.WeightKg

	return compositionAnalysis{
		current:           current,
		previous:          previous,
		muscleMassDeltaKg: muscleDelta,
		fatMassDeltaKg:    fatDelta,
		weightDeltaKg:     weightDelta,
		muscleDirection:   directionForDelta(muscleDelta),
		fatDirection:      directionForDelta(fatDelta),
	}, nil
}

// latestMeasurementAt returns the index of the latest measurement dated at
// or before the cutoff, or -1 when none exists. Expects ascending order.
func latestMeasurementAt(sorted []BodyMeasurement, cutoff time.Time) int {
	for i := len(sorted) - 1; i >= 0; i-- {
		if !sorted[i].Date.After(cutoff) {
			return i
		}
	}
	return -1
}

// closestMeasurement returns the measurement whose date has the smallest
// absolute difference to the anchor.
func closestMeasurement(candidates []BodyMeasurement, anchor time.Time) (BodyMeasurement, bool) {
	if len(candidates) == 0 {
		return BodyMeasurement{}, false
	}
	best := candidates[0]
	bestDistance := absDuration(best.Date.Sub(anchor))
	for _, candidate := range candidates[1:] {
		if distance := absDuration(candidate.Date.Sub(anchor)); distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best, true
}

// leanMassKg derives muscle mass from total weight and absolute fat mass.
func leanMassKg(m BodyMeasurement) float64 {
	return m.WeightKg - m.BodyFatKg
}

// directionForDelta applies the fixed noise band: a delta of exactly
// ±DirectionNoiseBandKg is still maintain.
func directionForDelta(deltaKg float64) Direction {
	switch {
	case deltaKg > DirectionNoiseBandKg:
		return DirectionIncrease
	case deltaKg < -DirectionNoiseBandKg:
		return DirectionDecrease
	default:
		return DirectionMaintain
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
