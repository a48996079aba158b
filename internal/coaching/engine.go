package coaching

import "time"

// engineInput is everything one feedback run reads. All collections are
// already materialized by the caller; the engine performs no I/O and keeps
// no state between calls.
type engineInput struct {
	weekStart time.Time
	// measurements is the user's full measurement history, any order.
	measurements []BodyMeasurement
	// logs are the workout logs within the performance window.
	logs []WorkoutLog
	// priorFeedback holds up to the two most recent earlier records,
	// newest first.
	priorFeedback []FeedbackRecord
}

// generateFeedback runs the full analysis pipeline: composition deltas,
// performance aggregation, situation classification, adjustment refinement,
// and narrative assembly.
//
// Insufficient body-composition data fails the whole run with
// ErrInsufficientHistory; missing RIR or performance data only disables the
// effort rules. Identical inputs always produce identical results.
func generateFeedback(in engineInput) (Analysis, string, error) {
	comp, err := analyzeComposition(in.measurements, in.weekStart)
	if err != nil {
		return Analysis{}, "", err
	}

	perf := aggregatePerformance(in.logs)
	profile := classifySituation(comp.muscleDirection, comp.fatDirection)
	refined := refineAdjustments(profile.adjustments, comp, perf, in.priorFeedback)

	analysis := Analysis{
		MuscleMassDeltaKg:    comp.muscleMassDeltaKg,
		FatMassDeltaKg:       comp.fatMassDeltaKg,
		WeightDeltaKg:        comp.weightDeltaKg,
		MuscleDirection:      comp.muscleDirection,
		FatDirection:         comp.fatDirection,
		AverageRIR:           perf.averageRIR,
		PerformanceChangePct: perf.changePct,
		PerformanceDirection: perf.direction,
		Situation:            profile.situation,
		Adjustments:          refined.adjustments,
		Warnings:             refined.warnings,
		ShouldDeload:         refined.shouldDeload,
	}

	return analysis, buildNarrative(in.weekStart, analysis, profile), nil
}
