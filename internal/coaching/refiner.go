package coaching

// Refinement policy constants. These are deliberately named so the decision
// table stays auditable and testable in isolation.
const (
	// RIRHighThreshold marks training that stays too far from failure.
	RIRHighThreshold = 3.0
	// RIRLowThreshold marks training that rides too close to failure.
	RIRLowThreshold = 0.5
	// PerformanceDropWarningPct is the volume-trend drop that triggers the
	// performance warning and carb bump.
	PerformanceDropWarningPct = -10.0
	// RapidFatGainKgPerWeek is the fat gain rate that forces an immediate
	// calorie cut.
	RapidFatGainKgPerWeek = 0.5
)

// Warning texts emitted by the refiner.
const (
	warnRIRHigh               = "RIR high, consider increasing load"
	warnRIRLow                = "RIR too low, overtraining risk"
	warnPerformanceDrop       = "performance dropped more than 10%"
	warnConsecutiveMuscleLoss = "two consecutive weeks of muscle loss"
	warnRapidFatGain          = "rapid fat gain (over 0.5 kg/week)"
	warnDeloadTriggered       = "deload week auto-triggered"
)

// refinement is the final adjustment set after applying the override rules.
type refinement struct {
	adjustments  Adjustments
	warnings     []string
	shouldDeload bool
}

// refineAdjustments applies the override rules to the situation defaults in
// a fixed order. The ordering is a contract: later rules override the
// adjustments written by earlier ones.
//
// priorRecords are the user's most recent feedback records, newest first;
// only the immediately prior week is consulted. A missing RIR signal or an
// empty performance window simply leaves the effort rules inert.
func refineAdjustments(
	defaults Adjustments,
	comp compositionAnalysis,
	perf performanceSummary,
	priorRecords []FeedbackRecord,
) refinement {
	result := refinement{
		adjustments:  defaults,
		warnings:     nil,
		shouldDeload: false,
	}

	// Effort signals: high RIR asks for more load, very low RIR for less
	// volume. The two are mutually exclusive.
	switch {
	case perf.averageRIR != nil && *perf.averageRIR >= RIRHighThreshold:
		result.adjustments.TrainingIntensity = "increase load 2-5% (insufficient stimulus)"
		result.warnings = append(result.warnings, warnRIRHigh)
	case perf.averageRIR != nil && *perf.averageRIR <= RIRLowThreshold:
		result.adjustments.TrainingVolume = "decrease volume 10-20% (excess fatigue)"
		result.warnings = append(result.warnings, warnRIRLow)
	}

	// A clear performance drop signals an energy shortfall.
	if perf.direction == DirectionDecrease && perf.changePct < PerformanceDropWarningPct {
		result.warnings = append(result.warnings, warnPerformanceDrop)
		result.adjustments.Carb = "increase 10-15% (energy shortfall)"
		result.adjustments.TrainingVolume = "deload week recommended"
	}

	// Two consecutive weeks of muscle loss overrides the nutrition plan. A
	// single bad week never fires this rule.
	if len(priorRecords) > 0 &&
		priorRecords[0].Analysis.MuscleDirection == DirectionDecrease &&
		comp.muscleDirection == DirectionDecrease {
		result.warnings = append(result.warnings, warnConsecutiveMuscleLoss)
		result.adjustments.Protein = "raise immediately (>=2.2 g/kg)"
		result.adjustments.TrainingVolume = "decrease 20%"
		result.adjustments.Calorie = "increase 10%"
	}

	// Rapid fat gain forces an immediate calorie cut regardless of earlier
	// calorie adjustments.
	if fatGainPerWeekKg(comp) > RapidFatGainKgPerWeek {
		result.warnings = append(result.warnings, warnRapidFatGain)
		result.adjustments.Calorie = "immediate decrease 10%"
	}

	// Deload decision, last so its training overrides win.
	rirExhausted := perf.averageRIR != nil && *perf.averageRIR <= RIRLowThreshold
	result.shouldDeload = (rirExhausted && perf.changePct < PerformanceDropWarningPct) ||
		(perf.direction == DirectionDecrease && comp.muscleDirection == DirectionDecrease)
	if result.shouldDeload {
		result.warnings = append(result.warnings, warnDeloadTriggered)
		result.adjustments.TrainingVolume = "decrease 40-50% for one week"
		result.adjustments.TrainingIntensity = "maintain load"
	}

	return result
}

// fatGainPerWeekKg normalizes the fat delta by the weeks between the
// comparison and current measurements, clamped to at least one week to keep
// the divisor defined.
func fatGainPerWeekKg(comp compositionAnalysis) float64 {
	weeks := comp.current.Date.Sub(comp.previous.Date).Hours() / 24 / daysPerWeek
	if weeks < 1 {
		weeks = 1
	}
	return comp.fatMassDeltaKg / weeks
}
