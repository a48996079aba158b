package coaching

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/okoskine/fitcoach/internal/ptr"
)

func maintainAdjustments() Adjustments {
	return Adjustments{
		Calorie:           "maintain",
		Protein:           "maintain",
		Carb:              "maintain",
		TrainingIntensity: "maintain",
		TrainingVolume:    "maintain",
		Cardio:            "maintain",
	}
}

// compFixture builds a composition result with the given muscle trend and
// fat delta, measured daysBetween days apart.
func compFixture(muscleDir Direction, fatDeltaKg float64, daysBetween int) compositionAnalysis {
	previousDate := date(2026, time.February, 16)
	return compositionAnalysis{
		current:         BodyMeasurement{Date: previousDate.AddDate(0, 0, daysBetween)},
		previous:        BodyMeasurement{Date: previousDate},
		fatMassDeltaKg:  fatDeltaKg,
		muscleDirection: muscleDir,
		fatDirection:    directionForDelta(fatDeltaKg),
	}
}

func perfFixture(averageRIR *float64, changePct float64) performanceSummary {
	return performanceSummary{
		averageRIR: averageRIR,
		changePct:  changePct,
		direction:  directionForChangePct(changePct),
	}
}

func priorWeek(muscleDir Direction) []FeedbackRecord {
	return []FeedbackRecord{{
		WeekStart: date(2026, time.February, 23),
		Analysis:  Analysis{MuscleDirection: muscleDir},
	}}
}

func TestRefineAdjustments(t *testing.T) {
	testCases := []struct {
		name            string
		comp            compositionAnalysis
		perf            performanceSummary
		prior           []FeedbackRecord
		wantAdjustments Adjustments
		wantWarnings    []string
		wantDeload      bool
	}{
		{
			name:            "no signals keeps defaults",
			comp:            compFixture(DirectionMaintain, 0.1, 7),
			perf:            perfFixture(ptr.Ref(2.0), 0),
			wantAdjustments: maintainAdjustments(),
			wantWarnings:    nil,
			wantDeload:      false,
		},
		{
			name: "high average RIR asks for more load",
			comp: compFixture(DirectionMaintain, 0, 7),
			perf: perfFixture(ptr.Ref(3.0), 0),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.TrainingIntensity = "increase load 2-5% (insufficient stimulus)"
				return a
			}(),
			wantWarnings: []string{warnRIRHigh},
			wantDeload:   false,
		},
		{
			name: "low average RIR asks for less volume",
			comp: compFixture(DirectionMaintain, 0, 7),
			perf: perfFixture(ptr.Ref(0.5), 0),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.TrainingVolume = "decrease volume 10-20% (excess fatigue)"
				return a
			}(),
			wantWarnings: []string{warnRIRLow},
			wantDeload:   false,
		},
		{
			name: "performance drop bumps carbs",
			comp: compFixture(DirectionMaintain, 0, 7),
			perf: perfFixture(nil, -12),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.Carb = "increase 10-15% (energy shortfall)"
				a.TrainingVolume = "deload week recommended"
				return a
			}(),
			wantWarnings: []string{warnPerformanceDrop},
			wantDeload:   false,
		},
		{
			// Exactly -10% is a decrease but not yet a drop warning.
			name:            "drop on the warning boundary",
			comp:            compFixture(DirectionMaintain, 0, 7),
			perf:            perfFixture(nil, -10),
			wantAdjustments: maintainAdjustments(),
			wantWarnings:    nil,
			wantDeload:      false,
		},
		{
			name:  "two consecutive weeks of muscle loss",
			comp:  compFixture(DirectionDecrease, 0, 7),
			perf:  perfFixture(nil, 0),
			prior: priorWeek(DirectionDecrease),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.Protein = "raise immediately (>=2.2 g/kg)"
				a.TrainingVolume = "decrease 20%"
				a.Calorie = "increase 10%"
				return a
			}(),
			wantWarnings: []string{warnConsecutiveMuscleLoss},
			wantDeload:   false,
		},
		{
			name:            "single week of muscle loss stays quiet",
			comp:            compFixture(DirectionDecrease, 0, 7),
			perf:            perfFixture(nil, 0),
			prior:           priorWeek(DirectionMaintain),
			wantAdjustments: maintainAdjustments(),
			wantWarnings:    nil,
			wantDeload:      false,
		},
		{
			// 1.2 kg over two weeks is 0.6 kg/week, past the cutoff.
			name: "rapid fat gain cuts calories",
			comp: compFixture(DirectionMaintain, 1.2, 14),
			perf: perfFixture(nil, 0),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.Calorie = "immediate decrease 10%"
				return a
			}(),
			wantWarnings: []string{warnRapidFatGain},
			wantDeload:   false,
		},
		{
			// 0.9 kg over two weeks normalizes to 0.45 kg/week, below the
			// cutoff.
			name:            "fat gain normalized below cutoff",
			comp:            compFixture(DirectionMaintain, 0.9, 14),
			perf:            perfFixture(nil, 0),
			wantAdjustments: maintainAdjustments(),
			wantWarnings:    nil,
			wantDeload:      false,
		},
		{
			// Measurements closer than a week apart still normalize against
			// a full week.
			name: "fat gain with clamped week divisor",
			comp: compFixture(DirectionMaintain, 0.6, 3),
			perf: perfFixture(nil, 0),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.Calorie = "immediate decrease 10%"
				return a
			}(),
			wantWarnings: []string{warnRapidFatGain},
			wantDeload:   false,
		},
		{
			name: "deload from exhaustion and performance drop",
			comp: compFixture(DirectionMaintain, 0, 7),
			perf: perfFixture(ptr.Ref(0.4), -12),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.Carb = "increase 10-15% (energy shortfall)"
				a.TrainingVolume = "decrease 40-50% for one week"
				a.TrainingIntensity = "maintain load"
				return a
			}(),
			wantWarnings: []string{warnRIRLow, warnPerformanceDrop, warnDeloadTriggered},
			wantDeload:   true,
		},
		{
			name: "no deload from exhaustion alone",
			comp: compFixture(DirectionMaintain, 0, 7),
			perf: perfFixture(ptr.Ref(0.4), -6),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.TrainingVolume = "decrease volume 10-20% (excess fatigue)"
				return a
			}(),
			wantWarnings: []string{warnRIRLow},
			wantDeload:   false,
		},
		{
			name: "deload from performance and muscle decline",
			comp: compFixture(DirectionDecrease, 0, 7),
			perf: perfFixture(nil, -6),
			wantAdjustments: func() Adjustments {
				a := maintainAdjustments()
				a.TrainingVolume = "decrease 40-50% for one week"
				a.TrainingIntensity = "maintain load"
				return a
			}(),
			wantWarnings: []string{warnDeloadTriggered},
			wantDeload:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := refineAdjustments(maintainAdjustments(), tc.comp, tc.perf, tc.prior)

			if diff := cmp.Diff(tc.wantAdjustments, got.adjustments); diff != "" {
				t.Errorf("adjustments mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantWarnings, got.warnings); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
			if got.shouldDeload != tc.wantDeload {
				t.Errorf("shouldDeload = %v, want %v", got.shouldDeload, tc.wantDeload)
			}
		})
	}
}
