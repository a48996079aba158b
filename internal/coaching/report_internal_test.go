package coaching

import (
	"strings"
	"testing"
	"time"

	"github.com/okoskine/fitcoach/internal/ptr"
)

func TestBuildNarrative(t *testing.T) {
	profile := classifySituation(DirectionIncrease, DirectionDecrease)
	analysis := Analysis{
		MuscleMassDeltaKg:    0.5,
		FatMassDeltaKg:       -0.5,
		WeightDeltaKg:        0,
		MuscleDirection:      DirectionIncrease,
		FatDirection:         DirectionDecrease,
		AverageRIR:           ptr.Ref(2.5),
		PerformanceChangePct: 3.2,
		PerformanceDirection: DirectionMaintain,
		Situation:            profile.situation,
		Adjustments:          profile.adjustments,
		Warnings:             nil,
		ShouldDeload:         false,
	}

	narrative := buildNarrative(date(2026, time.March, 2), analysis, profile)

	for _, want := range []string{
		"## Week of 2026-03-02",
		"- Weight: +0.0 kg (maintain)",
		"- Muscle mass: +0.5 kg (increase)",
		"- Fat mass: -0.5 kg (decrease)",
		"- Average RIR: 2.5",
		"- Training volume trend: +3.2% (maintain)",
		"## Situation: Optimal Recomposition",
		"## Nutrition adjustments",
		"- Calories: maintain",
		"## Training adjustments",
		"- Cardio: maintain",
		"## Warnings",
		"None this week.",
	} {
		if !strings.Contains(narrative, want) {
			t.Errorf("narrative missing %q:\n%s", want, narrative)
		}
	}
	if strings.Contains(narrative, "Deload week") {
		t.Errorf("narrative mentions deload without the flag set:\n%s", narrative)
	}
}

func TestBuildNarrative_WarningsAndDeload(t *testing.T) {
	profile := classifySituation(DirectionDecrease, DirectionIncrease)
	analysis := Analysis{
		MuscleMassDeltaKg:    -0.6,
		FatMassDeltaKg:       0.8,
		WeightDeltaKg:        0.2,
		MuscleDirection:      DirectionDecrease,
		FatDirection:         DirectionIncrease,
		AverageRIR:           nil,
		PerformanceChangePct: -11.5,
		PerformanceDirection: DirectionDecrease,
		Situation:            profile.situation,
		Adjustments:          profile.adjustments,
		Warnings:             []string{warnPerformanceDrop, warnDeloadTriggered},
		ShouldDeload:         true,
	}

	narrative := buildNarrative(date(2026, time.March, 2), analysis, profile)

	for _, want := range []string{
		"- Muscle mass: -0.6 kg (decrease)",
		"- Average RIR: not recorded",
		"- Training volume trend: -11.5% (decrease)",
		"## Situation: Inefficient Recomposition",
		"- " + warnPerformanceDrop,
		"- " + warnDeloadTriggered,
		"Deload week: reduce training volume 40-50% and hold current loads.",
	} {
		if !strings.Contains(narrative, want) {
			t.Errorf("narrative missing %q:\n%s", want, narrative)
		}
	}
	if strings.Contains(narrative, "None this week.") {
		t.Errorf("narrative claims no warnings despite warnings present:\n%s", narrative)
	}
}

func TestNarrativeHTML(t *testing.T) {
	html, err := NarrativeHTML("## Week of 2026-03-02\n\n- Weight: +0.0 kg\n")
	if err != nil {
		t.Fatalf("NarrativeHTML: %v", err)
	}
	for _, want := range []string{"<h2", "Week of 2026-03-02", "<li>"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q:\n%s", want, html)
		}
	}
}
