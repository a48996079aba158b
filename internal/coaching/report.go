package coaching

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/okoskine/fitcoach/internal/errors"
)

// buildNarrative renders the structured analysis into the fixed multi-
// section markdown report. Deltas are always shown with their sign and one
// decimal place.
func buildNarrative(weekStart time.Time, analysis Analysis, profile situationProfile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Week of %s\n\n", weekStart.Format(time.DateOnly))
	fmt.Fprintf(&b, "- Weight: %+.1f kg (%s)\n", analysis.WeightDeltaKg, analysis.WeightDirectionLabel())
	fmt.Fprintf(&b, "- Muscle mass: %+.1f kg (%s)\n", analysis.MuscleMassDeltaKg, analysis.MuscleDirection)
	fmt.Fprintf(&b, "- Fat mass: %+.1f kg (%s)\n", analysis.FatMassDeltaKg, analysis.FatDirection)
	if analysis.AverageRIR != nil {
		fmt.Fprintf(&b, "- Average RIR: %.1f\n", *analysis.AverageRIR)
	} else {
		b.WriteString("- Average RIR: not recorded\n")
	}
	fmt.Fprintf(&b, "- Training volume trend: %+.1f%% (%s)\n\n",
		analysis.PerformanceChangePct, analysis.PerformanceDirection)

	fmt.Fprintf(&b, "## Situation: %s\n\n%s\n\n", profile.title, profile.explanation)

	b.WriteString("## Nutrition adjustments\n\n")
	fmt.Fprintf(&b, "- Calories: %s\n", analysis.Adjustments.Calorie)
	fmt.Fprintf(&b, "- Protein: %s\n", analysis.Adjustments.Protein)
	fmt.Fprintf(&b, "- Carbs: %s\n\n", analysis.Adjustments.Carb)

	b.WriteString("## Training adjustments\n\n")
	fmt.Fprintf(&b, "- Intensity: %s\n", analysis.Adjustments.TrainingIntensity)
	fmt.Fprintf(&b, "- Volume: %s\n", analysis.Adjustments.TrainingVolume)
	fmt.Fprintf(&b, "- Cardio: %s\n\n", analysis.Adjustments.Cardio)

	b.WriteString("## Warnings\n\n")
	if len(analysis.Warnings) == 0 {
		b.WriteString("None this week.\n")
	} else {
		for _, warning := range analysis.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}
	if analysis.ShouldDeload {
		b.WriteString("\nDeload week: reduce training volume 40-50% and hold current loads.\n")
	}

	return b.String()
}

// WeightDirectionLabel labels the weight delta with the same noise band used
// for muscle and fat.
func (a Analysis) WeightDirectionLabel() Direction {
	return directionForDelta(a.WeightDeltaKg)
}

// NarrativeHTML converts a narrative, possibly edited by a coach, from
// markdown to HTML for presentation layers.
func NarrativeHTML(narrative string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(narrative), &buf); err != nil {
		return "", errors.Wrap(err, "convert narrative markdown")
	}
	return buf.String(), nil
}
