package coaching

import (
	"sort"
	"time"
)

// PerformanceNoiseBandPct is the noise threshold for the volume trend:
// changes within ±5% are labelled maintain.
const PerformanceNoiseBandPct = 5.0

// performanceWindowDays is how far back the rolling performance window
// reaches before the week start.
const performanceWindowDays = 21

// performanceSummary aggregates effort and volume trends over the rolling
// four-week window ending at the target week.
type performanceSummary struct {
	// averageRIR is nil when no set in the window recorded RIR.
	averageRIR *float64
	changePct  float64
	direction  Direction
}

// performanceWindow returns the inclusive date range of workout logs the
// aggregator expects: [weekStart-21d, weekStart+6d].
func performanceWindow(weekStart time.Time) (time.Time, time.Time) {
	return weekStart.AddDate(0, 0, -performanceWindowDays),
		weekStart.AddDate(0, 0, weekEndOffsetDays)
}

// aggregatePerformance computes the average RIR and the volume trend over
// the given logs. Logs may be passed in any order; sets are sampled in
// chronological log order.
//
// Absent RIR values are excluded from the average, not treated as zero. The
// volume trend splits the chronological set samples at their midpoint by
// count and compares the mean volume of the halves. A zero or undefined
// older mean yields a 0% change instead of a division error.
func aggregatePerformance(logs []WorkoutLog) performanceSummary {
	sorted := make([]WorkoutLog, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var (
		rirSum   float64
		rirCount int
		volumes  []float64
	)
	for _, log := range sorted {
		for _, exercise := range log.Exercises {
			for _, set := range exercise.Sets {
				if set.RIR != nil {
					rirSum += float64(*set.RIR)
					rirCount++
				}
				volumes = append(volumes, set.VolumeKg())
			}
		}
	}

	var averageRIR *float64
	if rirCount > 0 {
		avg := rirSum / float64(rirCount)
		averageRIR = &avg
	}

	changePct := volumeChangePct(volumes)

	return performanceSummary{
		averageRIR: averageRIR,
		changePct:  changePct,
		direction:  directionForChangePct(changePct),
	}
}

// volumeChangePct compares the mean volume of the older half of the samples
// against the recent half.
func volumeChangePct(volumes []float64) float64 {
	mid := len(volumes) / 2
	olderMean := mean(volumes[:mid])
	recentMean := mean(volumes[mid:])
	if olderMean == 0 {
		return 0
	}
	return (recentMean - olderMean) / olderMean * 100
}

func mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, sample := range samples {
		sum += sample
	}
	return sum / float64(len(samples))
}

// directionForChangePct applies the performance noise band: exactly ±5% is
// still maintain.
func directionForChangePct(changePct float64) Direction {
	switch {
	case changePct > PerformanceNoiseBandPct:
		return DirectionIncrease
	case changePct < -PerformanceNoiseBandPct:
		return DirectionDecrease
	default:
		return DirectionMaintain
	}
}
