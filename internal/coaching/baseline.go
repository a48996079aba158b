// Package coaching implements the adaptive coaching feedback engine: a
// baseline macro calculator and a deterministic weekly trend analysis that
// classifies body-composition and training-performance changes into coaching
// situations with quantitative adjustments.
package coaching

import (
	"log/slog"
	"math"

	"github.com/okoskine/fitcoach/internal/errors"
)

// Energy model constants.
const (
	// Mifflin-St Jeor BMR coefficients.
	MifflinWeightFactor = 10.0
	MifflinHeightFactor = 6.25
	MifflinAgeFactor    = 5.0
	MifflinMaleOffset   = 5.0
	MifflinFemaleOffset = -161.0

	// Cunningham resting energy expenditure: REE = 500 + 22 * FFM.
	CunninghamBase      = 500.0
	CunninghamFFMFactor = 22.0

	// General mode calorie multipliers per goal.
	BulkCalorieMultiplier     = 1.15
	MaintainCalorieMultiplier = 1.0
	DietCalorieMultiplier     = 0.825

	// Athlete mode calorie multipliers per goal.
	LeanBulkCalorieMultiplier = 1.10
	CutCalorieMultiplier      = 0.75

	// Suggested protein rates in g/kg, applied when the user has not set an
	// explicit rate.
	DietProteinRate     = 2.4
	MassGainProteinRate = 2.2
	DefaultProteinRate  = 2.0
	AthleteProteinRate  = 1.9

	// Athlete mode allocates a fixed share of calories to fat.
	AthleteFatCalorieShare = 0.25

	// General mode floors fat intake at this rate regardless of remaining
	// calories.
	MinimumFatRateGPerKg = 0.8

	// Energy densities in kcal per gram.
	KcalPerGramProtein = 4.0
	KcalPerGramCarb    = 4.0
	KcalPerGramFat     = 9.0
)

// activityFactor maps the weekly training frequency bucket to the TDEE
// multiplier. This is also the source of truth for valid buckets.
//
//nolint:gochecknoglobals // read-only lookup table.
var activityFactor = map[Frequency]float64{
	FrequencyLow:      1.2,
	FrequencyModerate: 1.4,
	FrequencyHigh:     1.6,
	FrequencyDaily:    1.8,
}

// carbRateGPerKg maps the frequency bucket to the midpoint of the carb
// intake range in g/kg used in general mode.
//
//nolint:gochecknoglobals // read-only lookup table.
var carbRateGPerKg = map[Frequency]float64{
	FrequencyLow:      4.0,  // midpoint of 3-5 g/kg
	FrequencyModerate: 6.0,  // midpoint of 5-7 g/kg
	FrequencyHigh:     8.0,  // midpoint of 6-10 g/kg
	FrequencyDaily:    10.0, // midpoint of 8-12 g/kg
}

// CalculateBaseline computes the daily calorie and macro targets for a
// profile. The computation is deterministic: identical profiles always
// produce identical targets.
//
// Invalid or incomplete profiles return ErrInvalidProfile and never a
// partial result.
func CalculateBaseline(profile Profile) (MacroTargets, error) {
	if err := validateProfile(profile); err != nil {
		return MacroTargets{}, err
	}

	switch profile.Mode {
	case ModeAthlete:
		return calculateAthleteBaseline(profile), nil
	case ModeGeneral:
		return calculateGeneralBaseline(profile), nil
	default:
		// validateProfile already rejected unknown modes.
		return MacroTargets{}, errors.Wrap(ErrInvalidProfile, "unknown mode",
			slog.String("mode", string(profile.Mode)))
	}
}

// validateProfile checks that every field the selected mode needs is present
// and positive.
func validateProfile(profile Profile) error {
	if profile.Mode != ModeGeneral && profile.Mode != ModeAthlete {
		return errors.Wrap(ErrInvalidProfile, "unknown mode",
			slog.String("mode", string(profile.Mode)))
	}
	if profile.Sex != SexMale && profile.Sex != SexFemale {
		return errors.Wrap(ErrInvalidProfile, "unknown sex",
			slog.String("sex", string(profile.Sex)))
	}
	if profile.WeightKg <= 0 {
		return errors.Wrap(ErrInvalidProfile, "weight must be positive",
			slog.Float64("weight_kg", profile.WeightKg))
	}
	if profile.HeightCm <= 0 {
		return errors.Wrap(ErrInvalidProfile, "height must be positive",
			slog.Float64("height_cm", profile.HeightCm))
	}
	if profile.AgeYears <= 0 {
		return errors.Wrap(ErrInvalidProfile, "age must be positive",
			slog.Int("age_years", profile.AgeYears))
	}
	if _, ok := activityFactor[profile.Frequency]; !ok {
		return errors.Wrap(ErrInvalidProfile, "unknown training frequency",
			slog.String("frequency", string(profile.Frequency)))
	}
	if err := validateGoal(profile.Mode, profile.Goal); err != nil {
		return err
	}
	if profile.Mode == ModeAthlete && (profile.BodyFatPercent <= 0 || profile.BodyFatPercent >= 100) {
		return errors.Wrap(ErrInvalidProfile, "athlete mode requires body fat percent in (0, 100)",
			slog.Float64("body_fat_percent", profile.BodyFatPercent))
	}
	return nil
}

func validateGoal(mode Mode, goal Goal) error {
	valid := false
	switch mode {
	case ModeGeneral:
		valid = goal == GoalDiet || goal == GoalMaintain || goal == GoalBulk || goal == GoalLeanMass
	case ModeAthlete:
		valid = goal == GoalCut || goal == GoalMaintain || goal == GoalLeanBulk
	}
	if !valid {
		return errors.Wrap(ErrInvalidProfile, "goal not valid for mode",
			slog.String("mode", string(mode)), slog.String("goal", string(goal)))
	}
	return nil
}

// calculateGeneralBaseline implements the Mifflin-St Jeor based model.
func calculateGeneralBaseline(profile Profile) MacroTargets {
	bmr := MifflinWeightFactor*profile.WeightKg +
		MifflinHeightFactor*profile.HeightCm -
		MifflinAgeFactor*float64(profile.AgeYears)
	if profile.Sex == SexMale {
		bmr += MifflinMaleOffset
	} else {
		bmr += MifflinFemaleOffset
	}

	tdee := bmr * activityFactor[profile.Frequency]
	calories := tdee * generalCalorieMultiplier(profile.Goal)

	proteinG := math.Round(profile.WeightKg * proteinRate(profile))
	carbsG := math.Round(profile.WeightKg * carbRateGPerKg[profile.Frequency])

	// Remaining calories go to fat, floored at the minimum fat rate.
	remainderFatG := (calories - proteinG*KcalPerGramProtein - carbsG*KcalPerGramCarb) / KcalPerGramFat
	fatG := math.Round(math.Max(remainderFatG, profile.WeightKg*MinimumFatRateGPerKg))

	return MacroTargets{
		Calories: int(math.Round(calories)),
		ProteinG: nonNegative(proteinG),
		CarbsG:   nonNegative(carbsG),
		FatG:     nonNegative(fatG),
	}
}

// calculateAthleteBaseline implements the Cunningham based model. It needs
// the body fat percent to derive fat-free mass.
func calculateAthleteBaseline(profile Profile) MacroTargets {
	ffm := profile.WeightKg * (1 - profile.BodyFatPercent/100)
	ree := CunninghamBase + CunninghamFFMFactor*ffm
	tdee := ree * activityFactor[profile.Frequency]

	calories := math.Round(tdee * athleteCalorieMultiplier(profile.Goal))
	proteinG := math.Round(profile.WeightKg * proteinRate(profile))
	fatG := math.Round(calories * AthleteFatCalorieShare / KcalPerGramFat)
	// Carbs are defined as the remainder, so the macro energies reconstruct
	// the calorie target within rounding.
	carbsG := math.Round((calories - proteinG*KcalPerGramProtein - fatG*KcalPerGramFat) / KcalPerGramCarb)

	return MacroTargets{
		Calories: int(calories),
		ProteinG: nonNegative(proteinG),
		CarbsG:   nonNegative(carbsG),
		FatG:     nonNegative(fatG),
	}
}

func generalCalorieMultiplier(goal Goal) float64 {
	switch goal {
	case GoalBulk:
		return BulkCalorieMultiplier
	case GoalDiet:
		return DietCalorieMultiplier
	default:
		// maintain and leanmass hold calories at maintenance.
		return MaintainCalorieMultiplier
	}
}

func athleteCalorieMultiplier(goal Goal) float64 {
	switch goal {
	case GoalLeanBulk:
		return LeanBulkCalorieMultiplier
	case GoalCut:
		return CutCalorieMultiplier
	default:
		return MaintainCalorieMultiplier
	}
}

// proteinRate returns the user's protein rate override, or the suggested
// rate for the profile's mode and goal.
func proteinRate(profile Profile) float64 {
	if profile.ProteinRateGPerKg > 0 {
		return profile.ProteinRateGPerKg
	}
	return SuggestedProteinRate(profile.Mode, profile.Goal)
}

// SuggestedProteinRate is the default protein rate in g/kg for a mode and
// goal. Athlete mode uses the middle of the ISSN 1.6-2.2 g/kg range.
func SuggestedProteinRate(mode Mode, goal Goal) float64 {
	if mode == ModeAthlete {
		return AthleteProteinRate
	}
	switch goal {
	case GoalDiet:
		return DietProteinRate
	case GoalBulk, GoalLeanMass:
		return MassGainProteinRate
	default:
		return DefaultProteinRate
	}
}

func nonNegative(grams float64) int {
	if grams < 0 {
		return 0
	}
	return int(grams)
}
