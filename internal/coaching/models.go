package coaching

import "time"

// Mode selects which estimation model the baseline calculator uses.
type Mode string

const (
	ModeGeneral Mode = "general"
	ModeAthlete Mode = "athlete"
)

// Sex is the biological sex used by the Mifflin-St Jeor equation.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Frequency is the weekly training frequency bucket.
type Frequency string

const (
	FrequencyLow      Frequency = "0-1"
	FrequencyModerate Frequency = "2-3"
	FrequencyHigh     Frequency = "4-5"
	FrequencyDaily    Frequency = "6+"
)

// Goal is the nutrition goal. Which goals are valid depends on the profile
// mode: general mode uses diet/maintain/bulk/leanmass, athlete mode uses
// cut/maintain/lean_bulk.
type Goal string

const (
	GoalDiet     Goal = "diet"
	GoalMaintain Goal = "maintain"
	GoalBulk     Goal = "bulk"
	GoalLeanMass Goal = "leanmass"
	GoalCut      Goal = "cut"
	GoalLeanBulk Goal = "lean_bulk"
)

// Profile is the current anthropometric snapshot of a user. It is a value
// record: the calculator never mutates it and no history is kept.
type Profile struct {
	Mode     Mode
	Sex      Sex
	AgeYears int
	HeightCm float64
	WeightKg float64
	// BodyFatPercent is required in athlete mode and ignored otherwise.
	BodyFatPercent float64
	Frequency      Frequency
	Goal           Goal
	// ProteinRateGPerKg overrides the suggested protein rate when positive.
	ProteinRateGPerKg float64
}

// MacroTargets are the daily energy and macronutrient targets in rounded
// whole units.
type MacroTargets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

// BodyMeasurement is one body-composition record. Fat is stored as absolute
// mass in kilograms, not as a percentage.
type BodyMeasurement struct {
	Date             time.Time
	WeightKg         float64
	SkeletalMuscleKg float64
	BodyFatKg        float64
}

// LoggedSet is a single performed set. RIR (reps in reserve) is optional;
// absent values are excluded from averages rather than treated as zero.
type LoggedSet struct {
	WeightKg float64
	Reps     int
	RIR      *int
}

// VolumeKg is the set's training volume contribution.
func (s LoggedSet) VolumeKg() float64 {
	return s.WeightKg * float64(s.Reps)
}

// LoggedExercise groups the sets performed for one exercise.
type LoggedExercise struct {
	Name string
	Sets []LoggedSet
}

// WorkoutLog is one training day, keyed by calendar date.
type WorkoutLog struct {
	Date      time.Time
	Exercises []LoggedExercise
}

// Direction labels a week-over-week trend.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
	DirectionMaintain Direction = "maintain"
)

// Situation names the coaching situation classified from the muscle and fat
// trend directions.
type Situation string

const (
	SituationOptimalRecomposition     Situation = "optimal_recomposition"
	SituationSurplus                  Situation = "surplus"
	SituationExcessiveDeficit         Situation = "excessive_deficit"
	SituationInefficientRecomposition Situation = "inefficient_recomposition"
	SituationStable                   Situation = "stable"
)

// Adjustments are the quantitative coaching recommendations for the week.
type Adjustments struct {
	Calorie           string `json:"calorie"`
	Protein           string `json:"protein"`
	Carb              string `json:"carb"`
	TrainingIntensity string `json:"training_intensity"`
	TrainingVolume    string `json:"training_volume"`
	Cardio            string `json:"cardio"`
}

// Analysis is the structured result of one engine run.
type Analysis struct {
	MuscleMassDeltaKg    float64     `json:"muscle_mass_delta_kg"`
	FatMassDeltaKg       float64     `json:"fat_mass_delta_kg"`
	WeightDeltaKg        float64     `json:"weight_delta_kg"`
	MuscleDirection      Direction   `json:"muscle_direction"`
	FatDirection         Direction   `json:"fat_direction"`
	AverageRIR           *float64    `json:"average_rir"`
	PerformanceChangePct float64     `json:"performance_change_pct"`
	PerformanceDirection Direction   `json:"performance_direction"`
	Situation            Situation   `json:"situation"`
	Adjustments          Adjustments `json:"adjustments"`
	Warnings             []string    `json:"warnings"`
	ShouldDeload         bool        `json:"should_deload"`
}

// FeedbackRecord is the persisted output of one engine run for one week.
// It is a snapshot: later edits to the underlying measurements do not change
// an already generated record. Only the narrative may be edited afterwards,
// by a human coach, without re-running the analysis.
type FeedbackRecord struct {
	WeekStart time.Time
	Narrative string
	Analysis  Analysis
	CoachName string
	CreatedAt time.Time
	UpdatedAt time.Time
}
