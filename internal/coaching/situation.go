package coaching

// situationProfile carries the fixed narrative template and default
// adjustments for a classified situation.
type situationProfile struct {
	situation   Situation
	title       string
	explanation string
	adjustments Adjustments
}

// classifySituation maps the muscle and fat trend directions to one of the
// five coaching situations. The mapping is total: every direction pair
// resolves to exactly one situation, with the stable range as the catch-all
// for mixed maintain combinations.
func classifySituation(muscle, fat Direction) situationProfile {
	switch {
	case muscle == DirectionIncrease && fat == DirectionDecrease:
		return situationProfile{
			situation: SituationOptimalRecomposition,
			title:     "Optimal Recomposition",
			explanation: "Muscle mass is up while fat mass is down. The current intake and " +
				"training are working; keep both unchanged and continue monitoring.",
			adjustments: Adjustments{
				Calorie:           "maintain",
				Protein:           "maintain (1.6-2.2 g/kg)",
				Carb:              "maintain",
				TrainingIntensity: "maintain",
				TrainingVolume:    "maintain",
				Cardio:            "maintain",
			},
		}
	case muscle == DirectionIncrease && fat == DirectionIncrease:
		return situationProfile{
			situation: SituationSurplus,
			title:     "Surplus State",
			explanation: "Both muscle and fat mass are increasing: the energy surplus is " +
				"larger than growth requires. Trim the surplus and add cardio.",
			adjustments: Adjustments{
				Calorie:           "decrease 5-10%",
				Protein:           "maintain",
				Carb:              "decrease 5-10%",
				TrainingIntensity: "maintain",
				TrainingVolume:    "maintain",
				Cardio:            "increase 10-20%",
			},
		}
	case muscle == DirectionDecrease && fat == DirectionDecrease:
		return situationProfile{
			situation: SituationExcessiveDeficit,
			title:     "Excessive Deficit",
			explanation: "Both muscle and fat mass are falling: the deficit is too deep and " +
				"muscle is being lost. Raise intake and protect lean mass.",
			adjustments: Adjustments{
				Calorie:           "increase 5-10%",
				Protein:           "raise to ~2.2 g/kg",
				Carb:              "increase 10-20%",
				TrainingIntensity: "maintain",
				TrainingVolume:    "maintain",
				Cardio:            "reduce",
			},
		}
	case muscle == DirectionDecrease && fat == DirectionIncrease:
		return situationProfile{
			situation: SituationInefficientRecomposition,
			title:     "Inefficient Recomposition",
			explanation: "Muscle mass is down while fat mass is up: intake quality, recovery, " +
				"or training stimulus is off. Tighten the diet and rebuild the stimulus.",
			adjustments: Adjustments{
				Calorie:           "decrease 10-20%",
				Protein:           "hold at FFM-based upper bound",
				Carb:              "reset based on RIR",
				TrainingIntensity: "maintain",
				TrainingVolume:    "maintain",
				Cardio:            "add mid-intensity sessions",
			},
		}
	default:
		return situationProfile{
			situation: SituationStable,
			title:     "Stable Range",
			explanation: "Body composition is holding within the measurement noise band. " +
				"No changes needed this week.",
			adjustments: Adjustments{
				Calorie:           "maintain",
				Protein:           "maintain",
				Carb:              "maintain",
				TrainingIntensity: "maintain",
				TrainingVolume:    "maintain",
				Cardio:            "maintain",
			},
		}
	}
}
