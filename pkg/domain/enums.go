package domain

import (
	"log/slog"
	"strings"
)

// SportType is the closed set of workout focus categories.
type SportType string

const (
	SportStrength         SportType = "STRENGTH"
	SportHIIT             SportType = "HIIT"
	SportYogaMobility     SportType = "YOGA_MOBILITY"
	SportRunningIntervals SportType = "RUNNING_INTERVALS"
)

// CompletionStatus tracks workout and exercise progress.
type CompletionStatus string

const (
	CompletionPending    CompletionStatus = "PENDING"
	CompletionInProgress CompletionStatus = "IN_PROGRESS"
	CompletionCompleted  CompletionStatus = "COMPLETED"
	CompletionSkipped    CompletionStatus = "SKIPPED"
)

// Gender values accepted at registration.
type Gender string

const (
	GenderMale           Gender = "MALE"
	GenderFemale         Gender = "FEMALE"
	GenderNonBinary      Gender = "NON_BINARY"
	GenderPreferNotToSay Gender = "PREFER_NOT_TO_SAY"
	GenderOther          Gender = "OTHER"
)

// ExperienceLevel describes training background.
type ExperienceLevel string

const (
	ExperienceTrueBeginner    ExperienceLevel = "TRUE_BEGINNER"
	ExperienceBeginner        ExperienceLevel = "BEGINNER"
	ExperienceIntermediate    ExperienceLevel = "INTERMEDIATE"
	ExperienceAdvanced        ExperienceLevel = "ADVANCED"
	ExperienceRehabPostpartum ExperienceLevel = "REHAB_POSTPARTUM"
)

// FitnessGoal is a user-selected training objective.
type FitnessGoal string

const (
	GoalWeightLoss                 FitnessGoal = "WEIGHT_LOSS"
	GoalMuscleGain                 FitnessGoal = "MUSCLE_GAIN"
	GoalStrengthGain               FitnessGoal = "STRENGTH_GAIN"
	GoalImproveEndurance           FitnessGoal = "IMPROVE_ENDURANCE"
	GoalImproveFlexibilityMobility FitnessGoal = "IMPROVE_FLEXIBILITY_MOBILITY"
	GoalGeneralHealthFitness       FitnessGoal = "GENERAL_HEALTH_FITNESS"
	GoalAthleticPerformance        FitnessGoal = "ATHLETIC_PERFORMANCE"
	GoalStressReductionWellbeing   FitnessGoal = "STRESS_REDUCTION_WELLBEING"
)

// IntensityPreference is how hard the user wants sessions to be.
type IntensityPreference string

const (
	IntensityLowModerate  IntensityPreference = "LOW_MODERATE"
	IntensityModerateHigh IntensityPreference = "MODERATE_HIGH"
	IntensityPushToLimit  IntensityPreference = "PUSH_TO_LIMIT"
)

// EquipmentItem is the closed set of supported equipment.
type EquipmentItem string

const (
	EquipmentNone                   EquipmentItem = "NO_EQUIPMENT"
	EquipmentDumbbellsPairLight     EquipmentItem = "DUMBBELLS_PAIR_LIGHT"
	EquipmentDumbbellsPairMedium    EquipmentItem = "DUMBBELLS_PAIR_MEDIUM"
	EquipmentDumbbellsPairHeavy     EquipmentItem = "DUMBBELLS_PAIR_HEAVY"
	EquipmentAdjustableDumbbells    EquipmentItem = "ADJUSTABLE_DUMBBELLS"
	EquipmentKettlebell             EquipmentItem = "KETTLEBELL"
	EquipmentBarbellWithPlates      EquipmentItem = "BARBELL_WITH_PLATES"
	EquipmentResistanceBandsLight   EquipmentItem = "RESISTANCE_BANDS_LIGHT"
	EquipmentResistanceBandsMedium  EquipmentItem = "RESISTANCE_BANDS_MEDIUM"
	EquipmentResistanceBandsHeavy   EquipmentItem = "RESISTANCE_BANDS_HEAVY"
	EquipmentPullUpBar              EquipmentItem = "PULL_UP_BAR"
	EquipmentYogaMat                EquipmentItem = "YOGA_MAT"
	EquipmentFoamRoller             EquipmentItem = "FOAM_ROLLER"
	EquipmentJumpRope               EquipmentItem = "JUMP_ROPE"
	EquipmentBenchFlat              EquipmentItem = "BENCH_FLAT"
	EquipmentBenchAdjustable        EquipmentItem = "BENCH_ADJUSTABLE"
	EquipmentSquatRack              EquipmentItem = "SQUAT_RACK"
	EquipmentTreadmill              EquipmentItem = "TREADMILL"
	EquipmentStationaryBike         EquipmentItem = "STATIONARY_BIKE"
	EquipmentElliptical             EquipmentItem = "ELLIPTICAL"
	EquipmentRowingMachine          EquipmentItem = "ROWING_MACHINE"
	EquipmentCableMachineFull       EquipmentItem = "CABLE_MACHINE_FULL"
	EquipmentLegPressMachine        EquipmentItem = "LEG_PRESS_MACHINE"
	EquipmentMedicineBall           EquipmentItem = "MEDICINE_BALL"
	EquipmentStabilityBall          EquipmentItem = "STABILITY_BALL"
)

var sportTypes = map[SportType]struct{}{
	SportStrength:         {},
	SportHIIT:             {},
	SportYogaMobility:     {},
	SportRunningIntervals: {},
}

var completionStatuses = map[CompletionStatus]struct{}{
	CompletionPending:    {},
	CompletionInProgress: {},
	CompletionCompleted:  {},
	CompletionSkipped:    {},
}

var genders = map[Gender]struct{}{
	GenderMale:           {},
	GenderFemale:         {},
	GenderNonBinary:      {},
	GenderPreferNotToSay: {},
	GenderOther:          {},
}

var experienceLevels = map[ExperienceLevel]struct{}{
	ExperienceTrueBeginner:    {},
	ExperienceBeginner:        {},
	ExperienceIntermediate:    {},
	ExperienceAdvanced:        {},
	ExperienceRehabPostpartum: {},
}

var fitnessGoals = map[FitnessGoal]struct{}{
	GoalWeightLoss:                 {},
	GoalMuscleGain:                 {},
	GoalStrengthGain:               {},
	GoalImproveEndurance:           {},
	GoalImproveFlexibilityMobility: {},
	GoalGeneralHealthFitness:       {},
	GoalAthleticPerformance:        {},
	GoalStressReductionWellbeing:   {},
}

var intensityPreferences = map[IntensityPreference]struct{}{
	IntensityLowModerate:  {},
	IntensityModerateHigh: {},
	IntensityPushToLimit:  {},
}

var equipmentItems = map[EquipmentItem]struct{}{
	EquipmentNone:                  {},
	EquipmentDumbbellsPairLight:    {},
	EquipmentDumbbellsPairMedium:   {},
	EquipmentDumbbellsPairHeavy:    {},
	EquipmentAdjustableDumbbells:   {},
	EquipmentKettlebell:            {},
	EquipmentBarbellWithPlates:     {},
	EquipmentResistanceBandsLight:  {},
	EquipmentResistanceBandsMedium: {},
	EquipmentResistanceBandsHeavy:  {},
	EquipmentPullUpBar:             {},
	EquipmentYogaMat:               {},
	EquipmentFoamRoller:            {},
	EquipmentJumpRope:              {},
	EquipmentBenchFlat:             {},
	EquipmentBenchAdjustable:       {},
	EquipmentSquatRack:             {},
	EquipmentTreadmill:             {},
	EquipmentStationaryBike:        {},
	EquipmentElliptical:            {},
	EquipmentRowingMachine:         {},
	EquipmentCableMachineFull:      {},
	EquipmentLegPressMachine:       {},
	EquipmentMedicineBall:          {},
	EquipmentStabilityBall:         {},
}

// ParseSportType strictly parses request input.
func ParseSportType(s string) (SportType, bool) {
	v := SportType(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := sportTypes[v]
	return v, ok
}

// ParseCompletionStatus strictly parses request input.
func ParseCompletionStatus(s string) (CompletionStatus, bool) {
	v := CompletionStatus(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := completionStatuses[v]
	return v, ok
}

// ParseGender strictly parses request input.
func ParseGender(s string) (Gender, bool) {
	v := Gender(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := genders[v]
	return v, ok
}

// ParseExperienceLevel strictly parses request input.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	v := ExperienceLevel(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := experienceLevels[v]
	return v, ok
}

// ParseFitnessGoal strictly parses request input.
func ParseFitnessGoal(s string) (FitnessGoal, bool) {
	v := FitnessGoal(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := fitnessGoals[v]
	return v, ok
}

// ParseIntensityPreference strictly parses request input.
func ParseIntensityPreference(s string) (IntensityPreference, bool) {
	v := IntensityPreference(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := intensityPreferences[v]
	return v, ok
}

// ParseEquipmentItem strictly parses request input.
func ParseEquipmentItem(s string) (EquipmentItem, bool) {
	v := EquipmentItem(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := equipmentItems[v]
	return v, ok
}

// SportTypeOrDefault coerces a sport type string coming from an AI worker.
// Unknown values fall back to STRENGTH with a warning instead of failing,
// since the worker output format is not fully trusted.
func SportTypeOrDefault(s string) SportType {
	if v, ok := ParseSportType(s); ok {
		return v
	}
	slog.Warn("unknown sport type, defaulting to STRENGTH", "value", s)
	return SportStrength
}

// EquipmentItemOrDefault coerces an equipment string coming from an AI worker.
// Unknown values fall back to NO_EQUIPMENT with a warning instead of failing.
func EquipmentItemOrDefault(s string) EquipmentItem {
	if v, ok := ParseEquipmentItem(s); ok {
		return v
	}
	slog.Warn("unknown equipment item, defaulting to NO_EQUIPMENT", "value", s)
	return EquipmentNone
}

// SportTypesOrDefault coerces a list of sport type strings.
func SportTypesOrDefault(values []string) []SportType {
	out := make([]SportType, 0, len(values))
	for _, v := range values {
		out = append(out, SportTypeOrDefault(v))
	}
	return out
}

// EquipmentItemsOrDefault coerces a list of equipment strings.
func EquipmentItemsOrDefault(values []string) []EquipmentItem {
	out := make([]EquipmentItem, 0, len(values))
	for _, v := range values {
		out = append(out, EquipmentItemOrDefault(v))
	}
	return out
}
