package calculator

import "math"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very-active"
)

type Activity struct {
	Level       ActivityLevel `json:"level"`
	Multiplier  float64       `json:"multiplier"`
	Description string        `json:"description"`
}

var Activities = []Activity{
	{ActivitySedentary, 1.2, "Little or no exercise, desk job"},
	{ActivityLight, 1.375, "Light exercise 1-3 days/week"},
	{ActivityModerate, 1.55, "Moderate exercise 3-5 days/week"},
	{ActivityActive, 1.725, "Heavy exercise 6-7 days/week"},
	{ActivityVeryActive, 1.9, "Very heavy exercise, physical job, training 2x/day"},
}

// Calorie adjustment applied to maintenance for the loss and gain targets.
const CalorieDelta = 500

// Accepted input ranges.
const (
	MinAge, MaxAge       = 15, 120
	MinWeight, MaxWeight = 30, 300
	MinHeight, MaxHeight = 100, 250
)

type CalorieInput struct {
	Gender   Gender
	AgeYears float64
	WeightKg float64
	HeightCm float64
	Activity ActivityLevel
}

type CalorieResult struct {
	BMR         int `json:"bmr"`
	Maintenance int `json:"maintenance"`
	WeightLoss  int `json:"weight_loss"`
	WeightGain  int `json:"weight_gain"`
}

func Multiplier(level ActivityLevel) (float64, bool) {
	for _, a := range Activities {
		if a.Level == level {
			return a.Multiplier, true
		}
	}
	return 0, false
}

// BMR is the Mifflin-St Jeor basal metabolic rate, unrounded.
func BMR(gender Gender, weightKg, heightCm, ageYears float64) (float64, error) {
	if !finite(weightKg, heightCm, ageYears) {
		return 0, invalid("weight, height and age must be numbers")
	}
	base := 10*weightKg + 6.25*heightCm - 5*ageYears
	switch gender {
	case GenderMale:
		return base + 5, nil
	case GenderFemale:
		return base - 161, nil
	default:
		return 0, invalid("unknown gender %q", gender)
	}
}

func Calories(in CalorieInput) (*CalorieResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	multiplier, ok := Multiplier(in.Activity)
	if !ok {
		return nil, invalid("unknown activity level %q", in.Activity)
	}

	bmr, err := BMR(in.Gender, in.WeightKg, in.HeightCm, in.AgeYears)
	if err != nil {
		return nil, err
	}

	maintenance := bmr * multiplier
	return &CalorieResult{
		BMR:         int(math.Round(bmr)),
		Maintenance: int(math.Round(maintenance)),
		WeightLoss:  int(math.Round(maintenance - CalorieDelta)),
		WeightGain:  int(math.Round(maintenance + CalorieDelta)),
	}, nil
}

func (in CalorieInput) validate() error {
	if !finite(in.AgeYears, in.WeightKg, in.HeightCm) {
		return invalid("age, weight and height must be numbers")
	}
	if in.AgeYears < MinAge || in.AgeYears > MaxAge {
		return invalid("age must be between %d and %d", MinAge, MaxAge)
	}
	if in.WeightKg < MinWeight || in.WeightKg > MaxWeight {
		return invalid("weight must be between %d and %d kg", MinWeight, MaxWeight)
	}
	if in.HeightCm < MinHeight || in.HeightCm > MaxHeight {
		return invalid("height must be between %d and %d cm", MinHeight, MaxHeight)
	}
	return nil
}
