package calculator

type Unit string

const (
	UnitMetric   Unit = "metric"
	UnitImperial Unit = "imperial"
)

type BMICategory struct {
	Name        string `json:"category"`
	Range       string `json:"range"`
	Description string `json:"description"`
}

// BMICategories are ordered by their lower bound.
var BMICategories = []BMICategory{
	{
		Name:        "Underweight",
		Range:       "Less than 18.5",
		Description: "You may need to gain some weight. Consult with a healthcare provider.",
	},
	{
		Name:        "Normal Weight",
		Range:       "18.5 to 24.9",
		Description: "You are at a healthy weight. Maintain your current lifestyle.",
	},
	{
		Name:        "Overweight",
		Range:       "25 to 29.9",
		Description: "You may need to lose some weight. Consider diet and exercise changes.",
	},
	{
		Name:        "Obese",
		Range:       "30 or greater",
		Description: "You should take action to reduce your weight. Consult with a healthcare provider.",
	},
}

type BMIResult struct {
	BMI      float64
	Category BMICategory
}

func CategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMICategories[0]
	case bmi < 25:
		return BMICategories[1]
	case bmi < 30:
		return BMICategories[2]
	default:
		return BMICategories[3]
	}
}

func BMIMetric(weightKg, heightCm float64) (*BMIResult, error) {
	if !finite(weightKg, heightCm) || weightKg <= 0 || heightCm <= 0 {
		return nil, invalid("weight and height must be positive numbers")
	}
	heightM := heightCm / 100
	return newBMIResult(weightKg / (heightM * heightM)), nil
}

func BMIImperial(weightLb, feet, inches float64) (*BMIResult, error) {
	if !finite(weightLb, feet, inches) || weightLb <= 0 || feet < 0 || inches < 0 {
		return nil, invalid("weight and height must be positive numbers")
	}
	totalInches := feet*12 + inches
	if totalInches <= 0 {
		return nil, invalid("height must be positive")
	}
	return newBMIResult(703 * weightLb / (totalInches * totalInches)), nil
}

// The category is looked up on the rounded value, so a reported 25.0 is
// always Overweight.
func newBMIResult(bmi float64) *BMIResult {
	rounded := roundTo(bmi, 1)
	return &BMIResult{BMI: rounded, Category: CategoryFor(rounded)}
}
