package dto

import "toolbox/calculator"

type PercentageResponse struct {
	Mode   string  `json:"mode"`
	Result float64 `json:"result"`
}

type BMIResponse struct {
	BMI         float64                  `json:"bmi"`
	Category    string                   `json:"category"`
	Range       string                   `json:"range"`
	Description string                   `json:"description"`
	Categories  []calculator.BMICategory `json:"categories"`
}

func NewBMIResponse(res *calculator.BMIResult) *BMIResponse {
	return &BMIResponse{
		BMI:         res.BMI,
		Category:    res.Category.Name,
		Range:       res.Category.Range,
		Description: res.Category.Description,
		Categories:  calculator.BMICategories,
	}
}

type CaloriesResponse struct {
	calculator.CalorieResult
	Activity calculator.Activity `json:"activity"`
}

type AgeResponse struct {
	Years             int    `json:"years"`
	Months            int    `json:"months"`
	Days              int    `json:"days"`
	NextBirthday      string `json:"next_birthday"`
	NextBirthdayLabel string `json:"next_birthday_label"`
	DaysUntilBirthday int    `json:"days_until_birthday"`
}

func NewAgeResponse(res *calculator.AgeResult) *AgeResponse {
	return &AgeResponse{
		Years:             res.Years,
		Months:            res.Months,
		Days:              res.Days,
		NextBirthday:      res.NextBirthday.Format("2006-01-02"),
		NextBirthdayLabel: res.NextBirthdayLabel(),
		DaysUntilBirthday: res.DaysUntil,
	}
}
