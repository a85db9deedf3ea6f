package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"toolbox/api/dto"
	"toolbox/api/validation"
	"toolbox/calculator"
)

// CalculatorHandler serves the numeric tools. Inputs come from form or
// query values.
type CalculatorHandler struct {
	logger   *zap.Logger
	now      func() time.Time
	location *time.Location
}

// NewCalculatorHandler evaluates "today" for the age tool with now in loc.
func NewCalculatorHandler(now func() time.Time, loc *time.Location, logger *zap.Logger) *CalculatorHandler {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &CalculatorHandler{logger: logger, now: now, location: loc}
}

func (h *CalculatorHandler) Percentage(w http.ResponseWriter, r *http.Request) {
	mode, err := calculator.ParsePercentageMode(r.FormValue("mode"))
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	value, err := validation.ParseNumber("value", r.FormValue("value"))
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	field := "percentage"
	if mode == calculator.ModeFindValue {
		field = "total"
	}
	other, err := validation.ParseNumber(field, r.FormValue(field))
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	result, err := calculator.Percentage(mode, value, other)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.PercentageResponse{Mode: string(mode), Result: result})
}

func (h *CalculatorHandler) BMI(w http.ResponseWriter, r *http.Request) {
	res, err := bmiFromForm(r)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewBMIResponse(res))
}

func bmiFromForm(r *http.Request) (*calculator.BMIResult, error) {
	unit := calculator.Unit(strings.ToLower(r.FormValue("unit")))
	if unit != "" && unit != calculator.UnitMetric && unit != calculator.UnitImperial {
		return nil, fmt.Errorf("%w: unit=%q", validation.ErrInvalidValue, unit)
	}

	weight, err := validation.ParseNumber("weight", r.FormValue("weight"))
	if err != nil {
		return nil, err
	}

	if unit == calculator.UnitImperial {
		feet, err := validation.ParseNumber("feet", r.FormValue("feet"))
		if err != nil {
			return nil, err
		}
		inches, err := validation.ParseOptionalNumber("inches", r.FormValue("inches"), 0)
		if err != nil {
			return nil, err
		}
		return calculator.BMIImperial(weight, feet, inches)
	}

	height, err := validation.ParseNumber("height", r.FormValue("height"))
	if err != nil {
		return nil, err
	}
	return calculator.BMIMetric(weight, height)
}

func (h *CalculatorHandler) Calories(w http.ResponseWriter, r *http.Request) {
	in := calculator.CalorieInput{
		Gender:   calculator.Gender(strings.ToLower(r.FormValue("gender"))),
		Activity: calculator.ActivityLevel(strings.ToLower(r.FormValue("activity"))),
	}

	var err error
	if in.AgeYears, err = validation.ParseNumber("age", r.FormValue("age")); err != nil {
		handleError(h.logger, w, r, err)
		return
	}
	if in.WeightKg, err = validation.ParseNumber("weight", r.FormValue("weight")); err != nil {
		handleError(h.logger, w, r, err)
		return
	}
	if in.HeightCm, err = validation.ParseNumber("height", r.FormValue("height")); err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	res, err := calculator.Calories(in)
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	resp := dto.CaloriesResponse{CalorieResult: *res}
	for _, a := range calculator.Activities {
		if a.Level == in.Activity {
			resp.Activity = a
		}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CalculatorHandler) Age(w http.ResponseWriter, r *http.Request) {
	birth, err := validation.ParseDate("birth_date", r.FormValue("birth_date"))
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	res, err := calculator.Age(birth, calculator.Today(h.now(), h.location))
	if err != nil {
		handleError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewAgeResponse(res))
}
