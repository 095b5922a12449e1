// Package predictor is the crop yield predictor form. The estimate itself is
// behind Estimator so a real model can replace the placeholder without
// changing the form contract.
package predictor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"landlink/pkg/formvalue"
)

var (
	CropOptions = []string{"Wheat", "Rice", "Corn", "Soybeans", "Cotton", "Sugarcane", "Barley", "Sorghum"}
	SoilTypes   = []string{"Loamy", "Clay", "Sandy", "Silty", "Peaty", "Chalky"}
	Seasons     = []string{"Spring", "Summer", "Fall", "Winter"}
)

// Form is the predictor form as submitted. Numeric fields accept text or
// JSON numbers.
type Form struct {
	Crop        string         `json:"crop"`
	Area        formvalue.Text `json:"area"`
	SoilType    string         `json:"soil_type"`
	Rainfall    formvalue.Text `json:"rainfall"`
	Temperature formvalue.Text `json:"temperature"`
	Humidity    formvalue.Text `json:"humidity"`
	Season      string         `json:"season"`
}

type Input struct {
	Crop        string
	Area        float64 // acres
	SoilType    string
	Rainfall    float64 // inches/month
	Temperature float64 // °F
	Humidity    float64 // %
	Season      string
}

type Result struct {
	Crop            string   `json:"crop"`
	PredictedYield  float64  `json:"predicted_yield"`
	ConfidenceLevel int      `json:"confidence_level"`
	Recommendations []string `json:"recommendations"`
}

type Estimator interface {
	Estimate(ctx context.Context, in Input) (Result, error)
}

// FieldError names the form field that failed validation.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Msg }

// Parse validates every required field of the form.
func (f Form) Parse() (Input, error) {
	var in Input
	var err error
	if in.Crop, err = choice("crop", f.Crop, CropOptions); err != nil {
		return Input{}, err
	}
	if in.SoilType, err = choice("soil_type", f.SoilType, SoilTypes); err != nil {
		return Input{}, err
	}
	if in.Season, err = choice("season", f.Season, Seasons); err != nil {
		return Input{}, err
	}
	if in.Area, err = number("area", f.Area); err != nil {
		return Input{}, err
	}
	if in.Area <= 0 {
		return Input{}, &FieldError{"area", "must be greater than zero"}
	}
	if in.Rainfall, err = number("rainfall", f.Rainfall); err != nil {
		return Input{}, err
	}
	if in.Temperature, err = number("temperature", f.Temperature); err != nil {
		return Input{}, err
	}
	if in.Humidity, err = number("humidity", f.Humidity); err != nil {
		return Input{}, err
	}
	return in, nil
}

func choice(field, v string, allowed []string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", &FieldError{field, "is required"}
	}
	if !slices.Contains(allowed, v) {
		return "", &FieldError{field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))}
	}
	return v, nil
}

func number(field string, v formvalue.Text) (float64, error) {
	if v.Blank() {
		return 0, &FieldError{field, "is required"}
	}
	n, err := v.Float()
	if err != nil {
		return 0, &FieldError{field, fmt.Sprintf("%q %v", strings.TrimSpace(v.String()), err)}
	}
	return n, nil
}
