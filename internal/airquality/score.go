package airquality

import (
	"time"

	"airquality_dashboard/internal/models"
)

// Score deductions. Every condition is checked on its own, so a high pm25
// reading pays both pm25 deductions.
const (
	maxScore = 100

	pm25Deduction       = 20
	pm25SevereDeduction = 20
	co2Deduction        = 15
	co2SevereDeduction  = 15
	vocDeduction        = 10
	humidityDeduction   = 10

	excellentFrom = 80
	moderateFrom  = 50
)

// Score maps a reading to a 0-100 air-quality index.
func Score(r models.Reading) int {
	score := maxScore
	if r.PM25 > 25 {
		score -= pm25Deduction
	}
	if r.PM25 > 50 {
		score -= pm25SevereDeduction
	}
	if r.CO2 > 1000 {
		score -= co2Deduction
	}
	if r.CO2 > 2000 {
		score -= co2SevereDeduction
	}
	if r.VOC > 100 {
		score -= vocDeduction
	}
	if r.Humidity > 70 || r.Humidity < 30 {
		score -= humidityDeduction
	}
	if score < 0 {
		return 0
	}
	return score
}

// Classify turns a score into its label.
func Classify(score int) models.Label {
	switch {
	case score >= excellentFrom:
		return models.LabelExcellent
	case score >= moderateFrom:
		return models.LabelModerate
	default:
		return models.LabelPoor
	}
}

// Assess scores a reading for display.
func Assess(scope models.Scope, r models.Reading, at time.Time) models.Assessment {
	score := Score(r)
	return models.Assessment{
		Scope:     scope,
		Reading:   r,
		Score:     score,
		Label:     Classify(score),
		Timestamp: at,
	}
}
