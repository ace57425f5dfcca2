package models

import (
	"fmt"
	"math"
)

// Reading is one set of air-quality measurements.
type Reading struct {
	PM25     int     `json:"pm25"`     // µg/m³
	CO2      int     `json:"co2"`      // ppm
	VOC      int     `json:"voc"`      // ppb
	Humidity int     `json:"humidity"` // %
	Temp     float64 `json:"temp"`     // °C
}

// Field names one measurement of a Reading.
type Field string

const (
	FieldPM25     Field = "pm25"
	FieldCO2      Field = "co2"
	FieldVOC      Field = "voc"
	FieldHumidity Field = "humidity"
	FieldTemp     Field = "temp"
)

// Fields lists every Reading field in display order.
var Fields = []Field{FieldPM25, FieldCO2, FieldVOC, FieldHumidity, FieldTemp}

// ParseField validates a field name coming from a caller.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: unknown field %q", ErrInvalidArgument, s)
	}
	return f, nil
}

func (f Field) Valid() bool {
	switch f {
	case FieldPM25, FieldCO2, FieldVOC, FieldHumidity, FieldTemp:
		return true
	}
	return false
}

// Integral reports whether the field is stored as a whole number.
func (f Field) Integral() bool {
	return f != FieldTemp
}

// Value returns the field as a float64.
func (r Reading) Value(f Field) float64 {
	switch f {
	case FieldPM25:
		return float64(r.PM25)
	case FieldCO2:
		return float64(r.CO2)
	case FieldVOC:
		return float64(r.VOC)
	case FieldHumidity:
		return float64(r.Humidity)
	case FieldTemp:
		return r.Temp
	}
	return 0
}

// With returns a copy of r with field f set to v. Integer fields are rounded
// half up; temp keeps full precision. Unknown fields leave r unchanged.
func (r Reading) With(f Field, v float64) Reading {
	switch f {
	case FieldPM25:
		r.PM25 = RoundHalfUp(v)
	case FieldCO2:
		r.CO2 = RoundHalfUp(v)
	case FieldVOC:
		r.VOC = RoundHalfUp(v)
	case FieldHumidity:
		r.Humidity = RoundHalfUp(v)
	case FieldTemp:
		r.Temp = v
	}
	return r
}

// RoundHalfUp rounds to the nearest integer with .5 going toward +Inf.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
