package models

import (
	"time"
)

// Parameter names used in suggestions. These match the wire contract of the
// remote analysis endpoint, so the fallback produces comparable output.
const (
	ParamTemperature = "Temperature"
	ParamEmissions   = "PM 2.5 Emissions"
	ParamNoise       = "Noise"
)

// Fixed thresholds shared between the remote analysis contract and the
// local fallback evaluation.
const (
	TemperatureThreshold = 30.0
	EmissionsThreshold   = 150.0
	NoiseThreshold       = 85.0
)

type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Emissions   float64   `json:"emissions"`
	Noise       float64   `json:"noise"`
}

// Station is a monitoring station with its static info and the latest
// reading, if any. LatestReading == nil means no data has arrived yet.
type Station struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Area          string   `json:"area"`
	LatestReading *Reading `json:"latestReading"`
}

// Suggestion is a single mitigation advice record, either returned by the
// remote analysis endpoint or derived locally from thresholds.
type Suggestion struct {
	StationName string  `json:"stationName"`
	Area        string  `json:"area"`
	Parameter   string  `json:"parameter"`
	Value       float64 `json:"value"`
	Threshold   float64 `json:"threshold"`
	Suggestion  string  `json:"suggestion"`
}

// SuggestionGroup holds all suggestions for one station, in the order they
// appeared in the flat list.
type SuggestionGroup struct {
	StationName string       `json:"stationName"`
	Area        string       `json:"area"`
	Suggestions []Suggestion `json:"suggestions"`
}

// AnalysisResult is the analyze operation's response body. Source is
// "remote" when the analysis endpoint produced the suggestions and
// "fallback" when the local threshold evaluation did.
type AnalysisResult struct {
	Source      string            `json:"source"`
	Suggestions []Suggestion      `json:"suggestions"`
	Groups      []SuggestionGroup `json:"groups"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ReadingInput is the ingest payload for POST /stations/:id/readings.
type ReadingInput struct {
	Timestamp   *time.Time `json:"timestamp"`
	Temperature float64    `json:"temperature" validate:"gte=-90,lte=100"`
	Emissions   float64    `json:"emissions" validate:"gte=0"`
	Noise       float64    `json:"noise" validate:"gte=0"`
}
