package services

import (
	"enviro-dashboard/internal/models"
)

// Threshold advice text. The parameter order below is also the evaluation
// priority: a station breaching several thresholds reports only the first.
const (
	temperatureAdvice = "Deploy cooling systems or improve ventilation."
	emissionsAdvice   = "Deploy air purifiers and restrict heavy vehicle traffic."
	noiseAdvice       = "Install sound barriers and enforce noise regulations."
)

type thresholdCheck struct {
	parameter string
	threshold float64
	value     func(*models.Reading) float64
	advice    string
}

var thresholdChecks = []thresholdCheck{
	{models.ParamTemperature, models.TemperatureThreshold, func(r *models.Reading) float64 { return r.Temperature }, temperatureAdvice},
	{models.ParamEmissions, models.EmissionsThreshold, func(r *models.Reading) float64 { return r.Emissions }, emissionsAdvice},
	{models.ParamNoise, models.NoiseThreshold, func(r *models.Reading) float64 { return r.Noise }, noiseAdvice},
}

// EvaluateThresholds is the deterministic local fallback: each station's
// latest reading is tested against the fixed thresholds in priority order
// (temperature, emissions, noise) and at most one suggestion is emitted per
// station. Stations without a reading, or with nothing exceeded, are skipped.
func EvaluateThresholds(stations []models.Station) []models.Suggestion {
	var suggestions []models.Suggestion

	for _, station := range stations {
		reading := station.LatestReading
		if reading == nil {
			continue
		}

		for _, check := range thresholdChecks {
			value := check.value(reading)
			if value > check.threshold {
				suggestions = append(suggestions, models.Suggestion{
					StationName: station.Name,
					Area:        station.Area,
					Parameter:   check.parameter,
					Value:       value,
					Threshold:   check.threshold,
					Suggestion:  check.advice,
				})
				break // first exceeded threshold wins
			}
		}
	}

	return suggestions
}

// GroupByStation groups suggestions under their station name, preserving
// the insertion order of each station's first appearance.
func GroupByStation(suggestions []models.Suggestion) []models.SuggestionGroup {
	groups := make([]models.SuggestionGroup, 0)
	index := make(map[string]int)

	for _, s := range suggestions {
		i, ok := index[s.StationName]
		if !ok {
			i = len(groups)
			index[s.StationName] = i
			groups = append(groups, models.SuggestionGroup{
				StationName: s.StationName,
				Area:        s.Area,
			})
		}
		groups[i].Suggestions = append(groups[i].Suggestions, s)
	}

	return groups
}
