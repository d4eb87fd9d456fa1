package store

import "enviro-dashboard/internal/models"

// DefaultStations is the built-in seed set used when no seed file is
// configured. Coordinates are real monitoring locations around Delhi.
func DefaultStations() []models.Station {
	return []models.Station{
		{ID: "st-001", Name: "Anand Vihar", Latitude: 28.6469, Longitude: 77.3164, Area: "East Delhi"},
		{ID: "st-002", Name: "ITO Crossing", Latitude: 28.6289, Longitude: 77.2410, Area: "Central Delhi"},
		{ID: "st-003", Name: "Punjabi Bagh", Latitude: 28.6739, Longitude: 77.1310, Area: "West Delhi"},
		{ID: "st-004", Name: "R.K. Puram", Latitude: 28.5632, Longitude: 77.1869, Area: "South Delhi"},
		{ID: "st-005", Name: "Dwarka Sector 8", Latitude: 28.5710, Longitude: 77.0719, Area: "South West Delhi"},
		{ID: "st-006", Name: "Rohini Sector 16", Latitude: 28.7326, Longitude: 77.1190, Area: "North West Delhi"},
	}
}
