package catalog

import "gridsynth/internal/model"

// Areas maps each density class to its metropolitan areas. Ten regions
// total across the three classes; center coordinates match the real
// metropolitan areas they are named after.
var Areas = map[model.DensityClass][]model.GeographicArea{
	model.DensityUrban: {
		{
			Name:      "New York",
			CenterLat: 40.7128, CenterLon: -74.0060,
			LatMin: 40.4774, LatMax: 40.9176,
			LonMin: -74.2591, LonMax: -73.7004,
			PopulationDensity: "very_high",
		},
		{
			Name:      "Los Angeles",
			CenterLat: 34.0522, CenterLon: -118.2437,
			LatMin: 33.7037, LatMax: 34.3373,
			LonMin: -118.6681, LonMax: -118.1553,
			PopulationDensity: "high",
		},
		{
			Name:      "Chicago",
			CenterLat: 41.8781, CenterLon: -87.6298,
			LatMin: 41.6444, LatMax: 42.0230,
			LonMin: -87.9401, LonMax: -87.5240,
			PopulationDensity: "high",
		},
		{
			Name:      "Houston",
			CenterLat: 29.7604, CenterLon: -95.3698,
			LatMin: 29.5200, LatMax: 30.1100,
			LonMin: -95.8230, LonMax: -95.0140,
			PopulationDensity: "medium",
		},
		{
			Name:      "Phoenix",
			CenterLat: 33.4484, CenterLon: -112.0740,
			LatMin: 33.2000, LatMax: 33.7000,
			LonMin: -112.3500, LonMax: -111.8000,
			PopulationDensity: "medium",
		},
	},
	model.DensitySuburban: {
		{
			Name:      "San Jose",
			CenterLat: 37.3382, CenterLon: -121.8863,
			LatMin: 37.1000, LatMax: 37.5000,
			LonMin: -122.1000, LonMax: -121.6000,
			PopulationDensity: "medium",
		},
		{
			Name:      "Austin",
			CenterLat: 30.2672, CenterLon: -97.7431,
			LatMin: 30.0000, LatMax: 30.5000,
			LonMin: -98.0000, LonMax: -97.5000,
			PopulationDensity: "medium",
		},
		{
			Name:      "Raleigh",
			CenterLat: 35.7796, CenterLon: -78.6382,
			LatMin: 35.6000, LatMax: 36.0000,
			LonMin: -78.9000, LonMax: -78.4000,
			PopulationDensity: "medium",
		},
	},
	model.DensityRural: {
		{
			Name:      "Montana Rural",
			CenterLat: 47.0527, CenterLon: -109.6333,
			LatMin: 45.0000, LatMax: 49.0000,
			LonMin: -116.0000, LonMax: -104.0000,
			PopulationDensity: "low",
		},
		{
			Name:      "Kansas Rural",
			CenterLat: 38.5266, CenterLon: -96.7265,
			LatMin: 37.0000, LatMax: 40.0000,
			LonMin: -102.0000, LonMax: -94.5000,
			PopulationDensity: "low",
		},
	},
}

// AreasFor returns the area list for a density class, falling back to
// urban when the class is unknown.
func AreasFor(class model.DensityClass) []model.GeographicArea {
	if areas, ok := Areas[class]; ok {
		return areas
	}
	return Areas[model.DensityUrban]
}
