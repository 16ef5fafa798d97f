// Package profile holds the diurnal profiles used to spread a daily value
// over the 24 hours of a day.
package profile

import "math"

const (
	Sunrise = 5  // First hour with UV radiation
	Sunset  = 19 // Last hour with UV radiation
	Noon    = 12 // UV peak

	// Share of the current pattern the trend keeps, the rest comes from history
	MemoryFactor = 0.8
	// Damping of the historical contribution
	HistoryWeight = 0.2
)

// UV gives the hourly UV index for a day peaking at uvMax:
// UV_h = UV_max × [0.5 + 0.5 × cos(π × |h-12| / 6)], zero outside daylight.
func UV(hour int, uvMax float64) float64 {
	if hour < Sunrise || hour > Sunset {
		return 0
	}
	return uvMax * (0.5 + 0.5*math.Cos(math.Pi*math.Abs(float64(hour-Noon))/6))
}

// Ozone follows the valley-mountain profile:
// O3_h = O3_day × [0.7 + 0.3 × sin(π × (h-6) / 12)].
func Ozone(hour int, o3Day float64) float64 {
	return o3Day * (0.7 + 0.3*math.Sin(math.Pi*float64(hour-6)/12))
}

// Precipitation puts the afternoon convective rain between 14 and 19.
func Precipitation(hour int, ppDay float64) float64 {
	switch {
	case hour >= 14 && hour <= 16:
		return ppDay * 0.4
	case hour >= 17 && hour <= 19:
		return ppDay * 0.3
	default:
		return ppDay * 0.3 / 20
	}
}

// TemporalWeight W(h) = sin(π × h / 12) × 0.3 + 0.7
func TemporalWeight(hour int) float64 {
	return math.Sin(math.Pi*float64(hour)/12)*0.3 + 0.7
}

// LSTMTrend blends the base value with the historical average:
// base × W(h) × 0.8 + historicalAvg × (1 - 0.8) × 0.2, never negative.
func LSTMTrend(hour int, base, historicalAvg float64) float64 {
	v := base*TemporalWeight(hour)*MemoryFactor + historicalAvg*(1-MemoryFactor)*HistoryWeight
	return math.Max(0, v)
}
