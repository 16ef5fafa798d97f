package convert

import (
	"math"
	"strconv"
	"strings"
)

func OneDecimal(number float64) float64 {
	return RoundFloat64(number, 1)
}

func TwoDecimals(number float64) float64 {
	return RoundFloat64(number, 2)
}

// RoundFloat64 rounds half away from zero, JavaScript's Math.round rounds half up,
// the difference only shows for negative halves which never occur in readings.
func RoundFloat64(number float64, decimals int) float64 {
	return math.Round(number*math.Pow10(decimals)) / math.Pow10(decimals)
}

// ParseReading converts a spreadsheet cell to a float. Both decimal separators
// are accepted since Peruvian sheets often use a comma.
func ParseReading(str string) (float64, bool) {
	str = strings.TrimSpace(str)
	if str == "" {
		return 0, false
	}
	if strings.Count(str, ",") == 1 && !strings.Contains(str, ".") {
		str = strings.Replace(str, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return math.NaN(), true
	}
	return f, true
}

// ZeroIfInvalid mirrors `Number(x) || 0`, NaN and infinities become zero.
func ZeroIfInvalid(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
