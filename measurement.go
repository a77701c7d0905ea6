package imagedeck

import (
	"math"

	"github.com/VantageDataChat/imagedeck/settings"
)

// EMU (English Metric Units) conversion helpers.
// 1 inch = 914400 EMU, 1 point = 12700 EMU.

const (
	emuPerInch  = 914400
	emuPerPoint = 12700
	// maxEMU is the maximum safe EMU value to prevent overflow.
	maxEMU = math.MaxInt64 / 2
)

// Inch converts inches to EMU, rounding to the nearest unit.
func Inch(n float64) int64 {
	return clampEMU(math.Round(n * emuPerInch))
}

// Point converts points to EMU, rounding to the nearest unit.
func Point(n float64) int64 {
	return clampEMU(math.Round(n * emuPerPoint))
}

// EMUToInch converts EMU to inches.
func EMUToInch(emu int64) float64 {
	return float64(emu) / emuPerInch
}

// EMUToPoint converts EMU to points.
func EMUToPoint(emu int64) float64 {
	return float64(emu) / emuPerPoint
}

// Inches converts EMU to a settings length.
func Inches(emu int64) settings.Inches {
	return settings.Inches(EMUToInch(emu))
}

// clampEMU converts a float64 to int64, clamping to prevent overflow.
func clampEMU(v float64) int64 {
	if v > float64(maxEMU) {
		return maxEMU
	}
	if v < -float64(maxEMU) {
		return -maxEMU
	}
	return int64(v)
}
