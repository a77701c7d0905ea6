package settings

import "strconv"

// Inches is a length in inches.
type Inches float64

// Points is a length in typographic points (1/72 inch).
type Points float64

const pointsPerInch = 72

// Points converts the length to points.
func (in Inches) Points() Points { return Points(in * pointsPerInch) }

func (in Inches) String() string {
	return strconv.FormatFloat(float64(in), 'f', 2, 64) + "in"
}

// Inches converts the length to inches.
func (pt Points) Inches() Inches { return Inches(pt / pointsPerInch) }

func (pt Points) String() string {
	return strconv.FormatFloat(float64(pt), 'f', 2, 64) + "pt"
}
