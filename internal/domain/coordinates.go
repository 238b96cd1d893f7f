package domain

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/angle"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// Immutable ICRS celestial coordinates in degrees.
type Coordinate struct {
	RA  float64
	Dec float64
}

// Validate reports whether RA is in [0, 360) and Dec in [-90, 90].
func (c Coordinate) Validate() error {
	if math.IsNaN(c.RA) || math.IsInf(c.RA, 0) || c.RA < 0 || c.RA >= 360 {
		return fmt.Errorf("right ascension %v out of range [0, 360)", c.RA)
	}
	if math.IsNaN(c.Dec) || math.IsInf(c.Dec, 0) || c.Dec < -90 || c.Dec > 90 {
		return fmt.Errorf("declination %v out of range [-90, 90]", c.Dec)
	}
	return nil
}

// Sexagesimal renders the coordinate as "hh:mm:ss dd:mm:ss" style text.
func (c Coordinate) Sexagesimal() (ra, dec string) {
	ra = fmt.Sprintf("%.2d", sexa.FmtRA(unit.RAFromDeg(c.RA)))
	dec = fmt.Sprintf("%.1d", sexa.FmtAngle(unit.AngleFromDeg(c.Dec)))
	return ra, dec
}

// SeparationDeg returns the great-circle separation to o in degrees.
func (c Coordinate) SeparationDeg(o Coordinate) float64 {
	return angle.Sep(
		unit.AngleFromDeg(c.RA), unit.AngleFromDeg(c.Dec),
		unit.AngleFromDeg(o.RA), unit.AngleFromDeg(o.Dec),
	).Deg()
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %+.6f)", c.RA, c.Dec)
}
