package domain

import "math"

// PS1 filters in wavelength order.
var Filters = []string{"g", "r", "i", "z", "y"}

// abZeroPoint converts flux in Jansky to AB magnitude.
const abZeroPoint = 8.90

// PS1 marks missing measurements with -999.
const missingValue = -999.0

// One light-curve sample. MagErr is NaN when PS1 reports no flux error.
type LightCurvePoint struct {
	MJD    float64
	Mag    float64
	MagErr float64
}

// Per-filter light curve for a single catalog object.
type LightCurve struct {
	ObjID int64
	Bands map[string][]LightCurvePoint
}

// FluxToABMag converts a PSF flux (Jy) and its error into an AB magnitude and
// magnitude error. ok is false for non-positive or non-finite flux. A missing
// flux error (NaN, infinite, or the PS1 -999 sentinel) yields a NaN magErr.
func FluxToABMag(flux, fluxErr float64) (mag, magErr float64, ok bool) {
	if flux <= 0 || math.IsNaN(flux) || math.IsInf(flux, 0) {
		return 0, 0, false
	}
	mag = -2.5*math.Log10(flux) + abZeroPoint
	if math.IsNaN(fluxErr) || math.IsInf(fluxErr, 0) || fluxErr <= missingValue {
		return mag, math.NaN(), true
	}
	magErr = 2.5 / math.Ln10 * fluxErr / flux
	return mag, magErr, true
}

// Points returns the total number of samples across all bands.
func (lc *LightCurve) Points() int {
	n := 0
	for _, pts := range lc.Bands {
		n += len(pts)
	}
	return n
}
