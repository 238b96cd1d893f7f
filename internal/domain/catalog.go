package domain

// Row of the PS1 DR2 mean-object view returned by a cone search.
// Mean PSF magnitudes are NaN when the object has no detections in that band.
type CatalogObject struct {
	ObjID       int64
	RAMean      float64
	DecMean     float64
	NDetections int
	NG, NR, NI  int
	NZ, NY      int
	GMeanPSFMag float64
	RMeanPSFMag float64
	IMeanPSFMag float64
	ZMeanPSFMag float64
	YMeanPSFMag float64

	// Distance from the search center in arcseconds.
	SeparationArcsec float64
}

// Coordinate returns the object's mean position.
func (o CatalogObject) Coordinate() Coordinate {
	return Coordinate{RA: o.RAMean, Dec: o.DecMean}
}

// Single-epoch PS1 detection. ObsTime is MJD; fluxes are in Jansky.
type Detection struct {
	ObjID      int64
	DetectID   int64
	FilterID   int
	FilterType string
	ObsTime    float64
	RA         float64
	Dec        float64
	PSFFlux    float64
	PSFFluxErr float64
}
