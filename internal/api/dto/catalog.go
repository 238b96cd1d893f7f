package dto

// Magnitudes are null when PS1 has no measurement in the band.
type CatalogObjectResponse struct {
	ObjID            int64               `json:"obj_id"`
	RAMean           float64             `json:"ra_mean"`
	DecMean          float64             `json:"dec_mean"`
	NDetections      int                 `json:"n_detections"`
	SeparationArcsec float64             `json:"separation_arcsec"`
	MeanPSFMag       map[string]*float64 `json:"mean_psf_mag"`
	NBand            map[string]int      `json:"n_band"`
}

type ListObjectsResponse struct {
	Target  ResolveResponse         `json:"target"`
	Objects []CatalogObjectResponse `json:"objects"`
}

// MagErr is null when PS1 has no flux error for the detection.
type LightCurvePointResponse struct {
	MJD    float64  `json:"mjd"`
	Mag    float64  `json:"mag"`
	MagErr *float64 `json:"mag_err"`
}

type LightCurveResponse struct {
	Target ResolveResponse                      `json:"target"`
	Object CatalogObjectResponse                `json:"object"`
	Bands  map[string][]LightCurvePointResponse `json:"bands"`
}
