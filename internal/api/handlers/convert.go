package handlers

import (
	"math"
	"ps1-lightcurve-service/internal/api/dto"
	"ps1-lightcurve-service/internal/domain"
)

func coordinateResponse(c domain.Coordinate) dto.CoordinateResponse {
	ra, dec := c.Sexagesimal()
	return dto.CoordinateResponse{RA: c.RA, Dec: c.Dec, RAHMS: ra, DecDMS: dec}
}

func resolveResponse(r domain.Resolution) dto.ResolveResponse {
	return dto.ResolveResponse{
		Name:          r.Name,
		CanonicalName: r.CanonicalName,
		Coordinate:    coordinateResponse(r.Coordinate),
		Cached:        r.Cached,
	}
}

// optional maps NaN to a JSON null.
func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func catalogObjectResponse(o domain.CatalogObject) dto.CatalogObjectResponse {
	return dto.CatalogObjectResponse{
		ObjID:            o.ObjID,
		RAMean:           o.RAMean,
		DecMean:          o.DecMean,
		NDetections:      o.NDetections,
		SeparationArcsec: o.SeparationArcsec,
		MeanPSFMag: map[string]*float64{
			"g": optional(o.GMeanPSFMag),
			"r": optional(o.RMeanPSFMag),
			"i": optional(o.IMeanPSFMag),
			"z": optional(o.ZMeanPSFMag),
			"y": optional(o.YMeanPSFMag),
		},
		NBand: map[string]int{"g": o.NG, "r": o.NR, "i": o.NI, "z": o.NZ, "y": o.NY},
	}
}
