package services

import (
	"fmt"
	"ps1-lightcurve-service/internal/domain"
	"strconv"
)

// MaxConeRadiusDeg bounds cone searches against the mean-object view.
const MaxConeRadiusDeg = 1.0

// ConeSearchQuery builds the ADQL for PS1 DR2 mean objects within radiusDeg
// of c having more than minDetections detections.
func ConeSearchQuery(c domain.Coordinate, radiusDeg float64, minDetections int) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("cone search: %w", err)
	}
	if !(radiusDeg > 0 && radiusDeg <= MaxConeRadiusDeg) {
		return "", fmt.Errorf("cone search: radius %v deg out of range (0, %v]", radiusDeg, MaxConeRadiusDeg)
	}
	if minDetections < 0 {
		return "", fmt.Errorf("cone search: minDetections must be >= 0, got %d", minDetections)
	}

	return fmt.Sprintf(`SELECT objID, RAMean, DecMean, nDetections, ng, nr, ni, nz, ny,
	gMeanPSFMag, rMeanPSFMag, iMeanPSFMag, zMeanPSFMag, yMeanPSFMag
FROM dbo.MeanObjectView
WHERE
CONTAINS(POINT('ICRS', RAMean, DecMean), CIRCLE('ICRS', %s, %s, %s))=1
AND nDetections > %d`,
		formatDeg(c.RA), formatDeg(c.Dec), formatDeg(radiusDeg), minDetections), nil
}

// DetectionsQuery builds the ADQL for every detection of objID, ordered by
// filter and then observation time.
func DetectionsQuery(objID int64) (string, error) {
	if objID <= 0 {
		return "", fmt.Errorf("detections query: invalid objID %d", objID)
	}

	return fmt.Sprintf(`SELECT objID, detectID, Detection.filterID as filterID, Filter.filterType,
	obsTime, ra, dec, psfFlux, psfFluxErr
FROM Detection
NATURAL JOIN Filter
WHERE objID = %d
ORDER BY filterID, obsTime`, objID), nil
}

func formatDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
