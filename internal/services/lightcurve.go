package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/obs"
	"ps1-lightcurve-service/internal/ports"
	"slices"
	"sort"
)

// ErrNoCatalogObject is returned when a cone search finds nothing.
var ErrNoCatalogObject = errors.New("no PS1 object within search radius")

// LightCurveService ties name resolution to PS1 catalog queries.
type LightCurveService struct {
	Resolver      Resolver
	Catalog       ports.CatalogQuerier
	MinDetections int
}

// FindObjects cone-searches the mean-object view around c and returns the
// matches nearest first.
func (s *LightCurveService) FindObjects(
	ctx context.Context,
	c domain.Coordinate,
	radiusDeg float64,
) (_ []domain.CatalogObject, err error) {
	defer obs.Time(ctx, "lightcurve.FindObjects")(&err)

	q, err := ConeSearchQuery(c, radiusDeg, s.MinDetections)
	if err != nil {
		return nil, err
	}

	tbl, err := s.Catalog.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find objects: %w", err)
	}

	objs, err := catalogObjectsFromTable(tbl)
	if err != nil {
		return nil, fmt.Errorf("find objects: %w", err)
	}

	for i := range objs {
		objs[i].SeparationArcsec = c.SeparationDeg(objs[i].Coordinate()) * 3600
	}
	sort.SliceStable(objs, func(i, j int) bool {
		return objs[i].SeparationArcsec < objs[j].SeparationArcsec
	})

	return objs, nil
}

// Detections fetches every detection of objID.
func (s *LightCurveService) Detections(ctx context.Context, objID int64) (_ []domain.Detection, err error) {
	defer obs.Time(ctx, "lightcurve.Detections")(&err)

	q, err := DetectionsQuery(objID)
	if err != nil {
		return nil, err
	}

	tbl, err := s.Catalog.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("detections: %w", err)
	}

	return detectionsFromTable(tbl)
}

// LightCurveForName resolves name, picks the nearest PS1 object within
// radiusDeg, and builds its light curve.
func (s *LightCurveService) LightCurveForName(
	ctx context.Context,
	name string,
	radiusDeg float64,
) (domain.Resolution, *domain.CatalogObject, *domain.LightCurve, error) {
	res, err := s.Resolver.Resolve(ctx, name)
	if err != nil {
		return domain.Resolution{}, nil, nil, err
	}

	objs, err := s.FindObjects(ctx, res.Coordinate, radiusDeg)
	if err != nil {
		return res, nil, nil, err
	}
	if len(objs) == 0 {
		return res, nil, nil, ErrNoCatalogObject
	}
	nearest := objs[0]

	dets, err := s.Detections(ctx, nearest.ObjID)
	if err != nil {
		return res, &nearest, nil, err
	}

	return res, &nearest, BuildLightCurve(nearest.ObjID, dets), nil
}

// BuildLightCurve groups detections by filter and converts PSF flux to AB
// magnitude. Detections with non-positive flux are dropped. Each band is
// sorted by time.
func BuildLightCurve(objID int64, dets []domain.Detection) *domain.LightCurve {
	lc := &domain.LightCurve{ObjID: objID, Bands: map[string][]domain.LightCurvePoint{}}

	for _, d := range dets {
		mag, magErr, ok := domain.FluxToABMag(d.PSFFlux, d.PSFFluxErr)
		if !ok {
			continue
		}
		lc.Bands[d.FilterType] = append(lc.Bands[d.FilterType], domain.LightCurvePoint{
			MJD:    d.ObsTime,
			Mag:    mag,
			MagErr: magErr,
		})
	}

	for f := range lc.Bands {
		slices.SortStableFunc(lc.Bands[f], func(a, b domain.LightCurvePoint) int {
			switch {
			case a.MJD < b.MJD:
				return -1
			case a.MJD > b.MJD:
				return 1
			}
			return 0
		})
	}

	return lc
}

func catalogObjectsFromTable(t ports.Table) ([]domain.CatalogObject, error) {
	out := make([]domain.CatalogObject, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		var (
			o   domain.CatalogObject
			err error
			n   int64
		)
		if o.ObjID, err = t.Int(i, "objID"); err != nil {
			return nil, err
		}
		if o.RAMean, err = t.Float(i, "RAMean"); err != nil {
			return nil, err
		}
		if o.DecMean, err = t.Float(i, "DecMean"); err != nil {
			return nil, err
		}
		if n, err = t.Int(i, "nDetections"); err != nil {
			return nil, err
		}
		o.NDetections = int(n)

		counts := []*int{&o.NG, &o.NR, &o.NI, &o.NZ, &o.NY}
		for j, col := range []string{"ng", "nr", "ni", "nz", "ny"} {
			if n, err = t.Int(i, col); err != nil {
				return nil, err
			}
			*counts[j] = int(n)
		}

		mags := []*float64{&o.GMeanPSFMag, &o.RMeanPSFMag, &o.IMeanPSFMag, &o.ZMeanPSFMag, &o.YMeanPSFMag}
		for j, col := range []string{"gMeanPSFMag", "rMeanPSFMag", "iMeanPSFMag", "zMeanPSFMag", "yMeanPSFMag"} {
			v, err := t.Float(i, col)
			if err != nil {
				return nil, err
			}
			// PS1 marks missing magnitudes with -999.
			if v <= -999 {
				v = math.NaN()
			}
			*mags[j] = v
		}

		out = append(out, o)
	}
	return out, nil
}

func detectionsFromTable(t ports.Table) ([]domain.Detection, error) {
	out := make([]domain.Detection, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		var (
			d   domain.Detection
			err error
			n   int64
		)
		if d.ObjID, err = t.Int(i, "objID"); err != nil {
			return nil, err
		}
		if d.DetectID, err = t.Int(i, "detectID"); err != nil {
			return nil, err
		}
		if n, err = t.Int(i, "filterID"); err != nil {
			return nil, err
		}
		d.FilterID = int(n)
		if d.FilterType, err = t.String(i, "filterType"); err != nil {
			return nil, err
		}
		if d.ObsTime, err = t.Float(i, "obsTime"); err != nil {
			return nil, err
		}
		if d.RA, err = t.Float(i, "ra"); err != nil {
			return nil, err
		}
		if d.Dec, err = t.Float(i, "dec"); err != nil {
			return nil, err
		}
		if d.PSFFlux, err = t.Float(i, "psfFlux"); err != nil {
			return nil, err
		}
		if d.PSFFluxErr, err = t.Float(i, "psfFluxErr"); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
