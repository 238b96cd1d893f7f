package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"ps1-lightcurve-service/internal/api/dto"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/services"
	"strings"
)

// CatalogHandler serves PS1 cone searches and light curves for named objects.
type CatalogHandler struct {
	Service             *services.LightCurveService
	DefaultRadiusArcsec float64
}

// Objects serves GET /objects?name=...&radius=<arcsec>.
func (h *CatalogHandler) Objects(w http.ResponseWriter, r *http.Request) {
	name, radius, ok := h.parse(w, r)
	if !ok {
		return
	}

	res, err := h.Service.Resolver.Resolve(r.Context(), name)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}

	objs, err := h.Service.FindObjects(r.Context(), res.Coordinate, radius)
	if err != nil {
		slog.ErrorContext(r.Context(), "cone search failed", "name", name, "err", err)
		writeError(w, r, http.StatusBadGateway, "catalog query failed")
		return
	}

	out := dto.ListObjectsResponse{
		Target:  resolveResponse(res),
		Objects: make([]dto.CatalogObjectResponse, 0, len(objs)),
	}
	for _, o := range objs {
		out.Objects = append(out.Objects, catalogObjectResponse(o))
	}

	writeJSON(w, r, http.StatusOK, out)
}

// LightCurve serves GET /lightcurve?name=...&radius=<arcsec>.
func (h *CatalogHandler) LightCurve(w http.ResponseWriter, r *http.Request) {
	name, radius, ok := h.parse(w, r)
	if !ok {
		return
	}

	res, obj, lc, err := h.Service.LightCurveForName(r.Context(), name, radius)
	if err != nil {
		var (
			unknown   *domain.UnknownObjectError
			transport *domain.TransportError
			decode    *domain.DecodeError
		)
		switch {
		case errors.As(err, &unknown), errors.As(err, &transport), errors.As(err, &decode):
			writeResolveError(w, r, err)
		case errors.Is(err, services.ErrNoCatalogObject):
			writeError(w, r, http.StatusNotFound, err.Error())
		default:
			slog.ErrorContext(r.Context(), "light curve failed", "name", name, "err", err)
			writeError(w, r, http.StatusBadGateway, "catalog query failed")
		}
		return
	}

	out := dto.LightCurveResponse{
		Target: resolveResponse(res),
		Object: catalogObjectResponse(*obj),
		Bands:  make(map[string][]dto.LightCurvePointResponse, len(lc.Bands)),
	}
	for band, pts := range lc.Bands {
		conv := make([]dto.LightCurvePointResponse, 0, len(pts))
		for _, p := range pts {
			conv = append(conv, dto.LightCurvePointResponse{MJD: p.MJD, Mag: p.Mag, MagErr: optional(p.MagErr)})
		}
		out.Bands[band] = conv
	}

	writeJSON(w, r, http.StatusOK, out)
}

func (h *CatalogHandler) parse(w http.ResponseWriter, r *http.Request) (string, float64, bool) {
	if !requireGet(w, r) {
		return "", 0, false
	}

	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return "", 0, false
	}

	radius, ok := parseRadius(r, h.DefaultRadiusArcsec)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "radius must be a number of arcseconds in (0, 3600]")
		return "", 0, false
	}

	return name, radius, true
}
