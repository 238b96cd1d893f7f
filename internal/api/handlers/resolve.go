package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"ps1-lightcurve-service/internal/api/dto"
	"ps1-lightcurve-service/internal/services"
	"strings"
)

const maxBatchNames = 100

// ResolveHandler exposes name -> coordinate lookups.
type ResolveHandler struct {
	Resolver    services.Resolver
	Concurrency int
}

// Resolve serves GET /resolve?name=... for one name and POST /resolve with
// {"names": [...]} for a batch.
func (h *ResolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.resolveOne(w, r)
	case http.MethodPost:
		h.resolveBatch(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ResolveHandler) resolveOne(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}

	res, err := h.Resolver.Resolve(r.Context(), name)
	if err != nil {
		writeResolveError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, resolveResponse(res))
}

func (h *ResolveHandler) resolveBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchResolveRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Names) == 0 {
		writeError(w, r, http.StatusBadRequest, "names is required")
		return
	}
	if len(req.Names) > maxBatchNames {
		writeError(w, r, http.StatusBadRequest, "at most 100 names per request")
		return
	}

	results, err := services.ResolveTargets(r.Context(), h.Resolver, req.Names, h.Concurrency)
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "request canceled")
		return
	}

	res := dto.BatchResolveResponse{Results: make([]dto.BatchResolveItem, 0, len(results))}
	for _, tr := range results {
		item := dto.BatchResolveItem{Name: tr.Name}
		if tr.Err != nil {
			item.Error = tr.Err.Error()
		} else {
			c := coordinateResponse(tr.Resolution.Coordinate)
			item.Coordinate = &c
			item.Cached = tr.Resolution.Cached
		}
		res.Results = append(res.Results, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
