package handlers

import (
	"log/slog"
	"net/http"
	"ps1-lightcurve-service/internal/api/dto"
	"ps1-lightcurve-service/internal/ports"
	"ps1-lightcurve-service/internal/services"
)

// TargetHandler lists the seeded targets together with their coordinates.
type TargetHandler struct {
	Repo        ports.TargetRepository
	Resolver    services.Resolver
	Concurrency int
}

func (h *TargetHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	targets, err := h.Repo.ListTargets(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list targets failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}

	results, err := services.ResolveTargets(r.Context(), h.Resolver, names, h.Concurrency)
	if err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "request canceled")
		return
	}

	res := dto.ListTargetsResponse{Targets: make([]dto.TargetResponse, 0, len(targets))}
	for i, t := range targets {
		item := dto.TargetResponse{Name: t.Name, Note: t.Note}
		if err := results[i].Err; err != nil {
			item.Error = err.Error()
		} else {
			c := coordinateResponse(results[i].Resolution.Coordinate)
			item.Coordinate = &c
		}
		res.Targets = append(res.Targets, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
