package api

import (
	"net/http"
	"ps1-lightcurve-service/internal/api/handlers"
	"ps1-lightcurve-service/internal/platform/metrics"
	"ps1-lightcurve-service/internal/ports"
	"ps1-lightcurve-service/internal/services"
)

// Dependencies the HTTP layer needs; concrete adapters are chosen in main.
type Deps struct {
	Resolver            services.Resolver
	Targets             ports.TargetRepository
	LightCurves         *services.LightCurveService
	DefaultRadiusArcsec float64
	Concurrency         int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	resolveHandler := &handlers.ResolveHandler{Resolver: d.Resolver, Concurrency: d.Concurrency}
	targetHandler := &handlers.TargetHandler{
		Repo:        d.Targets,
		Resolver:    d.Resolver,
		Concurrency: d.Concurrency,
	}
	catalogHandler := &handlers.CatalogHandler{
		Service:             d.LightCurves,
		DefaultRadiusArcsec: d.DefaultRadiusArcsec,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/resolve", resolveHandler.Resolve)
	mux.HandleFunc("/targets", targetHandler.List)
	mux.HandleFunc("/objects", catalogHandler.Objects)
	mux.HandleFunc("/lightcurve", catalogHandler.LightCurve)
	mux.Handle("/metrics", metrics.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
