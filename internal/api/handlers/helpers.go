package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"ps1-lightcurve-service/internal/domain"
	"strconv"
	"strings"
)

// writeJSON encodes v before touching the status line so an unencodable
// value becomes a 500 rather than an empty success.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "encode failed", "method", r.Method, "path", r.URL.Path, "err", err)
		buf.Reset()
		buf.WriteString(`{"error":"internal server error"}` + "\n")
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.WarnContext(r.Context(), "write failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeResolveError maps resolver failures onto HTTP statuses:
// unknown names are 404, upstream failures 502.
func writeResolveError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		unknown   *domain.UnknownObjectError
		transport *domain.TransportError
		decode    *domain.DecodeError
	)
	switch {
	case errors.As(err, &unknown):
		writeError(w, r, http.StatusNotFound, unknown.Error())
	case errors.As(err, &transport), errors.As(err, &decode):
		slog.ErrorContext(r.Context(), "name resolution failed", "err", err)
		writeError(w, r, http.StatusBadGateway, "name resolution service unavailable")
	default:
		slog.ErrorContext(r.Context(), "name resolution failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	return true
}

// defaultRadiusArcsec is the cone radius used when neither the request nor
// the handler sets one.
const defaultRadiusArcsec = 2.0

// parseRadius reads the radius query parameter in arcseconds and returns
// degrees, applying fallbackArcsec when absent.
func parseRadius(r *http.Request, fallbackArcsec float64) (float64, bool) {
	s := strings.TrimSpace(r.URL.Query().Get("radius"))
	if s == "" {
		if fallbackArcsec <= 0 {
			fallbackArcsec = defaultRadiusArcsec
		}
		return fallbackArcsec / 3600, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 || v > 3600 {
		return 0, false
	}
	return v / 3600, true
}
