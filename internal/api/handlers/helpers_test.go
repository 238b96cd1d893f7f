package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSONUnencodableValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/lightcurve", nil)
	rec := httptest.NewRecorder()

	writeJSON(rec, req, http.StatusOK, map[string]float64{"mag_err": math.NaN()})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("body = %v", body)
	}
}

func TestParseRadius(t *testing.T) {
	for target, want := range map[string]float64{
		"/objects":              2.0 / 3600,
		"/objects?radius=36":    0.01,
		"/objects?radius=%2018": 0.005,
	} {
		got, ok := parseRadius(httptest.NewRequest(http.MethodGet, target, nil), 0)
		if !ok || math.Abs(got-want) > 1e-12 {
			t.Errorf("%s: got %v, %v; want %v", target, got, ok, want)
		}
	}

	for _, target := range []string{"/objects?radius=0", "/objects?radius=-1", "/objects?radius=3601", "/objects?radius=abc"} {
		if _, ok := parseRadius(httptest.NewRequest(http.MethodGet, target, nil), 0); ok {
			t.Errorf("%s: accepted", target)
		}
	}
}
