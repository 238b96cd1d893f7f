package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"ps1-lightcurve-service/internal/domain"
	"strings"
	"unicode/utf8"
)

type resolutionParams struct {
	Input  string `json:"input"`
	Format string `json:"format"`
}

type resolutionRequest struct {
	Service string           `json:"service"`
	Params  resolutionParams `json:"params"`
}

type resolvedCoordinate struct {
	CanonicalName string   `json:"canonicalName"`
	RA            *float64 `json:"ra"`
	Decl          *float64 `json:"decl"`
}

// A nil ResolvedCoordinate means the field was absent, which is a malformed
// response rather than an unresolved name.
type resolutionResponse struct {
	ResolvedCoordinate *[]resolvedCoordinate `json:"resolvedCoordinate"`
}

// buildRequest returns the JSON document MAST expects for a name lookup.
func (m *MastResolver) buildRequest(name string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	req := resolutionRequest{
		Service: m.cfg.Service,
		Params: resolutionParams{
			Input:  name,
			Format: m.cfg.Format,
		},
	}
	if err := enc.Encode(req); err != nil {
		return nil, fmt.Errorf("marshal resolution request: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeRequest returns the form-encoded POST body: request=<escaped json>.
func (m *MastResolver) encodeRequest(name string) (string, error) {
	payload, err := m.buildRequest(name)
	if err != nil {
		return "", err
	}
	return "request=" + url.QueryEscape(string(payload)), nil
}

func decodeResponse(name string, raw []byte) (domain.Coordinate, string, error) {
	if !utf8.Valid(raw) {
		return domain.Coordinate{}, "", &domain.DecodeError{Name: name, Err: errors.New("response is not valid UTF-8")}
	}

	var decoded resolutionResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.Coordinate{}, "", &domain.DecodeError{Name: name, Err: err}
	}

	if decoded.ResolvedCoordinate == nil {
		return domain.Coordinate{}, "", &domain.DecodeError{Name: name, Err: errors.New("response has no resolvedCoordinate field")}
	}

	entries := *decoded.ResolvedCoordinate
	if len(entries) == 0 {
		return domain.Coordinate{}, "", &domain.UnknownObjectError{Name: name}
	}

	first := entries[0]
	if first.RA == nil || first.Decl == nil {
		return domain.Coordinate{}, "", &domain.DecodeError{Name: name, Err: errors.New("resolved coordinate is missing ra or decl")}
	}

	coord := domain.Coordinate{RA: *first.RA, Dec: *first.Decl}
	if err := coord.Validate(); err != nil {
		return domain.Coordinate{}, "", &domain.DecodeError{Name: name, Err: err}
	}

	return coord, strings.TrimSpace(first.CanonicalName), nil
}
