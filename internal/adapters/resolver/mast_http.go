package resolver

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"ps1-lightcurve-service/internal/domain"
	"strings"
	"time"
)

// maxResponseBytes bounds how much of a lookup response is read.
const maxResponseBytes = 4 << 20

func (m *MastResolver) newRequest(ctx context.Context, body string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", m.cfg.UserAgent)

	return req, nil
}

// do issues one request and returns the full body. The response body is
// closed before returning on every path.
func (m *MastResolver) do(req *http.Request) ([]byte, error) {
	resp, err := m.session.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Op: "mast lookup", Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &domain.TransportError{Op: "mast lookup: read body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.TransportError{
			Op:         "mast lookup",
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	return b, nil
}

// post sends body, retrying transient failures (network errors, 429, 5xx)
// with exponential backoff when MaxAttempts > 1.
func (m *MastResolver) post(ctx context.Context, body string) ([]byte, error) {
	backoff := m.cfg.Backoff

	var lastErr error
	for attempt := 1; attempt <= m.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, &domain.TransportError{Op: "mast lookup", Err: err}
		}

		req, err := m.newRequest(ctx, body)
		if err != nil {
			return nil, &domain.TransportError{Op: "mast lookup: create request", Err: err}
		}

		raw, err := m.do(req)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		if !retryable(err) || attempt == m.cfg.MaxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, &domain.TransportError{Op: "mast lookup", Err: ctx.Err()}
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var te *domain.TransportError
	if !errors.As(err, &te) {
		return false
	}

	switch te.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	if errors.Is(te.Err, context.Canceled) || errors.Is(te.Err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	return errors.As(te.Err, &netErr)
}
