package tap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"ps1-lightcurve-service/internal/platform/metrics"
	"ps1-lightcurve-service/internal/platform/obs"
	"ps1-lightcurve-service/internal/ports"
	"strings"
	"time"
)

const DefaultBaseURL = "https://mast.stsci.edu/vo-tap/api/v0.1/ps1dr2"

// Client submits synchronous ADQL queries to a TAP service and reads the
// result as CSV. Asynchronous (UWS) jobs are not supported.
type Client struct {
	session *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Query runs adql through the /sync endpoint.
func (c *Client) Query(ctx context.Context, adql string) (_ ports.Table, err error) {
	defer obs.Time(ctx, "tap.Query")(&err)

	if strings.TrimSpace(adql) == "" {
		return nil, fmt.Errorf("tap query: empty ADQL")
	}

	form := url.Values{}
	form.Set("REQUEST", "doQuery")
	form.Set("LANG", "ADQL")
	form.Set("FORMAT", "csv")
	form.Set("QUERY", adql)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sync", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("tap query: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/csv")

	start := time.Now()
	slog.DebugContext(ctx, "tap_query", "adql", adql)

	resp, err := c.session.Do(req)
	metrics.TAPDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.TAPQueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tap query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.TAPQueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tap query: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	// Services report query errors as a VOTable document even on 200.
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "xml") {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		metrics.TAPQueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tap query: service error: %s", strings.TrimSpace(string(b)))
	}

	t, err := ReadCSV(resp.Body)
	if err != nil {
		metrics.TAPQueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("tap query: %w", err)
	}

	metrics.TAPQueriesTotal.WithLabelValues("ok").Inc()
	return t, nil
}
