package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"ps1-lightcurve-service/internal/domain"
	"ps1-lightcurve-service/internal/platform/metrics"
	"ps1-lightcurve-service/internal/platform/obs"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://mast.stsci.edu"
	DefaultPath      = "/api/v0/invoke"
	DefaultService   = "Mast.Name.Lookup"
	DefaultFormat    = "json"
	DefaultUserAgent = "ps1-lightcurve-service/1.0"
	DefaultTimeout   = 30 * time.Second
)

// Config describes how to reach the MAST name lookup service.
// Zero fields are filled from the Default* constants by NewMastResolver.
type Config struct {
	BaseURL   string
	Path      string
	Service   string
	Format    string
	UserAgent string
	Timeout   time.Duration

	// MaxAttempts > 1 enables retries of transient failures with
	// exponential backoff. The default is a single attempt.
	MaxAttempts int
	Backoff     time.Duration

	// HTTPClient overrides the default client. When nil a client with
	// keep-alives disabled is built so every lookup uses its own connection.
	HTTPClient *http.Client
}

// DefaultConfig returns the production MAST settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:     DefaultBaseURL,
		Path:        DefaultPath,
		Service:     DefaultService,
		Format:      DefaultFormat,
		UserAgent:   DefaultUserAgent,
		Timeout:     DefaultTimeout,
		MaxAttempts: 1,
		Backoff:     200 * time.Millisecond,
	}
}

// MastResolver implements ports.NameResolver against the MAST invoke API.
//
// It holds no per-call state and is safe for concurrent use.
type MastResolver struct {
	session  *http.Client
	endpoint string
	cfg      Config
}

func NewMastResolver(cfg Config) (*MastResolver, error) {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Path == "" {
		cfg.Path = def.Path
	}
	if cfg.Service == "" {
		cfg.Service = def.Service
	}
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = def.Backoff
	}

	if !strings.HasPrefix(cfg.Path, "/") {
		return nil, fmt.Errorf("mast resolver: path %q must start with /", cfg.Path)
	}

	session := cfg.HTTPClient
	if session == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DisableKeepAlives = true
		session = &http.Client{Timeout: cfg.Timeout, Transport: transport}
	}

	return &MastResolver{
		session:  session,
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + cfg.Path,
		cfg:      cfg,
	}, nil
}

// Resolve returns the first coordinate MAST reports for name.
func (m *MastResolver) Resolve(ctx context.Context, name string) (domain.Coordinate, error) {
	c, _, err := m.ResolveCanonical(ctx, name)
	return c, err
}

// ResolveCanonical is Resolve plus MAST's canonical spelling of the name.
func (m *MastResolver) ResolveCanonical(
	ctx context.Context,
	name string,
) (_ domain.Coordinate, _ string, err error) {
	defer obs.Time(ctx, "mast.Resolve")(&err)

	if strings.TrimSpace(name) == "" {
		return domain.Coordinate{}, "", &domain.UnknownObjectError{Name: name}
	}

	body, err := m.encodeRequest(name)
	if err != nil {
		return domain.Coordinate{}, "", &domain.DecodeError{Name: name, Err: err}
	}

	start := time.Now()
	metrics.ResolveRequestsTotal.Inc()

	raw, err := m.post(ctx, body)
	metrics.ResolveDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.ResolveFailTotal.WithLabelValues("transport").Inc()
		return domain.Coordinate{}, "", err
	}

	coord, canonical, err := decodeResponse(name, raw)
	if err != nil {
		var unknown *domain.UnknownObjectError
		if errors.As(err, &unknown) {
			metrics.ResolveFailTotal.WithLabelValues("unknown").Inc()
		} else {
			metrics.ResolveFailTotal.WithLabelValues("decode").Inc()
		}
		return domain.Coordinate{}, "", err
	}

	return coord, canonical, nil
}
