// Package fallback implements the primary-with-static-fallback strategy used
// for every external data source: run the remote operation once under a
// per-provider timeout, and on any failure return the fallback producer's
// value instead. There are no retries and no circuit breaking; a failing
// provider is tried fresh on the next independent request.
package fallback

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Source tags a result with the path that produced it.
type Source string

const (
	// SourcePrimary marks a result obtained from the remote provider.
	SourcePrimary Source = "primary"
	// SourceFallback marks a result produced by the local fallback.
	SourceFallback Source = "fallback"
)

// DefaultTimeout bounds a single remote call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Config identifies the provider behind a resolve and carries the ambient
// pieces every resolve shares.
type Config struct {
	// Provider names the remote source for logging and health tracking.
	Provider string

	// Timeout bounds the primary call (default 10s).
	Timeout time.Duration

	// Logger for degraded-path warnings.
	Logger zerolog.Logger

	// Registry tracks per-provider health (optional).
	Registry *Registry

	// Metrics records call durations and fallback counts (optional).
	Metrics *Metrics
}

// Resolve runs primary under the configured timeout and converts any failure
// into the fallback producer's value. It never fails; the returned Source
// records which path produced the value and is the only signal a caller has
// about result fidelity.
func Resolve[T any](ctx context.Context, cfg Config, primary func(context.Context) (T, error), fallbackFn func() T) (T, Source) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	v, err := primary(ctx)
	elapsed := time.Since(start)

	if cfg.Metrics != nil {
		cfg.Metrics.RecordCall(cfg.Provider, elapsed, err)
	}

	if err != nil {
		cfg.Logger.Warn().
			Err(err).
			Str("provider", cfg.Provider).
			Dur("elapsed", elapsed).
			Msg("primary source failed, using fallback")

		if cfg.Registry != nil {
			cfg.Registry.RecordFailure(cfg.Provider, err)
		}
		return fallbackFn(), SourceFallback
	}

	if cfg.Registry != nil {
		cfg.Registry.RecordSuccess(cfg.Provider)
	}
	return v, SourcePrimary
}

// Combine merges provenance tags: a result assembled from several
// sub-results is primary only when every part is.
func Combine(sources ...Source) Source {
	for _, s := range sources {
		if s == SourceFallback {
			return SourceFallback
		}
	}
	return SourcePrimary
}
