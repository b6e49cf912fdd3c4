package wilsonburg

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-helix/dsp/conv"
)

const defaultPadFactor = 10

// ProgressFunc is called after every iteration with the iteration number
// (starting at 1), the largest coefficient change and the relative residual
// max|R - AA'| / R(0) over the window of R.
type ProgressFunc func(iteration int, maxChange, residual float64)

// Option configures a Factorizer.
type Option func(*config) error

type config struct {
	padFactor  int
	onProgress ProgressFunc
	logger     *slog.Logger
	pool       *conv.PlanPool
}

// WithPadFactor sets how many filter lengths of zeros pad the correlation in
// each dimension (default 10). Larger values reduce truncation of 1/A' at the
// cost of larger work arrays.
func WithPadFactor(p int) Option {
	return func(cfg *config) error {
		if p < 1 {
			return fmt.Errorf("%w: pad factor must be >= 1: %d", ErrInvalidArgument, p)
		}
		cfg.padFactor = p
		return nil
	}
}

// WithOnProgress sets a callback invoked after every iteration.
func WithOnProgress(fn ProgressFunc) Option {
	return func(cfg *config) error {
		cfg.onProgress = fn
		return nil
	}
}

// WithLogger enables debug logging of every iteration.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = logger
		return nil
	}
}

// WithPlanPool sets the FFT plan pool used to compute implied
// auto-correlations. Without it plans are created per call.
func WithPlanPool(pool *conv.PlanPool) Option {
	return func(cfg *config) error {
		cfg.pool = pool
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := config{padFactor: defaultPadFactor}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}
