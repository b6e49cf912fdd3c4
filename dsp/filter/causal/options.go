package causal

import (
	"fmt"
	"runtime"
)

// Option configures a Filter or LocalFilter.
type Option func(*config) error

type config struct {
	workers int
}

func defaultConfig() config {
	return config{workers: 1}
}

// WithWorkers sets how many goroutines non-recursive gather sweeps may use.
// Zero selects runtime.GOMAXPROCS(0). The default is 1.
func WithWorkers(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidArgument, n)
		}
		if n == 0 {
			n = runtime.GOMAXPROCS(0)
		}
		c.workers = n
		return nil
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
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
