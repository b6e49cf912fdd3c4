package conv

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Plan is a complex FFT plan of fixed length. A Plan is not safe for
// concurrent use; obtain one per goroutine from a PlanPool.
type Plan struct {
	fft *algofft.Plan[complex128]
	n   int
}

// NewPlan creates a plan for transforms of length n. n must be a power of 2.
func NewPlan(n int) (*Plan, error) {
	if !isPowerOf2(n) {
		return nil, fmt.Errorf("%w: %d is not a power of 2", ErrInvalidSize, n)
	}

	p, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	return &Plan{fft: p, n: n}, nil
}

// Len returns the transform length.
func (p *Plan) Len() int { return p.n }

// Forward computes the unnormalized forward transform of src into dst.
func (p *Plan) Forward(dst, src []complex128) error {
	if err := p.fft.Forward(dst, src); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}
	return nil
}

// Inverse computes the inverse transform of src into dst, normalized by 1/n.
func (p *Plan) Inverse(dst, src []complex128) error {
	if err := p.fft.Inverse(dst, src); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}
	return nil
}

// PlanPool caches FFT plans by length for reuse across calls.
//
// A PlanPool is safe for concurrent use. Plans are checked out with Get and
// returned with Put; a checked-out plan belongs to the caller until returned.
// A nil *PlanPool is valid and creates a fresh plan on every Get.
type PlanPool struct {
	mu     sync.Mutex
	plans  map[int][]*Plan
	closed bool
}

// NewPlanPool returns an empty PlanPool ready for use.
func NewPlanPool() *PlanPool {
	return &PlanPool{plans: make(map[int][]*Plan)}
}

// Get returns a plan of length n, reusing a cached one when available.
func (p *PlanPool) Get(n int) (*Plan, error) {
	if p == nil {
		return NewPlan(n)
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if free := p.plans[n]; len(free) > 0 {
		plan := free[len(free)-1]
		p.plans[n] = free[:len(free)-1]
		p.mu.Unlock()
		return plan, nil
	}
	p.mu.Unlock()

	return NewPlan(n)
}

// Put returns a plan to the pool. The caller must not use the plan after
// calling Put. Plans returned to a closed or nil pool are dropped.
func (p *PlanPool) Put(plan *Plan) {
	if p == nil || plan == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.plans[plan.n] = append(p.plans[plan.n], plan)
}

// Cached returns the number of idle plans held by the pool.
func (p *PlanPool) Cached() int {
	if p == nil {
		return 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for _, free := range p.plans {
		total += len(free)
	}
	return total
}

// Close releases all cached plans. Subsequent calls to Get fail with
// ErrPoolClosed. Close is idempotent.
func (p *PlanPool) Close() {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	p.plans = nil
}
