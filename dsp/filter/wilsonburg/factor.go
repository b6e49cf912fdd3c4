package wilsonburg

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-helix/dsp/core"
	"github.com/cwbudde/algo-helix/dsp/filter/causal"
)

// Result describes a factorization.
type Result struct {
	// Coefficients are the factor's coefficients, co-indexed with the lag set.
	Coefficients []float64
	// Converged reports whether the last iteration changed no coefficient by
	// more than epsilon*sqrt(R(0)).
	Converged bool
	// Iterations is the number of iterations run.
	Iterations int
	// MaxChange is the largest coefficient change of the last iteration.
	MaxChange float64
	// Residual is max|R - AA'| / R(0) over the window of R. A residual far
	// above 1 after ErrDidNotConverge means R is not positive definite and
	// the coefficients are not a factor of it.
	Residual float64
}

// Factorizer runs Wilson-Burg iterations for a fixed lag table.
// A Factorizer is safe for concurrent use.
type Factorizer struct {
	lags *causal.LagSet
	cfg  config
}

// NewFactorizer returns a factorizer for filters on lags.
func NewFactorizer(lags *causal.LagSet, opts ...Option) (*Factorizer, error) {
	if lags == nil {
		return nil, fmt.Errorf("%w: nil lag set", causal.ErrInvalidLagSet)
	}
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Factorizer{lags: lags, cfg: cfg}, nil
}

// Factor1 factors the 1-D auto-correlation r. See Factorizer.Factor1.
func Factor1(lags *causal.LagSet, r []float64, maxIter int, epsilon float64, opts ...Option) (*Result, error) {
	f, err := NewFactorizer(lags, opts...)
	if err != nil {
		return nil, err
	}
	return f.Factor1(context.Background(), r, maxIter, epsilon)
}

// Factor2 factors the 2-D auto-correlation r. See Factorizer.Factor1.
func Factor2(lags *causal.LagSet, r [][]float64, maxIter int, epsilon float64, opts ...Option) (*Result, error) {
	f, err := NewFactorizer(lags, opts...)
	if err != nil {
		return nil, err
	}
	return f.Factor2(context.Background(), r, maxIter, epsilon)
}

// Factor3 factors the 3-D auto-correlation r. See Factorizer.Factor1.
func Factor3(lags *causal.LagSet, r [][][]float64, maxIter int, epsilon float64, opts ...Option) (*Result, error) {
	f, err := NewFactorizer(lags, opts...)
	if err != nil {
		return nil, err
	}
	return f.Factor3(context.Background(), r, maxIter, epsilon)
}

// Factor1 factors the auto-correlation r, which must have odd length with
// its zero lag in the middle. r is not modified.
//
// It returns ErrInvalidArgument for maxIter < 1, a non-positive or NaN
// epsilon, a non-finite r or a zero lag r0 <= 0, and ErrDimensionMismatch for
// even extents or a lag set of higher rank than r. If the iterates stop being
// finite it returns ErrDiverged and no result. If maxIter iterations do not
// converge it returns the last iterate together with ErrDidNotConverge.
func (f *Factorizer) Factor1(ctx context.Context, r []float64, maxIter int, epsilon float64) (*Result, error) {
	return f.factor(ctx, [][][]float64{{r}}, 1, maxIter, epsilon)
}

// Factor2 is Factor1 for a 2-D auto-correlation r[i2][i1].
func (f *Factorizer) Factor2(ctx context.Context, r [][]float64, maxIter int, epsilon float64) (*Result, error) {
	return f.factor(ctx, [][][]float64{r}, 2, maxIter, epsilon)
}

// Factor3 is Factor1 for a 3-D auto-correlation r[i3][i2][i1].
func (f *Factorizer) Factor3(ctx context.Context, r [][][]float64, maxIter int, epsilon float64) (*Result, error) {
	return f.factor(ctx, r, 3, maxIter, epsilon)
}

// grid places the zero lag of a padded auto-correlation.
type grid struct {
	n [3]int // padded extents
	k [3]int // zero lag in the padded array
	l [3]int // zero lag in r
}

func (f *Factorizer) newGrid(ext [3]int) grid {
	var g grid
	for d := range 3 {
		lo, hi := f.lags.Min(d+1), f.lags.Max(d+1)
		g.l[d] = (ext[d] - 1) / 2
		top := max(hi, g.l[d])
		g.n[d] = ext[d] + f.cfg.padFactor*(hi-lo) + (top - hi)
		g.k[d] = g.n[d] - 1 - top
	}
	return g
}

func (f *Factorizer) validate(r [][][]float64, rank, maxIter int, epsilon float64) ([3]int, error) {
	if maxIter < 1 {
		return [3]int{}, fmt.Errorf("%w: maxIter must be >= 1: %d", ErrInvalidArgument, maxIter)
	}
	if !(epsilon > 0) || math.IsInf(epsilon, 0) {
		return [3]int{}, fmt.Errorf("%w: epsilon must be > 0 and finite: %v", ErrInvalidArgument, epsilon)
	}
	if f.lags.Rank() > rank {
		return [3]int{}, fmt.Errorf("%w: lag set of rank %d for a %d-D auto-correlation",
			ErrDimensionMismatch, f.lags.Rank(), rank)
	}

	n1, n2, n3, ok := core.Shape3(r)
	if !ok {
		return [3]int{}, fmt.Errorf("%w: auto-correlation is not rectangular", ErrDimensionMismatch)
	}
	ext := [3]int{n1, n2, n3}
	for d, n := range ext {
		if n%2 == 0 {
			return [3]int{}, fmt.Errorf("%w: auto-correlation extent %d in dimension %d must be odd",
				ErrDimensionMismatch, n, d+1)
		}
	}

	for _, plane := range r {
		for _, row := range plane {
			if !core.AllFinite(row) {
				return [3]int{}, fmt.Errorf("%w: auto-correlation is not finite", ErrInvalidArgument)
			}
		}
	}
	if r0 := r[n3/2][n2/2][n1/2]; r0 <= 0 {
		return [3]int{}, fmt.Errorf("%w: zero lag of auto-correlation must be > 0: %v", ErrInvalidArgument, r0)
	}

	return ext, nil
}

func (f *Factorizer) factor(ctx context.Context, r [][][]float64, rank, maxIter int, epsilon float64) (*Result, error) {
	ext, err := f.validate(r, rank, maxIter, epsilon)
	if err != nil {
		return nil, err
	}

	g := f.newGrid(ext)
	k1, k2, k3 := g.k[0], g.k[1], g.k[2]

	s := core.Zeros3(g.n[0], g.n[1], g.n[2])
	for i3, plane := range r {
		for i2, row := range plane {
			copy(s[k3-g.l[2]+i3][k2-g.l[1]+i2][k1-g.l[0]:], row)
		}
	}
	t := core.Zeros3(g.n[0], g.n[1], g.n[2])
	u := core.Zeros3(g.n[0], g.n[1], g.n[2])

	r0 := s[k3][k2][k1]
	tol := epsilon * math.Sqrt(r0)

	m := f.lags.Len()
	a := make([]float64, m)
	a[0] = math.Sqrt(r0)
	next := make([]float64, m)
	change := make([]float64, m)

	res := &Result{}
	track := f.cfg.onProgress != nil || f.cfg.logger != nil

	for iter := 1; iter <= maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("wilsonburg: %w", err)
		}

		filter, err := causal.New(f.lags, a)
		if err != nil {
			return nil, fmt.Errorf("%w: iteration %d: %w", ErrDiverged, iter, err)
		}

		if err := g.step(iter, filter, s, t, u); err != nil {
			return nil, err
		}
		for j := range m {
			l1, l2, l3 := f.lags.Lag(j)
			next[j] = t[k3+l3][k2+l2][k1+l1]
			change[j] = next[j] - a[j]
		}
		if !core.AllFinite(next) || next[0] == 0 {
			return nil, fmt.Errorf("%w: iteration %d produced a[0]=%v", ErrDiverged, iter, next[0])
		}
		copy(a, next)

		res.Iterations = iter
		res.MaxChange = vecmath.MaxAbs(change)
		res.Converged = res.MaxChange <= tol

		if track || res.Converged || iter == maxIter {
			res.Residual, err = f.residual(r, ext, a)
			if err != nil {
				return nil, err
			}
		}
		f.report(iter, res)

		if res.Converged {
			break
		}
	}

	res.Coefficients = append([]float64(nil), a...)
	if !res.Converged {
		return res, fmt.Errorf("%w: max change %g after %d iterations, tolerance %g",
			ErrDidNotConverge, res.MaxChange, res.Iterations, tol)
	}
	return res, nil
}

// step runs one Newton update of the grid: on return t holds U(z) A(z),
// whose samples at k+L are the new coefficients.
func (g grid) step(iter int, filter *causal.Filter, s, t, u [][][]float64) error {
	k1, k2, k3 := g.k[0], g.k[1], g.k[2]

	// U(z) + U(1/z) = 1 + S(z) / (A(z) A(1/z))
	if err := filter.ApplyInverseTranspose3(s, t); err != nil {
		return fmt.Errorf("%w: iteration %d: %w", ErrDiverged, iter, err)
	}
	if err := filter.ApplyInverse3(t, u); err != nil {
		return fmt.Errorf("%w: iteration %d: %w", ErrDiverged, iter, err)
	}
	u[k3][k2][k1] = 0.5 * (u[k3][k2][k1] + 1)
	zeroBefore(u, k1, k2, k3)

	// The new A(z) is U(z) A(z).
	if err := filter.Apply3(u, t); err != nil {
		return fmt.Errorf("%w: iteration %d: %w", ErrDiverged, iter, err)
	}
	return nil
}

// zeroBefore clears every sample lexicographically before (k1, k2, k3).
func zeroBefore(u [][][]float64, k1, k2, k3 int) {
	for i3 := range k3 {
		core.Zero2(u[i3])
	}
	for i2 := range k2 {
		core.Zero(u[k3][i2])
	}
	core.Zero(u[k3][k2][:k1])
}

func (f *Factorizer) residual(r [][][]float64, ext [3]int, a []float64) (float64, error) {
	c, err := helixCorrelation(f.cfg.pool, f.lags, a, ext)
	if err != nil {
		return 0, err
	}

	r0 := r[ext[2]/2][ext[1]/2][ext[0]/2]
	var worst float64
	for i3 := range r {
		for i2 := range r[i3] {
			worst = max(worst, core.MaxAbsDiff(r[i3][i2], c[i3][i2]))
		}
	}
	return worst / r0, nil
}

func (f *Factorizer) report(iter int, res *Result) {
	if f.cfg.logger != nil {
		f.cfg.logger.Debug("wilson-burg iteration",
			slog.Int("iteration", iter),
			slog.Float64("max_change", res.MaxChange),
			slog.Float64("residual", res.Residual),
			slog.Bool("converged", res.Converged),
		)
	}
	if f.cfg.onProgress != nil {
		f.cfg.onProgress(iter, res.MaxChange, res.Residual)
	}
}
