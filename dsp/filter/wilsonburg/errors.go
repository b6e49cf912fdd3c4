package wilsonburg

import (
	"errors"

	"github.com/cwbudde/algo-helix/dsp/filter/causal"
)

// Errors returned by the factorizer.
var (
	// ErrDidNotConverge is returned together with the last Result when the
	// iteration limit is reached first. Its Residual tells whether the
	// coefficients are usable.
	ErrDidNotConverge = errors.New("wilsonburg: did not converge")
	// ErrDiverged is returned when an iterate stops being finite or loses
	// its zero-lag coefficient.
	ErrDiverged = errors.New("wilsonburg: iterations diverged")

	ErrInvalidArgument   = causal.ErrInvalidArgument
	ErrDimensionMismatch = causal.ErrDimensionMismatch
)
