package ecfft

import (
	"runtime"
)

// DefaultForkThreshold is the sub-problem size below which the recursive
// transforms stop forking and run inline. It is a performance knob only:
// any threshold produces identical results.
const DefaultForkThreshold = 256

// Evaluator runs the recursive transforms of a Tree with a bounded
// fork-join worker pool. The two halves of a recursion are independent;
// above the fork threshold one of them is dispatched to its own goroutine
// when a worker token is available, and the merge step waits for both.
//
// An Evaluator is safe for concurrent use: the tree is read-only and every
// call allocates its own intermediate state.
type Evaluator struct {
	t         *Tree
	threshold int
	tokens    chan struct{}
}

// NewEvaluator creates an Evaluator for t. workers bounds the number of
// additional goroutines a call may fan out to: 0 means run everything
// inline, a negative value means runtime.GOMAXPROCS(0). threshold is the
// minimum sub-problem size to fork; non-positive selects
// DefaultForkThreshold.
func NewEvaluator(t *Tree, workers, threshold int) *Evaluator {

	if workers < 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if threshold <= 0 {
		threshold = DefaultForkThreshold
	}

	e := &Evaluator{t: t, threshold: threshold}

	if workers > 0 {
		e.tokens = make(chan struct{}, workers)
	}

	return e
}

// acquire attempts to reserve a worker token without blocking.
func (e *Evaluator) acquire() bool {
	select {
	case e.tokens <- struct{}{}:
		return true
	default:
		return false
	}
}

func (e *Evaluator) release() {
	<-e.tokens
}

// Evaluate evaluates p over the layer-0 domain of t.
func Evaluate(p Polynomial, t *Tree) ([]uint64, error) {
	return NewEvaluator(t, -1, 0).Evaluate(p)
}

// Interpolate returns the polynomial whose evaluation over the layer-0
// domain of t is values.
func Interpolate(values []uint64, t *Tree) (Polynomial, error) {
	return NewEvaluator(t, -1, 0).Interpolate(values)
}

// Multiply returns the product of p and q computed by evaluation, pointwise
// multiplication and interpolation over t, which must be a classic-mode tree.
func Multiply(p, q Polynomial, t *Tree) (Polynomial, error) {
	return NewEvaluator(t, -1, 0).Multiply(p, q)
}
