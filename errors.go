package ecfft

import (
	"errors"
)

// Domain construction errors. They are fatal to the construction attempt:
// the caller must supply corrected parameters.
var (
	// ErrOrderNotDivisible is returned by the classic-mode constructor
	// when 2^k does not divide p-1, or when a supplied generator does not
	// generate the order-2^k subgroup.
	ErrOrderNotDivisible = errors.New("2^k does not divide p-1")

	// ErrInvalidIsogenyChain is returned by the elliptic-curve-mode
	// constructor when the supplied chain does not have length k, or when
	// one of its maps fails the 2-to-1 check on its input domain.
	ErrInvalidIsogenyChain = errors.New("invalid isogeny chain")
)

// Transform errors.
var (
	// ErrInsufficientDomainSize is returned when the input degrees exceed
	// the capacity of the tree. The caller must rebuild with a larger k.
	ErrInsufficientDomainSize = errors.New("insufficient domain size")

	// ErrUnsupportedMode is returned by Multiply on an elliptic-curve
	// tree: the weighted transform is a bijective change of basis, not
	// point evaluation, so pointwise products do not realize convolution.
	ErrUnsupportedMode = errors.New("operation requires a classic-mode tree")

	// ErrSingularSystem indicates an internally inconsistent tree in which
	// the two points of a preimage pair coincide. It cannot occur on a
	// tree produced by one of the package constructors.
	ErrSingularSystem = errors.New("singular interpolation system")
)
