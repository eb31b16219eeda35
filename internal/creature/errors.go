package creature

import "errors"

// Construction and validation errors. Runtime stages never return these;
// malformed setups are rejected before the first tick.
var (
	// ErrNodeIndex indicates a reference outside the node arena.
	ErrNodeIndex = errors.New("creature: node index out of range")

	// ErrSelfLink indicates a constraint joining a node to itself.
	ErrSelfLink = errors.New("creature: constraint joins a node to itself")

	// ErrRestLength indicates a non-positive constraint rest length.
	ErrRestLength = errors.New("creature: rest length must be positive")

	// ErrRadius indicates a non-positive node radius.
	ErrRadius = errors.New("creature: node radius must be positive")

	// ErrAngleRange indicates angle_min above angle_max.
	ErrAngleRange = errors.New("creature: angle limits are inverted")

	// ErrTargetRef indicates a dangling or self-referential target.
	ErrTargetRef = errors.New("creature: invalid target reference")

	// ErrLimbChain indicates a malformed limb joint chain.
	ErrLimbChain = errors.New("creature: malformed limb chain")

	// ErrBounds indicates inverted playground bounds.
	ErrBounds = errors.New("creature: playground bounds are inverted")

	// ErrIterations indicates a non-positive solver iteration count.
	ErrIterations = errors.New("creature: iteration count must be positive")

	// ErrParamRange indicates a tuning value outside its valid range.
	ErrParamRange = errors.New("creature: parameter out of valid range")
)
