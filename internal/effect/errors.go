package effect

import "errors"

// Configuration errors. Ticking an effect never fails; these are reported
// once, when an Effect is built.
var (
	// ErrInvalidConfig indicates a non-positive period or an out-of-domain constant.
	ErrInvalidConfig = errors.New("effect: invalid configuration")

	// ErrInvalidRange indicates a sampling range with Min > Max or below its floor.
	ErrInvalidRange = errors.New("effect: invalid range")

	// ErrInvalidColor indicates a colour that is not a #rrggbb hex string.
	ErrInvalidColor = errors.New("effect: invalid colour")
)
