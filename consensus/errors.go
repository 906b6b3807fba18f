package consensus

import "errors"

var (
	// ErrBadBits is returned when a compact difficulty encoding has a zero
	// mantissa or decodes to a value wider than 256 bits.
	ErrBadBits = errors.New("invalid compact bits")

	// ErrHighHash is returned when a header's proof-of-work hash exceeds the
	// target encoded in its bits field.
	ErrHighHash = errors.New("block hash above target")
)
