// Package consensus implements the proof-of-work arithmetic shared by the
// chain: compact target encoding, per-block work and hash verification.
package consensus

import (
	"math/big"

	"github.com/hnslite/hnslite/core/types"
)

// oneLsh256 is 1 shifted left 256 bits, the numerator of the work estimate.
var oneLsh256 = new(big.Int).Lsh(big.NewInt(1), 256)

// CompactToTarget converts the compact bits representation (one exponent
// byte, three mantissa bytes) to the 256-bit proof-of-work target it encodes.
// The sign bit is ignored. Encodings with a zero mantissa, or whose value
// does not fit in 256 bits, are rejected.
func CompactToTarget(bits uint32) (*big.Int, error) {
	mantissa := bits & 0x007fffff
	exponent := uint(bits >> 24)
	if mantissa == 0 {
		return nil, ErrBadBits
	}

	// When the exponent is three or less the mantissa carries the entire
	// value; otherwise it is shifted up by the remaining byte count.
	var target *big.Int
	if exponent <= 3 {
		target = big.NewInt(int64(mantissa >> (8 * (3 - exponent))))
	} else {
		target = big.NewInt(int64(mantissa))
		target.Lsh(target, 8*(exponent-3))
	}
	if target.Sign() == 0 || target.BitLen() > 256 {
		return nil, ErrBadBits
	}
	return target, nil
}

// TargetToCompact converts a 256-bit target to its canonical compact
// representation, normalizing leading zero bytes and keeping the three most
// significant mantissa bytes.
func TargetToCompact(target *big.Int) uint32 {
	if target.Sign() == 0 {
		return 0
	}

	exponent := uint(len(target.Bytes()))
	var mantissa uint32
	if exponent <= 3 {
		mantissa = uint32(target.Uint64()) << (8 * (3 - exponent))
	} else {
		tn := new(big.Int).Rsh(target, 8*(exponent-3))
		mantissa = uint32(tn.Uint64())
	}
	// The mantissa sign bit must stay clear; shift down a byte and bump the
	// exponent to keep the encoding unsigned.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}
	return uint32(exponent<<24) | mantissa
}

// WorkFromTarget returns the expected number of hashes needed to find a block
// below the given target, defined as 2^256 / (target + 1). Targets outside
// the representable range yield zero work.
func WorkFromTarget(target *big.Int) *big.Int {
	if target.Sign() <= 0 || target.BitLen() > 256 {
		return new(big.Int)
	}
	denom := new(big.Int).Add(target, big.NewInt(1))
	return denom.Div(oneLsh256, denom)
}

// CumulativeWork returns the chainwork of a header mining at the given bits
// on top of prevWork. Genesis passes a nil predecessor.
func CumulativeWork(prevWork *big.Int, bits uint32) (*big.Int, error) {
	target, err := CompactToTarget(bits)
	if err != nil {
		return nil, err
	}
	work := WorkFromTarget(target)
	if prevWork != nil {
		work.Add(work, prevWork)
	}
	return work, nil
}

// VerifyPOW checks a header's proof of work: its hash, interpreted as a
// 256-bit big-endian integer, must not exceed the target encoded in its bits.
func VerifyPOW(h *types.Header) error {
	target, err := CompactToTarget(h.Bits)
	if err != nil {
		return err
	}
	hash := h.Hash()
	if new(big.Int).SetBytes(hash[:]).Cmp(target) > 0 {
		return ErrHighHash
	}
	return nil
}
