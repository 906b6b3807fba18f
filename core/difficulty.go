package core

import (
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/log"

	"github.com/hnslite/hnslite/consensus"
	"github.com/hnslite/hnslite/core/types"
	"github.com/hnslite/hnslite/params"
)

// mtp returns the median time past of a header: the median of the timestamps
// of its last eleven ancestors, itself included. Near genesis the median is
// taken over however many ancestors exist.
func (hc *HeaderChain) mtp(prev *types.Header) int64 {
	if prev == nil {
		return 0
	}
	times := make([]int64, 0, params.MedianTimeSpan)
	for h := prev; h != nil && len(times) < params.MedianTimeSpan; h = hc.hashes[h.PrevBlock] {
		times = append(times, int64(h.Time))
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return times[len(times)/2]
}

// retarget computes the required bits for the successor of prev from the
// average target and the damped median-time spread of the trailing window.
func (hc *HeaderChain) retarget(prev *types.Header) uint32 {
	var (
		bits     = hc.config.BitsInitial
		window   = hc.config.TargetWindow
		timespan = hc.config.TargetTimespan

		sum   = new(big.Int)
		first *types.Header
		last  = prev
	)

	cursor := prev
	for i := int64(0); i < window; i++ {
		if cursor == nil {
			return bits
		}
		target, err := consensus.CompactToTarget(cursor.Bits)
		if err != nil {
			log.Crit("Stored header carries invalid bits", "hash", cursor.Hash(), "bits", cursor.Bits)
		}
		sum.Add(sum, target)
		first = cursor
		cursor = hc.hashes[cursor.PrevBlock]
	}
	if first.Height < 1 {
		return bits
	}

	avg := sum.Div(sum, big.NewInt(window))

	diff := hc.mtp(last) - hc.mtp(first)
	actual := timespan + ((diff - timespan) >> 2)
	if actual < hc.config.MinActual {
		actual = hc.config.MinActual
	}
	if actual > hc.config.MaxActual {
		actual = hc.config.MaxActual
	}

	next := avg.Div(avg, big.NewInt(timespan))
	next.Mul(next, big.NewInt(actual))

	if next.Cmp(hc.config.PowLimit) > 0 {
		return bits
	}
	return consensus.TargetToCompact(next)
}

// getTarget returns the bits required of a header with the given timestamp
// building on prev.
func (hc *HeaderChain) getTarget(time uint64, prev *types.Header) uint32 {
	// Only genesis validates without a parent.
	if prev == nil {
		if time != hc.genesis.Time {
			log.Crit("Parentless header is not genesis", "time", time)
		}
		return hc.config.BitsInitial
	}
	if hc.config.NoRetargeting {
		return hc.config.BitsInitial
	}
	// Testnet lets difficulty collapse once four spacings go by blockless.
	if hc.config.TargetReset {
		if int64(time) > int64(prev.Time)+hc.config.TargetSpacing*4 {
			return hc.config.BitsInitial
		}
	}
	return hc.retarget(prev)
}
