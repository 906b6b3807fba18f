package core

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/hnslite/hnslite/core/types"
	"github.com/hnslite/hnslite/params"
)

const (
	diffGenesisTime = uint64(1600000000)
	diffBits        = uint32(0x1f7fffff)
)

type stubClock struct {
	now int64
}

func (c *stubClock) Now() int64 { return c.now }

// diffConfig uses a small window so retarget boundaries are reachable with
// hand-built chains.
func diffConfig() *params.ChainConfig {
	genesis := &types.Header{Time: diffGenesisTime, Bits: diffBits}
	return &params.ChainConfig{
		Name:                  "difftest",
		BitsInitial:           diffBits,
		PowLimit:              params.RegtestChainConfig.PowLimit,
		ChainworkLimit:        new(big.Int).Lsh(big.NewInt(1), 60),
		TargetWindow:          8,
		TargetTimespan:        8 * 600,
		TargetSpacing:         600,
		MinActual:             (8 * 600) / 4,
		MaxActual:             (8 * 600) * 4,
		TreeInterval:          36,
		SafeRootConfirmations: 12,
		MaxTipAge:             12 * 60 * 60,
		GenesisHex:            hex.EncodeToString(genesis.Encode()),
	}
}

func newDiffChain(t *testing.T, cfg *params.ChainConfig) *HeaderChain {
	t.Helper()
	hc, err := NewHeaderChain(cfg, &stubClock{now: int64(diffGenesisTime)})
	if err != nil {
		t.Fatalf("failed to create chain: %v", err)
	}
	return hc
}

// seed links n headers above genesis straight into the hash store, bypassing
// validation, so difficulty inputs can be shaped freely.
func seed(hc *HeaderChain, n int, timeAt func(i int) uint64) []*types.Header {
	prev := hc.genesis
	var out []*types.Header
	for i := 1; i <= n; i++ {
		h := &types.Header{
			PrevBlock: prev.Hash(),
			Time:      timeAt(i),
			Bits:      diffBits,
			Nonce:     uint32(i),
			Height:    prev.Height + 1,
		}
		hc.hashes[h.Hash()] = h
		out = append(out, h)
		prev = h
	}
	return out
}

func TestMedianTimePast(t *testing.T) {
	hc := newDiffChain(t, diffConfig())

	if got := hc.mtp(nil); got != 0 {
		t.Fatalf("mtp(nil) = %d, want 0", got)
	}
	if got := hc.mtp(hc.genesis); got != int64(diffGenesisTime) {
		t.Fatalf("mtp(genesis) = %d, want the genesis time", got)
	}

	headers := seed(hc, 15, func(i int) uint64 { return diffGenesisTime + uint64(i)*600 })

	// Eleven ancestors deep the median sits five spacings behind the tip.
	tip := headers[14]
	if got, want := hc.mtp(tip), int64(tip.Time)-5*600; got != want {
		t.Fatalf("mtp = %d, want %d", got, want)
	}
	// Three headers plus genesis: median of four samples is the upper middle.
	if got, want := hc.mtp(headers[2]), int64(headers[1].Time); got != want {
		t.Fatalf("shallow mtp = %d, want %d", got, want)
	}
}

func TestMedianTimePastUnordered(t *testing.T) {
	hc := newDiffChain(t, diffConfig())

	// An out-of-order timestamp must not skew the median: the samples are
	// sorted before the middle is taken.
	times := []uint64{600, 1200, 300, 1800, 2400, 900, 3000, 3600, 1500, 4200, 4800}
	headers := seed(hc, len(times), func(i int) uint64 { return diffGenesisTime + times[i-1] })

	want := int64(diffGenesisTime + 1800) // median of the eleven offsets above
	if got := hc.mtp(headers[len(headers)-1]); got != want {
		t.Fatalf("mtp = %d, want %d", got, want)
	}
}

func TestRetargetShortWindow(t *testing.T) {
	hc := newDiffChain(t, diffConfig())
	headers := seed(hc, 8, func(i int) uint64 { return diffGenesisTime + uint64(i)*600 })

	// Five headers back from h5 the walk runs off genesis.
	if got := hc.retarget(headers[4]); got != diffBits {
		t.Fatalf("short-window retarget = %#x, want initial bits", got)
	}
	// From h7 the window reaches genesis itself; still the initial bits.
	if got := hc.retarget(headers[6]); got != diffBits {
		t.Fatalf("genesis-window retarget = %#x, want initial bits", got)
	}
	// From h8 the earliest summed header is h1 and retargeting engages.
	if got := hc.retarget(headers[7]); got == diffBits {
		t.Fatalf("full-window retarget did not engage")
	}
}

func TestRetargetDamping(t *testing.T) {
	hc := newDiffChain(t, diffConfig())
	// All timestamps equal: the observed timespan is zero, damped to 3/4 of
	// the ideal, so the new target is 3/4 of the average.
	headers := seed(hc, 8, func(i int) uint64 { return diffGenesisTime })

	if got, want := hc.retarget(headers[7]), uint32(0x1f5fffff); got != want {
		t.Fatalf("retarget = %#x, want %#x", got, want)
	}
}

func TestRetargetClampMax(t *testing.T) {
	hc := newDiffChain(t, diffConfig())
	// Grossly slow blocks: the damped timespan exceeds four times the ideal
	// and is clamped, quadrupling the target.
	headers := seed(hc, 8, func(i int) uint64 { return diffGenesisTime + uint64(i)*100000 })

	if got, want := hc.retarget(headers[7]), uint32(0x2001ffff); got != want {
		t.Fatalf("retarget = %#x, want %#x", got, want)
	}
}

func TestRetargetClampMin(t *testing.T) {
	hc := newDiffChain(t, diffConfig())
	// Timestamps running backwards push the damped timespan below a quarter
	// of the ideal; the clamp quarters the target.
	headers := seed(hc, 8, func(i int) uint64 { return diffGenesisTime + uint64(9-i)*100000 })

	if got, want := hc.retarget(headers[7]), uint32(0x1f1fffff); got != want {
		t.Fatalf("retarget = %#x, want %#x", got, want)
	}
}

func TestRetargetLimit(t *testing.T) {
	cfg := diffConfig()
	// With the limit right at the initial target, a slow window would push
	// past it; the initial bits are required instead.
	cfg.PowLimit = new(big.Int).Lsh(big.NewInt(0x7fffff), 224)
	hc := newDiffChain(t, cfg)
	headers := seed(hc, 8, func(i int) uint64 { return diffGenesisTime + uint64(i)*100000 })

	if got := hc.retarget(headers[7]); got != diffBits {
		t.Fatalf("over-limit retarget = %#x, want initial bits", got)
	}
}

func TestGetTargetShortCircuits(t *testing.T) {
	cfg := diffConfig()
	cfg.NoRetargeting = true
	hc := newDiffChain(t, cfg)
	headers := seed(hc, 8, func(i int) uint64 { return diffGenesisTime })
	if got := hc.getTarget(diffGenesisTime+600, headers[7]); got != diffBits {
		t.Fatalf("no-retargeting bits = %#x, want initial", got)
	}

	cfg = diffConfig()
	cfg.TargetReset = true
	hc = newDiffChain(t, cfg)
	headers = seed(hc, 8, func(i int) uint64 { return diffGenesisTime })
	prev := headers[7]
	// Four spacings without a block resets testnet difficulty.
	if got := hc.getTarget(prev.Time+4*600+1, prev); got != diffBits {
		t.Fatalf("reset bits = %#x, want initial", got)
	}
	// Inside the reset window the regular retarget applies.
	if got := hc.getTarget(prev.Time+600, prev); got != uint32(0x1f5fffff) {
		t.Fatalf("non-reset bits = %#x, want damped retarget", got)
	}
}
