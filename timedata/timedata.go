// Package timedata tracks a network-adjusted clock. Peers report their wall
// time during the handshake; the median of the observed offsets, bounded to a
// sane window, corrects the local clock for consensus checks.
package timedata

import (
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
)

const (
	// maxSamples bounds the number of peer offsets retained.
	maxSamples = 200

	// maxOffset is the largest clock correction ever applied, in seconds.
	maxOffset = 70 * 60
)

// Source supplies the adjusted wall clock consumed by the chain. Now must not
// block.
type Source interface {
	// Now returns adjusted unix seconds.
	Now() int64
}

// MedianTime implements Source over a rolling set of peer clock offsets.
// The zero correction applies until enough peers have reported.
type MedianTime struct {
	mu      sync.Mutex
	known   map[string]struct{}
	offsets []int64
	offset  int64
	warned  bool
}

// NewMedianTime creates an adjusted time source with no peer samples.
func NewMedianTime() *MedianTime {
	return &MedianTime{known: make(map[string]struct{})}
}

// Now returns the local clock corrected by the median peer offset.
func (mt *MedianTime) Now() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return time.Now().Unix() + mt.offset
}

// Offset returns the applied correction in seconds.
func (mt *MedianTime) Offset() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return mt.offset
}

// AddSample records a peer's reported wall time. Each source is counted once;
// the correction is recomputed on odd sample counts so the median stays well
// defined.
func (mt *MedianTime) AddSample(source string, wall int64) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if _, ok := mt.known[source]; ok {
		return
	}
	if len(mt.offsets) >= maxSamples {
		return
	}
	mt.known[source] = struct{}{}

	offset := wall - time.Now().Unix()
	i := sort.Search(len(mt.offsets), func(i int) bool { return mt.offsets[i] >= offset })
	mt.offsets = append(mt.offsets, 0)
	copy(mt.offsets[i+1:], mt.offsets[i:])
	mt.offsets[i] = offset

	if size := len(mt.offsets); size >= 5 && size&1 == 1 {
		median := mt.offsets[size/2]
		if median < maxOffset && median > -maxOffset {
			mt.offset = median
		} else {
			mt.offset = 0
			if !mt.warned {
				mt.warned = true
				log.Warn("Local clock diverges from the network", "median", median)
			}
		}
		log.Debug("Adjusted network time", "samples", size, "offset", mt.offset)
	}
}
