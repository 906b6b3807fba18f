package core

import (
	"encoding/hex"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"

	"github.com/hnslite/hnslite/consensus"
	"github.com/hnslite/hnslite/core/types"
	"github.com/hnslite/hnslite/params"
	"github.com/hnslite/hnslite/timedata"
)

var (
	headHeaderGauge = metrics.NewRegisteredGauge("chain/head/header", nil)
	orphanPoolGauge = metrics.NewRegisteredGauge("chain/orphans", nil)

	reorgExecMeter = metrics.NewRegisteredMeter("chain/reorg/executes", nil)
	reorgAddMeter  = metrics.NewRegisteredMeter("chain/reorg/add", nil)
	reorgDropMeter = metrics.NewRegisteredMeter("chain/reorg/drop", nil)
)

var errBadInit = errors.New("nil chain config or time source")

// WriteStatus is the outcome of submitting a header to the chain.
type WriteStatus byte

const (
	// NonStatTy means the header was rejected and no index changed.
	NonStatTy WriteStatus = iota
	// CanonStatTy means the header extended or became the canonical chain.
	CanonStatTy
	// SideStatTy means the header was stored on an alternate chain.
	SideStatTy
	// OrphanStatTy means the header is held pending its missing parent.
	OrphanStatTy
)

func (s WriteStatus) String() string {
	switch s {
	case CanonStatTy:
		return "canonical"
	case SideStatTy:
		return "side"
	case OrphanStatTy:
		return "orphan"
	}
	return "none"
}

// HeaderChain maintains the proof-of-work header chain: a hash-keyed store of
// every valid header seen, the canonical height mapping elected by cumulative
// work, and a pool of orphans awaiting their ancestors.
//
// It is not thread safe. The encapsulating layer must serialize writers and
// exclude readers from in-flight Add calls.
type HeaderChain struct {
	config *params.ChainConfig
	td     timedata.Source

	hashes  map[common.Hash]*types.Header // every accepted header, main chain or side
	heights map[uint32]*types.Header      // canonical chain only, genesis through tip
	orphans map[common.Hash]*types.Header // headers whose parent is unknown
	prevs   map[common.Hash]*types.Header // missing parent hash -> waiting orphan

	genesis *types.Header
	tip     *types.Header
	height  uint32
	synced  bool
}

// NewHeaderChain creates a header chain seeded with the network's genesis
// header and begins tracking sync state against the given time source.
func NewHeaderChain(config *params.ChainConfig, td timedata.Source) (*HeaderChain, error) {
	if config == nil || td == nil {
		return nil, errBadInit
	}
	data, err := hex.DecodeString(config.GenesisHex)
	if err != nil {
		return nil, err
	}
	genesis, err := types.DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	genesis.Height = 0
	genesis.Work, err = consensus.CumulativeWork(nil, genesis.Bits)
	if err != nil {
		return nil, err
	}

	hc := &HeaderChain{
		config:  config,
		td:      td,
		hashes:  make(map[common.Hash]*types.Header),
		heights: make(map[uint32]*types.Header),
		orphans: make(map[common.Hash]*types.Header),
		prevs:   make(map[common.Hash]*types.Header),
	}
	hc.hashes[genesis.Hash()] = genesis
	hc.heights[0] = genesis
	hc.genesis = genesis
	hc.tip = genesis

	log.Info("Initialized header chain", "network", config.Name, "genesis", genesis.Hash())
	hc.maybeSync()
	return hc, nil
}

// Add submits a candidate header. The input is cloned; the chain owns the
// stored copy. The returned status reports where the header landed: extending
// the canonical chain, parked on a side chain, or held as an orphan. Reject
// reasons come back as sentinel errors with no index modified.
//
// A successful insert resolves any orphans that were waiting on the new
// header, cascading until no descendant is found. If a cascaded insert fails
// its orphan is dropped and the error reported; headers inserted before the
// failure remain.
func (hc *HeaderChain) Add(h *types.Header) (WriteStatus, error) {
	if h == nil {
		return NonStatTy, ErrNilHeader
	}
	hdr := types.CopyHeader(h)
	hash := hdr.Hash()

	log.Debug("Adding block header", "hash", hash)

	now := hc.td.Now()
	if int64(hdr.Time) > now+params.MaxFutureDrift {
		log.Debug("Rejected header", "hash", hash, "err", ErrTimeTooNew)
		return NonStatTy, ErrTimeTooNew
	}
	if _, ok := hc.hashes[hash]; ok {
		return NonStatTy, ErrDuplicate
	}
	if _, ok := hc.orphans[hash]; ok {
		return NonStatTy, ErrDuplicateOrphan
	}
	if err := consensus.VerifyPOW(hdr); err != nil {
		log.Debug("Rejected header", "hash", hash, "err", err)
		return NonStatTy, err
	}

	prev := hc.hashes[hdr.PrevBlock]
	if prev == nil {
		hc.storeOrphan(hdr)
		return OrphanStatTy, nil
	}

	status, err := hc.insert(hdr, prev)
	if err != nil {
		return NonStatTy, err
	}

	// Connect any orphans that were waiting on this header, walking forward
	// until the chain of descendants runs dry.
	parent := hdr
	for {
		orphan := hc.resolveOrphan(parent.Hash())
		if orphan == nil {
			break
		}
		if status, err = hc.insert(orphan, parent); err != nil {
			log.Debug("Dropped unconnectable orphan", "hash", orphan.Hash(), "err", err)
			return status, err
		}
		log.Debug("Resolved orphan header", "hash", orphan.Hash(), "height", orphan.Height)
		parent = orphan
	}
	return status, nil
}

// storeOrphan parks a header whose parent is unknown, flushing the pool
// outright if it has outgrown its cap.
func (hc *HeaderChain) storeOrphan(hdr *types.Header) {
	if len(hc.orphans) > params.OrphanPoolSize {
		log.Warn("Flushing orphan pool", "orphans", len(hc.orphans))
		hc.orphans = make(map[common.Hash]*types.Header)
		hc.prevs = make(map[common.Hash]*types.Header)
	}
	hc.orphans[hdr.Hash()] = hdr
	hc.prevs[hdr.PrevBlock] = hdr
	orphanPoolGauge.Update(int64(len(hc.orphans)))
	log.Debug("Stored orphan header", "hash", hdr.Hash(), "missing", hdr.PrevBlock)
}

// resolveOrphan detaches and returns the orphan waiting on the given parent
// hash, or nil if none is.
func (hc *HeaderChain) resolveOrphan(hash common.Hash) *types.Header {
	orphan := hc.prevs[hash]
	if orphan == nil {
		return nil
	}
	delete(hc.prevs, orphan.PrevBlock)
	delete(hc.orphans, orphan.Hash())
	orphanPoolGauge.Update(int64(len(hc.orphans)))
	return orphan
}

// insert validates a header against its resolved parent and commits it to the
// indices: the hash store always, the canonical height mapping and tip only
// when its cumulative work beats the current tip.
func (hc *HeaderChain) insert(hdr *types.Header, prev *types.Header) (WriteStatus, error) {
	hash := hdr.Hash()

	if mtp := hc.mtp(prev); int64(hdr.Time) <= mtp {
		log.Debug("Rejected header", "hash", hash, "err", ErrTimeTooOld, "mtp", mtp)
		return NonStatTy, ErrTimeTooOld
	}
	if want := hc.getTarget(hdr.Time, prev); hdr.Bits != want {
		log.Debug("Rejected header", "hash", hash, "err", ErrBadDiffBits, "have", hdr.Bits, "want", want)
		return NonStatTy, ErrBadDiffBits
	}

	hdr.Height = prev.Height + 1

	work, err := consensus.CumulativeWork(prev.Work, hdr.Bits)
	if err != nil {
		return NonStatTy, err
	}
	hdr.Work = work

	if hdr.Work.Cmp(hc.tip.Work) <= 0 {
		hc.hashes[hash] = hdr
		log.Debug("Stored header on alternate chain", "hash", hash, "height", hdr.Height)
		return SideStatTy, nil
	}

	// The header out-works the tip. If it doesn't build directly on it the
	// canonical mapping has to be switched over first; the competitor's own
	// height entry lands below, atomically with the tip swap.
	if hdr.PrevBlock != hc.tip.Hash() {
		hc.reorganize(hdr)
	}
	hc.hashes[hash] = hdr
	hc.heights[hdr.Height] = hdr
	hc.height = hdr.Height
	hc.tip = hdr
	headHeaderGauge.Update(int64(hdr.Height))

	log.Debug("Extended main chain", "hash", hash, "height", hdr.Height)
	hc.maybeSync()
	return CanonStatTy, nil
}

// findFork walks both branches back to their common ancestor, stepping the
// higher side first. Running off either branch means the store is corrupt.
func (hc *HeaderChain) findFork(a, b *types.Header) *types.Header {
	for !a.Equal(b) {
		if b.Height > a.Height {
			b = hc.mustParent(b)
		} else {
			a = hc.mustParent(a)
		}
	}
	return a
}

// reorganize switches the canonical mapping from the current tip's branch to
// the competitor's. The competitor itself is not connected here: its height
// entry and the tip swap are committed together by insert.
func (hc *HeaderChain) reorganize(competitor *types.Header) {
	reorgExecMeter.Mark(1)

	fork := hc.findFork(hc.tip, competitor)

	// Disconnect the stale branch. The headers stay in the hash store as
	// side-chain entries.
	var dropped int64
	for h := hc.tip; !h.Equal(fork); h = hc.mustParent(h) {
		delete(hc.heights, h.Height)
		dropped++
	}

	// Collect the new branch between fork and competitor, then connect it
	// fork-first.
	var connect []*types.Header
	for h := hc.mustParent(competitor); !h.Equal(fork); h = hc.mustParent(h) {
		connect = append(connect, h)
	}
	for i := len(connect) - 1; i >= 0; i-- {
		hc.heights[connect[i].Height] = connect[i]
	}

	reorgDropMeter.Mark(dropped)
	reorgAddMeter.Mark(int64(len(connect) + 1))
	log.Info("Chain reorganized", "fork", fork.Height, "dropped", dropped, "added", len(connect)+1)
}

// mustParent returns the stored parent of a header. A miss is an invariant
// violation and fatal.
func (hc *HeaderChain) mustParent(h *types.Header) *types.Header {
	parent := hc.hashes[h.PrevBlock]
	if parent == nil {
		log.Crit("Missing parent in header store", "hash", h.Hash(), "height", h.Height, "parent", h.PrevBlock)
	}
	return parent
}

// maybeSync transitions the chain into the synced state once the tip looks
// current: past any checkpoint, fresh enough, and carrying enough cumulative
// work. The transition is sticky. Before the network launch date the chain
// counts as synced immediately.
func (hc *HeaderChain) maybeSync() {
	if hc.synced {
		return
	}
	now := hc.td.Now()
	if now < hc.config.LaunchDate {
		log.Info("Chain is fully synced")
		hc.synced = true
		return
	}
	if hc.config.UseCheckpoints && hc.height < hc.config.LastCheckpoint {
		return
	}
	if int64(hc.tip.Time) < now-hc.config.MaxTipAge {
		return
	}
	if hc.tip.Work.Cmp(hc.config.ChainworkLimit) < 0 {
		return
	}
	log.Info("Chain is fully synced", "height", hc.height)
	hc.synced = true
}

// Config returns the chain's consensus parameters.
func (hc *HeaderChain) Config() *params.ChainConfig { return hc.config }

// Genesis returns the genesis header.
func (hc *HeaderChain) Genesis() *types.Header { return hc.genesis }

// Tip returns the current canonical tip.
func (hc *HeaderChain) Tip() *types.Header { return hc.tip }

// Height returns the height of the canonical tip.
func (hc *HeaderChain) Height() uint32 { return hc.height }

// Synced reports whether the chain has caught up with the network.
func (hc *HeaderChain) Synced() bool { return hc.synced }

// Has reports whether a header is present in the chain, on any branch.
func (hc *HeaderChain) Has(hash common.Hash) bool {
	_, ok := hc.hashes[hash]
	return ok
}

// Get retrieves a header by block hash, from any branch.
func (hc *HeaderChain) Get(hash common.Hash) *types.Header {
	return hc.hashes[hash]
}

// GetByHeight retrieves the canonical header at the given height.
func (hc *HeaderChain) GetByHeight(height uint32) *types.Header {
	return hc.heights[height]
}

// HasOrphan reports whether a header is waiting in the orphan pool.
func (hc *HeaderChain) HasOrphan(hash common.Hash) bool {
	_, ok := hc.orphans[hash]
	return ok
}

// GetOrphan retrieves a pooled orphan by block hash.
func (hc *HeaderChain) GetOrphan(hash common.Hash) *types.Header {
	return hc.orphans[hash]
}

// GetAncestor walks parent links from h down to the requested height, which
// must not exceed h's own.
func (hc *HeaderChain) GetAncestor(h *types.Header, height uint32) *types.Header {
	if height > h.Height {
		return nil
	}
	for h.Height != height {
		h = hc.mustParent(h)
	}
	return h
}

// SafeRoot returns a name-tree root old enough for resolvers to rely on
// without racing the next commitment. While the latest commitment has fewer
// confirmations than the configured threshold, the previous one is served.
func (hc *HeaderChain) SafeRoot() common.Hash {
	mod := hc.height % hc.config.TreeInterval
	if mod >= hc.config.SafeRootConfirmations {
		mod = 0
	}
	height := hc.height - mod

	h := hc.heights[height]
	if h == nil {
		log.Crit("Missing canonical header at safe height", "height", height)
	}
	log.Debug("Using safe height for resolution", "height", height)
	return h.NameRoot
}

// Locator fills the given slice with a block locator for peer sync: the tip,
// dense hashes for the eleven heights directly below it, then exponentially
// sparser ones. The final entry is always genesis. Returns the number of hashes
// written.
func (hc *HeaderChain) Locator(hashes []common.Hash) int {
	if len(hashes) == 0 {
		return 0
	}
	i := 0
	hashes[i] = hc.tip.Hash()
	i++

	height := int64(hc.height)
	step := int64(1)
	for height > 0 && i < len(hashes) {
		height -= step
		if height < 0 {
			height = 0
		}
		if i > 10 {
			step *= 2
		}
		if i == len(hashes)-1 {
			height = 0
		}
		h := hc.heights[uint32(height)]
		if h == nil {
			log.Crit("Missing canonical header for locator", "height", height)
		}
		hashes[i] = h.Hash()
		i++
	}
	return i
}
