package params

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// MainnetChainConfig is the chain parameters to run a node on the main network.
	MainnetChainConfig = &ChainConfig{
		Name:                  "mainnet",
		BitsInitial:           0x1c00ffff,
		PowLimit:              hexBig("0x0000000000ffff00000000000000000000000000000000000000000000000000"),
		ChainworkLimit:        hexBig("0x0000000000000000000000000000000000000000000000000000000400000000"),
		TargetWindow:          144,
		TargetTimespan:        144 * 600,
		TargetSpacing:         600,
		MinActual:             (144 * 600) / 4,
		MaxActual:             (144 * 600) * 4,
		TreeInterval:          72,
		SafeRootConfirmations: 12,
		LaunchDate:            1580774400,
		MaxTipAge:             12 * 60 * 60,
		UseCheckpoints:        true,
		LastCheckpoint:        136000,
		GenesisHex:            MainnetGenesisHex,
	}

	// TestnetChainConfig contains the chain parameters of the public test network.
	TestnetChainConfig = &ChainConfig{
		Name:                  "testnet",
		BitsInitial:           0x1d00ffff,
		PowLimit:              hexBig("0x00000000ffff0000000000000000000000000000000000000000000000000000"),
		ChainworkLimit:        hexBig("0x0000000000000000000000000000000000000000000000000000000000100000"),
		TargetWindow:          144,
		TargetTimespan:        144 * 600,
		TargetSpacing:         600,
		MinActual:             (144 * 600) / 4,
		MaxActual:             (144 * 600) * 4,
		TreeInterval:          72,
		SafeRootConfirmations: 12,
		LaunchDate:            1586096400,
		MaxTipAge:             12 * 60 * 60,
		TargetReset:           true,
		GenesisHex:            TestnetGenesisHex,
	}

	// RegtestChainConfig contains the chain parameters of the local regression
	// test network. Difficulty never moves off the genesis bits.
	RegtestChainConfig = &ChainConfig{
		Name:                  "regtest",
		BitsInitial:           0x207fffff,
		PowLimit:              hexBig("0x7fffff0000000000000000000000000000000000000000000000000000000000"),
		ChainworkLimit:        big.NewInt(4),
		TargetWindow:          144,
		TargetTimespan:        144 * 600,
		TargetSpacing:         600,
		MinActual:             (144 * 600) / 4,
		MaxActual:             (144 * 600) * 4,
		TreeInterval:          36,
		SafeRootConfirmations: 12,
		LaunchDate:            0,
		MaxTipAge:             12 * 60 * 60,
		NoRetargeting:         true,
		GenesisHex:            RegtestGenesisHex,
	}
)

// ChainConfig holds the consensus parameters of a single network. The values
// are inputs to the build, not runtime configuration; for any specific network
// they must not change after launch.
type ChainConfig struct {
	Name string `json:"name"`

	// Proof-of-work.
	BitsInitial    uint32   `json:"bitsInitial"`    // compact target required at genesis
	PowLimit       *big.Int `json:"powLimit"`       // highest permitted target
	ChainworkLimit *big.Int `json:"chainworkLimit"` // cumulative work required before the chain counts as synced

	// Retargeting.
	TargetWindow   int64 `json:"targetWindow"`   // headers per retarget window
	TargetTimespan int64 `json:"targetTimespan"` // ideal window duration in seconds
	TargetSpacing  int64 `json:"targetSpacing"`  // ideal block interval in seconds
	MinActual      int64 `json:"minActual"`      // lower clamp on the damped timespan
	MaxActual      int64 `json:"maxActual"`      // upper clamp on the damped timespan
	NoRetargeting  bool  `json:"noRetargeting"`  // required bits never move off BitsInitial
	TargetReset    bool  `json:"targetReset"`    // difficulty resets after four missed spacings

	// Name-tree commitments.
	TreeInterval          uint32 `json:"treeInterval"`          // blocks between tree root commitments
	SafeRootConfirmations uint32 `json:"safeRootConfirmations"` // work on top of a root before it is safe to serve

	// Sync policy.
	LaunchDate     int64  `json:"launchDate"` // unix time the network went live
	MaxTipAge      int64  `json:"maxTipAge"`  // tip staleness bound in seconds
	UseCheckpoints bool   `json:"useCheckpoints"`
	LastCheckpoint uint32 `json:"lastCheckpoint"`

	// GenesisHex is the raw wire encoding of the genesis header.
	GenesisHex string `json:"-"`
}

// Description returns a human-readable description of ChainConfig.
func (c *ChainConfig) Description() string {
	var banner string
	banner += fmt.Sprintf("Network:        %s\n", c.Name)
	banner += fmt.Sprintf("Initial bits:   %#08x\n", c.BitsInitial)
	banner += fmt.Sprintf("Tree interval:  %d\n", c.TreeInterval)
	banner += fmt.Sprintf("Target spacing: %ds\n", c.TargetSpacing)
	return banner
}

func hexBig(s string) *big.Int {
	return new(big.Int).SetBytes(hexutil.MustDecode(s))
}
