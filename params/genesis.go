package params

// Raw wire encodings of the per-network genesis headers. Field layout matches
// core/types: version, prev, merkle, witness, tree, filter, reserved, time,
// bits, nonce, extra nonce, mask, name root.

const MainnetGenesisHex = "" +
	"00000000" + // version
	"0000000000000000000000000000000000000000000000000000000000000000" + // prev block
	"0000000000000000000000000000000000000000000000000000000000000000" + // merkle root
	"0000000000000000000000000000000000000000000000000000000000000000" + // witness root
	"0000000000000000000000000000000000000000000000000000000000000000" + // tree root
	"0000000000000000000000000000000000000000000000000000000000000000" + // filter root
	"0000000000000000000000000000000000000000000000000000000000000000" + // reserved root
	"7841385e00000000" + // time: 1580745080
	"ffff001c" + // bits: 0x1c00ffff
	"00000000" + // nonce
	"000000000000000000000000000000000000000000000000" + // extra nonce
	"0000000000000000000000000000000000000000000000000000000000000000" + // mask
	"0000000000000000000000000000000000000000000000000000000000000000" // name root

const TestnetGenesisHex = "" +
	"00000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"10e9895e00000000" + // time: 1586096400
	"ffff001d" + // bits: 0x1d00ffff
	"00000000" +
	"000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000"

const RegtestGenesisHex = "" +
	"00000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"7841385e00000000" + // time: 1580745080
	"ffff7f20" + // bits: 0x207fffff
	"00000000" +
	"000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000" +
	"0000000000000000000000000000000000000000000000000000000000000000"
