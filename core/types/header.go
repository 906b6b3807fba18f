package types

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/blake2b"
)

// HeaderSize is the exact wire size of an encoded block header.
const HeaderSize = 300

var errBadHeaderSize = errors.New("invalid header size")

// Header represents a block header in the name chain. All root fields are
// opaque commitments carried verbatim; the chain interprets only PrevBlock,
// Time, Bits and NameRoot.
type Header struct {
	Version      uint32      `json:"version"`
	PrevBlock    common.Hash `json:"prevBlock"`
	MerkleRoot   common.Hash `json:"merkleRoot"`
	WitnessRoot  common.Hash `json:"witnessRoot"`
	TreeRoot     common.Hash `json:"treeRoot"`
	FilterRoot   common.Hash `json:"filterRoot"`
	ReservedRoot common.Hash `json:"reservedRoot"`
	Time         uint64      `json:"time"`
	Bits         uint32      `json:"bits"`
	Nonce        uint32      `json:"nonce"`
	ExtraNonce   [24]byte    `json:"extraNonce"`
	Mask         common.Hash `json:"mask"`
	NameRoot     common.Hash `json:"nameRoot"`

	// Chain bookkeeping, assigned by the chain when the header is connected to
	// a stored parent, on the main chain or a side chain. Unset while the
	// header sits in the orphan pool.
	Height uint32   `json:"height"`
	Work   *big.Int `json:"-"` // cumulative chainwork up to and including this header

	hash common.Hash // memoized proof-of-work hash
}

// Hash returns the proof-of-work hash of the header, computing and caching it
// on first use. The hash covers the full wire encoding.
func (h *Header) Hash() common.Hash {
	if h.hash == (common.Hash{}) {
		h.hash = common.Hash(blake2b.Sum256(h.Encode()))
	}
	return h.hash
}

// Equal reports whether two headers hash to the same block.
func (h *Header) Equal(other *Header) bool {
	return h.Hash() == other.Hash()
}

// Encode returns the wire encoding of the header: fixed-width fields,
// little-endian integers, root and hash fields verbatim.
func (h *Header) Encode() []byte {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Version)
	copy(b[4:36], h.PrevBlock[:])
	copy(b[36:68], h.MerkleRoot[:])
	copy(b[68:100], h.WitnessRoot[:])
	copy(b[100:132], h.TreeRoot[:])
	copy(b[132:164], h.FilterRoot[:])
	copy(b[164:196], h.ReservedRoot[:])
	binary.LittleEndian.PutUint64(b[196:204], h.Time)
	binary.LittleEndian.PutUint32(b[204:208], h.Bits)
	binary.LittleEndian.PutUint32(b[208:212], h.Nonce)
	copy(b[212:236], h.ExtraNonce[:])
	copy(b[236:268], h.Mask[:])
	copy(b[268:300], h.NameRoot[:])
	return b
}

// DecodeHeader parses a wire-encoded header. It is the exact inverse of
// Encode.
func DecodeHeader(b []byte) (*Header, error) {
	if len(b) != HeaderSize {
		return nil, errBadHeaderSize
	}
	h := new(Header)
	h.Version = binary.LittleEndian.Uint32(b[0:4])
	copy(h.PrevBlock[:], b[4:36])
	copy(h.MerkleRoot[:], b[36:68])
	copy(h.WitnessRoot[:], b[68:100])
	copy(h.TreeRoot[:], b[100:132])
	copy(h.FilterRoot[:], b[132:164])
	copy(h.ReservedRoot[:], b[164:196])
	h.Time = binary.LittleEndian.Uint64(b[196:204])
	h.Bits = binary.LittleEndian.Uint32(b[204:208])
	h.Nonce = binary.LittleEndian.Uint32(b[208:212])
	copy(h.ExtraNonce[:], b[212:236])
	copy(h.Mask[:], b[236:268])
	copy(h.NameRoot[:], b[268:300])
	return h, nil
}

// CopyHeader creates a deep copy of a block header.
func CopyHeader(h *Header) *Header {
	cpy := *h
	if h.Work != nil {
		cpy.Work = new(big.Int).Set(h.Work)
	}
	return &cpy
}
