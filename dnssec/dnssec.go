// Package dnssec signs root-zone resolver responses with the static
// well-known key. The key is a build constant: verifiers pin the matching DS
// record, so answers are authenticated end to end without any online key
// management.
package dnssec

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/lru"
	"github.com/miekg/dns"
	"golang.org/x/crypto/blake2b"
)

const (
	// sigValidity is the lifetime stamped on generated signatures.
	sigValidity = 172800 // seconds

	// sigReuse is how long a cached signature keeps being served before the
	// set is re-signed with a fresh inception.
	sigReuse = 3600 // seconds

	sigCacheSize = 1024
)

// Signer holds the static zone-signing key and a cache of recent signatures.
type Signer struct {
	key    *rsa.PrivateKey
	dnskey *dns.DNSKEY
	keyTag uint16

	sigs *lru.Cache[common.Hash, *dns.RRSIG]
}

// NewSigner assembles the signer from the embedded key material.
func NewSigner() *Signer {
	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: hexBig(keyModulusHex),
			E: int(hexBig(keyPubExpHex).Int64()),
		},
		D:      hexBig(keyPrivExpHex),
		Primes: []*big.Int{hexBig(keyPrime1Hex), hexBig(keyPrime2Hex)},
	}
	key.Precompute()

	dnskey := &dns.DNSKEY{
		Hdr: dns.RR_Header{
			Name:   ".",
			Rrtype: dns.TypeDNSKEY,
			Class:  dns.ClassINET,
			Ttl:    10800,
		},
		Flags:     257, // KSK
		Protocol:  3,
		Algorithm: dns.RSASHA256,
		PublicKey: rsaPublicKeyWire(&key.PublicKey),
	}

	return &Signer{
		key:    key,
		dnskey: dnskey,
		keyTag: dnskey.KeyTag(),
		sigs:   lru.NewCache[common.Hash, *dns.RRSIG](sigCacheSize),
	}
}

// DNSKEY returns the apex DNSKEY record of the signing key.
func (s *Signer) DNSKEY() *dns.DNSKEY {
	return dns.Copy(s.dnskey).(*dns.DNSKEY)
}

// DS returns the delegation-signer digest of the signing key, the record
// verifiers are expected to pin.
func (s *Signer) DS() *dns.DS {
	return s.dnskey.ToDS(dns.SHA256)
}

// Sign signs the sub-RRset of the given type within section and returns the
// section with the RRSIG appended. Sections holding no record of the type are
// returned unchanged. Hot sets are served from the signature cache until
// their inception ages past the reuse window.
func (s *Signer) Sign(section []dns.RR, qtype uint16) ([]dns.RR, error) {
	var set []dns.RR
	for _, rr := range section {
		if rr.Header().Rrtype == qtype {
			set = append(set, rr)
		}
	}
	if len(set) == 0 {
		return section, nil
	}

	now := time.Now().Unix()
	key := sigCacheKey(set, qtype)
	if sig, ok := s.sigs.Get(key); ok && now < int64(sig.Inception)+sigReuse {
		return append(section, sig), nil
	}

	hdr := set[0].Header()
	sig := &dns.RRSIG{
		Hdr: dns.RR_Header{
			Name:   hdr.Name,
			Rrtype: dns.TypeRRSIG,
			Class:  dns.ClassINET,
			Ttl:    hdr.Ttl,
		},
		TypeCovered: qtype,
		Algorithm:   dns.RSASHA256,
		Labels:      uint8(dns.CountLabel(hdr.Name)),
		OrigTtl:     hdr.Ttl,
		Expiration:  uint32(now + sigValidity),
		Inception:   uint32(now),
		KeyTag:      s.keyTag,
		SignerName:  ".",
	}
	if err := sig.Sign(s.key, set); err != nil {
		return nil, err
	}
	s.sigs.Add(key, sig)
	return append(section, sig), nil
}

// Clean strips DNSSEC record types the query did not ask for from every
// section of the message.
func (s *Signer) Clean(msg *dns.Msg, qtype uint16) {
	msg.Answer = filterSection(msg.Answer, qtype)
	msg.Ns = filterSection(msg.Ns, qtype)
	msg.Extra = filterSection(msg.Extra, qtype)
}

// dnssecTypes are the meta records removed from responses unless explicitly
// queried for.
var dnssecTypes = []uint16{
	dns.TypeRRSIG,
	dns.TypeDNSKEY,
	dns.TypeDS,
	dns.TypeNSEC,
	dns.TypeNSEC3,
	dns.TypeNSEC3PARAM,
}

func filterSection(section []dns.RR, qtype uint16) []dns.RR {
	kept := section[:0]
outer:
	for _, rr := range section {
		for _, t := range dnssecTypes {
			if rr.Header().Rrtype == t && t != qtype {
				continue outer
			}
		}
		kept = append(kept, rr)
	}
	return kept
}

// sigCacheKey digests an rrset into its cache key.
func sigCacheKey(set []dns.RR, qtype uint16) common.Hash {
	d, _ := blake2b.New256(nil)
	d.Write([]byte{byte(qtype >> 8), byte(qtype)})
	for _, rr := range set {
		d.Write([]byte(rr.String()))
		d.Write([]byte{0})
	}
	return common.BytesToHash(d.Sum(nil))
}

// rsaPublicKeyWire renders an RSA public key in RFC 3110 wire format,
// base64-encoded as the DNSKEY text representation expects.
func rsaPublicKeyWire(pub *rsa.PublicKey) string {
	e := big.NewInt(int64(pub.E)).Bytes()
	n := pub.N.Bytes()

	buf := make([]byte, 0, 1+len(e)+len(n))
	buf = append(buf, byte(len(e)))
	buf = append(buf, e...)
	buf = append(buf, n...)
	return base64.StdEncoding.EncodeToString(buf)
}

func hexBig(s string) *big.Int {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return new(big.Int).SetBytes(b)
}
