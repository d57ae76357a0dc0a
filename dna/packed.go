package dna

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Four bases to the byte, two bits per base. Base i lives in byte i/4 at
// bit offset 2*(i%4): the low-order bits of a byte hold the lowest-index
// base, so appending fills each byte from the bottom up. The order is an
// internal detail, but MarshalBinary freezes it on disk, so it must not
// change between versions.
const (
	basesPerByte = 4
	bitsPerBase  = 2
	codeMask     = 0b11
)

// PackedDna is an ordered DNA sequence stored at two bits per base.
//
// The zero value is an empty sequence ready for use. A PackedDna is not
// safe for concurrent mutation; hand each goroutine its own Clone.
//
// Two invariants hold between every exported call: the buffer is exactly
// as long as the base count requires, and unused padding bits in the
// final byte are zero. Everything below (Equal most of all) leans on
// them.
type PackedDna struct {
	bits []byte
	n    int
}

var (
	_ encoding.BinaryMarshaler   = (*PackedDna)(nil)
	_ encoding.BinaryUnmarshaler = (*PackedDna)(nil)
)

// NewPackedDna returns an empty sequence.
func NewPackedDna() *PackedDna {
	return &PackedDna{}
}

// Parse converts a DNA string to its packed form. Parsing is
// case-insensitive and all-or-nothing: the first character outside
// {A,a,C,c,G,g,T,t} aborts with an InvalidNucleotideError carrying the
// character and its 0-based position, and no sequence is returned.
func Parse(s string) (*PackedDna, error) {
	p := &PackedDna{bits: make([]byte, 0, packedLen(len(s)))}
	pos := 0
	for _, r := range s {
		nuc, err := ParseNucleotide(r)
		if err != nil {
			return nil, &InvalidNucleotideError{Char: r, Pos: pos}
		}
		p.Append(nuc)
		pos++
	}
	return p, nil
}

// Pack builds a sequence from bases in argument order.
func Pack(nucs ...Nucleotide) *PackedDna {
	p := &PackedDna{bits: make([]byte, 0, packedLen(len(nucs)))}
	p.Extend(nucs...)
	return p
}

// packedLen returns the number of bytes needed to hold n bases.
func packedLen(n int) int {
	return (n + basesPerByte - 1) / basesPerByte
}

// Len returns the number of bases in the sequence.
func (p *PackedDna) Len() int {
	if p == nil {
		return 0
	}
	return p.n
}

// Empty reports whether the sequence has no bases.
func (p *PackedDna) Empty() bool {
	return p.Len() == 0
}

// Get returns the base at index i and true, or 0 and false when i is out
// of range. Indexes are 0-based.
func (p *PackedDna) Get(i int) (Nucleotide, bool) {
	if i < 0 || i >= p.Len() {
		return 0, false
	}

	code := p.bits[i/basesPerByte] >> (bitsPerBase * (i % basesPerByte)) & codeMask
	nuc, err := nucFromCode(code)
	if err != nil {
		// unreachable: the mask keeps codes within the alphabet
		panic(err)
	}
	return nuc, true
}

// Append adds one base to the end of the sequence.
func (p *PackedDna) Append(n Nucleotide) {
	if p.n%basesPerByte == 0 {
		p.bits = append(p.bits, 0)
	}
	p.bits[p.n/basesPerByte] |= n.Code() << (bitsPerBase * (p.n % basesPerByte))
	p.n++
}

// Extend appends each base in order. It is equivalent to calling Append
// once per base.
func (p *PackedDna) Extend(nucs ...Nucleotide) {
	for _, n := range nucs {
		p.Append(n)
	}
}

// String returns the sequence as its canonical uppercase characters.
// Parse(p.String()) always reproduces p.
func (p *PackedDna) String() string {
	var b strings.Builder
	b.Grow(p.Len())
	for i := 0; i < p.Len(); i++ {
		nuc, _ := p.Get(i)
		b.WriteByte(nuc.Char())
	}
	return b.String()
}

// Equal reports whether two sequences hold the same bases in the same
// order. How each was built makes no difference. A nil sequence equals
// an empty one.
func (p *PackedDna) Equal(q *PackedDna) bool {
	if p.Len() != q.Len() {
		return false
	}
	if p.Len() == 0 {
		return true
	}

	// buffers are canonical (exact length, zero padding), so comparing
	// bytes is comparing bases
	return bytes.Equal(p.bits, q.bits)
}

// Clone returns an independent copy of the sequence.
func (p *PackedDna) Clone() *PackedDna {
	q := &PackedDna{n: p.Len()}
	if q.n > 0 {
		q.bits = make([]byte, len(p.bits))
		copy(q.bits, p.bits)
	}
	return q
}

// Truncate shrinks the sequence to at most n bases, keeping the first n.
// It is a no-op when n >= Len(). The byte left partially filled at the
// new boundary is re-masked so its unused bits read zero again.
func (p *PackedDna) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n >= p.n {
		return
	}

	p.bits = p.bits[:packedLen(n)]
	if rem := n % basesPerByte; rem != 0 {
		p.bits[len(p.bits)-1] &= (byte(1) << (bitsPerBase * rem)) - 1
	}
	p.n = n
}

// Counts returns how many times each base occurs in the sequence. Every
// base in the alphabet has an entry, including those that never occur.
func (p *PackedDna) Counts() map[Nucleotide]int {
	counts := make(map[Nucleotide]int, numCodes)
	for _, n := range Nucleotides() {
		counts[n] = 0
	}
	for i := 0; i < p.Len(); i++ {
		nuc, _ := p.Get(i)
		counts[nuc]++
	}
	return counts
}

// ReverseComplement returns a new sequence holding this one read
// backwards with every base replaced by its pairing partner. Applying it
// twice gives back the original sequence.
func (p *PackedDna) ReverseComplement() *PackedDna {
	rc := &PackedDna{bits: make([]byte, 0, packedLen(p.Len()))}
	for i := p.Len() - 1; i >= 0; i-- {
		nuc, _ := p.Get(i)
		rc.Append(nuc.Complement())
	}
	return rc
}

// A marshalled sequence is a 16-byte little-endian header followed by
// the packed payload in the same low-bits-first order used in memory.
const (
	packedDnaSig     = 0x32414e44 // the bytes "DNA2"
	packedDnaVersion = 0
	headerLen        = 16
)

// MarshalBinary encodes the sequence in a self-describing binary form:
// signature, version, base count and a reserved word, each a uint32,
// then the packed bases four to the byte. Padding bits in the final
// payload byte are zero.
func (p *PackedDna) MarshalBinary() ([]byte, error) {
	if uint64(p.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("sequence of %d bases does not fit the encoding", p.Len())
	}

	out := make([]byte, headerLen+packedLen(p.Len()))
	binary.LittleEndian.PutUint32(out[0:4], packedDnaSig)
	binary.LittleEndian.PutUint32(out[4:8], packedDnaVersion)
	binary.LittleEndian.PutUint32(out[8:12], uint32(p.Len()))
	// out[12:16] is the reserved word, left zero
	copy(out[headerLen:], p.bits)
	return out, nil
}

// UnmarshalBinary decodes a sequence produced by MarshalBinary. The
// header, the payload size and the padding bits are all validated before
// the receiver is touched, so corrupt input never leaves a partial
// sequence behind.
func (p *PackedDna) UnmarshalBinary(data []byte) error {
	if len(data) < headerLen {
		return fmt.Errorf("packed dna: %d bytes is too short for the %d-byte header", len(data), headerLen)
	}
	if sig := binary.LittleEndian.Uint32(data[0:4]); sig != packedDnaSig {
		return fmt.Errorf("packed dna: bad signature %#08x", sig)
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != packedDnaVersion {
		return fmt.Errorf("packed dna: unsupported version %d", v)
	}
	if reserved := binary.LittleEndian.Uint32(data[12:16]); reserved != 0 {
		return fmt.Errorf("packed dna: reserved word is %d, want 0", reserved)
	}

	n := int(binary.LittleEndian.Uint32(data[8:12]))
	payload := data[headerLen:]
	if len(payload) != packedLen(n) {
		return fmt.Errorf("packed dna: %d payload bytes for %d bases, want %d", len(payload), n, packedLen(n))
	}
	if rem := n % basesPerByte; rem != 0 {
		mask := (byte(1) << (bitsPerBase * rem)) - 1
		if padding := payload[len(payload)-1] &^ mask; padding != 0 {
			return fmt.Errorf("packed dna: nonzero padding bits %#010b in final byte", padding)
		}
	}

	p.bits = make([]byte, len(payload))
	copy(p.bits, payload)
	p.n = n
	return nil
}
