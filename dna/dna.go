// Package dna implements a compact representation for DNA sequences.
//
// A Nucleotide is one of the four bases A, C, G and T. A PackedDna is an
// ordered sequence of nucleotides stored at two bits per base, four bases
// to the byte, rather than one byte or rune per base. All validation
// happens at the parsing boundary: once a Nucleotide or PackedDna exists,
// every operation on it is infallible.
package dna

import "fmt"

// Nucleotide is a single DNA base. Only the four constants below are
// valid values. Both parsing paths reject everything else, so a
// Nucleotide held by a caller is always one of A, C, G or T.
type Nucleotide uint8

// The four bases and their 2-bit codes.
const (
	A Nucleotide = 0b00 // adenine
	C Nucleotide = 0b01 // cytosine
	G Nucleotide = 0b10 // guanine
	T Nucleotide = 0b11 // thymine
)

// numCodes is the size of the nucleotide alphabet.
const numCodes = 4

// InvalidNucleotideError is returned when a character outside the DNA
// alphabet is parsed. Pos is the 0-based position of the character in
// the parsed sequence, or -1 when the character was parsed on its own.
type InvalidNucleotideError struct {
	Char rune
	Pos  int
}

func (e *InvalidNucleotideError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("invalid nucleotide %q", e.Char)
	}
	return fmt.Sprintf("invalid nucleotide %q at position %d", e.Char, e.Pos)
}

// InvalidCodeError is returned when a 2-bit code outside 0-3 is decoded.
// Valid operations never produce one: seeing this error means a packed
// buffer was corrupted (see PackedDna.UnmarshalBinary) or there is a bug.
type InvalidCodeError struct {
	Code byte
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid nucleotide code %#04b", e.Code)
}

// ParseNucleotide converts a single character to its Nucleotide. It is
// case-insensitive: exactly the characters {A,a,C,c,G,g,T,t} are
// accepted.
func ParseNucleotide(r rune) (Nucleotide, error) {
	switch r {
	case 'A', 'a':
		return A, nil
	case 'C', 'c':
		return C, nil
	case 'G', 'g':
		return G, nil
	case 'T', 't':
		return T, nil
	}
	return 0, &InvalidNucleotideError{Char: r, Pos: -1}
}

// nucFromCode converts a 2-bit code back to its Nucleotide. It is the
// only decode path out of packed storage; a code above 3 can only come
// from a corrupted buffer.
func nucFromCode(code byte) (Nucleotide, error) {
	if code >= numCodes {
		return 0, &InvalidCodeError{Code: code}
	}
	return Nucleotide(code), nil
}

// Code returns the base's 2-bit code, the inverse of nucFromCode.
func (n Nucleotide) Code() byte {
	return byte(n)
}

// Char returns the canonical uppercase character for the base.
func (n Nucleotide) Char() byte {
	switch n {
	case A:
		return 'A'
	case C:
		return 'C'
	case G:
		return 'G'
	case T:
		return 'T'
	}

	// unreachable for values built through the parsing boundary
	panic(&InvalidCodeError{Code: byte(n)})
}

// Complement returns the base this one pairs with: A<->T and C<->G.
// This is the literal symbol mapping only, with no further biology
// implied. With the code assignment above a complement is a 2-bit flip.
func (n Nucleotide) Complement() Nucleotide {
	return n ^ 0b11
}

// String implements fmt.Stringer with the canonical uppercase character.
func (n Nucleotide) String() string {
	return string(n.Char())
}

// Nucleotides returns the whole alphabet in code order. Callers that
// need to enumerate the alphabet (per-base counts, for one) should range
// over this rather than fabricate values.
func Nucleotides() [numCodes]Nucleotide {
	return [numCodes]Nucleotide{A, C, G, T}
}
