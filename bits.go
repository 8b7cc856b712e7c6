// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"math/bits"
	"strings"
)

const wordBits = 64

func wordCount(width int) int {
	return (width + wordBits - 1) / wordBits
}

// Bits is a fixed width, bit-packed vector. Bit 0 is the least significant bit
// of the first word.
//
// Every mutator keeps the bits at index >= Width() zero, so two vectors of the
// same width compare equal iff their words do.
//
// The zero value is an empty vector of width 0.
//
type Bits struct {
	w []uint64
	n int
}

// NewBits returns a zeroed vector of the given width.
//
func NewBits(width int) Bits {
	if width < 0 {
		panic("moore: negative bit vector width")
	}
	return Bits{w: make([]uint64, wordCount(width)), n: width}
}

// MakeBits returns a vector of the given width initialized from words. Words
// beyond the vector's storage are ignored, missing words are zero.
//
func MakeBits(width int, words ...uint64) Bits {
	b := NewBits(width)
	b.Load(words)
	return b
}

// Width returns the number of bits in b.
//
func (b Bits) Width() int { return b.n }

func (b Bits) check(i int) {
	if uint(i) >= uint(b.n) {
		panic("moore: bit index out of range")
	}
}

// Get returns the value of bit i. It panics if i is out of range.
//
func (b Bits) Get(i int) bool {
	b.check(i)
	return b.w[i/wordBits]&(1<<uint(i%wordBits)) != 0
}

// Set sets bit i to v. It panics if i is out of range.
//
func (b *Bits) Set(i int, v bool) {
	b.check(i)
	if v {
		b.w[i/wordBits] |= 1 << uint(i%wordBits)
	} else {
		b.w[i/wordBits] &^= 1 << uint(i%wordBits)
	}
}

// Toggle flips bit i. It panics if i is out of range.
//
func (b *Bits) Toggle(i int) {
	b.check(i)
	b.w[i/wordBits] ^= 1 << uint(i%wordBits)
}

// Uint64 returns the 64 least significant bits of b.
//
func (b Bits) Uint64() uint64 {
	if len(b.w) == 0 {
		return 0
	}
	return b.w[0]
}

// SetUint64 sets the 64 least significant bits of b to v, truncated to b's
// width. Higher bits are cleared.
//
func (b *Bits) SetUint64(v uint64) {
	b.Load([]uint64{v})
}

// Words returns a copy of the underlying words.
//
func (b Bits) Words() []uint64 {
	w := make([]uint64, len(b.w))
	copy(w, b.w)
	return w
}

// Load overwrites b with words, truncated or zero-padded to b's width.
//
func (b *Bits) Load(words []uint64) {
	n := copy(b.w, words)
	for i := n; i < len(b.w); i++ {
		b.w[i] = 0
	}
	b.clearTrailing()
}

// Copy overwrites b with the bits of src, truncated or zero-padded to b's
// width.
//
func (b *Bits) Copy(src Bits) {
	b.Load(src.w)
}

// Zero clears all bits.
//
func (b *Bits) Zero() {
	for i := range b.w {
		b.w[i] = 0
	}
}

// Clone returns a deep copy of b.
//
func (b Bits) Clone() Bits {
	return Bits{w: b.Words(), n: b.n}
}

// Equal reports whether b and o have the same width and bits.
//
func (b Bits) Equal(o Bits) bool {
	if b.n != o.n {
		return false
	}
	for i := range b.w {
		if b.w[i] != o.w[i] {
			return false
		}
	}
	return true
}

// OnesCount returns the number of bits set.
//
func (b Bits) OnesCount() int {
	c := 0
	for _, w := range b.w {
		c += bits.OnesCount64(w)
	}
	return c
}

// String returns the bits of b, most significant first.
//
func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := b.n - 1; i >= 0; i-- {
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// clearTrailing zeroes the bits at index >= width in the last word.
//
func (b *Bits) clearTrailing() {
	if r := b.n % wordBits; r != 0 {
		b.w[len(b.w)-1] &= 1<<uint(r) - 1
	}
}

// clean reports whether the trailing bits of b are zero and its storage
// matches its width.
//
func (b Bits) clean() bool {
	if len(b.w) != wordCount(b.n) {
		return false
	}
	if r := b.n % wordBits; r != 0 {
		return b.w[len(b.w)-1]&^(1<<uint(r)-1) == 0
	}
	return true
}
