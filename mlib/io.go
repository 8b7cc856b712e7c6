// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib

import (
	"strconv"

	"github.com/db47h/moore"
)

// Uint64 returns bits [from, from+count) of b as an uint64. Bit from is the
// lsb. count must be <= 64.
//
func Uint64(b moore.Bits, from, count int) uint64 {
	var out uint64
	for i := 0; i < count; i++ {
		if b.Get(from + i) {
			out |= 1 << uint(i)
		}
	}
	return out
}

// Words packs the given field values into input words, each field being
// widths[i] bits wide, first field at bit 0. It is typically used to build
// SetInput arguments for parts with several input ports:
//
//	n.SetInput(adder, mlib.Words([]int{4, 4}, a, b))
//
func Words(widths []int, values ...uint64) []uint64 {
	total := 0
	for _, w := range widths {
		total += w
	}
	b := moore.NewBits(total)
	pos := 0
	for i, w := range widths {
		var v uint64
		if i < len(values) {
			v = values[i]
		}
		for j := 0; j < w && j < 64; j++ {
			b.Set(pos+j, v&(1<<uint(j)) != 0)
		}
		pos += w
	}
	return b.Words()
}

// Constant returns a part with no inputs that outputs a constant value.
//
//	Outputs: out[bits]
//	Function: out = initial state
//
// The value is set through the initial state or SetState.
//
func Constant(bits int) *moore.Spec {
	return &moore.Spec{
		Name:    "Constant" + strconv.Itoa(bits),
		Outputs: bits,
		States:  bits,
		Transition: func(next *moore.Bits, _, state moore.Bits) {
			next.Copy(state)
		},
		Output: moore.IdentityOutput,
	}
}

// Input returns a N-bits input buffer: an externally settable part whose
// output follows its input with one tick delay. Use it to feed several parts
// from a single SetInput call.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out(t) = in(t-1)
//
func Input(bits int) *moore.Spec {
	s := DFFN(bits)
	s.Name = "Input" + strconv.Itoa(bits)
	return s
}
