// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib

import (
	"strconv"

	"github.com/db47h/moore"
)

// Mux returns a multiplexer.
//
//	Inputs: a, b, sel
//	Outputs: out
//	Function: if sel == 0 { out = a } else { out = b }
//
func Mux() *moore.Spec { return MuxN(1) }

// MuxN returns a N-bits multiplexer.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//	Function: for i := range out { if sel == 0 { out[i] = a[i] } else { out[i] = b[i] } }
//
func MuxN(bits int) *moore.Spec {
	name := "MUX"
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &moore.Spec{
		Name:    name,
		Inputs:  2*bits + 1,
		Outputs: bits,
		States:  bits,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			from := 0
			if in.Get(2 * bits) {
				from = bits
			}
			for i := 0; i < bits; i++ {
				next.Set(i, in.Get(from+i))
			}
		},
		Output: moore.IdentityOutput,
	}
}

// DMux returns a demultiplexer.
//
//	Inputs: in, sel
//	Outputs: a, b
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMux() *moore.Spec { return DMuxN(1) }

// DMuxN returns a N-bits demultiplexer.
//
//	Inputs: in[bits], sel
//	Outputs: a[bits], b[bits]
//	Function: if sel == 0 { a = in; b = 0 } else { a = 0; b = in }
//
func DMuxN(bits int) *moore.Spec {
	name := "DMUX"
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &moore.Spec{
		Name:    name,
		Inputs:  bits + 1,
		Outputs: 2 * bits,
		States:  2 * bits,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			to := 0
			if in.Get(bits) {
				to = bits
			}
			for i := 0; i < bits; i++ {
				next.Set(to+i, in.Get(i))
			}
		},
		Output: moore.IdentityOutput,
	}
}
