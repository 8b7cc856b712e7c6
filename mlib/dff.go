// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib

import (
	"strconv"

	"github.com/db47h/moore"
)

// DFF returns a data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current tick.
//
func DFF() *moore.Spec { return DFFN(1) }

// DFFN returns a N-bits data flip flop.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out(t) = in(t-1)
//
func DFFN(bits int) *moore.Spec {
	name := "DFF"
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &moore.Spec{
		Name:    name,
		Inputs:  bits,
		Outputs: bits,
		States:  bits,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			next.Copy(in)
		},
		Output: moore.IdentityOutput,
	}
}

// Register returns a N-bits register.
//
//	Inputs: in[bits], load
//	Outputs: out[bits]
//	Function: if load(t-1) { out(t) = in(t-1) } else { out(t) = out(t-1) }
//
func Register(bits int) *moore.Spec {
	return &moore.Spec{
		Name:    "Register" + strconv.Itoa(bits),
		Inputs:  bits + 1,
		Outputs: bits,
		States:  bits,
		Transition: func(next *moore.Bits, in, state moore.Bits) {
			if !in.Get(bits) {
				next.Copy(state)
				return
			}
			for i := 0; i < bits; i++ {
				next.Set(i, in.Get(i))
			}
		},
		Output: moore.IdentityOutput,
	}
}
