// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package mlib

import (
	"strconv"

	"github.com/db47h/moore"
)

// HalfAdder returns a half adder.
//
//	Inputs: a, b
//	Outputs: s, c
//	Function: s = lsb(a + b)
//	          c = msb(a + b)
//
func HalfAdder() *moore.Spec {
	return &moore.Spec{
		Name:    "HalfAdder",
		Inputs:  2,
		Outputs: 2,
		States:  2,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			a, b := in.Get(0), in.Get(1)
			next.Set(0, a != b)
			next.Set(1, a && b)
		},
		Output: moore.IdentityOutput,
	}
}

// FullAdder returns a 3 bits adder.
//
//	Inputs: a, b, cin
//	Outputs: s, cout
//	Function: s = lsb(a + b + cin)
//	          cout = msb(a + b + cin)
//
func FullAdder() *moore.Spec {
	return &moore.Spec{
		Name:    "FullAdder",
		Inputs:  3,
		Outputs: 2,
		States:  2,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			s, c := add(in.Get(0), in.Get(1), in.Get(2))
			next.Set(0, s)
			next.Set(1, c)
		},
		Output: moore.IdentityOutput,
	}
}

func add(a, b, cin bool) (s, cout bool) {
	s0 := a != b
	return s0 != cin, a && b || s0 && cin
}

// AdderN returns a N-bits adder.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits], c
//	Function: out = a + b, c = carry out
//
func AdderN(bits int) *moore.Spec {
	return &moore.Spec{
		Name:    "Adder" + strconv.Itoa(bits),
		Inputs:  2 * bits,
		Outputs: bits + 1,
		States:  bits + 1,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			var s, c bool
			for i := 0; i < bits; i++ {
				s, c = add(in.Get(i), in.Get(bits+i), c)
				next.Set(i, s)
			}
			next.Set(bits, c)
		},
		Output: moore.IdentityOutput,
	}
}

// Counter returns a N-bits counter.
//
//	Inputs: inc
//	Outputs: out[bits]
//	Function: if inc { out = out + 1 } // wraps around
//
func Counter(bits int) *moore.Spec {
	return &moore.Spec{
		Name:    "Counter" + strconv.Itoa(bits),
		Inputs:  1,
		Outputs: bits,
		States:  bits,
		Transition: func(next *moore.Bits, in, state moore.Bits) {
			next.Copy(state)
			if in.Get(0) {
				increment(next)
			}
		},
		Output: moore.IdentityOutput,
	}
}

func increment(b *moore.Bits) {
	for i := 0; i < b.Width(); i++ {
		b.Toggle(i)
		if b.Get(i) {
			return
		}
	}
}

// Toggle returns a free running 1 bit oscillator. Its output flips on every
// tick, starting from its initial state.
//
//	Outputs: out
//	Function: out = !out
//
func Toggle() *moore.Spec {
	return &moore.Spec{
		Name:    "Toggle",
		Outputs: 1,
		States:  1,
		Transition: func(next *moore.Bits, _, state moore.Bits) {
			next.Set(0, !state.Get(0))
		},
		Output: moore.IdentityOutput,
	}
}
