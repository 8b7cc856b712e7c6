// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package mlib provides a library of reusable automata for moore networks.
//
// Every part is a Moore machine: its output reflects its state, and its state
// is updated from its inputs on each Step. A combinational function like AND
// therefore takes one tick to propagate:
//
//	out(t+1) = f(in(t))
//
// Multi-bit ports are laid out consecutively, in the order they are listed in
// each part's documentation, bit 0 first. For example, AndN(4) has inputs
// a[0..3] at bits 0..3 and b[0..3] at bits 4..7.
//
package mlib

import (
	"strconv"

	"github.com/db47h/moore"
)

// bitFn is a single bit gate function.
type bitFn func(a, b bool) bool

func (f bitFn) transition(bits int) moore.TransitionFn {
	return func(next *moore.Bits, in, _ moore.Bits) {
		for i := 0; i < bits; i++ {
			next.Set(i, f(in.Get(i), in.Get(bits+i)))
		}
	}
}

func newGate(name string, bits int, f bitFn) *moore.Spec {
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &moore.Spec{
		Name:       name,
		Inputs:     2 * bits,
		Outputs:    bits,
		States:     bits,
		Transition: f.transition(bits),
		Output:     moore.IdentityOutput,
	}
}

var (
	and  = bitFn(func(a, b bool) bool { return a && b })
	nand = bitFn(func(a, b bool) bool { return !(a && b) })
	or   = bitFn(func(a, b bool) bool { return a || b })
	nor  = bitFn(func(a, b bool) bool { return !(a || b) })
	xor  = bitFn(func(a, b bool) bool { return a != b })
	xnor = bitFn(func(a, b bool) bool { return a == b })
)

// Not returns a NOT gate.
//
//	Inputs: in
//	Outputs: out
//	Function: out = !in
//
func Not() *moore.Spec { return NotN(1) }

// NotN returns a N-bits NOT gate.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = !in[i] }
//
func NotN(bits int) *moore.Spec {
	name := "NOT"
	if bits > 1 {
		name += strconv.Itoa(bits)
	}
	return &moore.Spec{
		Name:    name,
		Inputs:  bits,
		Outputs: bits,
		States:  bits,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			for i := 0; i < bits; i++ {
				next.Set(i, !in.Get(i))
			}
		},
		Output: moore.IdentityOutput,
	}
}

// And returns a AND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b
//
func And() *moore.Spec { return newGate("AND", 1, and) }

// Nand returns a NAND gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a && b)
//
func Nand() *moore.Spec { return newGate("NAND", 1, nand) }

// Or returns a OR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a || b
//
func Or() *moore.Spec { return newGate("OR", 1, or) }

// Nor returns a NOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = !(a || b)
//
func Nor() *moore.Spec { return newGate("NOR", 1, nor) }

// Xor returns a XOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = (a && !b) || (!a && b)
//
func Xor() *moore.Spec { return newGate("XOR", 1, xor) }

// Xnor returns a XNOR gate.
//
//	Inputs: a, b
//	Outputs: out
//	Function: out = a && b || !a && !b
//
func Xnor() *moore.Spec { return newGate("XNOR", 1, xnor) }

// GateN returns a N-bits logic gate applying f to each pair of input bits.
//
//	Inputs: a[bits], b[bits]
//	Outputs: out[bits]
//	Function: for i := range out { out[i] = f(a[i], b[i]) }
//
func GateN(name string, bits int, f func(a, b bool) bool) *moore.Spec {
	return newGate(name, bits, f)
}

// AndN returns a N-bits AND gate.
//
func AndN(bits int) *moore.Spec { return newGate("AND", bits, and) }

// NandN returns a N-bits NAND gate.
//
func NandN(bits int) *moore.Spec { return newGate("NAND", bits, nand) }

// OrN returns a N-bits OR gate.
//
func OrN(bits int) *moore.Spec { return newGate("OR", bits, or) }

// NorN returns a N-bits NOR gate.
//
func NorN(bits int) *moore.Spec { return newGate("NOR", bits, nor) }

// XorN returns a N-bits XOR gate.
//
func XorN(bits int) *moore.Spec { return newGate("XOR", bits, xor) }

// OrNWay returns a N-way OR gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] || in[1] || in[2] || ...
//
func OrNWay(ways int) *moore.Spec {
	return &moore.Spec{
		Name:    "OR" + strconv.Itoa(ways) + "Way",
		Inputs:  ways,
		Outputs: 1,
		States:  1,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			next.Set(0, in.OnesCount() > 0)
		},
		Output: moore.IdentityOutput,
	}
}

// AndNWay returns a N-way AND gate.
//
//	Inputs: in[ways]
//	Outputs: out
//	Function: out = in[0] && in[1] && in[2] && ...
//
func AndNWay(ways int) *moore.Spec {
	return &moore.Spec{
		Name:    "AND" + strconv.Itoa(ways) + "Way",
		Inputs:  ways,
		Outputs: 1,
		States:  1,
		Transition: func(next *moore.Bits, in, _ moore.Bits) {
			next.Set(0, in.OnesCount() == ways)
		},
		Output: moore.IdentityOutput,
	}
}
