// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package moore simulates networks of synchronous Moore automata whose inputs,
outputs and states are fixed width bit vectors.

Automata live in a Network and are identified by Handles. The output bits of
one automaton can be connected to the input bits of another (or of itself):

	n := moore.NewNetwork()
	toggle, _ := n.NewSimple(0, 1, func(next *moore.Bits, _, state moore.Bits) {
		next.Set(0, !state.Get(0))
	})
	reg, _ := n.NewSimple(1, 1, func(next *moore.Bits, in, _ moore.Bits) {
		next.Copy(in)
	})
	n.Connect(reg, 0, toggle, 0, 1)

Step advances an explicit set of automata by one tick. All connected inputs
are latched from the outputs as they were before the call, then all states
and outputs are updated at once, so the order of the automata in a Step call
does not matter:

	n.Step(toggle, reg) // reg sees toggle's previous output

There is no implicit scheduler: the caller decides which automata tick
together. The Circuit type adds named parts and textual wiring on top of a
Network; the mlib package provides a library of ready made automata.

*/
package moore
