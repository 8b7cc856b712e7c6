// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

// A TransitionFn computes the next state of an automaton from its current
// input and state and writes it to next.
//
// next is a zeroed vector of the automaton's state width. input and state are
// scratch copies: writing to them has no effect on the automaton. A
// TransitionFn must not call back into the Network.
//
type TransitionFn func(next *Bits, input, state Bits)

// An OutputFn projects the state of an automaton to its output vector.
//
// out is a zeroed vector of the automaton's output width. state is a scratch
// copy.
//
type OutputFn func(out *Bits, state Bits)

// IdentityOutput is an OutputFn that copies the state to the output,
// truncated or zero-padded to the output width.
//
func IdentityOutput(out *Bits, state Bits) {
	out.Copy(state)
}

// A Spec is the blueprint of a Moore automaton: its input, output and state
// widths (in bits) together with its transition and output functions.
//
// The same Spec can be used to add any number of automata to a Network.
//
type Spec struct {
	// Name is an optional label used in logs and error messages.
	Name string
	// Inputs is the input width. May be 0.
	Inputs int
	// Outputs is the output width. Must be > 0.
	Outputs int
	// States is the state width. Must be > 0.
	States int

	Transition TransitionFn
	Output     OutputFn
}

func (s *Spec) label() string {
	if s.Name == "" {
		return "automaton"
	}
	return s.Name
}

// Pin designates one input or output bit of an automaton.
//
type Pin struct {
	Automaton Handle
	Bit       int
}

func (p Pin) valid() bool { return !p.Automaton.IsZero() }

// An Edge links a source output bit to a target input bit.
//
type Edge struct {
	Source Pin // output bit
	Target Pin // input bit
}

// automaton is an arena slot's content.
//
// input, state and output form the current frame. nextIn, next and nextOut
// form the frame being computed by Step and are swapped in on commit.
//
type automaton struct {
	spec Spec

	input, state, output  Bits
	nextIn, next, nextOut Bits

	// callbacks read copies of the input and state so that writes to them
	// never reach a committed frame.
	viewIn, viewState Bits

	in  []Pin   // incoming edge by input bit. The zero Pin means none.
	out [][]Pin // outgoing edges by output bit.

	epoch uint64 // last Step call that batched this automaton
}

func newAutomaton(s *Spec) *automaton {
	return &automaton{
		spec:    *s,
		input:   NewBits(s.Inputs),
		state:   NewBits(s.States),
		output:  NewBits(s.Outputs),
		nextIn:  NewBits(s.Inputs),
		next:    NewBits(s.States),
		nextOut: NewBits(s.Outputs),

		viewIn:    NewBits(s.Inputs),
		viewState: NewBits(s.States),

		in:  make([]Pin, s.Inputs),
		out: make([][]Pin, s.Outputs),
	}
}

// transition runs the transition function into a.next.
//
func (a *automaton) transition(input, state Bits) error {
	a.viewIn.Copy(input)
	a.viewState.Copy(state)
	next := a.next
	next.Zero()
	a.spec.Transition(&next, a.viewIn, a.viewState)
	if next.n != a.spec.States {
		return invalid("%s: transition produced %d bits, want %d", a.spec.label(), next.n, a.spec.States)
	}
	// next may have been replaced by the callback. Copy back so that a.next
	// keeps its own storage.
	a.next.Copy(next)
	return nil
}

// project runs the output function over state into a.nextOut.
//
func (a *automaton) project(state Bits) error {
	a.viewState.Copy(state)
	out := a.nextOut
	out.Zero()
	a.spec.Output(&out, a.viewState)
	if out.n != a.spec.Outputs {
		return invalid("%s: output function produced %d bits, want %d", a.spec.label(), out.n, a.spec.Outputs)
	}
	a.nextOut.Copy(out)
	return nil
}

// commit swaps the computed frame in.
//
func (a *automaton) commit() {
	a.input, a.nextIn = a.nextIn, a.input
	a.state, a.next = a.next, a.state
	a.output, a.nextOut = a.nextOut, a.output
}

// setInput copies the bits of words into every input bit that has no
// incoming edge. Missing words read as zero.
//
func (a *automaton) setInput(words []uint64) {
	for i, src := range a.in {
		if src.valid() {
			continue
		}
		w := i / wordBits
		a.input.Set(i, w < len(words) && words[w]&(1<<uint(i%wordBits)) != 0)
	}
}

// setState loads words as the new state and recomputes the output. Either
// both are updated or neither.
//
func (a *automaton) setState(words []uint64) error {
	a.next.Load(words)
	if err := a.project(a.next); err != nil {
		return err
	}
	a.state, a.next = a.next, a.state
	a.output, a.nextOut = a.nextOut, a.output
	return nil
}

func (a *automaton) addTarget(bit int, p Pin) {
	for _, t := range a.out[bit] {
		if t == p {
			return
		}
	}
	a.out[bit] = append(a.out[bit], p)
}

func (a *automaton) removeTarget(bit int, p Pin) {
	ts := a.out[bit]
	for i, t := range ts {
		if t == p {
			a.out[bit] = append(ts[:i], ts[i+1:]...)
			return
		}
	}
}
