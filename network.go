// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"log/slog"
	"strconv"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultMaxWidth is the default maximum width of any automaton's input,
// output or state vector.
//
const DefaultMaxWidth = 1 << 20

// A Handle identifies an automaton within a Network.
//
// Handles are comparable. The zero Handle is never valid. Once an automaton is
// deleted, its handle stays invalid forever even if the underlying slot gets
// reused.
//
type Handle struct {
	slot uint32
	gen  uint32
}

// IsZero reports whether h is the zero Handle.
//
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	return "#" + strconv.FormatUint(uint64(h.slot), 10) + "." + strconv.FormatUint(uint64(h.gen), 10)
}

type slot struct {
	gen uint32
	a   *automaton
}

// A Network is an arena of automata and of the connections between them.
//
// A Network is not safe for concurrent use. Graph mutations and Step calls
// must be serialized by the caller.
//
type Network struct {
	slots []slot
	free  []uint32
	live  int

	epoch uint64
	steps uint64
	batch []*automaton

	name     string
	attrs    attribute.Set
	log      *slog.Logger
	maxWidth int
	capacity int
}

// An Option configures a Network.
//
type Option func(*Network)

// WithLogger sets the logger used to report graph mutations. Logs are
// discarded by default.
//
func WithLogger(l *slog.Logger) Option {
	return func(n *Network) { n.log = l }
}

// WithName sets the network name. It is attached to every metric recorded
// for that network.
//
func WithName(name string) Option {
	return func(n *Network) { n.name = name }
}

// WithMaxWidth sets the maximum width of any bit vector. Adding an automaton
// with a wider input, output or state fails with ErrResourceExhausted.
//
func WithMaxWidth(bits int) Option {
	return func(n *Network) { n.maxWidth = bits }
}

// WithCapacity limits the number of live automata in the network. Adding more
// fails with ErrResourceExhausted. A capacity <= 0 means unlimited.
//
func WithCapacity(count int) Option {
	return func(n *Network) { n.capacity = count }
}

// NewNetwork returns a new, empty network.
//
func NewNetwork(opts ...Option) *Network {
	n := &Network{
		name:     "default",
		maxWidth: DefaultMaxWidth,
	}
	for _, o := range opts {
		o(n)
	}
	if n.log == nil {
		n.log = slog.New(slog.DiscardHandler)
	}
	n.attrs = attribute.NewSet(attribute.String(networkName, n.name))
	return n
}

// get returns the automaton for h or nil if h is not a live handle.
//
func (n *Network) get(h Handle) *automaton {
	if h.gen == 0 || int(h.slot) >= len(n.slots) {
		return nil
	}
	s := &n.slots[h.slot]
	if s.gen != h.gen {
		return nil
	}
	return s.a
}

// Valid reports whether h designates a live automaton.
//
func (n *Network) Valid(h Handle) bool { return n.get(h) != nil }

// Len returns the number of live automata.
//
func (n *Network) Len() int { return n.live }

// Steps returns the number of successful Step calls.
//
func (n *Network) Steps() uint64 { return n.steps }

// New adds a new automaton to the network with the given input, output and
// state widths, transition and output functions and initial state.
//
// The initial state is truncated or zero-padded to the state width. The
// output is computed from it before New returns.
//
func (n *Network) New(inputs, outputs, states int, t TransitionFn, o OutputFn, initial []uint64) (Handle, error) {
	return n.Add(&Spec{
		Inputs:     inputs,
		Outputs:    outputs,
		States:     states,
		Transition: t,
		Output:     o,
	}, initial)
}

// NewSimple adds a new automaton whose output is its state (IdentityOutput)
// and whose initial state is zero.
//
func (n *Network) NewSimple(inputs, states int, t TransitionFn) (Handle, error) {
	if states <= 0 || t == nil {
		return Handle{}, invalid("new: state width %d or missing transition function", states)
	}
	return n.New(inputs, states, states, t, IdentityOutput, []uint64{})
}

// Add adds a new automaton built from s with the given initial state.
//
// It fails with ErrInvalidArgument if s is nil, s.Outputs or s.States is not
// positive, s.Inputs is negative, a callback is missing or initial is nil. It
// fails with ErrResourceExhausted if a width exceeds the network's maximum or
// the network is full. On failure nothing is added.
//
func (n *Network) Add(s *Spec, initial []uint64) (Handle, error) {
	switch {
	case s == nil:
		return Handle{}, invalid("add: nil spec")
	case s.Outputs <= 0 || s.States <= 0 || s.Inputs < 0:
		return Handle{}, invalid("add %s: invalid widths in=%d out=%d state=%d", s.label(), s.Inputs, s.Outputs, s.States)
	case s.Transition == nil:
		return Handle{}, invalid("add %s: missing transition function", s.label())
	case s.Output == nil:
		return Handle{}, invalid("add %s: missing output function", s.label())
	case initial == nil:
		return Handle{}, invalid("add %s: missing initial state", s.label())
	}
	if s.Inputs > n.maxWidth || s.Outputs > n.maxWidth || s.States > n.maxWidth {
		return Handle{}, exhausted("add %s: width exceeds %d bits", s.label(), n.maxWidth)
	}
	if n.capacity > 0 && n.live >= n.capacity {
		return Handle{}, exhausted("add %s: network full (%d automata)", s.label(), n.capacity)
	}

	a := newAutomaton(s)
	a.state.Load(initial)
	if err := a.project(a.state); err != nil {
		return Handle{}, errors.Wrap(err, "add")
	}
	a.output, a.nextOut = a.nextOut, a.output

	h := n.alloc(a)
	automataLive.Add(bg, 1)
	n.log.Debug("Automaton added",
		slog.String("handle", h.String()),
		slog.String("name", s.Name),
		slog.Int("inputs", s.Inputs),
		slog.Int("outputs", s.Outputs),
		slog.Int("states", s.States),
	)
	return h, nil
}

func (n *Network) alloc(a *automaton) Handle {
	n.live++
	if l := len(n.free); l > 0 {
		i := n.free[l-1]
		n.free = n.free[:l-1]
		n.slots[i].a = a
		return Handle{slot: i, gen: n.slots[i].gen}
	}
	n.slots = append(n.slots, slot{gen: 1, a: a})
	return Handle{slot: uint32(len(n.slots) - 1), gen: 1}
}

// Delete removes an automaton from the network.
//
// All its connections are removed first: its own input bits are disconnected,
// then every input bit it feeds in other automata reverts to an externally
// settable bit.
//
func (n *Network) Delete(h Handle) error {
	a := n.get(h)
	if a == nil {
		return invalid("delete: invalid handle %v", h)
	}
	n.teardown(h, a)

	s := &n.slots[h.slot]
	s.a = nil
	// A slot whose generation wraps is retired: reusing it could revive
	// stale handles.
	if s.gen++; s.gen != 0 {
		n.free = append(n.free, h.slot)
	}
	n.live--
	automataLive.Add(bg, -1)
	n.log.Debug("Automaton deleted", slog.String("handle", h.String()), slog.String("name", a.spec.Name))
	return nil
}

// Spec returns a copy of the Spec an automaton was built from.
//
func (n *Network) Spec(h Handle) (Spec, error) {
	a := n.get(h)
	if a == nil {
		return Spec{}, invalid("spec: invalid handle %v", h)
	}
	return a.spec, nil
}

// SetInput sets the input bits of an automaton that have no incoming edge
// from the bits of words. Bits driven by an edge are left untouched. Missing
// words read as zero.
//
// It fails with ErrInvalidArgument if the automaton has no inputs or words is
// nil.
//
func (n *Network) SetInput(h Handle, words []uint64) error {
	a := n.get(h)
	switch {
	case a == nil:
		return invalid("set input: invalid handle %v", h)
	case a.spec.Inputs == 0:
		return invalid("set input %s: automaton has no inputs", a.spec.label())
	case words == nil:
		return invalid("set input %s: nil input", a.spec.label())
	}
	a.setInput(words)
	return nil
}

// SetState overwrites the state of an automaton, bypassing its transition
// function, and recomputes its output.
//
func (n *Network) SetState(h Handle, words []uint64) error {
	a := n.get(h)
	switch {
	case a == nil:
		return invalid("set state: invalid handle %v", h)
	case words == nil:
		return invalid("set state %s: nil state", a.spec.label())
	}
	return errors.Wrap(a.setState(words), "set state")
}

// Output returns a copy of the current output vector of an automaton.
//
func (n *Network) Output(h Handle) (Bits, error) {
	a := n.get(h)
	if a == nil {
		return Bits{}, invalid("output: invalid handle %v", h)
	}
	return a.output.Clone(), nil
}

// State returns a copy of the current state vector of an automaton.
//
func (n *Network) State(h Handle) (Bits, error) {
	a := n.get(h)
	if a == nil {
		return Bits{}, invalid("state: invalid handle %v", h)
	}
	return a.state.Clone(), nil
}

// Input returns a copy of the current input vector of an automaton.
//
func (n *Network) Input(h Handle) (Bits, error) {
	a := n.get(h)
	if a == nil {
		return Bits{}, invalid("input: invalid handle %v", h)
	}
	return a.input.Clone(), nil
}

// Step advances the given automata by one tick.
//
// Step runs in two phases. First, every input bit with an incoming edge is
// latched from its source's output as it stood before the call. Then every
// automaton computes its next state from the latched input and its next
// output from that state. Results are committed only once all of them have
// been computed, so the outcome does not depend on the order of hs, and a
// failure leaves every automaton untouched.
//
// An automaton listed more than once is advanced once. It fails with
// ErrInvalidArgument if hs is empty or contains an invalid handle.
//
func (n *Network) Step(hs ...Handle) (err error) {
	defer func() { n.measureStep(len(hs), err == nil) }()

	if len(hs) == 0 {
		return invalid("step: empty automaton list")
	}
	n.epoch++
	batch := n.batch[:0]
	for i, h := range hs {
		a := n.get(h)
		if a == nil {
			return invalid("step: invalid handle %v at index %d", h, i)
		}
		if a.epoch == n.epoch {
			continue
		}
		a.epoch = n.epoch
		batch = append(batch, a)
	}
	n.batch = batch[:0]

	// latch
	for _, a := range batch {
		a.nextIn.Copy(a.input)
		for i, src := range a.in {
			if src.valid() {
				a.nextIn.Set(i, n.slots[src.Automaton.slot].a.output.Get(src.Bit))
			}
		}
	}
	// advance
	for _, a := range batch {
		if err := a.transition(a.nextIn, a.state); err != nil {
			return errors.Wrap(err, "step")
		}
		if err := a.project(a.next); err != nil {
			return errors.Wrap(err, "step")
		}
	}
	for _, a := range batch {
		a.commit()
	}
	n.steps++
	return nil
}

// StepN calls Step k times with the same automata.
//
func (n *Network) StepN(k int, hs ...Handle) error {
	for i := 0; i < k; i++ {
		if err := n.Step(hs...); err != nil {
			return errors.Wrapf(err, "tick %d", i)
		}
	}
	return nil
}
