// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"github.com/pkg/errors"
)

// A Circuit is a set of named automata (parts) in a Network that are stepped
// together.
//
// Parts are wired with connection strings (see ParseConnections):
//
//	c := moore.NewCircuit(nil)
//	c.Add("clk", mlib.Toggle(), nil)
//	c.Add("cnt", mlib.Counter(8), nil)
//	err := c.Wire("cnt.in = clk.out")
//
type Circuit struct {
	net   *Network
	parts map[string]Handle
	names []string // in insertion order
}

// NewCircuit returns a new empty circuit backed by n. If n is nil, a new
// Network with default options is used.
//
func NewCircuit(n *Network) *Circuit {
	if n == nil {
		n = NewNetwork()
	}
	return &Circuit{
		net:   n,
		parts: make(map[string]Handle),
	}
}

// Network returns the network backing c.
//
func (c *Circuit) Network() *Network { return c.net }

// Add adds a part built from s to the circuit. If initial is nil, the initial
// state is zero.
//
func (c *Circuit) Add(name string, s *Spec, initial []uint64) (Handle, error) {
	if !isIdent(name) {
		return Handle{}, invalid("add: invalid part name %q", name)
	}
	if _, ok := c.parts[name]; ok {
		return Handle{}, invalid("add: duplicate part name %q", name)
	}
	if initial == nil {
		initial = []uint64{}
	}
	h, err := c.net.Add(s, initial)
	if err != nil {
		return Handle{}, errors.Wrap(err, name)
	}
	c.parts[name] = h
	c.names = append(c.names, name)
	return h, nil
}

// Remove deletes the named part and all its connections.
//
func (c *Circuit) Remove(name string) error {
	h, ok := c.parts[name]
	if !ok {
		return invalid("remove: unknown part %q", name)
	}
	if err := c.net.Delete(h); err != nil {
		return errors.Wrap(err, name)
	}
	delete(c.parts, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
	return nil
}

// Handle returns the handle of the named part.
//
func (c *Circuit) Handle(name string) (Handle, bool) {
	h, ok := c.parts[name]
	return h, ok
}

// Parts returns the part names in insertion order.
//
func (c *Circuit) Parts() []string {
	ns := make([]string, len(c.names))
	copy(ns, c.names)
	return ns
}

type link struct {
	target, source Handle
	in, out, count int
}

// Wire connects parts according to the given connection string. All
// connections are validated before any is made.
//
func (c *Circuit) Wire(conns string) error {
	ls, err := ParseConnections(conns)
	if err != nil {
		return err
	}
	resolved := make([]link, 0, len(ls))
	for _, l := range ls {
		r, err := c.resolve(l)
		if err != nil {
			return errors.Wrapf(err, "wire %s = %s", l.In, l.Out)
		}
		resolved = append(resolved, r)
	}
	for _, r := range resolved {
		if err := c.net.Connect(r.target, r.in, r.source, r.out, r.count); err != nil {
			return err
		}
	}
	return nil
}

func (c *Circuit) resolve(l Link) (link, error) {
	t, ok := c.parts[l.In.Part]
	if !ok {
		return link{}, invalid("unknown part %q", l.In.Part)
	}
	s, ok := c.parts[l.Out.Part]
	if !ok {
		return link{}, invalid("unknown part %q", l.Out.Part)
	}
	ta, sa := c.net.get(t), c.net.get(s)
	r := link{target: t, source: s, in: l.In.From, out: l.Out.From, count: l.In.Count}
	switch {
	case l.In.Count == 0 && l.Out.Count == 0:
		if ta.spec.Inputs != sa.spec.Outputs {
			return link{}, invalid("width mismatch: %d inputs, %d outputs", ta.spec.Inputs, sa.spec.Outputs)
		}
		r.count = ta.spec.Inputs
	case l.In.Count == 0:
		r.count = l.Out.Count
	}
	if r.count <= 0 || !inRange(r.in, r.count, ta.spec.Inputs) {
		return link{}, invalid("input range out of %d inputs", ta.spec.Inputs)
	}
	if !inRange(r.out, r.count, sa.spec.Outputs) {
		return link{}, invalid("output range out of %d outputs", sa.spec.Outputs)
	}
	return r, nil
}

// Unwire disconnects the given comma separated input ranges, like
// "reg.in[0..3], add.in". A range without brackets designates all the
// part's inputs.
//
func (c *Circuit) Unwire(ins string) error {
	rs, err := parseInputs(ins)
	if err != nil {
		return err
	}
	for _, r := range rs {
		h, ok := c.parts[r.Part]
		if !ok {
			return invalid("unwire: unknown part %q", r.Part)
		}
		count := r.Count
		if count == 0 {
			count = c.net.get(h).spec.Inputs
		}
		if err := c.net.Disconnect(h, r.From, count); err != nil {
			return errors.Wrap(err, r.String())
		}
	}
	return nil
}

// SetInput sets the unconnected input bits of the named part.
//
func (c *Circuit) SetInput(name string, words ...uint64) error {
	h, ok := c.parts[name]
	if !ok {
		return invalid("set input: unknown part %q", name)
	}
	if words == nil {
		words = []uint64{}
	}
	return c.net.SetInput(h, words)
}

// Output returns the current output of the named part.
//
func (c *Circuit) Output(name string) (Bits, error) {
	h, ok := c.parts[name]
	if !ok {
		return Bits{}, invalid("output: unknown part %q", name)
	}
	return c.net.Output(h)
}

// Step advances all the parts of c by one tick.
//
func (c *Circuit) Step() error {
	hs := make([]Handle, len(c.names))
	for i, n := range c.names {
		hs[i] = c.parts[n]
	}
	return c.net.Step(hs...)
}

// StepN advances all the parts of c by k ticks.
//
func (c *Circuit) StepN(k int) error {
	for i := 0; i < k; i++ {
		if err := c.Step(); err != nil {
			return errors.Wrapf(err, "tick %d", i)
		}
	}
	return nil
}
