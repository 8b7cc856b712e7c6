// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import (
	"log/slog"

	"github.com/pkg/errors"
)

// Connect connects count consecutive bits: input bits [in, in+count) of
// target are fed by output bits [out, out+count) of source, pairwise.
//
// An input bit has at most one source: connecting an already connected input
// bit replaces its previous edge. Connecting the same pair twice is a no-op.
// source and target may be the same automaton.
//
// It fails with ErrInvalidArgument if a handle is invalid, count is not
// positive or a bit range exceeds the corresponding width.
//
func (n *Network) Connect(target Handle, in int, source Handle, out int, count int) error {
	t, s := n.get(target), n.get(source)
	switch {
	case t == nil:
		return invalid("connect: invalid target %v", target)
	case s == nil:
		return invalid("connect: invalid source %v", source)
	case count <= 0:
		return invalid("connect: bit count %d", count)
	case !inRange(in, count, t.spec.Inputs):
		return invalid("connect: %d input bits at %d out of %s's %d inputs", count, in, t.spec.label(), t.spec.Inputs)
	case !inRange(out, count, s.spec.Outputs):
		return invalid("connect: %d output bits at %d out of %s's %d outputs", count, out, s.spec.label(), s.spec.Outputs)
	}

	for i := 0; i < count; i++ {
		dst := Pin{target, in + i}
		src := Pin{source, out + i}
		if old := t.in[dst.Bit]; old.valid() {
			n.unlink(old, dst)
		}
		t.in[dst.Bit] = src
		s.addTarget(src.Bit, dst)
	}
	n.log.Debug("Connected",
		slog.String("target", target.String()),
		slog.Int("in", in),
		slog.String("source", source.String()),
		slog.Int("out", out),
		slog.Int("count", count),
	)
	return nil
}

// Disconnect removes the incoming edges of input bits [in, in+count) of
// target. Bits that are not connected are skipped. Disconnected bits become
// settable through SetInput again and keep their last latched value.
//
func (n *Network) Disconnect(target Handle, in int, count int) error {
	t := n.get(target)
	switch {
	case t == nil:
		return invalid("disconnect: invalid target %v", target)
	case count <= 0:
		return invalid("disconnect: bit count %d", count)
	case !inRange(in, count, t.spec.Inputs):
		return invalid("disconnect: %d input bits at %d out of %s's %d inputs", count, in, t.spec.label(), t.spec.Inputs)
	}
	n.disconnect(target, t, in, count)
	n.log.Debug("Disconnected",
		slog.String("target", target.String()),
		slog.Int("in", in),
		slog.Int("count", count),
	)
	return nil
}

// inRange reports whether bits [from, from+count) fit in width bits. count
// must be positive.
//
func inRange(from, count, width int) bool {
	return from >= 0 && from <= width && count <= width-from
}

func (n *Network) disconnect(h Handle, t *automaton, in, count int) {
	for i := in; i < in+count; i++ {
		src := t.in[i]
		if !src.valid() {
			continue
		}
		t.in[i] = Pin{}
		n.unlink(src, Pin{h, i})
	}
}

// unlink removes dst from the outgoing set of src.
//
func (n *Network) unlink(src, dst Pin) {
	if a := n.get(src.Automaton); a != nil && src.Bit < len(a.out) {
		a.removeTarget(src.Bit, dst)
	}
}

// teardown removes every edge that references h, in both directions.
//
func (n *Network) teardown(h Handle, a *automaton) {
	if len(a.in) > 0 {
		n.disconnect(h, a, 0, len(a.in))
	}
	for b, ts := range a.out {
		src := Pin{h, b}
		for _, dst := range ts {
			if t := n.get(dst.Automaton); t != nil && dst.Bit < len(t.in) && t.in[dst.Bit] == src {
				t.in[dst.Bit] = Pin{}
			}
		}
		a.out[b] = nil
	}
}

// Source returns the output bit feeding input bit in of h. ok is false if that
// input bit is not connected, or if h or in are invalid.
//
func (n *Network) Source(h Handle, in int) (p Pin, ok bool) {
	a := n.get(h)
	if a == nil || in < 0 || in >= len(a.in) {
		return Pin{}, false
	}
	p = a.in[in]
	return p, p.valid()
}

// Targets returns the input bits fed by output bit out of h.
//
func (n *Network) Targets(h Handle, out int) []Pin {
	a := n.get(h)
	if a == nil || out < 0 || out >= len(a.out) || len(a.out[out]) == 0 {
		return nil
	}
	ts := make([]Pin, len(a.out[out]))
	copy(ts, a.out[out])
	return ts
}

// Edges returns all the edges in the network, ordered by target.
//
func (n *Network) Edges() []Edge {
	var es []Edge
	for i, s := range n.slots {
		if s.a == nil {
			continue
		}
		h := Handle{uint32(i), s.gen}
		for b, src := range s.a.in {
			if src.valid() {
				es = append(es, Edge{Source: src, Target: Pin{h, b}})
			}
		}
	}
	return es
}

// Verify checks the network's internal invariants: every incoming edge is
// mirrored exactly once in its source's outgoing set and vice versa, edges
// only reference live automata, and no bit vector has bits set beyond its
// width. It returns the first violation found.
//
func (n *Network) Verify() error {
	for i, s := range n.slots {
		a := s.a
		if a == nil {
			continue
		}
		h := Handle{uint32(i), s.gen}
		for _, v := range []Bits{a.input, a.state, a.output} {
			if !v.clean() {
				return errors.Errorf("%v: bits set beyond width %d", h, v.n)
			}
		}
		for b, src := range a.in {
			if !src.valid() {
				continue
			}
			sa := n.get(src.Automaton)
			if sa == nil {
				return errors.Errorf("%v.in[%d]: dangling source %v", h, b, src.Automaton)
			}
			if src.Bit < 0 || src.Bit >= len(sa.out) {
				return errors.Errorf("%v.in[%d]: source bit %d out of range", h, b, src.Bit)
			}
			if c := count(sa.out[src.Bit], Pin{h, b}); c != 1 {
				return errors.Errorf("%v.in[%d]: mirrored %d times at %v.out[%d]", h, b, c, src.Automaton, src.Bit)
			}
		}
		for b, ts := range a.out {
			for _, dst := range ts {
				ta := n.get(dst.Automaton)
				if ta == nil {
					return errors.Errorf("%v.out[%d]: dangling target %v", h, b, dst.Automaton)
				}
				if dst.Bit < 0 || dst.Bit >= len(ta.in) || ta.in[dst.Bit] != (Pin{h, b}) {
					return errors.Errorf("%v.out[%d]: target %v.in[%d] not mirrored", h, b, dst.Automaton, dst.Bit)
				}
				if c := count(ts, dst); c != 1 {
					return errors.Errorf("%v.out[%d]: duplicate target %v.in[%d]", h, b, dst.Automaton, dst.Bit)
				}
			}
		}
	}
	return nil
}

func count(ps []Pin, p Pin) int {
	c := 0
	for _, q := range ps {
		if q == p {
			c++
		}
	}
	return c
}
