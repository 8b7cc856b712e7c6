// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package mtest provides utility functions for testing automata and
// networks.
//
package mtest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/db47h/moore"
	"github.com/google/go-cmp/cmp"
)

// Seed is the seed used for random input generation. Tests are reproducible
// for a given Seed.
//
var Seed int64 = 1

// Verify fails the test if n's invariants do not hold.
//
func Verify(t testing.TB, n *moore.Network) {
	t.Helper()
	if err := n.Verify(); err != nil {
		t.Fatalf("%+v", err)
	}
}

func randWords(r *rand.Rand, bits int) []uint64 {
	w := make([]uint64, (bits+63)/64)
	for i := range w {
		w[i] = r.Uint64()
	}
	return w
}

// Compare takes two specs and compares their outputs given the same sequence
// of random inputs over the given number of ticks. Both specs must have the
// same input and output widths. Both automata start from a zero state.
//
func Compare(t testing.TB, s1, s2 *moore.Spec, ticks int) {
	t.Helper()

	if s1.Inputs != s2.Inputs || s1.Outputs != s2.Outputs {
		t.Fatalf("%s and %s have different interfaces: in %d/%d, out %d/%d", s1.Name, s2.Name, s1.Inputs, s2.Inputs, s1.Outputs, s2.Outputs)
	}

	n := moore.NewNetwork()
	a1, err := n.Add(s1, make([]uint64, (s1.States+63)/64))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	a2, err := n.Add(s2, make([]uint64, (s2.States+63)/64))
	if err != nil {
		t.Fatalf("%+v", err)
	}

	r := rand.New(rand.NewSource(Seed))
	var history []string
	for i := 0; i <= ticks; i++ {
		o1, _ := n.Output(a1)
		o2, _ := n.Output(a2)
		if diff := cmp.Diff(o1.String(), o2.String()); diff != "" {
			t.Fatalf("%s and %s differ at tick %d (-%s +%s):\n%s\ninputs:\n%s", s1.Name, s2.Name, i, s1.Name, s2.Name, diff, strings.Join(history, "\n"))
		}
		if i == ticks {
			break
		}
		if s1.Inputs > 0 {
			in := randWords(r, s1.Inputs)
			if err = n.SetInput(a1, in); err == nil {
				err = n.SetInput(a2, in)
			}
			if err != nil {
				t.Fatalf("%+v", err)
			}
			b := moore.MakeBits(s1.Inputs, in...)
			history = append(history, b.String())
		}
		if err = n.Step(a1, a2); err != nil {
			t.Fatalf("%+v", err)
		}
	}
}

// TruthTable checks a part against a truth table. Each input combination is
// set, the part is stepped once and its outputs are checked.
//
// want[o][i] is the expected value of output bit o for input combination i,
// where the first input bit is the most significant bit of i:
//
//	// a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
//	mtest.TruthTable(t, mlib.And(), [][]bool{{false, false, false, true}})
//
func TruthTable(t testing.TB, s *moore.Spec, want [][]bool) {
	t.Helper()
	n := moore.NewNetwork()
	h, err := n.Add(s, make([]uint64, (s.States+63)/64))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	in := moore.NewBits(s.Inputs)
	tot := 1 << uint(s.Inputs)
	for i := 0; i < tot; i++ {
		for bit := 0; bit < s.Inputs; bit++ {
			in.Set(s.Inputs-bit-1, i&(1<<uint(bit)) != 0)
		}
		if s.Inputs > 0 {
			if err = n.SetInput(h, in.Words()); err != nil {
				t.Fatalf("%+v", err)
			}
		}
		if err = n.Step(h); err != nil {
			t.Fatalf("%+v", err)
		}
		out, _ := n.Output(h)
		for o := range want {
			if got := out.Get(o); got != want[o][i] {
				t.Errorf("%s in=%s: out[%d]: want %v, got %v", s.Name, in, o, want[o][i], got)
			}
		}
	}
}
