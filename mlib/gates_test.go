package mlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/moore"
	ml "github.com/db47h/moore/mlib"
)

func Test_gateN_builtin(t *testing.T) {
	td := []struct {
		gate *moore.Spec
		ctrl func(a, b uint16) uint16
	}{
		{ml.AndN(16), func(a, b uint16) uint16 { return a & b }},
		{ml.NandN(16), func(a, b uint16) uint16 { return ^(a & b) }},
		{ml.OrN(16), func(a, b uint16) uint16 { return a | b }},
		{ml.NorN(16), func(a, b uint16) uint16 { return ^(a | b) }},
		{ml.XorN(16), func(a, b uint16) uint16 { return a ^ b }},
		{ml.GateN("ANDNOT", 16, func(a, b bool) bool { return a && !b }), func(a, b uint16) uint16 { return a &^ b }},
	}

	for _, d := range td {
		t.Run(d.gate.Name, func(t *testing.T) {
			n := moore.NewNetwork()
			g, err := n.Add(d.gate, []uint64{0})
			if err != nil {
				t.Fatal(err)
			}
			f := func(x, y uint16) bool {
				if err := n.SetInput(g, ml.Words([]int{16, 16}, uint64(x), uint64(y))); err != nil {
					t.Fatal(err)
				}
				if err := n.Step(g); err != nil {
					t.Fatal(err)
				}
				out, _ := n.Output(g)
				return uint16(out.Uint64()) == d.ctrl(x, y)
			}
			if err = quick.Check(f, nil); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestNotN(t *testing.T) {
	n := moore.NewNetwork()
	g, err := n.Add(ml.NotN(16), []uint64{0})
	if err != nil {
		t.Fatal(err)
	}
	f := func(x uint16) bool {
		if err := n.SetInput(g, []uint64{uint64(x)}); err != nil {
			t.Fatal(err)
		}
		if err := n.Step(g); err != nil {
			t.Fatal(err)
		}
		out, _ := n.Output(g)
		return uint16(out.Uint64()) == ^x && out.Uint64()>>16 == 0
	}
	if err = quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

// Test that gate outputs lag their inputs by one tick.
//
func TestGate_latency(t *testing.T) {
	c := moore.NewCircuit(nil)
	if _, err := c.Add("in", ml.Input(2), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Add("and", ml.And(), nil); err != nil {
		t.Fatal(err)
	}
	if err := c.Wire("and.in = in.out"); err != nil {
		t.Fatal(err)
	}
	if err := c.SetInput("in", 3); err != nil {
		t.Fatal(err)
	}
	expect := []bool{false, true, true}
	for i, e := range expect {
		if err := c.Step(); err != nil {
			t.Fatal(err)
		}
		out, _ := c.Output("and")
		if out.Get(0) != e {
			t.Fatalf("tick %d: expected %v, got %v", i, e, out.Get(0))
		}
	}
}
