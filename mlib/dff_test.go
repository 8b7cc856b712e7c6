package mlib_test

import (
	"math/rand"
	"testing"

	"github.com/db47h/moore"
	ml "github.com/db47h/moore/mlib"
	"github.com/db47h/moore/mtest"
)

func randBool(r *rand.Rand) bool {
	return r.Int63()&(1<<62) != 0
}

func TestDFF(t *testing.T) {
	n := moore.NewNetwork()
	dff, err := n.Add(ml.DFFN(4), []uint64{0})
	if err != nil {
		t.Fatal(err)
	}

	var prev uint64
	for i := uint64(15); i < 16; i-- {
		if err = n.SetInput(dff, []uint64{i}); err != nil {
			t.Fatal(err)
		}
		out, _ := n.Output(dff)
		if out.Uint64() != prev {
			t.Fatalf("bad output for input %d before step: expected out = %d, got %d", i, prev, out.Uint64())
		}
		if err = n.Step(dff); err != nil {
			t.Fatal(err)
		}
		out, _ = n.Output(dff)
		if out.Uint64() != i {
			t.Fatalf("bad output for input %d after step: got %d", i, out.Uint64())
		}
		prev = i
	}
}

func TestInput(t *testing.T) {
	mtest.Compare(t, ml.DFFN(8), ml.Input(8), 32)
}

func Test_bit_register(t *testing.T) {
	n := moore.NewNetwork()
	reg, err := n.Add(ml.Register(1), []uint64{0})
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(42))
	var p bool
	for i := 0; i < 1000; i++ {
		in, load := randBool(r), randBool(r)
		b := moore.NewBits(2)
		b.Set(0, in)
		b.Set(1, load)
		if err = n.SetInput(reg, b.Words()); err != nil {
			t.Fatal(err)
		}
		if err = n.Step(reg); err != nil {
			t.Fatal(err)
		}
		if load {
			p = in
		}
		out, _ := n.Output(reg)
		if out.Get(0) != p {
			t.Fatalf("tick %d: expected %v, got %v", i, p, out.Get(0))
		}
	}
}

// A register whose load bit is driven by a toggle only loads every other
// tick.
//
func TestRegister_feedback(t *testing.T) {
	c := moore.NewCircuit(nil)
	if _, err := c.Add("clk", ml.Toggle(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Add("cnt", ml.Counter(4), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Add("reg", ml.Register(4), nil); err != nil {
		t.Fatal(err)
	}
	err := c.Wire("reg.in[0..3] = cnt.out, reg.in[4] = clk.out[0]")
	if err != nil {
		t.Fatal(err)
	}
	if err = c.SetInput("cnt", 1); err != nil {
		t.Fatal(err)
	}
	var got []uint64
	for i := 0; i < 6; i++ {
		if err = c.Step(); err != nil {
			t.Fatal(err)
		}
		out, _ := c.Output("reg")
		got = append(got, out.Uint64())
	}
	// clk: 0 1 0 1 0 1 (before each step), cnt: 0 1 2 3 4 5
	want := []uint64{0, 1, 1, 3, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
