package mlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/moore"
	ml "github.com/db47h/moore/mlib"
	"github.com/db47h/moore/mtest"
)

func TestHalfAdder(t *testing.T) {
	mtest.Compare(t, ml.HalfAdder(), ml.AdderN(1), 64)
}

func TestAdderN(t *testing.T) {
	n := moore.NewNetwork()
	add, err := n.Add(ml.AdderN(16), []uint64{0})
	if err != nil {
		t.Fatal(err)
	}
	f := func(x, y uint16) bool {
		if err := n.SetInput(add, ml.Words([]int{16, 16}, uint64(x), uint64(y))); err != nil {
			t.Fatal(err)
		}
		if err := n.Step(add); err != nil {
			t.Fatal(err)
		}
		out, _ := n.Output(add)
		return out.Uint64() == uint64(x)+uint64(y)
	}
	if err = quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestCounter(t *testing.T) {
	n := moore.NewNetwork()
	cnt, err := n.Add(ml.Counter(4), []uint64{0})
	if err != nil {
		t.Fatal(err)
	}
	if err = n.SetInput(cnt, []uint64{1}); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 20; i++ {
		if err = n.Step(cnt); err != nil {
			t.Fatal(err)
		}
		out, _ := n.Output(cnt)
		if exp := uint64(i % 16); out.Uint64() != exp {
			t.Fatalf("tick %d: expected %d, got %d", i, exp, out.Uint64())
		}
	}
	// disable
	if err = n.SetInput(cnt, []uint64{0}); err != nil {
		t.Fatal(err)
	}
	if err = n.StepN(5, cnt); err != nil {
		t.Fatal(err)
	}
	if out, _ := n.Output(cnt); out.Uint64() != 4 {
		t.Fatalf("expected counter to hold 4, got %d", out.Uint64())
	}
}

func TestCounter_wide(t *testing.T) {
	n := moore.NewNetwork()
	cnt, err := n.Add(ml.Counter(70), []uint64{^uint64(0), 0x3f})
	if err != nil {
		t.Fatal(err)
	}
	if err = n.SetInput(cnt, []uint64{1}); err != nil {
		t.Fatal(err)
	}
	if err = n.Step(cnt); err != nil {
		t.Fatal(err)
	}
	out, _ := n.Output(cnt)
	if out.OnesCount() != 0 {
		t.Fatalf("expected wrap around to 0, got %s", out)
	}
	if err = n.Step(cnt); err != nil {
		t.Fatal(err)
	}
	out, _ = n.Output(cnt)
	if w := out.Words(); w[0] != 1 || w[1] != 0 {
		t.Fatalf("expected 1, got %s", out)
	}
}

func TestToggle(t *testing.T) {
	mtest.TruthTable(t, ml.Toggle(), [][]bool{{true}})
	n := moore.NewNetwork()
	tg, err := n.Add(ml.Toggle(), []uint64{1})
	if err != nil {
		t.Fatal(err)
	}
	for i, e := range []bool{true, false, true, false} {
		out, _ := n.Output(tg)
		if out.Get(0) != e {
			t.Fatalf("tick %d: expected %v, got %v", i, e, out.Get(0))
		}
		if err = n.Step(tg); err != nil {
			t.Fatal(err)
		}
	}
}
