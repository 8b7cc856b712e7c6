package mlib_test

import (
	"testing"

	"github.com/db47h/moore"
	ml "github.com/db47h/moore/mlib"
	"github.com/db47h/moore/mtest"
)

func Test_gate_builtin(t *testing.T) {
	td := []struct {
		name   string
		gate   *moore.Spec
		result [][]bool // a=0 && b=0, a=0 && b=1, a=1 && b=0, a=1 && b=1
	}{
		{"NOT", ml.Not(), [][]bool{{true, false}}},
		{"AND", ml.And(), [][]bool{{false, false, false, true}}},
		{"NAND", ml.Nand(), [][]bool{{true, true, true, false}}},
		{"OR", ml.Or(), [][]bool{{false, true, true, true}}},
		{"NOR", ml.Nor(), [][]bool{{true, false, false, false}}},
		{"XOR", ml.Xor(), [][]bool{{false, true, true, false}}},
		{"XNOR", ml.Xnor(), [][]bool{{true, false, false, true}}},
		{"MUX", ml.Mux(), [][]bool{{false, false, false, true, true, false, true, true}}},
		{"DMUX", ml.DMux(), [][]bool{{false, false, true, false}, {false, false, false, true}}},
		{"HalfAdder", ml.HalfAdder(), [][]bool{{false, true, true, false}, {false, false, false, true}}},
		{"FullAdder", ml.FullAdder(), [][]bool{
			{false, true, true, false, true, false, false, true},
			{false, false, false, true, false, true, true, true},
		}},
		{"OR3Way", ml.OrNWay(3), [][]bool{{false, true, true, true, true, true, true, true}}},
		{"AND3Way", ml.AndNWay(3), [][]bool{{false, false, false, false, false, false, false, true}}},
		{"DFF", ml.DFF(), [][]bool{{false, true}}},
	}
	for _, d := range td {
		t.Run(d.name, func(t *testing.T) {
			mtest.TruthTable(t, d.gate, d.result)
		})
	}
}

func TestWords(t *testing.T) {
	w := ml.Words([]int{4, 4, 1}, 0x5, 0xa, 1)
	if len(w) != 1 || w[0] != 0x1a5 {
		t.Fatalf("expected [0x1a5], got %#x", w)
	}
	b := moore.MakeBits(9, w...)
	if a := ml.Uint64(b, 0, 4); a != 0x5 {
		t.Errorf("expected a = 5, got %d", a)
	}
	if v := ml.Uint64(b, 4, 4); v != 0xa {
		t.Errorf("expected b = 10, got %d", v)
	}
	if !b.Get(8) {
		t.Error("expected bit 8 set")
	}
}

func TestConstant(t *testing.T) {
	n := moore.NewNetwork()
	c, err := n.Add(ml.Constant(12), []uint64{0xabc})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		out, _ := n.Output(c)
		if out.Uint64() != 0xabc {
			t.Fatalf("tick %d: expected 0xabc, got %#x", i, out.Uint64())
		}
		if err = n.Step(c); err != nil {
			t.Fatal(err)
		}
	}
}
