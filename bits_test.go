package moore_test

import (
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/db47h/moore"
	"github.com/google/go-cmp/cmp"
)

// clean reports whether the bits of b beyond its width are zero.
//
func clean(b moore.Bits) bool {
	w := b.Words()
	if len(w) != (b.Width()+63)/64 {
		return false
	}
	if r := b.Width() % 64; r != 0 {
		return w[len(w)-1]>>uint(r) == 0
	}
	return true
}

func TestBits_trailing(t *testing.T) {
	f := func(width uint8, words []uint64, ops []uint16) bool {
		n := int(width)
		b := moore.MakeBits(n, words...)
		if !clean(b) {
			return false
		}
		if n == 0 {
			return b.Width() == 0 && len(b.Words()) == 0
		}
		for _, op := range ops {
			i := int(op) % n
			switch op % 5 {
			case 0:
				b.Set(i, true)
			case 1:
				b.Toggle(i)
			case 2:
				b.SetUint64(^uint64(0))
			case 3:
				b.Load(words)
			case 4:
				b.Copy(moore.MakeBits(n+int(op%70), ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)))
			}
			if !clean(b) {
				return false
			}
		}
		return true
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestBits_get_set(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	b := moore.NewBits(130)
	ref := make([]bool, 130)
	for i := 0; i < 1000; i++ {
		j := r.Intn(130)
		v := r.Intn(2) == 1
		b.Set(j, v)
		ref[j] = v
	}
	for i, v := range ref {
		if b.Get(i) != v {
			t.Fatalf("bit %d: expected %v", i, v)
		}
	}
	c := 0
	for _, v := range ref {
		if v {
			c++
		}
	}
	if b.OnesCount() != c {
		t.Fatalf("expected %d bits set, got %d", c, b.OnesCount())
	}
}

func TestBits_panics(t *testing.T) {
	td := map[string]func(){
		"get":      func() { moore.NewBits(3).Get(3) },
		"negative": func() { moore.NewBits(3).Get(-1) },
		"set": func() {
			b := moore.NewBits(64)
			b.Set(64, true)
		},
		"width": func() { moore.NewBits(-1) },
	}
	for name, f := range td {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			f()
		})
	}
}

func TestBits_copy(t *testing.T) {
	td := []struct {
		width int
		src   moore.Bits
		want  []uint64
	}{
		{4, moore.MakeBits(8, 0xab), []uint64{0xb}},
		{8, moore.MakeBits(4, 0xf), []uint64{0xf}},
		{70, moore.MakeBits(128, ^uint64(0), ^uint64(0)), []uint64{^uint64(0), 0x3f}},
		{128, moore.MakeBits(3, 5), []uint64{5, 0}},
		{3, moore.Bits{}, []uint64{0}},
	}
	for _, d := range td {
		b := moore.MakeBits(d.width, ^uint64(0), ^uint64(0))
		b.Copy(d.src)
		if diff := cmp.Diff(d.want, b.Words()); diff != "" {
			t.Errorf("copy %s into %d bits: (-want +got)\n%s", d.src, d.width, diff)
		}
	}
}

func TestBits_clone(t *testing.T) {
	a := moore.MakeBits(10, 0x2aa)
	b := a.Clone()
	b.Toggle(0)
	if a.Equal(b) || a.Get(0) {
		t.Fatal("clone shares storage")
	}
	b.Toggle(0)
	if !a.Equal(b) {
		t.Fatal("expected equal vectors")
	}
	if a.Equal(moore.MakeBits(11, 0x2aa)) {
		t.Fatal("vectors of different widths compare equal")
	}
	if s := a.String(); s != "1010101010" {
		t.Fatalf("unexpected string %q", s)
	}
}
