package testutil

import "testing"

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] < -1 || a[i] >= 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 16)
	b := DeterministicNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestNoise3Shape(t *testing.T) {
	x := Noise3(5, 4, 3, 2)
	if len(x) != 2 || len(x[0]) != 3 || len(x[1][2]) != 4 {
		t.Fatalf("unexpected shape %d x %d x %d", len(x), len(x[0]), len(x[0][0]))
	}
	if x[0][0][0] == x[1][0][0] {
		t.Fatal("planes share the same noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	if len(imp) != 8 {
		t.Fatalf("len = %d, want 8", len(imp))
	}
	for i, v := range imp {
		if i == 3 {
			if v != 1 {
				t.Fatalf("imp[3] = %v, want 1", v)
			}
		} else if v != 0 {
			t.Fatalf("imp[%d] = %v, want 0", i, v)
		}
	}
}

func TestImpulseOutOfBounds(t *testing.T) {
	imp := Impulse(4, 10)
	for i, v := range imp {
		if v != 0 {
			t.Fatalf("imp[%d] = %v, want all zeros for out-of-bounds pos", i, v)
		}
	}
}

func TestImpulse3(t *testing.T) {
	x := Impulse3(3, 3, 3, 1, 2, 0)
	var sum float64
	for i3 := range x {
		for i2 := range x[i3] {
			for _, v := range x[i3][i2] {
				sum += v
			}
		}
	}
	if sum != 1 || x[0][2][1] != 1 {
		t.Fatalf("impulse misplaced: sum=%v x[0][2][1]=%v", sum, x[0][2][1])
	}
}
