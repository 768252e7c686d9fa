package core

import "testing"

func TestEnsureLenReusesCapacity(t *testing.T) {
	buf := make([]float64, 2, 8)
	got := EnsureLen(buf, 6)
	if len(got) != 6 || cap(got) != 8 {
		t.Fatalf("len=%d cap=%d, want 6/8", len(got), cap(got))
	}

	grown := EnsureLen(buf, 16)
	if len(grown) != 16 {
		t.Fatalf("len=%d, want 16", len(grown))
	}

	if n := len(EnsureLen(buf, -1)); n != 0 {
		t.Fatalf("len=%d, want 0", n)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 1000: 1024, 2048: 2048, 2049: 4096}
	for in, want := range tests {
		if got := NextPowerOfTwo(in); got != want {
			t.Fatalf("NextPowerOfTwo(%d) = %d, want %d", in, got, want)
		}
	}
}
