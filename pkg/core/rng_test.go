package core

import (
	"slices"
	"testing"
)

func TestPermutationIsDeterministic(t *testing.T) {
	a := NewRNG(42).Permutation(256)
	b := NewRNG(42).Permutation(256)
	if !slices.Equal(a, b) {
		t.Fatal("same seed must give the same permutation")
	}
	if slices.Equal(a, NewRNG(43).Permutation(256)) {
		t.Fatal("different seeds should shuffle differently")
	}
	sorted := slices.Clone(a)
	slices.Sort(sorted)
	for i, v := range sorted {
		if int(v) != i {
			t.Fatalf("value %d missing from permutation", i)
		}
	}
}

func TestPermutationBounds(t *testing.T) {
	if NewRNG(1).Permutation(0) != nil {
		t.Fatal("n=0 should return nil")
	}
	if got := len(NewRNG(1).Permutation(1000)); got != 256 {
		t.Fatalf("len = %d, want 256", got)
	}
}
