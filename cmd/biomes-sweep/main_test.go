package main

import (
	"slices"
	"testing"
)

func TestParseSweeps(t *testing.T) {
	got, err := parseSweeps(kvList{"sea_level=0, 0.1", "octaves=4", "sea_level=0.2"})
	if err != nil {
		t.Fatalf("parseSweeps: %v", err)
	}
	if !slices.Equal(got["sea_level"], []string{"0", "0.1", "0.2"}) {
		t.Fatalf("sea_level = %v", got["sea_level"])
	}
	if !slices.Equal(got["octaves"], []string{"4"}) {
		t.Fatalf("octaves = %v", got["octaves"])
	}
	for _, bad := range []string{"sea_level", "=1", "octaves="} {
		if _, err := parseSweeps(kvList{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
