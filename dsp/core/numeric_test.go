package core

import (
	"math"
	"testing"
)

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		want bool
	}{
		{name: "zero", x: 0, want: true},
		{name: "negative", x: -3.5, want: true},
		{name: "nan", x: math.NaN(), want: false},
		{name: "+inf", x: math.Inf(1), want: false},
		{name: "-inf", x: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFinite(tt.x); got != tt.want {
				t.Fatalf("IsFinite(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestAllFinite(t *testing.T) {
	if !AllFinite([]float64{1, 2, 3}) {
		t.Fatal("expected finite slice")
	}
	if AllFinite([]float64{1, math.NaN(), 3}) {
		t.Fatal("expected NaN to be detected")
	}
	if !AllFinite(nil) {
		t.Fatal("empty slice should be finite")
	}
}

func TestMaxAbsDiff(t *testing.T) {
	got := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if got != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", got)
	}
	if MaxAbsDiff([]float64{1}, nil) != 0 {
		t.Fatal("expected zero over empty common length")
	}
}
