package safemath

import (
	"math"
	"testing"
)

func TestAdd64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOk bool
	}{
		{"zero plus zero", 0, 0, 0, true},
		{"small values", 1, 2, 3, true},
		{"at boundary", math.MaxUint64 - 1, 1, math.MaxUint64, true},
		{"overflow by one", math.MaxUint64, 1, 0, false},
		{"overflow max plus max", math.MaxUint64, math.MaxUint64, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Add64(tt.a, tt.b)
			if ok != tt.wantOk {
				t.Fatalf("Add64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("Add64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSub64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOk bool
	}{
		{"equal", 10000, 10000, 0, true},
		{"remaining bps", 10000, 50, 9950, true},
		{"underflow", 50, 10000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sub64(tt.a, tt.b)
			if ok != tt.wantOk {
				t.Fatalf("Sub64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("Sub64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestMul64(t *testing.T) {
	tests := []struct {
		name   string
		a, b   uint64
		want   uint64
		wantOk bool
	}{
		{"zero", 0, math.MaxUint64, 0, true},
		{"bps scale", 150, 10000, 1500000, true},
		{"at boundary", math.MaxUint64, 1, math.MaxUint64, true},
		{"overflow", math.MaxUint64/10000 + 1, 10000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Mul64(tt.a, tt.b)
			if ok != tt.wantOk {
				t.Fatalf("Mul64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOk)
			}
			if ok && got != tt.want {
				t.Errorf("Mul64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDiv64(t *testing.T) {
	if _, ok := Div64(1, 0); ok {
		t.Fatal("Div64 by zero should not be ok")
	}
	got, ok := Div64(1500000, 9950)
	if !ok || got != 150 {
		t.Fatalf("Div64(1500000, 9950) = %d, %v, want 150, true", got, ok)
	}
}
