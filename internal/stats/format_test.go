package stats

import (
	"math"
	"testing"
)

func TestFormatAverage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"정수", 3, "3.0"},
		{"소수", 3.5, "3.50"},
		{"반올림", 2.125, "2.13"},
		{"순환소수", 10.0 / 3, "3.33"},
		{"NaN", math.NaN(), "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAverage(tt.in); got != tt.want {
				t.Fatalf("FormatAverage(%v)=%q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseScore_ExcludesInvalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", " ", "abc", "0", "-1", "NaN"} {
		if _, ok := parseScore(raw); ok {
			t.Fatalf("parseScore(%q) should be invalid", raw)
		}
	}
	if v, ok := parseScore(" 4 "); !ok || v != 4 {
		t.Fatalf("parseScore(\" 4 \")=%v,%v", v, ok)
	}
}

func TestZeroAverage_Empty(t *testing.T) {
	t.Parallel()

	if got := ZeroAverage(0, 0); got != 0 {
		t.Fatalf("ZeroAverage(0,0)=%v, want 0", got)
	}
	if got := ZeroAverage(10, 3); got != 3.33 {
		t.Fatalf("ZeroAverage(10,3)=%v, want 3.33", got)
	}
}

func TestParseLeadingInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{" 12명", 12, true},
		{"-2", -2, true},
		{"", 0, false},
		{"x", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLeadingInt(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("parseLeadingInt(%q)=%d,%v want %d,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRoundInt_HalfUp(t *testing.T) {
	t.Parallel()

	if got := roundInt(2.5); got != 3 {
		t.Fatalf("roundInt(2.5)=%d", got)
	}
	if got := roundInt(-2.5); got != -2 {
		t.Fatalf("roundInt(-2.5)=%d", got)
	}
}
