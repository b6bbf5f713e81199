package balance

import (
	"math/big"
	"testing"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad big int %q", s)
	}
	return n
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		decimals int
		places   int
		want     string
	}{
		{"one ether", "1000000000000000000", 18, 6, "1.000000"},
		{"zero", "0", 18, 6, "0.000000"},
		{"one wei", "1", 18, 6, "0.000000"},
		{"round down", "1234567400000000000", 18, 6, "1.234567"},
		{"round half up", "1234567500000000000", 18, 6, "1.234568"},
		{"carry into integer", "999999999999999999", 18, 6, "1.000000"},
		{"large", "123456789000000000000000000", 18, 6, "123456789.000000"},
		{"six decimals token", "2500000", 6, 6, "2.500000"},
		{"no places", "1500000000000000000", 18, 0, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatUnits(mustBig(t, tt.value), tt.decimals, tt.places)
			if got != tt.want {
				t.Errorf("FormatUnits(%s, %d, %d) = %q, want %q", tt.value, tt.decimals, tt.places, got, tt.want)
			}
		})
	}
}

func TestFormatUnits_Nil(t *testing.T) {
	if got := FormatUnits(nil, 18, 6); got != "0.000000" {
		t.Errorf("FormatUnits(nil) = %q, want 0.000000", got)
	}
}
