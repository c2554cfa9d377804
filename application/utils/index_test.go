package utils

import "testing"

func TestMaskIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"452188369012", "XXXX XXXX 9012"},
		{"4521 8836 9012", "XXXX XXXX 9012"},
		{"", ""},
		{"12", "XXXX XXXX XXXX"},
	}
	for _, tt := range tests {
		if got := MaskIdentifier(tt.in); got != tt.want {
			t.Errorf("MaskIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"452188369012", "4521 8836 9012"},
		{"4521", "4521"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatIdentifier(tt.in); got != tt.want {
			t.Errorf("FormatIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
