package assembly

import (
	"math"
	"testing"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{"deux décimales", 12.5, "12,50 €"},
		{"zéro", 0, "0,00 €"},
		{"entier", 9, "9,00 €"},
		{"arrondi", 7.999, "8,00 €"},
		{"NaN ramené à zéro", math.NaN(), "0,00 €"},
		{"négatif ramené à zéro", -3.5, "0,00 €"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price); got != tt.want {
				t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
			}
		})
	}
}
