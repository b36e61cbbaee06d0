package catalog

import "testing"

func TestNumericLike(t *testing.T) {
	t.Parallel()

	tests := map[string]float64{
		"$12M":        12,
		"$12.0M":      12,
		"$8.5M":       8.5,
		"+45%":        45,
		"-3%":         -3,
		"2019":        2019,
		"":            0,
		"undisclosed": 0,
		"1.2.3":       0,
		"$":           0,
	}
	for raw, want := range tests {
		if got := NumericLike(raw); got != want {
			t.Fatalf("NumericLike(%q) = %v, want %v", raw, got, want)
		}
	}
}
