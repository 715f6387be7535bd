package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestWhole(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		400:     "400",
		1000:    "1,000",
		1234567: "1,234,567",
		-2500:   "-2,500",
	}
	for n, want := range cases {
		if got := Whole(n); got != want {
			t.Fatalf("%d: expected %q, got %q", n, want, got)
		}
	}
}

func TestFixed2(t *testing.T) {
	cases := map[string]string{
		"0":           "0.00",
		"999.5":       "999.50",
		"999.999":     "1,000.00",
		"1000":        "1,000.00",
		"1234567.891": "1,234,567.89",
		"-2500":       "-2,500.00",
		"-0.001":      "0.00",
	}
	for raw, want := range cases {
		if got := Fixed2(decimal.RequireFromString(raw)); got != want {
			t.Fatalf("%s: expected %q, got %q", raw, want, got)
		}
	}
}
