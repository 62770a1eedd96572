package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewAccrualPolicyRejectsNonPositiveRate(t *testing.T) {
	for _, rate := range []string{"0", "-1", "-0.5"} {
		if _, err := NewAccrualPolicy(decimal.RequireFromString(rate)); err == nil {
			t.Fatalf("expected error for rate %s", rate)
		}
	}
}

func TestAccrualPolicyPoints(t *testing.T) {
	policy, err := NewAccrualPolicy(decimal.NewFromInt(10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name   string
		amount string
		want   int64
	}{
		{"exact multiple", "100.00", 10},
		{"remainder dropped", "99.99", 9},
		{"below one point", "9.99", 0},
		{"zero payment", "0", 0},
		{"negative payment", "-50", 0},
		{"large payment", "123456.78", 12345},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.Points(decimal.RequireFromString(tc.amount)); got != tc.want {
				t.Fatalf("expected %d points for %s, got %d", tc.want, tc.amount, got)
			}
		})
	}
}

func TestAccrualPolicyFractionalRate(t *testing.T) {
	// One point per 2.50 spent.
	policy, err := NewAccrualPolicy(decimal.RequireFromString("2.50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := policy.Points(decimal.RequireFromString("10.00")); got != 4 {
		t.Fatalf("expected 4 points, got %d", got)
	}
	if got := policy.Points(decimal.RequireFromString("2.49")); got != 0 {
		t.Fatalf("expected 0 points, got %d", got)
	}
}
