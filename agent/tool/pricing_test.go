package tool

import (
	"testing"
	"time"

	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
)

func TestPricingPolicies(t *testing.T) {
	t.Parallel()

	car := storex.CarListing{PricePerDay: 1500}
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		policy PricingPolicy
		end    time.Time
		want   float64
	}{
		{name: "flat ignores range", policy: FlatMultiplier(PlaceholderMultiplier), end: start.AddDate(0, 0, 10), want: 3000},
		{name: "flat same day", policy: FlatMultiplier(PlaceholderMultiplier), end: start, want: 3000},
		{name: "per day", policy: PerDay(), end: start.AddDate(0, 0, 3), want: 6000},
		{name: "per day same day", policy: PerDay(), end: start, want: 1500},
		{name: "per day end before start", policy: PerDay(), end: start.AddDate(0, 0, -2), want: 1500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.policy(car, start, tc.end); got != tc.want {
				t.Fatalf("price = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPricingByName(t *testing.T) {
	t.Parallel()

	car := storex.CarListing{PricePerDay: 1000}
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 5)

	flat, err := PricingByName("")
	if err != nil {
		t.Fatalf("PricingByName(\"\") error = %v", err)
	}
	if got := flat(car, start, end); got != 2000 {
		t.Fatalf("default policy price = %v, want 2000", got)
	}

	perDay, err := PricingByName("PER_DAY")
	if err != nil {
		t.Fatalf("PricingByName(PER_DAY) error = %v", err)
	}
	if got := perDay(car, start, end); got != 6000 {
		t.Fatalf("per-day price = %v, want 6000", got)
	}

	if _, err := PricingByName("surge"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}
