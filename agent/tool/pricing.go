package tool

import (
	"fmt"
	"strings"
	"time"

	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
)

// PlaceholderMultiplier is the number of days every booking is charged for
// under the default flat policy, whatever the requested range.
const PlaceholderMultiplier = 2

const (
	PricingFlat   = "flat"
	PricingPerDay = "per_day"
)

type PricingPolicy func(car storex.CarListing, start, end time.Time) float64

// FlatMultiplier ignores the date range and charges pricePerDay*multiplier.
func FlatMultiplier(multiplier float64) PricingPolicy {
	return func(car storex.CarListing, _, _ time.Time) float64 {
		return car.PricePerDay * multiplier
	}
}

// PerDay charges for every calendar day from start through end, both
// inclusive, so a same-day rental costs one day.
func PerDay() PricingPolicy {
	return func(car storex.CarListing, start, end time.Time) float64 {
		return car.PricePerDay * float64(rentalDays(start, end))
	}
}

func rentalDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

func PricingByName(name string) (PricingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PricingFlat:
		return FlatMultiplier(PlaceholderMultiplier), nil
	case PricingPerDay:
		return PerDay(), nil
	default:
		return nil, fmt.Errorf("unknown pricing policy %q", name)
	}
}
