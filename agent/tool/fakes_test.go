package tool

import (
	"context"
	"errors"
	"testing"

	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCars struct {
	cars        []storex.CarListing
	searchErr   error
	findErr     error
	searchCalls int
	findCalls   int
	lastQuery   storex.CarQuery
}

func (f *fakeCars) SearchCars(ctx context.Context, q storex.CarQuery) ([]storex.CarListing, error) {
	f.searchCalls++
	f.lastQuery = q
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var out []storex.CarListing
	for _, c := range f.cars {
		if !q.Match(c) {
			continue
		}
		out = append(out, c)
		if q.MaxResults() > 0 && len(out) == q.MaxResults() {
			break
		}
	}
	return out, nil
}

func (f *fakeCars) FindCar(ctx context.Context, q storex.CarQuery) (*storex.CarListing, error) {
	f.findCalls++
	f.lastQuery = q
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, c := range f.cars {
		if q.Match(c) {
			car := c
			return &car, nil
		}
	}
	return nil, storex.ErrCarNotFound
}

type fakeBookings struct {
	err     error
	created []storex.Booking
}

func (f *fakeBookings) CreateBooking(ctx context.Context, b *storex.Booking) error {
	if f.err != nil {
		return f.err
	}
	b.ID = "bk-" + string(rune('1'+len(f.created)))
	f.created = append(f.created, *b)
	return nil
}

type fakePublisher struct {
	err    error
	events []any
}

func (f *fakePublisher) Publish(ctx context.Context, payload any) error {
	f.events = append(f.events, payload)
	return f.err
}

var errStoreDown = errors.New("connection refused")

func listing(id, brand, model, category, city string, price float64, active bool) storex.CarListing {
	return storex.CarListing{
		ID:          id,
		Brand:       brand,
		Model:       model,
		Category:    category,
		PricePerDay: price,
		Seats:       5,
		FuelType:    "Petrol",
		Location:    storex.Location{City: city, State: "Maharashtra", Address: "Main Road"},
		IsActive:    active,
	}
}
