package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	db, err := Open(Config{Driver: DriverSQLite, DSN: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func seedCars(t *testing.T, s *BunStore, cars ...CarListing) {
	t.Helper()
	require.NoError(t, s.InsertCars(context.Background(), cars))
}

func mumbaiCar(id, brand, model, category string, active bool) CarListing {
	return CarListing{
		ID:          id,
		Brand:       brand,
		Model:       model,
		Category:    category,
		PricePerDay: 2500,
		Seats:       5,
		FuelType:    "Petrol",
		Location:    Location{City: "Mumbai", State: "Maharashtra", Address: "Andheri West"},
		IsActive:    active,
	}
}

func TestSearchCarsMatchesAnyLocationField(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	seedCars(t, s,
		mumbaiCar("c1", "Mahindra", "XUV700", "SUV", true),
		CarListing{ID: "c2", Brand: "Tata", Model: "Nexon", Category: "SUV", PricePerDay: 1800, IsActive: true,
			Location: Location{City: "Pune", State: "Maharashtra", Address: "Baner"}},
		CarListing{ID: "c3", Brand: "Maruti", Model: "Swift", Category: "Hatchback", PricePerDay: 1200, IsActive: true,
			Location: Location{City: "Bengaluru", State: "Karnataka", Address: "Indiranagar"}},
	)

	q := NewCarQuery().
		ContainsAny("maharashtra", FieldLocationCity, FieldLocationState, FieldLocationAddress).
		ActiveOnly()
	cars, err := s.SearchCars(context.Background(), q)
	require.NoError(t, err)

	ids := make([]string, 0, len(cars))
	for _, c := range cars {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)
}

func TestSearchCarsFiltersInactiveAndCategory(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	seedCars(t, s,
		mumbaiCar("c1", "Mahindra", "XUV700", "SUV", true),
		mumbaiCar("c2", "Hyundai", "Creta", "Compact SUV", false),
		mumbaiCar("c3", "Honda", "Amaze", "Sedan", true),
	)

	q := NewCarQuery().
		ContainsAny("MUMBAI", FieldLocationCity, FieldLocationState, FieldLocationAddress).
		Contains(FieldCategory, "suv").
		ActiveOnly().
		Limit(5)
	cars, err := s.SearchCars(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "c1", cars[0].ID)
	assert.Equal(t, "Mumbai", cars[0].Location.City)
	assert.True(t, cars[0].IsActive)
}

func TestSearchCarsAppliesLimit(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	cars := make([]CarListing, 0, 8)
	for i := 0; i < 8; i++ {
		cars = append(cars, mumbaiCar(fmt.Sprintf("c%d", i), "Brand", fmt.Sprintf("Model %d", i), "SUV", true))
	}
	seedCars(t, s, cars...)

	got, err := s.SearchCars(context.Background(), NewCarQuery().Contains(FieldLocationCity, "mumbai").ActiveOnly().Limit(5))
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestSearchCarsEscapesPatternCharacters(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	seedCars(t, s, mumbaiCar("c1", "Mahindra", "XUV700", "SUV", true))

	for _, term := range []string{"%", "_", "M_mbai", "!%"} {
		got, err := s.SearchCars(context.Background(), NewCarQuery().Contains(FieldLocationCity, term).ActiveOnly())
		require.NoError(t, err, term)
		assert.Empty(t, got, "term %q must match literally", term)
	}
}

func TestSearchCarsRejectsUnknownField(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	_, err := s.SearchCars(context.Background(), NewCarQuery().Contains(CarField("id; DROP TABLE cars"), "x"))
	require.ErrorIs(t, err, ErrFieldNotAllowed)
}

func TestFindCarByModelOrBrand(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	seedCars(t, s,
		mumbaiCar("c1", "Honda", "City", "Sedan", true),
		mumbaiCar("c2", "Toyota", "Innova Crysta", "MUV", true),
	)

	car, err := s.FindCar(context.Background(), NewCarQuery().ContainsAny("crysta", FieldModel, FieldBrand))
	require.NoError(t, err)
	assert.Equal(t, "c2", car.ID)

	car, err = s.FindCar(context.Background(), NewCarQuery().ContainsAny("HONDA", FieldModel, FieldBrand))
	require.NoError(t, err)
	assert.Equal(t, "c1", car.ID)
}

func TestLookupFoldsNonASCIILetters(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	skoda := mumbaiCar("c1", "Škoda", "Kushaq", "SUV", true)
	skoda.Location = Location{City: "Zürich", State: "ÖSTERREICH", Address: "Bahnhofstraße"}
	seedCars(t, s, skoda, mumbaiCar("c2", "Tata", "Nexon", "SUV", true))

	for _, term := range []string{"Škoda", "ŠKODA", "škoda"} {
		q := NewCarQuery().ContainsAny(term, FieldModel, FieldBrand)
		require.True(t, q.Match(skoda), term)

		car, err := s.FindCar(context.Background(), q)
		require.NoError(t, err, term)
		assert.Equal(t, "c1", car.ID, term)
	}

	cars, err := s.SearchCars(context.Background(), NewCarQuery().
		ContainsAny("österreich", FieldLocationCity, FieldLocationState, FieldLocationAddress).
		ActiveOnly())
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "c1", cars[0].ID)
}

func TestFindCarInvalidUTF8MatchesNothing(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	seedCars(t, s, mumbaiCar("c1", "Honda", "City", "Sedan", true))

	_, err := s.FindCar(context.Background(), NewCarQuery().ContainsAny("Ci\xfft", FieldModel, FieldBrand))
	require.ErrorIs(t, err, ErrCarNotFound)
}

func TestFindCarNotFound(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	seedCars(t, s, mumbaiCar("c1", "Mahindra", "Thar", "SUV", true))

	_, err := s.FindCar(context.Background(), NewCarQuery().ContainsAny("Honda City", FieldModel, FieldBrand))
	require.ErrorIs(t, err, ErrCarNotFound)
}

func TestCreateBookingAssignsID(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	s.now = func() time.Time { return time.Date(2024, 4, 20, 9, 0, 0, 0, time.UTC) }

	b := &Booking{
		UserID:     "user-1",
		CarID:      "c1",
		StartDate:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		TotalPrice: 5000,
		Status:     BookingStatusConfirmed,
	}
	require.NoError(t, s.CreateBooking(context.Background(), b))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, s.now(), b.CreatedAt)

	count, err := s.CountBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var stored Booking
	require.NoError(t, s.db.NewSelect().Model(&stored).Where("? = ?", bun.Ident("id"), b.ID).Scan(context.Background()))
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, 5000.0, stored.TotalPrice)
	assert.Equal(t, BookingStatusConfirmed, stored.Status)
}

func TestCreateBookingNil(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	require.ErrorIs(t, s.CreateBooking(context.Background(), nil), ErrNilBooking)
}

func TestInsertCarsUpserts(t *testing.T) {
	t.Parallel()

	s := NewBunStore(newTestDB(t))
	seedCars(t, s, mumbaiCar("c1", "Honda", "City", "Sedan", true))

	updated := mumbaiCar("c1", "Honda", "City", "Sedan", false)
	updated.PricePerDay = 3100
	seedCars(t, s, updated)

	car, err := s.FindCar(context.Background(), NewCarQuery().Contains(FieldModel, "city"))
	require.NoError(t, err)
	assert.Equal(t, 3100.0, car.PricePerDay)
	assert.False(t, car.IsActive)
}
