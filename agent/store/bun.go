package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// BunStore implements CarStore and BookingStore on top of bun.
type BunStore struct {
	db        bun.IDB
	lowerFunc string
	now       func() time.Time
}

var (
	_ CarStore     = (*BunStore)(nil)
	_ BookingStore = (*BunStore)(nil)
)

func NewBunStore(db bun.IDB) *BunStore {
	return &BunStore{
		db:        db,
		lowerFunc: lowerFuncFor(db),
		now:       time.Now,
	}
}

// lowerFuncFor picks a case-folding function that handles non-ASCII letters.
// SQLite's built-in lower() only folds ASCII.
func lowerFuncFor(db bun.IDB) string {
	if db.Dialect().Name() == dialect.SQLite {
		return sqliteUnicodeLower
	}
	return "lower"
}

func (s *BunStore) SearchCars(ctx context.Context, q CarQuery) ([]CarListing, error) {
	var cars []CarListing
	sel, err := q.apply(s.db.NewSelect().Model(&cars), s.lowerFunc)
	if err != nil {
		return nil, err
	}
	if err := sel.Scan(ctx); err != nil {
		return nil, fmt.Errorf("search cars: %w", err)
	}
	return cars, nil
}

func (s *BunStore) FindCar(ctx context.Context, q CarQuery) (*CarListing, error) {
	car := new(CarListing)
	sel, err := q.Limit(1).apply(s.db.NewSelect().Model(car), s.lowerFunc)
	if err != nil {
		return nil, err
	}
	if err := sel.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("find car: %w", err)
	}
	return car, nil
}

func (s *BunStore) CreateBooking(ctx context.Context, b *Booking) error {
	if b == nil {
		return ErrNilBooking
	}
	if strings.TrimSpace(b.ID) == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now().UTC()
	}

	if _, err := s.db.NewInsert().Model(b).Exec(ctx); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// InsertCars upserts listings by id, assigning ids to new rows.
func (s *BunStore) InsertCars(ctx context.Context, cars []CarListing) error {
	if len(cars) == 0 {
		return nil
	}
	for i := range cars {
		if strings.TrimSpace(cars[i].ID) == "" {
			cars[i].ID = uuid.NewString()
		}
	}

	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(&cars).
			On("CONFLICT (id) DO UPDATE").
			Set("brand = EXCLUDED.brand").
			Set("model = EXCLUDED.model").
			Set("category = EXCLUDED.category").
			Set("price_per_day = EXCLUDED.price_per_day").
			Set("seats = EXCLUDED.seats").
			Set("fuel_type = EXCLUDED.fuel_type").
			Set("location_city = EXCLUDED.location_city").
			Set("location_state = EXCLUDED.location_state").
			Set("location_address = EXCLUDED.location_address").
			Set("is_active = EXCLUDED.is_active").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert cars: %w", err)
		}
		return nil
	})
}

// CountBookings returns the number of stored bookings.
func (s *BunStore) CountBookings(ctx context.Context) (int, error) {
	return s.db.NewSelect().Model((*Booking)(nil)).Count(ctx)
}
