package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

var models = []any{
	(*CarListing)(nil),
	(*Booking)(nil),
}

// Migrate creates the cars and bookings tables and their indexes when missing.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, m := range models {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m, err)
		}
	}

	indexes := []struct {
		name    string
		model   any
		columns []string
	}{
		{name: "cars_is_active_idx", model: (*CarListing)(nil), columns: []string{"is_active"}},
		{name: "bookings_user_id_idx", model: (*Booking)(nil), columns: []string{"user_id"}},
	}
	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			IfNotExists().
			Column(idx.columns...).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}
