package store

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

var (
	ErrCarNotFound     = errors.New("car not found")
	ErrFieldNotAllowed = errors.New("field is not filterable")
	ErrNilBooking      = errors.New("booking is nil")
)

const BookingStatusConfirmed = "confirmed"

// CarStore is the read side of the inventory.
type CarStore interface {
	SearchCars(ctx context.Context, q CarQuery) ([]CarListing, error)
	// FindCar returns the first listing matching q or ErrCarNotFound.
	FindCar(ctx context.Context, q CarQuery) (*CarListing, error)
}

// BookingStore persists bookings. CreateBooking assigns the booking ID.
type BookingStore interface {
	CreateBooking(ctx context.Context, b *Booking) error
}

type Location struct {
	City    string `bun:"city" json:"city" yaml:"city"`
	State   string `bun:"state" json:"state" yaml:"state"`
	Address string `bun:"address" json:"address" yaml:"address"`
}

type CarListing struct {
	bun.BaseModel `bun:"table:cars,alias:car"`

	ID          string   `bun:"id,pk" json:"id" yaml:"id"`
	Brand       string   `bun:"brand,notnull" json:"brand" yaml:"brand"`
	Model       string   `bun:"model,notnull" json:"model" yaml:"model"`
	Category    string   `bun:"category" json:"category" yaml:"category"`
	PricePerDay float64  `bun:"price_per_day,notnull" json:"price_per_day" yaml:"price_per_day"`
	Seats       int      `bun:"seats" json:"seats" yaml:"seats"`
	FuelType    string   `bun:"fuel_type" json:"fuel_type" yaml:"fuel_type"`
	Location    Location `bun:"embed:location_" json:"location" yaml:"location"`
	IsActive    bool     `bun:"is_active,notnull" json:"is_active" yaml:"is_active"`
}

func (c CarListing) DisplayName() string {
	switch {
	case c.Brand == "":
		return c.Model
	case c.Model == "":
		return c.Brand
	default:
		return c.Brand + " " + c.Model
	}
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings,alias:booking"`

	ID         string    `bun:"id,pk" json:"id"`
	UserID     string    `bun:"user_id,notnull" json:"user_id"`
	CarID      string    `bun:"car_id,notnull" json:"car_id"`
	StartDate  time.Time `bun:"start_date,notnull" json:"start_date"`
	EndDate    time.Time `bun:"end_date,notnull" json:"end_date"`
	TotalPrice float64   `bun:"total_price,notnull" json:"total_price"`
	Status     string    `bun:"status,notnull" json:"status"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"created_at"`
}
