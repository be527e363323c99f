package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
)

const (
	SentinelLoginRequired = "User must be logged in to book."
	SentinelCarNotFound   = "Car not found. Please specify the exact model."
	SentinelBookingFailed = "Failed to book car."

	EventBookingConfirmed = "booking.confirmed"

	dateLayout = "2006-01-02"
)

// EventPublisher receives booking events after the booking row is written.
type EventPublisher interface {
	Publish(ctx context.Context, payload any) error
}

type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	UserID     string    `json:"user_id"`
	CarID      string    `json:"car_id"`
	CarName    string    `json:"car_name"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type bookingArgs struct {
	carName string
	start   time.Time
	end     time.Time
}

type carBooker struct {
	cars      storex.CarStore
	bookings  storex.BookingStore
	pricing   PricingPolicy
	publisher EventPublisher
}

func (b *carBooker) execute(ctx context.Context, args map[string]any, caller contractx.Identity) (contractx.ToolResult, error) {
	if caller.IsAnonymous() {
		return contractx.ToolResult{Tool: ToolBookCar, Result: SentinelLoginRequired}, nil
	}

	in, err := parseBookingArgs(args)
	if err != nil {
		return contractx.ToolResult{Tool: ToolBookCar, Error: err.Error()}, nil
	}

	q := storex.NewCarQuery().ContainsAny(in.carName, storex.FieldModel, storex.FieldBrand)
	car, err := b.cars.FindCar(ctx, q)
	if err != nil {
		if errors.Is(err, storex.ErrCarNotFound) {
			log.Info().Str("car_name", in.carName).Msg("book car: no matching listing")
			return contractx.ToolResult{Tool: ToolBookCar, Result: SentinelCarNotFound}, nil
		}
		log.Error().Err(err).Str("car_name", in.carName).Msg("book car: lookup failed")
		return contractx.ToolResult{Tool: ToolBookCar, Result: SentinelBookingFailed}, nil
	}

	booking := &storex.Booking{
		UserID:     caller.UserID,
		CarID:      car.ID,
		StartDate:  in.start,
		EndDate:    in.end,
		TotalPrice: b.pricing(*car, in.start, in.end),
		Status:     storex.BookingStatusConfirmed,
	}
	if err := b.bookings.CreateBooking(ctx, booking); err != nil {
		log.Error().Err(err).Str("car_id", car.ID).Str("user_id", caller.UserID).Msg("book car: insert failed")
		return contractx.ToolResult{Tool: ToolBookCar, Result: SentinelBookingFailed}, nil
	}

	log.Info().
		Str("booking_id", booking.ID).
		Str("car_id", car.ID).
		Str("user_id", caller.UserID).
		Float64("total_price", booking.TotalPrice).
		Msg("booking confirmed")

	b.publish(ctx, booking, car)

	return contractx.ToolResult{
		Tool: ToolBookCar,
		Result: contractx.BookingConfirmation{
			BookingID: booking.ID,
			Message:   fmt.Sprintf("Booking confirmed! ID: %s. Enjoy your %s %s.", booking.ID, car.Brand, car.Model),
		},
	}, nil
}

// publish never affects the booking outcome; the row is already committed.
func (b *carBooker) publish(ctx context.Context, booking *storex.Booking, car *storex.CarListing) {
	if b.publisher == nil {
		return
	}
	event := BookingEvent{
		Type:       EventBookingConfirmed,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		CarID:      car.ID,
		CarName:    car.DisplayName(),
		StartDate:  booking.StartDate.Format(dateLayout),
		EndDate:    booking.EndDate.Format(dateLayout),
		TotalPrice: booking.TotalPrice,
		Status:     booking.Status,
		CreatedAt:  booking.CreatedAt,
	}
	if err := b.publisher.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.ID).Msg("publish booking event failed")
	}
}

func parseBookingArgs(args map[string]any) (bookingArgs, error) {
	carName, err := requiredString(args, "carName")
	if err != nil {
		return bookingArgs{}, err
	}
	start, err := requiredDate(args, "startDate")
	if err != nil {
		return bookingArgs{}, err
	}
	end, err := requiredDate(args, "endDate")
	if err != nil {
		return bookingArgs{}, err
	}
	if end.Before(start) {
		return bookingArgs{}, fmt.Errorf("endDate must not be before startDate")
	}
	return bookingArgs{carName: carName, start: start, end: end}, nil
}

func requiredDate(args map[string]any, key string) (time.Time, error) {
	raw, err := requiredString(args, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD format", key)
	}
	return t, nil
}
