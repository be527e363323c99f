package tool

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
)

const (
	MaxSearchResults = 5
	DefaultCurrency  = "₹"

	SentinelNoResults  = "No cars found matching criteria."
	SentinelStoreError = "Error accessing database."
)

// CarView is the projection of a listing handed to the model.
type CarView struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Location string `json:"location"`
	Seats    int    `json:"seats"`
	Fuel     string `json:"fuel"`
}

type carSearcher struct {
	cars     storex.CarStore
	currency string
}

func (s *carSearcher) execute(ctx context.Context, args map[string]any, _ contractx.Identity) (contractx.ToolResult, error) {
	location, err := requiredString(args, "location")
	if err != nil {
		return contractx.ToolResult{Tool: ToolSearchCars, Error: err.Error()}, nil
	}
	carType, err := optionalString(args, "carType")
	if err != nil {
		return contractx.ToolResult{Tool: ToolSearchCars, Error: err.Error()}, nil
	}

	q := storex.NewCarQuery().
		ContainsAny(location,
			storex.FieldLocationCity,
			storex.FieldLocationState,
			storex.FieldLocationAddress,
		).
		ActiveOnly().
		Limit(MaxSearchResults)
	if carType != "" {
		q = q.Contains(storex.FieldCategory, carType)
	}

	cars, err := s.cars.SearchCars(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("location", location).Str("car_type", carType).Msg("search cars failed")
		return contractx.ToolResult{Tool: ToolSearchCars, Result: SentinelStoreError}, nil
	}

	log.Info().Str("location", location).Str("car_type", carType).Int("found", len(cars)).Msg("search cars")

	if len(cars) == 0 {
		return contractx.ToolResult{Tool: ToolSearchCars, Result: SentinelNoResults}, nil
	}
	if len(cars) > MaxSearchResults {
		cars = cars[:MaxSearchResults]
	}

	views := make([]CarView, 0, len(cars))
	for _, car := range cars {
		views = append(views, s.project(car))
	}
	return contractx.ToolResult{Tool: ToolSearchCars, Result: views}, nil
}

func (s *carSearcher) project(car storex.CarListing) CarView {
	return CarView{
		Name:     car.Brand + " " + car.Model,
		Price:    FormatDailyPrice(s.currency, car.PricePerDay),
		Category: car.Category,
		Location: car.Location.City,
		Seats:    car.Seats,
		Fuel:     car.FuelType,
	}
}

// FormatDailyPrice renders a price as "<symbol><amount>/day" with the shortest
// exact decimal form of amount.
func FormatDailyPrice(currency string, amount float64) string {
	return currency + strconv.FormatFloat(amount, 'f', -1, 64) + "/day"
}
