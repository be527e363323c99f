package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Car-Rental/agent/contract"
	storex "github.com/tanpawarit/Chative-Car-Rental/agent/store"
)

const (
	ToolSearchCars = "search_cars"
	ToolBookCar    = "book_car"
)

// Handler runs one tool. Expected negative outcomes are reported inside the
// ToolResult; a non-nil error means the handler itself is broken.
type Handler func(ctx context.Context, args map[string]any, caller contractx.Identity) (contractx.ToolResult, error)

// Registry holds the tool declarations advertised to the model and the
// handlers they route to. It is immutable after NewRegistry.
type Registry struct {
	infos    []*schema.ToolInfo
	handlers map[string]Handler
}

var _ contractx.ToolGateway = (*Registry)(nil)

type options struct {
	pricing   PricingPolicy
	publisher EventPublisher
	currency  string
}

type Option func(*options)

func WithPricing(p PricingPolicy) Option {
	return func(o *options) {
		if p != nil {
			o.pricing = p
		}
	}
}

func WithPublisher(p EventPublisher) Option {
	return func(o *options) {
		o.publisher = p
	}
}

func WithCurrency(symbol string) Option {
	return func(o *options) {
		if trimmed := strings.TrimSpace(symbol); trimmed != "" {
			o.currency = trimmed
		}
	}
}

func NewRegistry(cars storex.CarStore, bookings storex.BookingStore, opts ...Option) *Registry {
	o := options{
		pricing:  FlatMultiplier(PlaceholderMultiplier),
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	searcher := &carSearcher{cars: cars, currency: o.currency}
	booker := &carBooker{
		cars:      cars,
		bookings:  bookings,
		pricing:   o.pricing,
		publisher: o.publisher,
	}

	return &Registry{
		infos: declarations(),
		handlers: map[string]Handler{
			ToolSearchCars: searcher.execute,
			ToolBookCar:    booker.execute,
		},
	}
}

// Infos returns a fresh copy of the tool declarations.
func (r *Registry) Infos() []*schema.ToolInfo {
	out := make([]*schema.ToolInfo, 0, len(r.infos))
	for _, info := range r.infos {
		cp := *info
		out = append(out, &cp)
	}
	return out
}

func (r *Registry) Execute(ctx context.Context, req contractx.ToolRequest, caller contractx.Identity) (contractx.ToolResult, error) {
	name := strings.TrimSpace(req.Tool)
	handler, ok := r.handlers[name]
	if !ok {
		return contractx.ToolResult{}, fmt.Errorf("%w: %q", contractx.ErrUnknownTool, name)
	}

	args := req.Args
	if args == nil {
		args = map[string]any{}
	}
	return handler(ctx, args, caller)
}

func declarations() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolSearchCars,
			Desc: "Search for available cars based on location and optional car type.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"location": {Type: schema.String, Desc: "City or location, e.g., 'Mumbai'", Required: true},
				"carType":  {Type: schema.String, Desc: "Car type, e.g., 'SUV', 'Sedan'"},
			}),
		},
		{
			Name: ToolBookCar,
			Desc: "Book a car. ALWAYS ask for confirmation before calling this.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"carName":   {Type: schema.String, Desc: "Name of the car to book", Required: true},
				"startDate": {Type: schema.String, Desc: "Start date (YYYY-MM-DD)", Required: true},
				"endDate":   {Type: schema.String, Desc: "End date (YYYY-MM-DD)", Required: true},
			}),
		},
	}
}
