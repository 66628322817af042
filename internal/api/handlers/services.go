package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/accommodation"
	"github.com/stay-browser/server/internal/catalog"
	"github.com/stay-browser/server/internal/listing"
	"github.com/stay-browser/server/internal/session"
)

// ReservationReporter is told about every reservation handed to the
// confirmation screen.
type ReservationReporter interface {
	ReservationConfirmed(c listing.Confirmation)
}

// DateBounds are the min/max attributes of the date controls.
type DateBounds struct {
	Min accommodation.Date
	Max accommodation.Date
}

// Contains reports whether d is inside the bounds, inclusive.
func (b DateBounds) Contains(d accommodation.Date) bool {
	return !d.Before(b.Min) && !d.After(b.Max)
}

// Services bundles what the screen handlers need.
type Services struct {
	Sessions  *session.Manager
	Catalog   *catalog.Loader
	Pages     *Pages
	Bounds    DateBounds
	Reporters []ReservationReporter
	Log       *zap.Logger

	validate *validator.Validate
}

// NewServices wires the screen handlers' dependencies.
func NewServices(
	sessions *session.Manager,
	loader *catalog.Loader,
	pages *Pages,
	bounds DateBounds,
	log *zap.Logger,
	reporters ...ReservationReporter,
) *Services {
	return &Services{
		Sessions:  sessions,
		Catalog:   loader,
		Pages:     pages,
		Bounds:    bounds,
		Reporters: reporters,
		Log:       log,
		validate:  accommodation.NewValidator(),
	}
}

// mount returns the visitor's listing screen, fetching the catalog when the
// screen is not mounted yet. Mounting also ends any previous navigation.
// A failed fetch yields an empty screen that is not kept, so the next page
// load mounts and fetches again.
func (s *Services) mount(ctx context.Context) *listing.Screen {
	if screen, ok := s.Sessions.Screen(ctx); ok {
		return screen
	}

	all, err := s.Catalog.Load(ctx)
	screen := listing.NewScreen(all)
	screen.FetchFailed = err != nil
	s.Sessions.ClearConfirmation(ctx)
	s.save(ctx, screen)
	return screen
}

// save keeps the screen for the visitor's next request. A screen whose fetch
// failed is dropped instead.
func (s *Services) save(ctx context.Context, screen *listing.Screen) {
	if screen.FetchFailed {
		return
	}
	s.Sessions.SaveScreen(ctx, screen)
}

// reserve navigates from the listing to the confirmation screen.
func (s *Services) reserve(ctx context.Context, screen *listing.Screen) listing.Confirmation {
	c := screen.Reserve()

	s.Sessions.PutConfirmation(ctx, c)
	s.Sessions.Unmount(ctx)

	s.Log.Info("reservation confirmed",
		zap.String("accommodation", c.AccommodationName),
		zap.Stringer("start_date", c.StartDate),
		zap.Stringer("end_date", c.EndDate),
		zap.Int("persons", c.NumberOfPersons),
		zap.Float64("total_price", c.TotalPrice),
	)
	for _, r := range s.Reporters {
		r.ReservationConfirmed(c)
	}
	return c
}

// parseBoundedDate parses a control value and checks it against the bounds.
func (s *Services) parseBoundedDate(value string) (accommodation.Date, bool) {
	d, err := accommodation.ParseDate(value)
	if err != nil || !s.Bounds.Contains(d) {
		return accommodation.Date{}, false
	}
	return d, true
}
