package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/accommodation"
	"github.com/stay-browser/server/internal/listing"
)

type listingItem struct {
	accommodation.Accommodation
	Selected bool
	Quote    accommodation.Quote
}

type listingPage struct {
	Draft   listing.Draft
	DateMin string
	DateMax string
	EndMin  string
	Items   []listingItem
}

func (s *Services) listingPage(screen *listing.Screen) listingPage {
	page := listingPage{
		Draft:   screen.Draft,
		DateMin: s.Bounds.Min.String(),
		DateMax: s.Bounds.Max.String(),
		EndMin:  s.Bounds.Min.AddDays(1).String(),
	}
	if !screen.Draft.StartDate.IsZero() {
		page.EndMin = screen.Draft.StartDate.String()
	}

	for _, a := range screen.Filtered() {
		item := listingItem{Accommodation: a, Selected: a.ID == screen.SelectedID}
		if item.Selected {
			item.Quote = screen.Quote()
		}
		page.Items = append(page.Items, item)
	}
	return page
}

// ShowListing renders the listing screen, mounting it on first visit.
func ShowListing(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		screen := s.mount(r.Context())
		if err := s.Pages.Render(w, "listing.html", s.listingPage(screen)); err != nil {
			s.Log.Error("rendering listing", zap.Error(err))
			http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
	}
}

// SubmitFilter applies the filter form. Date and persons values the native
// controls would have rejected are ignored and the previous value kept.
func SubmitFilter(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form", http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		screen := s.mount(ctx)
		applyFilterForm(s, screen, r)
		screen.ApplyFilter()
		s.save(ctx, screen)

		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// applyFilterForm replays the form as control changes: start first so its
// end-date adjustment happens before an explicitly edited end date.
func applyFilterForm(s *Services, screen *listing.Screen, r *http.Request) {
	previousEnd := screen.Draft.EndDate

	if start, ok := s.parseBoundedDate(r.PostForm.Get("startDate")); ok && !start.Equal(screen.Draft.StartDate) {
		screen.SetStartDate(start)
	}
	if end, ok := s.parseBoundedDate(r.PostForm.Get("endDate")); ok && !end.Equal(previousEnd) {
		screen.SetEndDate(end)
	}

	if raw := strings.TrimSpace(r.PostForm.Get("numberOfPersons")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err == nil {
			err = screen.SetNumberOfPersons(n)
		}
		if err != nil {
			s.Log.Debug("ignoring number of persons", zap.String("value", raw), zap.Error(err))
		}
	}
}

// ToggleAccommodation shows or hides one accommodation's details.
func ToggleAccommodation(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := accommodation.ID(mux.Vars(r)["id"])

		screen := s.mount(ctx)
		if err := screen.ToggleSelection(id); err != nil {
			// A stale page can still post an id the filter has since removed.
			s.Log.Debug("toggle ignored", zap.String("id", string(id)), zap.Error(err))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.save(ctx, screen)

		http.Redirect(w, r, "/#accommodation-"+string(id), http.StatusSeeOther)
	}
}

// SubmitReservation navigates to the confirmation screen.
func SubmitReservation(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		screen, ok := s.Sessions.Screen(ctx)
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		s.reserve(ctx, screen)
		http.Redirect(w, r, "/confirm", http.StatusSeeOther)
	}
}

// ShowConfirmation renders the reservation handed over by navigation. Without
// one there is nothing to confirm, so the visitor goes back to the listing.
func ShowConfirmation(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := s.Sessions.Confirmation(r.Context())
		if !ok {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		if err := s.Pages.Render(w, "confirm.html", c); err != nil {
			s.Log.Error("rendering confirmation", zap.Error(err))
			http.Error(w, "An unexpected error occurred", http.StatusInternalServerError)
		}
	}
}
