package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stay-browser/server/internal/accommodation"
	"github.com/stay-browser/server/internal/api/middleware"
	"github.com/stay-browser/server/internal/listing"
)

// Listing request/response types

type DateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type PersonsRequest struct {
	NumberOfPersons int `json:"numberOfPersons" validate:"min=1"`
}

type BoundsResponse struct {
	Min accommodation.Date `json:"min"`
	Max accommodation.Date `json:"max"`
}

type ListingResponse struct {
	Draft          listing.Draft                 `json:"draft"`
	Accommodations []accommodation.Accommodation `json:"accommodations"`
	SelectedID     *accommodation.ID             `json:"selectedId"`
	TotalPrice     float64                       `json:"totalPrice"`
	DateBounds     BoundsResponse                `json:"dateBounds"`
}

type QuoteResponse struct {
	SelectedID *accommodation.ID   `json:"selectedId"`
	Quote      accommodation.Quote `json:"quote"`
}

func (s *Services) listingResponse(screen *listing.Screen) ListingResponse {
	resp := ListingResponse{
		Draft:          screen.Draft,
		Accommodations: screen.Filtered(),
		TotalPrice:     screen.TotalPrice(),
		DateBounds:     BoundsResponse{Min: s.Bounds.Min, Max: s.Bounds.Max},
	}
	if screen.SelectedID != "" {
		id := screen.SelectedID
		resp.SelectedID = &id
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeValid decodes a JSON body and runs struct validation on it.
func (s *Services) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid request", err.Error())
		return false
	}
	return true
}

// GetListing returns the visitor's listing screen.
func GetListing(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		screen := s.mount(r.Context())
		writeJSON(w, http.StatusOK, s.listingResponse(screen))
	}
}

// SetStartDate applies a start date change, advancing the end date if needed.
func SetStartDate(s *Services) http.HandlerFunc {
	return s.dateHandler(func(screen *listing.Screen, d accommodation.Date) {
		screen.SetStartDate(d)
	})
}

// SetEndDate applies an end date change as given.
func SetEndDate(s *Services) http.HandlerFunc {
	return s.dateHandler(func(screen *listing.Screen, d accommodation.Date) {
		screen.SetEndDate(d)
	})
}

func (s *Services) dateHandler(apply func(*listing.Screen, accommodation.Date)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DateRequest
		if !s.decodeValid(w, r, &req) {
			return
		}
		d, ok := s.parseBoundedDate(req.Date)
		if !ok {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation,
				"Date is outside the bookable range", BoundsResponse{Min: s.Bounds.Min, Max: s.Bounds.Max})
			return
		}

		ctx := r.Context()
		screen := s.mount(ctx)
		apply(screen, d)
		s.save(ctx, screen)

		writeJSON(w, http.StatusOK, screen.Draft)
	}
}

// SetNumberOfPersons changes the party size.
func SetNumberOfPersons(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PersonsRequest
		if !s.decodeValid(w, r, &req) {
			return
		}

		ctx := r.Context()
		screen := s.mount(ctx)
		if err := screen.SetNumberOfPersons(req.NumberOfPersons); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, err.Error())
			return
		}
		s.save(ctx, screen)

		writeJSON(w, http.StatusOK, screen.Draft)
	}
}

// ApplyFilter recomputes the displayed accommodations from the draft.
func ApplyFilter(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		screen := s.mount(ctx)
		screen.ApplyFilter()
		s.save(ctx, screen)

		writeJSON(w, http.StatusOK, s.listingResponse(screen))
	}
}

// ToggleSelection selects or deselects an accommodation.
func ToggleSelection(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := accommodation.ID(mux.Vars(r)["id"])

		screen := s.mount(ctx)
		if err := screen.ToggleSelection(id); err != nil {
			if errors.Is(err, listing.ErrNotListed) {
				middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotListed, "Accommodation is not in the filtered list")
				return
			}
			middleware.WriteError(w, http.StatusInternalServerError, middleware.ErrInternalError, "Failed to toggle selection")
			return
		}
		s.save(ctx, screen)

		writeJSON(w, http.StatusOK, s.listingResponse(screen))
	}
}

// GetQuote returns the price breakdown for the current selection.
func GetQuote(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		screen := s.mount(r.Context())

		resp := QuoteResponse{Quote: screen.Quote()}
		if screen.SelectedID != "" {
			id := screen.SelectedID
			resp.SelectedID = &id
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// Reserve captures the reservation and hands it to the confirmation screen.
func Reserve(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		c := s.reserve(ctx, s.mount(ctx))
		writeJSON(w, http.StatusOK, c)
	}
}

// GetConfirmation returns the reservation handed over by navigation.
func GetConfirmation(s *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := s.Sessions.Confirmation(r.Context())
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNoReservation, "No reservation to confirm")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}
