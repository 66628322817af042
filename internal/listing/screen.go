// Package listing holds the per-visitor state of the accommodation listing
// screen and the transitions the screen allows.
package listing

import (
	"errors"

	"github.com/stay-browser/server/internal/accommodation"
)

// PlaceholderName is shown on the confirmation when nothing was selected.
const PlaceholderName = "Unknown Accommodation"

var (
	// ErrNotListed is returned when toggling an accommodation that is not in
	// the currently filtered list.
	ErrNotListed = errors.New("accommodation is not in the filtered list")
	// ErrInvalidPersons is returned for a party size below one.
	ErrInvalidPersons = errors.New("number of persons must be at least 1")
)

// Draft is the in-progress reservation selection.
type Draft struct {
	StartDate       accommodation.Date `json:"startDate"`
	EndDate         accommodation.Date `json:"endDate"`
	NumberOfPersons int                `json:"numberOfPersons"`
}

// Criteria converts the draft into filter input.
func (d Draft) Criteria() accommodation.Criteria {
	return accommodation.Criteria{
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		NumberOfPersons: d.NumberOfPersons,
	}
}

// HasDates reports whether both stay dates are chosen.
func (d Draft) HasDates() bool {
	return d.Criteria().HasDates()
}

// Screen is the listing screen state. Fields are exported so the session
// codec can carry it between requests; mutate it through the methods only.
type Screen struct {
	Accommodations []accommodation.Accommodation
	FilteredIDs    []accommodation.ID
	SelectedID     accommodation.ID
	Draft          Draft

	// FetchFailed marks a screen mounted over a failed catalog fetch. Such a
	// screen is rendered once and never kept.
	FetchFailed bool
}

// NewScreen mounts a screen over a freshly fetched catalog. Everything is
// listed until the first filter is applied.
func NewScreen(all []accommodation.Accommodation) *Screen {
	s := &Screen{
		Accommodations: all,
		FilteredIDs:    make([]accommodation.ID, 0, len(all)),
		Draft:          Draft{NumberOfPersons: 1},
	}
	for _, a := range all {
		s.FilteredIDs = append(s.FilteredIDs, a.ID)
	}
	return s
}

// Filtered returns the displayed subset in catalog order.
func (s *Screen) Filtered() []accommodation.Accommodation {
	listed := make(map[accommodation.ID]bool, len(s.FilteredIDs))
	for _, id := range s.FilteredIDs {
		listed[id] = true
	}

	out := make([]accommodation.Accommodation, 0, len(s.FilteredIDs))
	for _, a := range s.Accommodations {
		if listed[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// SetStartDate sets the stay start. When the end date is missing or no longer
// after the start, it is moved to the following day.
func (s *Screen) SetStartDate(d accommodation.Date) {
	s.Draft.StartDate = d
	if d.IsZero() {
		return
	}
	if s.Draft.EndDate.IsZero() || !s.Draft.EndDate.After(d) {
		s.Draft.EndDate = d.AddDays(1)
	}
}

// SetEndDate sets the stay end as given. The date control's min attribute
// keeps it after the start date.
func (s *Screen) SetEndDate(d accommodation.Date) {
	s.Draft.EndDate = d
}

// SetNumberOfPersons sets the party size.
func (s *Screen) SetNumberOfPersons(n int) error {
	if n < 1 {
		return ErrInvalidPersons
	}
	s.Draft.NumberOfPersons = n
	return nil
}

// ApplyFilter recomputes the displayed subset from the draft. A selection that
// is no longer listed is cleared.
func (s *Screen) ApplyFilter() {
	filtered := accommodation.Filter(s.Accommodations, s.Draft.Criteria())

	s.FilteredIDs = make([]accommodation.ID, 0, len(filtered))
	stillListed := false
	for _, a := range filtered {
		s.FilteredIDs = append(s.FilteredIDs, a.ID)
		if a.ID == s.SelectedID {
			stillListed = true
		}
	}
	if !stillListed {
		s.SelectedID = ""
	}
}

// ToggleSelection expands the details of an accommodation, or collapses them
// when it is already selected.
func (s *Screen) ToggleSelection(id accommodation.ID) error {
	if !s.isListed(id) {
		return ErrNotListed
	}
	if s.SelectedID == id {
		s.SelectedID = ""
		return nil
	}
	s.SelectedID = id
	return nil
}

// Selected returns the selected accommodation, if any.
func (s *Screen) Selected() (accommodation.Accommodation, bool) {
	if s.SelectedID == "" {
		return accommodation.Accommodation{}, false
	}
	for _, a := range s.Accommodations {
		if a.ID == s.SelectedID {
			return a, true
		}
	}
	return accommodation.Accommodation{}, false
}

// Quote prices the draft dates against the selected accommodation.
func (s *Screen) Quote() accommodation.Quote {
	a, ok := s.Selected()
	if !ok {
		return accommodation.NewQuote(nil, s.Draft.StartDate, s.Draft.EndDate)
	}
	return accommodation.NewQuote(a.PricelistInEuros, s.Draft.StartDate, s.Draft.EndDate)
}

// TotalPrice is the stay total for the current selection and dates.
func (s *Screen) TotalPrice() float64 {
	return s.Quote().Total
}

// Reserve captures the draft as a confirmation and clears the selection.
func (s *Screen) Reserve() Confirmation {
	c := Confirmation{
		AccommodationName: PlaceholderName,
		StartDate:         s.Draft.StartDate,
		EndDate:           s.Draft.EndDate,
		NumberOfPersons:   s.Draft.NumberOfPersons,
		TotalPrice:        s.TotalPrice(),
	}
	if a, ok := s.Selected(); ok {
		c.AccommodationName = a.Title
	}

	s.SelectedID = ""
	return c
}

func (s *Screen) isListed(id accommodation.ID) bool {
	for _, listed := range s.FilteredIDs {
		if listed == id {
			return true
		}
	}
	return false
}
