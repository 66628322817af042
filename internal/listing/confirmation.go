package listing

import "github.com/stay-browser/server/internal/accommodation"

// Confirmation is the reservation handed from the listing to the
// confirmation screen. It only lives in the visitor's session.
type Confirmation struct {
	AccommodationName string             `json:"accommodationName"`
	StartDate         accommodation.Date `json:"startDate"`
	EndDate           accommodation.Date `json:"endDate"`
	NumberOfPersons   int                `json:"numberOfPersons"`
	TotalPrice        float64            `json:"totalPrice"`
}

// Nights is the length of the confirmed stay.
func (c Confirmation) Nights() int {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return 0
	}
	return c.StartDate.DaysUntil(c.EndDate)
}
