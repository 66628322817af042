// Package accommodation contains the accommodation model and the pure
// availability and pricing rules applied to it.
package accommodation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ID identifies an accommodation. The upstream API sends numbers, but any
// scalar is accepted and normalized to its string form.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(str)
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("decoding id %s: not a number or string", s)
	}
	*id = ID(s)
	return nil
}

// Interval is an availability window. Both ends are inclusive for the
// containment test used by filtering.
type Interval struct {
	Start Date `json:"intervalStart" validate:"required"`
	End   Date `json:"intervalEnd"   validate:"required"`
}

// Contains reports whether [start, end] lies entirely inside the interval.
func (i Interval) Contains(start, end Date) bool {
	return !i.Start.After(start) && !i.End.Before(end)
}

// PriceInterval is a date range with a fixed nightly rate. The range is
// half-open for pricing: the end date is not a priced night.
type PriceInterval struct {
	Start         Date    `json:"intervalStart" validate:"required"`
	End           Date    `json:"intervalEnd"   validate:"required"`
	PricePerNight float64 `json:"pricePerNight" validate:"gte=0"`
}

// Accommodation is a rentable unit as published by the catalog API.
type Accommodation struct {
	ID                    ID              `json:"id"                              validate:"required"`
	Title                 string          `json:"title"`
	Image                 string          `json:"image"`
	Capacity              int             `json:"capacity"                        validate:"gte=1"`
	BeachDistanceInMeters *int            `json:"beachDistanceInMeters,omitempty" validate:"omitempty,gte=0"`
	Amenities             map[string]bool `json:"amenities"`
	AvailableDates        []Interval      `json:"availableDates"                  validate:"dive"`
	PricelistInEuros      []PriceInterval `json:"pricelistInEuros"                validate:"dive"`
}

// Amenity is one row of the amenities table.
type Amenity struct {
	Name      string
	Available bool
}

// AmenityList returns the amenities sorted by name so rendering is stable.
func (a Accommodation) AmenityList() []Amenity {
	list := make([]Amenity, 0, len(a.Amenities))
	for name, ok := range a.Amenities {
		list = append(list, Amenity{Name: name, Available: ok})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// BeachDistance is the distance to the beach in meters, 0 when unknown.
func (a Accommodation) BeachDistance() int {
	if a.BeachDistanceInMeters == nil {
		return 0
	}
	return *a.BeachDistanceInMeters
}

// AvailableFor reports whether some availability window covers the whole stay.
func (a Accommodation) AvailableFor(start, end Date) bool {
	for _, iv := range a.AvailableDates {
		if iv.Contains(start, end) {
			return true
		}
	}
	return false
}
