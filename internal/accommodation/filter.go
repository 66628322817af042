package accommodation

// Criteria is the filter input taken from the reservation draft.
type Criteria struct {
	StartDate       Date
	EndDate         Date
	NumberOfPersons int
}

// HasDates reports whether both ends of the stay are chosen.
func (c Criteria) HasDates() bool {
	return !c.StartDate.IsZero() && !c.EndDate.IsZero()
}

// Matches reports whether a single accommodation passes the criteria.
func (c Criteria) Matches(a Accommodation) bool {
	if a.Capacity < c.NumberOfPersons {
		return false
	}
	// Without both dates the filter is capacity-only.
	if !c.HasDates() {
		return true
	}
	return a.AvailableFor(c.StartDate, c.EndDate)
}

// Filter returns the accommodations matching the criteria in their original
// order. The input slice is left untouched.
func Filter(all []Accommodation, c Criteria) []Accommodation {
	filtered := make([]Accommodation, 0, len(all))
	for _, a := range all {
		if c.Matches(a) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
