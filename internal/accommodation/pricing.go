package accommodation

// QuoteLine is the contribution of one price interval to a stay.
type QuoteLine struct {
	Interval PriceInterval `json:"interval"`
	Nights   int           `json:"nights"`
	Subtotal float64       `json:"subtotal"`
}

// Quote is the per-interval price breakdown of a stay.
type Quote struct {
	StartDate Date        `json:"startDate"`
	EndDate   Date        `json:"endDate"`
	Lines     []QuoteLine `json:"lines"`
	Total     float64     `json:"total"`
}

// OverlapNights returns how many nights of the stay [start, end) fall inside
// the price interval [iv.Start, iv.End).
func OverlapNights(start, end Date, iv PriceInterval) int {
	if !start.Before(iv.End) || !end.After(iv.Start) {
		return 0
	}
	overlapStart := Max(start, iv.Start)
	overlapEnd := Min(end, iv.End)

	nights := overlapStart.DaysUntil(overlapEnd)
	if nights < 0 {
		return 0
	}
	return nights
}

// NewQuote prices the stay against a price list. Intervals are assumed not to
// overlap each other. An unset date yields an empty quote.
func NewQuote(pricelist []PriceInterval, start, end Date) Quote {
	q := Quote{StartDate: start, EndDate: end, Lines: []QuoteLine{}}
	if start.IsZero() || end.IsZero() {
		return q
	}

	for _, iv := range pricelist {
		nights := OverlapNights(start, end, iv)
		if nights == 0 {
			continue
		}
		line := QuoteLine{
			Interval: iv,
			Nights:   nights,
			Subtotal: float64(nights) * iv.PricePerNight,
		}
		q.Lines = append(q.Lines, line)
		q.Total += line.Subtotal
	}
	return q
}

// TotalPrice is the sum of nights × nightly rate over all overlapping intervals.
func TotalPrice(pricelist []PriceInterval, start, end Date) float64 {
	return NewQuote(pricelist, start, end).Total
}
