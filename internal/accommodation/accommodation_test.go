package accommodation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const upstreamRecord = `{
	"id": 7,
	"title": "Apartment Marija",
	"image": "https://example.com/marija.jpg",
	"capacity": 4,
	"beachDistanceInMeters": 120,
	"amenities": {"wifi": true, "airConditioning": false, "parkingSpace": true},
	"availableDates": [{"intervalStart": "2024-06-01", "intervalEnd": "2024-06-30"}],
	"pricelistInEuros": [
		{"intervalStart": "2024-06-01", "intervalEnd": "2024-06-10", "pricePerNight": 100},
		{"intervalStart": "2024-06-10", "intervalEnd": "2024-06-30", "pricePerNight": 120.5}
	]
}`

func TestAccommodation_DecodeUpstreamRecord(t *testing.T) {
	var a Accommodation
	require.NoError(t, json.Unmarshal([]byte(upstreamRecord), &a))

	assert.Equal(t, ID("7"), a.ID)
	assert.Equal(t, 4, a.Capacity)
	require.NotNil(t, a.BeachDistanceInMeters)
	assert.Equal(t, 120, *a.BeachDistanceInMeters)
	require.Len(t, a.AvailableDates, 1)
	assert.Equal(t, "2024-06-01", a.AvailableDates[0].Start.String())
	require.Len(t, a.PricelistInEuros, 2)
	assert.Equal(t, 120.5, a.PricelistInEuros[1].PricePerNight)
}

func TestID_AcceptsStrings(t *testing.T) {
	var a Accommodation
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc-1","capacity":1}`), &a))
	assert.Equal(t, ID("abc-1"), a.ID)

	err := json.Unmarshal([]byte(`{"id":true}`), &a)
	assert.Error(t, err)
}

func TestAccommodation_AmenityListSorted(t *testing.T) {
	a := Accommodation{Amenities: map[string]bool{"wifi": true, "airConditioning": false, "parkingSpace": true}}

	assert.Equal(t, []Amenity{
		{Name: "airConditioning", Available: false},
		{Name: "parkingSpace", Available: true},
		{Name: "wifi", Available: true},
	}, a.AmenityList())
}

func TestValidator(t *testing.T) {
	v := NewValidator()

	valid := Accommodation{
		ID:       "1",
		Capacity: 2,
		AvailableDates: []Interval{
			{Start: MustParseDate("2024-06-01"), End: MustParseDate("2024-06-10")},
		},
		PricelistInEuros: []PriceInterval{
			{Start: MustParseDate("2024-06-01"), End: MustParseDate("2024-06-10"), PricePerNight: 80},
		},
	}
	assert.NoError(t, v.Struct(valid))

	tests := []struct {
		name   string
		mutate func(a *Accommodation)
	}{
		{"missing id", func(a *Accommodation) { a.ID = "" }},
		{"zero capacity", func(a *Accommodation) { a.Capacity = 0 }},
		{"reversed availability", func(a *Accommodation) {
			a.AvailableDates = []Interval{{Start: MustParseDate("2024-06-10"), End: MustParseDate("2024-06-01")}}
		}},
		{"missing price start", func(a *Accommodation) {
			a.PricelistInEuros = []PriceInterval{{End: MustParseDate("2024-06-10"), PricePerNight: 1}}
		}},
		{"negative price", func(a *Accommodation) {
			a.PricelistInEuros = []PriceInterval{{Start: MustParseDate("2024-06-01"), End: MustParseDate("2024-06-10"), PricePerNight: -1}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			assert.Error(t, v.Struct(a))
		})
	}
}

func TestAccommodation_BeachDistance(t *testing.T) {
	zero, far := 0, 350

	assert.Equal(t, 0, Accommodation{}.BeachDistance())
	assert.Equal(t, 0, Accommodation{BeachDistanceInMeters: &zero}.BeachDistance())
	assert.Equal(t, 350, Accommodation{BeachDistanceInMeters: &far}.BeachDistance())
}
