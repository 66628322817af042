package listing

import (
	"testing"

	"github.com/stay-browser/server/internal/accommodation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d = accommodation.MustParseDate

func catalog() []accommodation.Accommodation {
	return []accommodation.Accommodation{
		{
			ID:             "1",
			Title:          "Villa Ana",
			Capacity:       4,
			AvailableDates: []accommodation.Interval{{Start: d("2024-06-01"), End: d("2024-06-10")}},
			PricelistInEuros: []accommodation.PriceInterval{
				{Start: d("2024-06-01"), End: d("2024-06-10"), PricePerNight: 100},
			},
		},
		{
			ID:             "2",
			Title:          "Studio Luka",
			Capacity:       2,
			AvailableDates: []accommodation.Interval{{Start: d("2024-08-01"), End: d("2024-08-31")}},
		},
	}
}

func TestNewScreen_ListsEverything(t *testing.T) {
	s := NewScreen(catalog())

	assert.Len(t, s.Filtered(), 2)
	assert.Equal(t, 1, s.Draft.NumberOfPersons)
	_, ok := s.Selected()
	assert.False(t, ok)
}

func TestScreen_SetStartDate_AutoAdvancesEnd(t *testing.T) {
	s := NewScreen(nil)

	s.SetStartDate(d("2024-06-05"))
	assert.Equal(t, "2024-06-06", s.Draft.EndDate.String(), "unset end is filled in")

	s.SetEndDate(d("2024-06-09"))
	s.SetStartDate(d("2024-06-07"))
	assert.Equal(t, "2024-06-09", s.Draft.EndDate.String(), "later end is kept")

	s.SetStartDate(d("2024-06-09"))
	assert.Equal(t, "2024-06-10", s.Draft.EndDate.String(), "equal end is advanced")

	s.SetStartDate(d("2024-06-20"))
	assert.Equal(t, "2024-06-21", s.Draft.EndDate.String(), "earlier end is advanced")
	assert.True(t, s.Draft.EndDate.After(s.Draft.StartDate))
}

func TestScreen_SetEndDate_Unconditional(t *testing.T) {
	s := NewScreen(nil)
	s.SetStartDate(d("2024-06-05"))

	s.SetEndDate(d("2024-06-01"))

	assert.Equal(t, "2024-06-01", s.Draft.EndDate.String())
	assert.Equal(t, "2024-06-05", s.Draft.StartDate.String())
}

func TestScreen_SetNumberOfPersons(t *testing.T) {
	s := NewScreen(nil)

	require.NoError(t, s.SetNumberOfPersons(3))
	assert.Equal(t, 3, s.Draft.NumberOfPersons)

	assert.ErrorIs(t, s.SetNumberOfPersons(0), ErrInvalidPersons)
	assert.Equal(t, 3, s.Draft.NumberOfPersons)
}

func TestScreen_ApplyFilter(t *testing.T) {
	s := NewScreen(catalog())
	s.SetStartDate(d("2024-06-05"))
	s.SetEndDate(d("2024-06-07"))

	s.ApplyFilter()

	require.Len(t, s.Filtered(), 1)
	assert.Equal(t, accommodation.ID("1"), s.Filtered()[0].ID)
	assert.Len(t, s.Accommodations, 2, "source catalog is kept")
}

func TestScreen_DraftChangesDoNotRefilter(t *testing.T) {
	s := NewScreen(catalog())

	require.NoError(t, s.SetNumberOfPersons(5))

	assert.Len(t, s.Filtered(), 2)
	s.ApplyFilter()
	assert.Empty(t, s.Filtered())
}

func TestScreen_ToggleSelection(t *testing.T) {
	s := NewScreen(catalog())

	require.NoError(t, s.ToggleSelection("1"))
	a, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "Villa Ana", a.Title)

	require.NoError(t, s.ToggleSelection("2"))
	a, _ = s.Selected()
	assert.Equal(t, "Studio Luka", a.Title, "only one selection at a time")

	require.NoError(t, s.ToggleSelection("2"))
	_, ok = s.Selected()
	assert.False(t, ok, "re-toggle clears")

	assert.ErrorIs(t, s.ToggleSelection("42"), ErrNotListed)
}

func TestScreen_FilterClearsHiddenSelection(t *testing.T) {
	s := NewScreen(catalog())
	require.NoError(t, s.ToggleSelection("2"))

	s.SetStartDate(d("2024-06-05"))
	s.SetEndDate(d("2024-06-07"))
	s.ApplyFilter()

	_, ok := s.Selected()
	assert.False(t, ok)
	assert.ErrorIs(t, s.ToggleSelection("2"), ErrNotListed)
}

func TestScreen_FilterKeepsListedSelection(t *testing.T) {
	s := NewScreen(catalog())
	require.NoError(t, s.ToggleSelection("1"))

	s.SetStartDate(d("2024-06-05"))
	s.ApplyFilter()

	a, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, accommodation.ID("1"), a.ID)
}

func TestScreen_Reserve(t *testing.T) {
	s := NewScreen(catalog())
	s.SetStartDate(d("2024-06-05"))
	s.SetEndDate(d("2024-06-07"))
	require.NoError(t, s.SetNumberOfPersons(2))
	require.NoError(t, s.ToggleSelection("1"))

	assert.Equal(t, 200.0, s.TotalPrice())

	c := s.Reserve()

	assert.Equal(t, Confirmation{
		AccommodationName: "Villa Ana",
		StartDate:         d("2024-06-05"),
		EndDate:           d("2024-06-07"),
		NumberOfPersons:   2,
		TotalPrice:        200,
	}, c)
	assert.Equal(t, 2, c.Nights())
	_, ok := s.Selected()
	assert.False(t, ok, "selection is cleared after reserving")
}

func TestScreen_ReserveWithoutSelection(t *testing.T) {
	s := NewScreen(catalog())
	s.SetStartDate(d("2024-06-05"))

	c := s.Reserve()

	assert.Equal(t, PlaceholderName, c.AccommodationName)
	assert.Zero(t, c.TotalPrice)
}

func TestScreen_PriceNeedsDates(t *testing.T) {
	s := NewScreen(catalog())
	require.NoError(t, s.ToggleSelection("1"))

	assert.Zero(t, s.TotalPrice())
	assert.Empty(t, s.Quote().Lines)
}
