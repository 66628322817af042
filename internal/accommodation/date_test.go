package accommodation

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Arithmetic(t *testing.T) {
	d := NewDate(2024, time.February, 28)

	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -3, d.DaysUntil(d.AddDays(-3)))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.True(t, d.Equal(MustParseDate("2024-02-28")))
}

func TestDate_AcrossDaylightSavingChange(t *testing.T) {
	start := MustParseDate("2024-03-30")
	end := MustParseDate("2024-04-02")

	assert.Equal(t, 3, start.DaysUntil(end))
}

func TestDate_TextRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2024-06-05")))
	assert.Equal(t, "2024-06-05", d.String())

	require.NoError(t, d.UnmarshalText([]byte("2024-06-05T22:00:00Z")))
	assert.Equal(t, "2024-06-05", d.String())

	require.NoError(t, d.UnmarshalText(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.UnmarshalText([]byte("05.06.2024")))
	assert.Error(t, d.UnmarshalText([]byte("2024-06-05 10:00")))
}

func TestDate_UnmarshalZonelessTimestamp(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalText([]byte("2024-06-01T00:00:00")))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.UnmarshalText([]byte("2024-06-01T23:30:00")))
	assert.Equal(t, "2024-06-01", d.String())

	var iv Interval
	require.NoError(t, json.Unmarshal([]byte(`{"intervalStart":"2024-06-01T00:00:00","intervalEnd":"2024-06-10T00:00:00"}`), &iv))
	assert.Equal(t, 9, iv.Start.DaysUntil(iv.End))
}

func TestDate_ZeroMarshalsEmpty(t *testing.T) {
	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":""}`, string(b))
}

func TestDate_Gob(t *testing.T) {
	type holder struct{ Start, End Date }
	in := holder{Start: MustParseDate("2024-06-05")}

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(in))

	var out holder
	require.NoError(t, gob.NewDecoder(&buf).Decode(&out))
	assert.True(t, out.Start.Equal(in.Start))
	assert.True(t, out.End.IsZero())
}
