package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 1, d.Day())

	for _, bad := range []string{"", "2024-13-01", "2024-02-30", "01/02/2024", "2024-01-01T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_JSON(t *testing.T) {
	var payload struct {
		Date Date `json:"date"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-02-29"}`), &payload))
	assert.Equal(t, NewDate(2024, time.February, 29), payload.Date)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-02-29"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":"yesterday"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"date":20240101}`), &payload))
}

func TestDate_ValueAndScan(t *testing.T) {
	d := NewDate(2023, time.December, 31)

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31", v)

	var zero Date
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	inputs := []interface{}{
		time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
		"2023-12-31",
		[]byte("2023-12-31"),
		"2023-12-31 00:00:00+00:00",
	}
	for _, input := range inputs {
		var scanned Date
		require.NoError(t, scanned.Scan(input))
		assert.True(t, d.Equal(scanned), "%v", input)
	}

	var scanned Date
	assert.Error(t, scanned.Scan(42))
}

func TestDate_MonthArithmetic(t *testing.T) {
	d := NewDate(2024, time.January, 15)

	assert.Equal(t, NewDate(2024, time.January, 1), d.FirstOfMonth())
	assert.Equal(t, NewDate(2023, time.February, 1), d.FirstOfMonth().AddMonths(-11))
	assert.Equal(t, NewDate(2024, time.February, 1), d.FirstOfMonth().AddMonths(1))
	assert.True(t, d.After(d.FirstOfMonth()))
	assert.True(t, d.FirstOfMonth().Before(d))
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, time.July, 4, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, NewDate(2024, time.July, 4), DateOf(ts))
}
