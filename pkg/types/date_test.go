package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Date
		wantErr bool
	}{
		{name: "valid", input: "2024-01-01", want: Date{Year: 2024, Month: time.January, Day: 1}},
		{name: "leap day", input: "2024-02-29", want: Date{Year: 2024, Month: time.February, Day: 29}},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "wrong layout", input: "01/01/2024", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestDate_AddDate(t *testing.T) {
	start := MustParseDate("2024-01-01")

	assert.Equal(t, MustParseDate("2024-04-01"), start.AddDate(0, 3, 0))
	assert.Equal(t, MustParseDate("2024-01-31"), start.AddDays(30))
	assert.Equal(t, MustParseDate("2023-12-31"), start.AddDays(-1))
	// Нормализация конца месяца как у time.Time
	assert.Equal(t, MustParseDate("2024-03-02"), MustParseDate("2024-01-31").AddDate(0, 1, 0))
}

func TestDate_Comparisons(t *testing.T) {
	a := MustParseDate("2024-01-01")
	b := MustParseDate("2024-01-08")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(MustParseDate("2024-01-01")))
	assert.True(t, a.Within(a, b))
	assert.True(t, b.Within(a, b))
	assert.False(t, b.AddDays(1).Within(a, b))
	assert.Equal(t, 7, a.DaysUntil(b))
	assert.Equal(t, -7, b.DaysUntil(a))
	assert.Equal(t, time.Monday, a.Weekday())
}

func TestDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	instant := time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, MustParseDate("2024-01-02"), DateOf(instant))
	assert.Equal(t, MustParseDate("2024-01-01"), DateOf(instant.In(loc)))
}

func TestDatesBetween(t *testing.T) {
	t.Run("inclusive range", func(t *testing.T) {
		dates := DatesBetween(MustParseDate("2024-01-30"), MustParseDate("2024-02-02"))
		require.Len(t, dates, 4)
		assert.Equal(t, "2024-01-30", dates[0].String())
		assert.Equal(t, "2024-01-31", dates[1].String())
		assert.Equal(t, "2024-02-01", dates[2].String())
		assert.Equal(t, "2024-02-02", dates[3].String())
	})

	t.Run("single day", func(t *testing.T) {
		d := MustParseDate("2024-01-01")
		assert.Equal(t, []Date{d}, DatesBetween(d, d))
	})

	t.Run("reversed range is empty", func(t *testing.T) {
		dates := DatesBetween(MustParseDate("2024-01-02"), MustParseDate("2024-01-01"))
		assert.NotNil(t, dates)
		assert.Empty(t, dates)
	})

	t.Run("across DST change keeps one entry per day", func(t *testing.T) {
		dates := DatesBetween(MustParseDate("2024-03-09"), MustParseDate("2024-03-11"))
		assert.Len(t, dates, 3)
	})
}

func TestDate_ScanAndJSON(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-31", d.String())

	require.NoError(t, d.Scan([]byte("2024-01-15")))
	assert.Equal(t, "2024-01-15", d.String())

	assert.Error(t, d.Scan(42))

	raw, err := json.Marshal(MustParseDate("2024-01-01"))
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-01"`, string(raw))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-12-31"`), &decoded))
	assert.Equal(t, MustParseDate("2024-12-31"), decoded)
	assert.ErrorIs(t, json.Unmarshal([]byte(`"31-12-2024"`), &decoded), ErrInvalidDate)
}
