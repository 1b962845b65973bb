package types

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "with seconds", input: "17:00:00", want: TimeOfDay{Hour: 17}},
		{name: "without seconds", input: "09:30", want: TimeOfDay{Hour: 9, Minute: 30}},
		{name: "postgres fractional", input: "17:00:00.000000", want: TimeOfDay{Hour: 17}},
		{name: "end of day", input: "23:59:59", want: TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
		{name: "hour out of range", input: "24:00:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "single digit hour", input: "9:30", wantErr: true},
		{name: "garbage", input: "five pm", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeOfDay_Validate(t *testing.T) {
	assert.NoError(t, TimeOfDay{Hour: 0}.Validate())
	assert.ErrorIs(t, TimeOfDay{Hour: -1}.Validate(), ErrInvalidTimeOfDay)
	assert.ErrorIs(t, TimeOfDay{Hour: 10, Second: 60}.Validate(), ErrInvalidTimeOfDay)
}

func TestTimeOfDay_Ordering(t *testing.T) {
	start := MustParseTimeOfDay("17:00")
	end := MustParseTimeOfDay("20:00")

	assert.True(t, start.Before(end))
	assert.True(t, end.After(start))
	assert.True(t, start.Equal(MustParseTimeOfDay("17:00:00")))
	assert.False(t, start.Before(start))
}

func TestTimeOfDay_On(t *testing.T) {
	tod := MustParseTimeOfDay("17:00:00")
	date := MustParseDate("2024-01-08")

	assert.Equal(t, time.Date(2024, 1, 8, 17, 0, 0, 0, time.UTC), tod.On(date, nil))

	loc := time.FixedZone("CET", 3600)
	got := tod.On(date, loc)
	assert.Equal(t, time.Date(2024, 1, 8, 16, 0, 0, 0, time.UTC), got.UTC())
}

func TestTimeOfDay_Matches(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	tod := MustParseTimeOfDay("02:30")

	// 2024-03-31: в 02:00 часы переводятся на 03:00
	gap := tod.On(MustParseDate("2024-03-31"), madrid)
	assert.False(t, tod.Matches(gap))

	assert.True(t, tod.Matches(tod.On(MustParseDate("2024-04-07"), madrid)))
	assert.True(t, tod.Matches(tod.On(MustParseDate("2024-03-31"), time.UTC)))
}

func TestTimeOfDay_Formatting(t *testing.T) {
	tod := TimeOfDay{Hour: 9, Minute: 5, Second: 7}
	assert.Equal(t, "09:05:07", tod.String())
	assert.Equal(t, "09:05", tod.Short())

	value, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:05:07", value)

	raw, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.JSONEq(t, `"09:05:07"`, string(raw))

	var decoded TimeOfDay
	require.NoError(t, json.Unmarshal([]byte(`"18:30"`), &decoded))
	assert.Equal(t, TimeOfDay{Hour: 18, Minute: 30}, decoded)
}

func TestTimeOfDay_Scan(t *testing.T) {
	var tod TimeOfDay
	require.NoError(t, tod.Scan("17:00:00"))
	assert.Equal(t, TimeOfDay{Hour: 17}, tod)

	require.NoError(t, tod.Scan([]byte("08:15:00")))
	assert.Equal(t, TimeOfDay{Hour: 8, Minute: 15}, tod)

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 12, 34, 56, 0, time.UTC)))
	assert.Equal(t, TimeOfDay{Hour: 12, Minute: 34, Second: 56}, tod)

	assert.ErrorIs(t, tod.Scan("noon"), ErrInvalidTimeOfDay)
	assert.ErrorIs(t, tod.Scan(3.14), ErrInvalidTimeOfDay)
}
