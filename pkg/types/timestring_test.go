package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:30", want: "09:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last slot", input: "23:30", want: "23:30"},
		{name: "end of day", input: "24:00", want: "24:00"},
		{name: "past end of day", input: "24:30", wantErr: true},
		{name: "bad hour", input: "25:00", wantErr: true},
		{name: "bad minute", input: "10:60", wantErr: true},
		{name: "no separator", input: "1030", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   TimeString
		add     int
		want    TimeString
		wantErr bool
	}{
		{name: "plain add", start: "10:00", add: 30, want: "10:30"},
		{name: "hour rollover", start: "10:45", add: 30, want: "11:15"},
		{name: "to end of day", start: "23:30", add: 30, want: "24:00"},
		{name: "past end of day", start: "23:30", add: 60, wantErr: true},
		{name: "zero", start: "12:00", add: 0, want: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.start.AddMinutes(tt.add)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("22:00").IsAfter("21:30"))
	assert.False(t, TimeString("21:30").IsAfter("21:30"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan(time.Date(2026, 3, 14, 10, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan("14:30:00"))
	assert.Equal(t, TimeString("14:30"), ts)

	require.NoError(t, ts.Scan([]byte("08:00:00")))
	assert.Equal(t, TimeString("08:00"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestNewTimeString(t *testing.T) {
	got := NewTimeString(time.Date(2026, 1, 2, 7, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("07:05"), got)
}
