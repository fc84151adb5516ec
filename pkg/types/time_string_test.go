package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"", "9:30", "09-30", "24:00", "09:60", "ab:cd", "09:3", "009:30"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", bad)
	}
}

func TestTimeString_ToMinutes(t *testing.T) {
	cases := map[TimeString]int{
		"00:00": 0,
		"09:00": 540,
		"09:05": 545,
		"23:59": 1439,
	}
	for ts, want := range cases {
		got, err := ts.ToMinutes()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFromMinutes(t *testing.T) {
	ts, err := FromMinutes(545)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:05"), ts)

	_, err = FromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = FromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), ts)

	// Рабочий день не пересекает полночь
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:30").IsAfter("10:00"))
}

func TestIntervalsOverlap(t *testing.T) {
	// Полуоткрытые интервалы: касание границами - не пересечение
	assert.False(t, IntervalsOverlap(540, 600, 600, 660)) // 9:00-10:00 vs 10:00-11:00
	assert.False(t, IntervalsOverlap(600, 660, 540, 600))
	assert.True(t, IntervalsOverlap(540, 600, 599, 630)) // 9:00-10:00 vs 9:59-10:30
	assert.True(t, IntervalsOverlap(540, 600, 500, 700)) // вложенный
	assert.True(t, IntervalsOverlap(540, 600, 540, 600)) // совпадающий
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("10:15:00"))
	assert.Equal(t, TimeString("10:15"), ts)

	require.NoError(t, ts.Scan([]byte("08:45")))
	assert.Equal(t, TimeString("08:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
