package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasConflict_HalfOpenBoundaries(t *testing.T) {
	busy := []BusyInterval{{Start: 600, End: 660}} // 10:00-11:00

	// Граничащие интервалы не конфликтуют
	assert.False(t, HasConflict(540, 600, busy)) // 9:00-10:00
	assert.False(t, HasConflict(660, 720, busy)) // 11:00-12:00

	assert.True(t, HasConflict(630, 690, busy)) // 10:30-11:30
	assert.True(t, HasConflict(599, 630, busy)) // 9:59-10:30
}

func TestHasBufferedConflict(t *testing.T) {
	busy := []BusyInterval{{Start: 600, End: 660}} // занято 10:00-11:00, буфер 15 минут

	// 9:50-10:20 попадает в буферизованную зону
	assert.True(t, HasBufferedConflict(590, 620, 15, busy))
	// 9:30-10:00 касается буферизованного начала 9:45
	assert.True(t, HasBufferedConflict(570, 600, 15, busy))
	// 9:00-9:30 заканчивается до буфера
	assert.False(t, HasBufferedConflict(540, 570, 15, busy))
	// При нулевом буфере граничащий интервал проходит
	assert.False(t, HasBufferedConflict(570, 600, 0, busy))
}

func TestBusyIntervalsFromReservations_SkipsCancelled(t *testing.T) {
	reservations := []*Reservation{
		{StartTime: "10:00", EndTime: "11:00", Status: StatusConfirmed},
		{StartTime: "12:00", EndTime: "13:00", Status: StatusCancelledByClient},
		{StartTime: "14:00", EndTime: "15:00", Status: StatusCancelledByAdmin},
		{StartTime: "16:00", EndTime: "17:00", Status: StatusNoShow},
	}

	busy, err := BusyIntervalsFromReservations(reservations)
	require.NoError(t, err)

	// Отменённые исключены; no_show остаётся блокирующим
	require.Len(t, busy, 2)
	assert.Equal(t, BusyInterval{Start: 600, End: 660}, busy[0])
	assert.Equal(t, BusyInterval{Start: 960, End: 1020}, busy[1])
}
