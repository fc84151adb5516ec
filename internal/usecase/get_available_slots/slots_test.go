package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velline/salon-booking-service/internal/domain"
	"github.com/velline/salon-booking-service/pkg/types"
)

func minutes(t *testing.T, ts string) int {
	t.Helper()
	m, err := types.TimeString(ts).ToMinutes()
	require.NoError(t, err)
	return m
}

func startTimes(slots []domain.AvailableSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestGenerateSlots_FullDayNoBookings(t *testing.T) {
	// 09:00-18:00, услуга 60 минут: старты каждые 15 минут,
	// последний - 17:00 (услуга должна закончиться к 18:00)
	slots, err := generateSlots(minutes(t, "09:00"), minutes(t, "18:00"), 60, 15, nil)
	require.NoError(t, err)

	got := startTimes(slots)
	require.Len(t, got, 33)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "09:15", got[1])
	assert.Equal(t, "17:00", got[len(got)-1])
	assert.NotContains(t, got, "17:15")
}

func TestGenerateSlots_BufferExclusion(t *testing.T) {
	// Занято 10:00-11:00, буфер 15 минут, услуга 30 минут
	busy := []domain.BusyInterval{{Start: minutes(t, "10:00"), End: minutes(t, "11:00")}}

	slots, err := generateSlots(minutes(t, "09:00"), minutes(t, "12:00"), 30, 15, busy)
	require.NoError(t, err)
	got := startTimes(slots)

	// 09:00-09:30 заканчивается до буферизованного начала 09:45
	assert.Contains(t, got, "09:00")
	// 09:30-10:00 касается буферизованного начала 09:45
	assert.NotContains(t, got, "09:30")
	// 09:50 не кандидат (шаг 15 минут), но 09:45-10:15 тоже в буфере
	assert.NotContains(t, got, "09:45")
	// 11:15-11:45 начинается сразу после буферизованного конца 11:15
	assert.Contains(t, got, "11:15")
	assert.NotContains(t, got, "11:00")
}

func TestGenerateSlots_ZeroBufferAllowsBackToBack(t *testing.T) {
	busy := []domain.BusyInterval{{Start: minutes(t, "10:00"), End: minutes(t, "11:00")}}

	slots, err := generateSlots(minutes(t, "09:00"), minutes(t, "12:00"), 60, 0, busy)
	require.NoError(t, err)
	got := startTimes(slots)

	// Полуоткрытые интервалы: встык при нулевом буфере можно
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "11:00")
	assert.NotContains(t, got, "10:00")
	assert.NotContains(t, got, "10:45")
}

func TestGenerateSlots_ServiceLongerThanDay(t *testing.T) {
	slots, err := generateSlots(minutes(t, "09:00"), minutes(t, "10:00"), 90, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGenerateSlots_StepIndependentOfDuration(t *testing.T) {
	// Услуга 90 минут всё равно может начинаться каждые 15 минут
	slots, err := generateSlots(minutes(t, "09:00"), minutes(t, "12:00"), 90, 0, nil)
	require.NoError(t, err)
	got := startTimes(slots)
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45", "10:00", "10:15", "10:30"}, got)
}
