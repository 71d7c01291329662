package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

// fullyAvailableCatalog дневная сетка, где все слоты доступны
func fullyAvailableCatalog() []domain.TimeSlot {
	catalog := make([]domain.TimeSlot, domain.SlotsPerDay)
	for i := range catalog {
		catalog[i] = domain.TimeSlot{Time: domain.SlotTime(i), Status: domain.SlotAvailable}
	}
	return catalog
}

func catalogWithUnavailable(times ...types.TimeString) []domain.TimeSlot {
	catalog := fullyAvailableCatalog()
	for _, t := range times {
		catalog[domain.SlotIndex(t)].Status = domain.SlotUnavailable
	}
	return catalog
}

func mustState(t *testing.T, times ...types.TimeString) State {
	t.Helper()
	s, err := FromTimes(times)
	require.NoError(t, err)
	return s
}

func TestReduce_EmptySelectionAutoSelectsOneHour(t *testing.T) {
	catalog := fullyAvailableCatalog()

	// Сценарий B: клик по 14:00 при доступном 14:30 выбирает час
	got, err := Reduce(Empty(), "14:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00", "14:30"}, got.Times())

	summary, ok := Summarize(got, 20000)
	require.True(t, ok)
	assert.Equal(t, 1.0, summary.DurationHours)
}

func TestReduce_EmptySelectionNextSlotUnavailable(t *testing.T) {
	catalog := catalogWithUnavailable("14:30")

	got, err := Reduce(Empty(), "14:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00"}, got.Times())
}

func TestReduce_EmptySelectionLastSlotOfDay(t *testing.T) {
	got, err := Reduce(Empty(), "23:30", fullyAvailableCatalog())
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"23:30"}, got.Times())
}

func TestReduce_ClickUnavailableSlotIsNoOp(t *testing.T) {
	catalog := catalogWithUnavailable("10:00")
	state := mustState(t, "14:00", "14:30")

	got, err := Reduce(state, "10:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, state.Times(), got.Times())
}

func TestReduce_ClickBoundaryRemovesSlot(t *testing.T) {
	catalog := fullyAvailableCatalog()
	state := mustState(t, "14:00", "14:30", "15:00")

	got, err := Reduce(state, "15:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00", "14:30"}, got.Times())

	got, err = Reduce(state, "14:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:30", "15:00"}, got.Times())
}

func TestReduce_RemovingBoundaryCollapsesDanglingSlot(t *testing.T) {
	catalog := fullyAvailableCatalog()

	// Из пары удаление границы оставило бы одинокий слот — выбор очищается
	state := mustState(t, "14:00", "14:30")
	got, err := Reduce(state, "14:30", catalog)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	// Единственный выбранный слот: клик по нему очищает выбор
	single := mustState(t, "14:00")
	got, err = Reduce(single, "14:00", catalog)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestReduce_ClickInteriorClearsSelection(t *testing.T) {
	// Сценарий E: клик по внутреннему слоту тройки сбрасывает выбор целиком
	catalog := fullyAvailableCatalog()
	state := mustState(t, "14:00", "14:30", "15:00")

	got, err := Reduce(state, "14:30", catalog)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestReduce_AdjacentClickExtends(t *testing.T) {
	catalog := fullyAvailableCatalog()
	state := mustState(t, "14:00", "14:30")

	// Примыкает к максимуму
	got, err := Reduce(state, "15:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00", "14:30", "15:00"}, got.Times())

	// Примыкает к минимуму
	got, err = Reduce(state, "13:30", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"13:30", "14:00", "14:30"}, got.Times())
}

func TestReduce_FarClickRestartsSelection(t *testing.T) {
	catalog := fullyAvailableCatalog()
	state := mustState(t, "14:00", "14:30")

	got, err := Reduce(state, "18:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"18:00", "18:30"}, got.Times())

	got, err = Reduce(state, "09:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, got.Times())
}

func TestReduce_ResliceInteriorGap(t *testing.T) {
	catalog := fullyAvailableCatalog()

	// Непоследовательное состояние (например, от клиента): {14:00, 16:00}
	state := mustState(t, "14:00", "16:00")

	// Клик по 15:00 внутри диапазона пересобирает [14:00, 15:00]
	got, err := Reduce(state, "15:00", catalog)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:00", "14:30", "15:00"}, got.Times())
	assert.True(t, got.IsContiguous())
}

func TestReduce_ResliceRejectsUnavailableInRange(t *testing.T) {
	catalog := catalogWithUnavailable("14:30")
	state := mustState(t, "14:00", "16:00")

	// 14:30 занят — операция отклоняется целиком, состояние не меняется
	got, err := Reduce(state, "15:00", catalog)
	require.ErrorIs(t, err, ErrNonContiguous)
	assert.Equal(t, state.Times(), got.Times())
}

func TestReduce_ContiguityHoldsThroughClickSequence(t *testing.T) {
	catalog := catalogWithUnavailable("11:00", "19:30")
	state := Empty()

	clicks := []types.TimeString{"14:00", "15:00", "15:30", "13:30", "15:30", "09:00", "11:00", "09:00"}
	for _, c := range clicks {
		next, err := Reduce(state, c, catalog)
		if err != nil {
			continue
		}
		state = next
		assert.True(t, state.IsContiguous(), "after click %s", c)
		assert.LessOrEqual(t, state.Size(), domain.MaxSelectionSlots)
	}
}

func TestFromTimes_RejectsUnalignedTime(t *testing.T) {
	_, err := FromTimes([]types.TimeString{"14:15"})
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestFromTimes_DeduplicatesAndSorts(t *testing.T) {
	s, err := FromTimes([]types.TimeString{"15:00", "14:30", "15:00"})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"14:30", "15:00"}, s.Times())
}

func TestSummarize(t *testing.T) {
	// Сценарий C: 1.5 часа по 20000 в час
	state := mustState(t, "14:00", "14:30", "15:00")

	summary, ok := Summarize(state, 20000)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("14:00"), summary.StartTime)
	assert.Equal(t, types.TimeString("15:30"), summary.EndTime)
	assert.Equal(t, 1.5, summary.DurationHours)
	assert.Equal(t, int64(30000), summary.BasePrice)
}

func TestSummarize_EndOfDay(t *testing.T) {
	state := mustState(t, "23:00", "23:30")

	summary, ok := Summarize(state, 20000)
	require.True(t, ok)
	assert.Equal(t, types.TimeString("24:00"), summary.EndTime)
}

func TestSummarize_Empty(t *testing.T) {
	_, ok := Summarize(Empty(), 20000)
	assert.False(t, ok)
}
