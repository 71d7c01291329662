package click_selection

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

type stubCatalogProvider struct {
	catalog []domain.TimeSlot
}

func (s *stubCatalogProvider) Catalog(_ context.Context, _ int64, _ time.Time) ([]domain.TimeSlot, error) {
	return s.catalog, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

// fullCatalog строит каталог, где доступны все слоты, кроме перечисленных
func fullCatalog(t *testing.T, unavailable ...string) []domain.TimeSlot {
	t.Helper()
	blocked := make(map[string]bool, len(unavailable))
	for _, s := range unavailable {
		blocked[s] = true
	}

	catalog := make([]domain.TimeSlot, domain.SlotsPerDay)
	for i := 0; i < domain.SlotsPerDay; i++ {
		tm := domain.SlotTime(i)
		status := domain.SlotAvailable
		if blocked[tm.String()] {
			status = domain.SlotUnavailable
		}
		catalog[i] = domain.TimeSlot{Time: tm, Status: status}
	}
	return catalog
}

func newTestUseCase(t *testing.T, catalog []domain.TimeSlot) *UseCase {
	t.Helper()
	return NewUseCase(&stubCatalogProvider{catalog: catalog}, domain.DefaultHourlyRate, nopLogger{})
}

func times(t *testing.T, ss ...string) []types.TimeString {
	out := make([]types.TimeString, len(ss))
	for i, s := range ss {
		out[i] = mustTime(t, s)
	}
	return out
}

func selected(resp *Response) []string {
	out := make([]string, len(resp.SelectedTimes))
	for i, ts := range resp.SelectedTimes {
		out[i] = ts.String()
	}
	return out
}

func TestExecute_FirstClickSelectsHour(t *testing.T) {
	uc := newTestUseCase(t, fullCatalog(t))

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID:    1,
		Date:        time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		ClickedTime: mustTime(t, "10:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30"}, selected(resp))
	require.NotNil(t, resp.Summary)
	assert.Equal(t, "10:00", resp.Summary.StartTime.String())
	assert.Equal(t, "11:00", resp.Summary.EndTime.String())
	assert.Equal(t, 1.0, resp.Summary.DurationHours)
	assert.Equal(t, domain.DefaultHourlyRate, resp.Summary.BasePrice)
}

func TestExecute_ExtendAdjacent(t *testing.T) {
	uc := newTestUseCase(t, fullCatalog(t))

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID:      1,
		Date:          time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		SelectedTimes: times(t, "10:00", "10:30"),
		ClickedTime:   mustTime(t, "11:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:30", "11:00"}, selected(resp))
	assert.Equal(t, 1.5, resp.Summary.DurationHours)
}

func TestExecute_InteriorClickClearsSelection(t *testing.T) {
	uc := newTestUseCase(t, fullCatalog(t))

	resp, err := uc.Execute(context.Background(), &Request{
		StudioID:      1,
		Date:          time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		SelectedTimes: times(t, "10:00", "10:30", "11:00"),
		ClickedTime:   mustTime(t, "10:30"),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.SelectedTimes)
	assert.Nil(t, resp.Summary)
}

func TestExecute_ResliceThroughReservedRejected(t *testing.T) {
	uc := newTestUseCase(t, fullCatalog(t, "11:00"))

	_, err := uc.Execute(context.Background(), &Request{
		StudioID:      1,
		Date:          time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		SelectedTimes: times(t, "10:00", "10:30", "11:30", "12:00"),
		ClickedTime:   mustTime(t, "11:00"),
	})

	// Кликнутый слот недоступен: no-op, выбор не меняется
	require.NoError(t, err)

	// А вот пересборка через недоступный слот отклоняется
	_, err = uc.Execute(context.Background(), &Request{
		StudioID:      1,
		Date:          time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		SelectedTimes: times(t, "10:00", "10:30", "12:30"),
		ClickedTime:   mustTime(t, "12:00"),
	})
	assert.ErrorIs(t, err, ErrNonContiguous)
}

func TestExecute_UnalignedClickRejected(t *testing.T) {
	uc := newTestUseCase(t, fullCatalog(t))

	_, err := uc.Execute(context.Background(), &Request{
		StudioID:    1,
		Date:        time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		ClickedTime: mustTime(t, "10:15"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
