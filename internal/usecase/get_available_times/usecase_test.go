package get_available_times

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	"github.com/nrgaliy/Studio-BookingService/internal/infra/cache"
)

type stubReservationRepo struct {
	reservations []*domain.Reservation
	calls        int
}

func (s *stubReservationRepo) GetActiveByStudioAndDate(_ context.Context, _ int64, _ string) ([]*domain.Reservation, error) {
	s.calls++
	return s.reservations, nil
}

type stubScheduleRepo struct {
	window domain.OperatingWindow
	calls  int
}

func (s *stubScheduleRepo) GetWindowForDate(_ context.Context, _ int64, _ time.Time) (domain.OperatingWindow, error) {
	s.calls++
	return s.window, nil
}

type mapCache struct {
	entries map[string]cache.DayInputs
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]cache.DayInputs)}
}

func (c *mapCache) Get(studioID int64, date string) (cache.DayInputs, bool) {
	inputs, ok := c.entries[key(studioID, date)]
	return inputs, ok
}

func (c *mapCache) Put(studioID int64, date string, inputs cache.DayInputs) {
	c.entries[key(studioID, date)] = inputs
}

func key(studioID int64, date string) string {
	return date + "#" + string(rune(studioID))
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(t *testing.T, resRepo *stubReservationRepo, schedRepo *stubScheduleRepo, now time.Time) (*UseCase, *mapCache) {
	t.Helper()
	c := newMapCache()
	uc := NewUseCase(resRepo, schedRepo, c, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc, c
}

func TestExecute_BuildsCatalogForToday(t *testing.T) {
	now := time.Date(2026, 4, 10, 10, 15, 0, 0, time.UTC)
	resRepo := &stubReservationRepo{
		reservations: []*domain.Reservation{
			{StartTime: mustTime(t, "11:00"), EndTime: mustTime(t, "12:00")},
		},
	}
	schedRepo := &stubScheduleRepo{window: window(t, "09:00", "22:00")}
	uc, _ := newTestUseCase(t, resRepo, schedRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{StudioID: 1, Date: now})

	require.NoError(t, err)
	assert.True(t, resp.IsToday)
	assert.False(t, resp.IsClosed)
	assert.Equal(t, "09:00", resp.OperatingStartTime.String())
	assert.Equal(t, "22:00", resp.OperatingEndTime.String())
	assert.Equal(t, "10:15", resp.CurrentTime.String())
	require.Len(t, resp.Slots, domain.SlotsPerDay)

	assert.Equal(t, domain.SlotUnavailable, statusAt(resp.Slots, "10:00"))
	assert.Equal(t, domain.SlotAvailable, statusAt(resp.Slots, "10:30"))
	assert.Equal(t, domain.SlotUnavailable, statusAt(resp.Slots, "11:00"))

	require.Len(t, resp.UnavailableSlots, 2)
	assert.Equal(t, "11:00", resp.UnavailableSlots[0].String())
	assert.Equal(t, "11:30", resp.UnavailableSlots[1].String())
}

func TestExecute_UsesCacheOnSecondCall(t *testing.T) {
	now := time.Date(2026, 4, 10, 10, 15, 0, 0, time.UTC)
	resRepo := &stubReservationRepo{}
	schedRepo := &stubScheduleRepo{window: window(t, "09:00", "22:00")}
	uc, _ := newTestUseCase(t, resRepo, schedRepo, now)

	req := &Request{StudioID: 1, Date: now}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, schedRepo.calls)
	assert.Equal(t, 1, resRepo.calls)
}

func TestExecute_ClosedDaySkipsReservations(t *testing.T) {
	now := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	message := "Выходной"
	resRepo := &stubReservationRepo{}
	schedRepo := &stubScheduleRepo{window: domain.OperatingWindow{IsClosed: true, Message: &message}}
	uc, _ := newTestUseCase(t, resRepo, schedRepo, now)

	resp, err := uc.Execute(context.Background(), &Request{StudioID: 1, Date: now.AddDate(0, 0, 1)})

	require.NoError(t, err)
	assert.True(t, resp.IsClosed)
	require.NotNil(t, resp.Message)
	assert.Equal(t, "Выходной", *resp.Message)
	assert.Equal(t, 0, resRepo.calls)

	for _, slot := range resp.Slots {
		assert.Equal(t, domain.SlotUnavailable, slot.Status)
	}
}

func TestExecute_PastDateRejected(t *testing.T) {
	now := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(t, &stubReservationRepo{}, &stubScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{StudioID: 1, Date: now.AddDate(0, 0, -1)})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_InvalidStudioRejected(t *testing.T) {
	now := time.Date(2026, 4, 10, 10, 0, 0, 0, time.UTC)
	uc, _ := newTestUseCase(t, &stubReservationRepo{}, &stubScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{StudioID: 0, Date: now})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
