package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	scheduleRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/schedule"
	"github.com/nrgaliy/Studio-BookingService/internal/service/schedule/models"
	"github.com/nrgaliy/Studio-BookingService/pkg/ptr"
)

// Пятница 2026-04-10
var testNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

type stubScheduleRepo struct {
	weekly    []*domain.WeeklySchedule
	overrides map[string]*domain.ScheduleOverride

	upsertedWeekly    []*domain.WeeklySchedule
	upsertedOverrides []*domain.ScheduleOverride
	deletedOverrides  []string
}

func (s *stubScheduleRepo) GetWeeklyByStudio(_ context.Context, _ int64) ([]*domain.WeeklySchedule, error) {
	return s.weekly, nil
}

func (s *stubScheduleRepo) GetOverride(_ context.Context, _ int64, date time.Time) (*domain.ScheduleOverride, error) {
	o, ok := s.overrides[date.Format(domain.DateFormat)]
	if !ok {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return o, nil
}

func (s *stubScheduleRepo) UpsertWeekly(_ context.Context, w *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	s.upsertedWeekly = append(s.upsertedWeekly, w)
	return w, nil
}

func (s *stubScheduleRepo) UpsertOverride(_ context.Context, o *domain.ScheduleOverride) (*domain.ScheduleOverride, error) {
	s.upsertedOverrides = append(s.upsertedOverrides, o)
	return o, nil
}

func (s *stubScheduleRepo) DeleteOverride(_ context.Context, _ int64, date time.Time) error {
	key := date.Format(domain.DateFormat)
	if _, ok := s.overrides[key]; !ok {
		return scheduleRepo.ErrOverrideNotFound
	}
	s.deletedOverrides = append(s.deletedOverrides, key)
	return nil
}

type stubStaffRepo struct {
	staff map[int64]bool
}

func (s *stubStaffRepo) IsStaff(_ context.Context, _ int64, userID int64) (bool, error) {
	return s.staff[userID], nil
}

type recordingInvalidator struct {
	dates []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, _ int64, date string) {
	r.dates = append(r.dates, date)
}

type fixedTimeProvider struct{}

func (fixedTimeProvider) Now() time.Time { return testNow }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	repo        *stubScheduleRepo
	staff       *stubStaffRepo
	invalidator *recordingInvalidator
	service     *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo: &stubScheduleRepo{
			overrides: map[string]*domain.ScheduleOverride{},
		},
		staff:       &stubStaffRepo{staff: map[int64]bool{200: true}},
		invalidator: &recordingInvalidator{},
	}
	f.service = NewService(f.repo, f.staff, f.invalidator, fixedTimeProvider{}, nopLogger{})
	return f
}

func TestService_GetSchedule(t *testing.T) {
	t.Run("weekly only", func(t *testing.T) {
		f := newFixture()
		f.repo.weekly = []*domain.WeeklySchedule{
			{StudioID: 7, Weekday: time.Friday, OpenTime: "09:00", CloseTime: "22:00"},
		}

		resp, err := f.service.GetSchedule(context.Background(), &models.GetScheduleRequest{StudioID: 7})
		require.NoError(t, err)
		require.Len(t, resp.Weekly, 1)
		assert.Equal(t, int(time.Friday), resp.Weekly[0].Weekday)
		assert.Equal(t, "09:00", resp.Weekly[0].OpenTime)
		assert.Nil(t, resp.Override)
		assert.Nil(t, resp.Window)
	})

	t.Run("date with override", func(t *testing.T) {
		f := newFixture()
		f.repo.weekly = []*domain.WeeklySchedule{
			{StudioID: 7, Weekday: time.Saturday, OpenTime: "09:00", CloseTime: "22:00"},
		}
		f.repo.overrides["2026-04-11"] = &domain.ScheduleOverride{
			StudioID: 7,
			Date:     time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
			IsClosed: true,
			Message:  ptr.Ptr("Санитарный день"),
		}

		resp, err := f.service.GetSchedule(context.Background(), &models.GetScheduleRequest{
			StudioID: 7,
			Date:     ptr.Ptr("2026-04-11"),
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Override)
		assert.True(t, resp.Override.IsClosed)
		require.NotNil(t, resp.Window)
		assert.True(t, resp.Window.IsClosed)
		assert.Equal(t, "Санитарный день", *resp.Window.Message)
	})

	t.Run("date without override falls back to weekly", func(t *testing.T) {
		f := newFixture()
		f.repo.weekly = []*domain.WeeklySchedule{
			{StudioID: 7, Weekday: time.Saturday, OpenTime: "10:00", CloseTime: "20:00"},
		}

		resp, err := f.service.GetSchedule(context.Background(), &models.GetScheduleRequest{
			StudioID: 7,
			Date:     ptr.Ptr("2026-04-11"), // суббота
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Override)
		require.NotNil(t, resp.Window)
		assert.Equal(t, "10:00", resp.Window.StartTime)
		assert.Equal(t, "20:00", resp.Window.EndTime)
	})

	t.Run("no weekly entry for weekday means closed", func(t *testing.T) {
		f := newFixture()
		f.repo.weekly = []*domain.WeeklySchedule{
			{StudioID: 7, Weekday: time.Monday, OpenTime: "09:00", CloseTime: "22:00"},
		}

		resp, err := f.service.GetSchedule(context.Background(), &models.GetScheduleRequest{
			StudioID: 7,
			Date:     ptr.Ptr("2026-04-11"), // суббота
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Window)
		assert.True(t, resp.Window.IsClosed)
	})
}

func TestService_UpdateWeekly(t *testing.T) {
	t.Run("staff updates and catalog is invalidated for matching weekdays", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.UpdateWeekly(context.Background(), &models.UpdateWeeklyScheduleRequest{
			UserID:   200,
			StudioID: 7,
			Entries: []models.WeeklyEntryRequest{
				{Weekday: int(time.Friday), OpenTime: "09:00", CloseTime: "22:00"},
			},
		})
		require.NoError(t, err)
		require.Len(t, f.repo.upsertedWeekly, 1)
		assert.Equal(t, time.Friday, f.repo.upsertedWeekly[0].Weekday)

		// Горизонт 28 дней от пятницы 2026-04-10 содержит четыре пятницы
		assert.Equal(t, []string{"2026-04-10", "2026-04-17", "2026-04-24", "2026-05-01"}, f.invalidator.dates)
	})

	t.Run("non-staff is denied", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.UpdateWeekly(context.Background(), &models.UpdateWeeklyScheduleRequest{
			UserID:   300,
			StudioID: 7,
			Entries: []models.WeeklyEntryRequest{
				{Weekday: int(time.Friday), OpenTime: "09:00", CloseTime: "22:00"},
			},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, f.repo.upsertedWeekly)
	})

	t.Run("window validation", func(t *testing.T) {
		f := newFixture()

		cases := []struct {
			name    string
			entry   models.WeeklyEntryRequest
			wantErr error
		}{
			{
				name:    "unaligned open time",
				entry:   models.WeeklyEntryRequest{Weekday: 1, OpenTime: "09:15", CloseTime: "22:00"},
				wantErr: ErrInvalidTimeRange,
			},
			{
				name:    "open after close",
				entry:   models.WeeklyEntryRequest{Weekday: 1, OpenTime: "22:00", CloseTime: "09:00"},
				wantErr: ErrInvalidTimeRange,
			},
			{
				name:    "garbage time",
				entry:   models.WeeklyEntryRequest{Weekday: 1, OpenTime: "morning", CloseTime: "22:00"},
				wantErr: ErrInvalidInput,
			},
			{
				name:    "invalid weekday",
				entry:   models.WeeklyEntryRequest{Weekday: 7, OpenTime: "09:00", CloseTime: "22:00"},
				wantErr: ErrInvalidInput,
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := f.service.UpdateWeekly(context.Background(), &models.UpdateWeeklyScheduleRequest{
					UserID:   200,
					StudioID: 7,
					Entries:  []models.WeeklyEntryRequest{tc.entry},
				})
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("close at 24:00 is accepted", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.UpdateWeekly(context.Background(), &models.UpdateWeeklyScheduleRequest{
			UserID:   200,
			StudioID: 7,
			Entries: []models.WeeklyEntryRequest{
				{Weekday: int(time.Friday), OpenTime: "12:00", CloseTime: "24:00"},
			},
		})
		require.NoError(t, err)
	})
}

func TestService_SetOverride(t *testing.T) {
	t.Run("staff sets holiday override", func(t *testing.T) {
		f := newFixture()

		resp, err := f.service.SetOverride(context.Background(), &models.SetOverrideRequest{
			UserID:   200,
			StudioID: 7,
			Date:     "2026-05-01",
			IsClosed: true,
			Message:  ptr.Ptr("Праздничный день"),
		})
		require.NoError(t, err)
		assert.True(t, resp.IsClosed)
		assert.Equal(t, []string{"2026-05-01"}, f.invalidator.dates)
	})

	t.Run("short day override keeps window", func(t *testing.T) {
		f := newFixture()

		resp, err := f.service.SetOverride(context.Background(), &models.SetOverrideRequest{
			UserID:    200,
			StudioID:  7,
			Date:      "2026-05-08",
			OpenTime:  "10:00",
			CloseTime: "15:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "10:00", resp.OpenTime)
		assert.Equal(t, "15:00", resp.CloseTime)
	})

	t.Run("invalid date", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.SetOverride(context.Background(), &models.SetOverrideRequest{
			UserID:   200,
			StudioID: 7,
			Date:     "01.05.2026",
			IsClosed: true,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_DeleteOverride(t *testing.T) {
	t.Run("deletes and invalidates", func(t *testing.T) {
		f := newFixture()
		f.repo.overrides["2026-05-01"] = &domain.ScheduleOverride{StudioID: 7}

		err := f.service.DeleteOverride(context.Background(), &models.DeleteOverrideRequest{
			UserID:   200,
			StudioID: 7,
			Date:     "2026-05-01",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-05-01"}, f.repo.deletedOverrides)
		assert.Equal(t, []string{"2026-05-01"}, f.invalidator.dates)
	})

	t.Run("missing override", func(t *testing.T) {
		f := newFixture()

		err := f.service.DeleteOverride(context.Background(), &models.DeleteOverrideRequest{
			UserID:   200,
			StudioID: 7,
			Date:     "2026-05-01",
		})
		assert.ErrorIs(t, err, ErrOverrideNotFound)
	})
}
