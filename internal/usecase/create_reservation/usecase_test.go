package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	rewardsClient "github.com/nrgaliy/Studio-BookingService/internal/integrations/rewards"
	"github.com/nrgaliy/Studio-BookingService/pkg/types"
)

type stubReservationRepo struct {
	existing  []*domain.Reservation
	createErr error

	created *domain.Reservation
	deleted []int64
}

func (s *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	res.ID = 42
	res.CreatedAt = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	s.created = res
	return res, nil
}

func (s *stubReservationRepo) GetByStudioWithFilter(_ context.Context, _ domain.StudioReservationsFilter) ([]*domain.Reservation, error) {
	return s.existing, nil
}

func (s *stubReservationRepo) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubScheduleRepo struct {
	window domain.OperatingWindow
}

func (s *stubScheduleRepo) GetWindowForDate(_ context.Context, _ int64, _ time.Time) (domain.OperatingWindow, error) {
	return s.window, nil
}

type stubRewards struct {
	eligibility domain.DiscountEligibility
	consumeErr  error
	deductErr   error

	consumed []string
	released []string
	deducted int
}

func (s *stubRewards) GetEligibility(_ context.Context, _ int64) (domain.DiscountEligibility, error) {
	return s.eligibility, nil
}

func (s *stubRewards) ConsumeCoupons(_ context.Context, _ int64, couponIDs []string, _ string) error {
	if s.consumeErr != nil {
		return s.consumeErr
	}
	s.consumed = append(s.consumed, couponIDs...)
	return nil
}

func (s *stubRewards) ReleaseCoupons(_ context.Context, _ int64, couponIDs []string, _ string) error {
	s.released = append(s.released, couponIDs...)
	return nil
}

func (s *stubRewards) DeductMinutes(_ context.Context, _ int64, minutes int, _ string) error {
	if s.deductErr != nil {
		return s.deductErr
	}
	s.deducted += minutes
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingInvalidator struct {
	calls []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, _ int64, date string) {
	r.calls = append(r.calls, date)
}

type recordingNotifier struct {
	events []string
	err    error
}

func (r *recordingNotifier) EnqueueReservationConfirmed(_ context.Context, res *domain.Reservation) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, res.PublicID)
	return nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	uc          *UseCase
	repo        *stubReservationRepo
	rewards     *stubRewards
	invalidator *recordingInvalidator
	notifier    *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := &stubReservationRepo{}
	rewards := &stubRewards{
		eligibility: domain.DiscountEligibility{
			AccumulatedMinutes: 90,
			Coupons: []domain.Coupon{
				{ID: "c1", Minutes: 30, ExpiresAt: testNow.Add(24 * time.Hour)},
			},
		},
	}
	invalidator := &recordingInvalidator{}
	notifier := &recordingNotifier{}

	sched := &stubScheduleRepo{window: mustWindow(t, "09:00", "22:00")}
	uc := NewUseCase(repo, sched, rewards, passthroughTxManager{}, invalidator, notifier, 20000, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return &fixture{uc: uc, repo: repo, rewards: rewards, invalidator: invalidator, notifier: notifier}
}

func mustTime(t *testing.T, s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func mustWindow(t *testing.T, start, end string) domain.OperatingWindow {
	return domain.OperatingWindow{Start: mustTime(t, start), End: mustTime(t, end)}
}

func validRequest(t *testing.T) *Request {
	return &Request{
		StudioID:       1,
		CustomerID:     7,
		Date:           time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		SelectedTimes:  []types.TimeString{mustTime(t, "10:00"), mustTime(t, "10:30"), mustTime(t, "11:00")},
		CustomerName:   "Иван Петров",
		PrivacyConsent: true,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.NotEmpty(t, resp.PublicID)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:30", resp.EndTime.String())
	assert.Equal(t, 1.5, resp.TotalHours)
	assert.Equal(t, int64(30000), resp.BasePrice)
	assert.Equal(t, int64(30000), resp.FinalPrice)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	assert.Equal(t, []string{"2026-04-11"}, f.invalidator.calls)
	assert.Equal(t, []string{resp.PublicID}, f.notifier.events)
	assert.Empty(t, f.repo.deleted)
}

func TestExecute_WithDiscounts(t *testing.T) {
	f := newFixture(t)
	req := validRequest(t)
	req.CouponIDs = []string{"c1"}
	req.AccumulatedMinutes = 90

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	// excess 30: купон занимает весь остаток, минуты зажаты в ноль
	assert.Equal(t, []string{"c1"}, resp.UsedCouponIDs)
	assert.Equal(t, 0, resp.UsedMinutes)
	assert.Equal(t, int64(20000), resp.FinalPrice)

	assert.Equal(t, []string{"c1"}, f.rewards.consumed)
	assert.Equal(t, 0, f.rewards.deducted)
}

func TestExecute_SlotConflictFromPrecheck(t *testing.T) {
	f := newFixture(t)
	f.repo.existing = []*domain.Reservation{
		{StartTime: mustTime(t, "10:30"), EndTime: mustTime(t, "11:30")},
	}

	_, err := f.uc.Execute(context.Background(), validRequest(t))

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.rewards.consumed)
	assert.Empty(t, f.invalidator.calls)
	assert.Empty(t, f.notifier.events)
}

func TestExecute_CouponConsumeFailureDeletesReservation(t *testing.T) {
	f := newFixture(t)
	f.rewards.consumeErr = rewardsClient.ErrCouponNotFound
	req := validRequest(t)
	req.CouponIDs = []string{"c1"}

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrDiscountConflict)
	assert.Equal(t, []int64{42}, f.repo.deleted)
	assert.Empty(t, f.notifier.events)
}

func TestExecute_DeductFailureReleasesCouponsAndDeletes(t *testing.T) {
	f := newFixture(t)
	f.rewards.deductErr = errors.New("rewards down")
	req := validRequest(t)
	req.CouponIDs = []string{"c1"}
	req.SelectedTimes = []types.TimeString{
		mustTime(t, "10:00"), mustTime(t, "10:30"), mustTime(t, "11:00"),
		mustTime(t, "11:30"), mustTime(t, "12:00"), mustTime(t, "12:30"),
	}
	req.AccumulatedMinutes = 60

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{"c1"}, f.rewards.released)
	assert.Equal(t, []int64{42}, f.repo.deleted)
}

func TestExecute_OutsideOperatingWindow(t *testing.T) {
	f := newFixture(t)
	req := validRequest(t)
	req.SelectedTimes = []types.TimeString{mustTime(t, "08:00"), mustTime(t, "08:30")}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStudioClosed)
}

func TestExecute_CommitCutoff(t *testing.T) {
	f := newFixture(t)
	req := validRequest(t)
	req.Date = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC) // сегодня
	req.SelectedTimes = []types.TimeString{mustTime(t, "09:00"), mustTime(t, "09:30")}

	// now = 09:00, до начала 0 минут — меньше минимального зазора
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCommitCutoff)
}

func TestExecute_ValidationFailures(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"unauthenticated", func(r *Request) { r.CustomerID = 0 }, ErrNotAuthenticated},
		{"no consent", func(r *Request) { r.PrivacyConsent = false }, ErrConsentRequired},
		{"empty selection", func(r *Request) { r.SelectedTimes = nil }, ErrEmptySelection},
		{"blank name", func(r *Request) { r.CustomerName = "   " }, ErrInvalidInput},
		{
			"non-contiguous selection",
			func(r *Request) {
				r.SelectedTimes = []types.TimeString{mustTime(t, "10:00"), mustTime(t, "11:00")}
			},
			ErrNonContiguous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
