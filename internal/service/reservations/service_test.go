package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrgaliy/Studio-BookingService/internal/domain"
	reservationRepo "github.com/nrgaliy/Studio-BookingService/internal/infra/storage/reservation"
	"github.com/nrgaliy/Studio-BookingService/internal/service/reservations/models"
	"github.com/nrgaliy/Studio-BookingService/pkg/ptr"
)

type stubReservationRepo struct {
	byID map[int64]*domain.Reservation

	cancelledID     int64
	cancelledStatus domain.ReservationStatus
	cancelledReason string

	updatedID     int64
	updatedStatus domain.ReservationStatus

	customerListing []*domain.Reservation
	studioListing   []*domain.Reservation
	lastFilter      domain.StudioReservationsFilter
}

func (s *stubReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := s.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (s *stubReservationRepo) GetByPublicID(_ context.Context, publicID string) (*domain.Reservation, error) {
	for _, res := range s.byID {
		if res.PublicID == publicID {
			return res, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (s *stubReservationRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return s.customerListing, nil
}

func (s *stubReservationRepo) GetByStudioWithFilter(_ context.Context, filter domain.StudioReservationsFilter) ([]*domain.Reservation, error) {
	s.lastFilter = filter
	return s.studioListing, nil
}

func (s *stubReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	s.updatedID = id
	s.updatedStatus = status
	return nil
}

func (s *stubReservationRepo) Cancel(_ context.Context, id int64, status domain.ReservationStatus, reason string) error {
	s.cancelledID = id
	s.cancelledStatus = status
	s.cancelledReason = reason
	return nil
}

type stubStaffRepo struct {
	staff map[int64]bool // userID -> is staff
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

type recordingEnqueuer struct {
	cancelled []string
}

func (r *recordingEnqueuer) EnqueueReservationCancelled(_ context.Context, res *domain.Reservation) error {
	r.cancelled = append(r.cancelled, res.PublicID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	repo        *stubReservationRepo
	staff       *stubStaffRepo
	invalidator *recordingInvalidator
	enqueuer    *recordingEnqueuer
	service     *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:        &stubReservationRepo{byID: map[int64]*domain.Reservation{}},
		staff:       &stubStaffRepo{staff: map[int64]bool{}},
		invalidator: &recordingInvalidator{},
		enqueuer:    &recordingEnqueuer{},
	}
	f.service = NewService(f.repo, f.staff, f.invalidator, f.enqueuer, nopLogger{})
	return f
}

func sampleReservation(id, customerID int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:           id,
		PublicID:     "res-public-1",
		StudioID:     7,
		CustomerID:   customerID,
		Date:         time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC),
		StartTime:    "10:00",
		EndTime:      "11:30",
		TotalHours:   1.5,
		BasePrice:    30000,
		FinalPrice:   30000,
		CustomerName: "Иван Петров",
		Status:       status,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("owner can read own reservation", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)

		resp, err := f.service.GetByID(context.Background(), 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "2026-04-11", resp.Date)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, "11:30", resp.EndTime)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("staff can read customer reservation", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)
		f.staff.staff[200] = true

		_, err := f.service.GetByID(context.Background(), 1, 200)
		require.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)

		_, err := f.service.GetByID(context.Background(), 1, 300)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing reservation", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GetByID(context.Background(), 99, 100)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_GetStudioReservations(t *testing.T) {
	t.Run("staff gets filtered listing", func(t *testing.T) {
		f := newFixture()
		f.staff.staff[200] = true
		f.repo.studioListing = []*domain.Reservation{sampleReservation(1, 100, domain.StatusConfirmed)}

		resp, err := f.service.GetStudioReservations(context.Background(), &models.GetStudioReservationsRequest{
			UserID:   200,
			StudioID: 7,
			Status:   ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Reservations, 1)
		require.NotNil(t, f.repo.lastFilter.Status)
		assert.Equal(t, domain.StatusConfirmed, *f.repo.lastFilter.Status)
	})

	t.Run("non-staff is denied", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.GetStudioReservations(context.Background(), &models.GetStudioReservationsRequest{
			UserID:   300,
			StudioID: 7,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		f := newFixture()
		f.staff.staff[200] = true

		_, err := f.service.GetStudioReservations(context.Background(), &models.GetStudioReservationsRequest{
			UserID:   200,
			StudioID: 7,
			Status:   ptr.Ptr("no_such_status"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("owner cancels as cancelled_by_user", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)

		err := f.service.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID:             100,
			CancellationReason: "передумал",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByUser, f.repo.cancelledStatus)
		assert.Equal(t, "передумал", f.repo.cancelledReason)
		assert.Equal(t, []string{"2026-04-11"}, f.invalidator.dates)
		assert.Equal(t, []string{"res-public-1"}, f.enqueuer.cancelled)
	})

	t.Run("staff cancels as cancelled_by_studio", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)
		f.staff.staff[200] = true

		err := f.service.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 200})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledByStudio, f.repo.cancelledStatus)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)

		err := f.service.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 300})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, f.invalidator.dates)
		assert.Empty(t, f.enqueuer.cancelled)
	})

	t.Run("already cancelled reservation", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusCancelledByUser)

		err := f.service.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("completed reservation cannot be cancelled", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusCompleted)

		err := f.service.Cancel(context.Background(), 1, &models.CancelReservationRequest{UserID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	t.Run("staff marks reservation completed", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)
		f.staff.staff[200] = true

		err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 200,
			Status: "completed",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, f.repo.updatedStatus)
		// Статус остался активным - занятость слотов не изменилась
		assert.Empty(t, f.invalidator.dates)
	})

	t.Run("deactivating status invalidates catalog", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)
		f.staff.staff[200] = true

		err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 200,
			Status: "cancelled_by_studio",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-04-11"}, f.invalidator.dates)
	})

	t.Run("owner without staff rights is denied", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)

		err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 100,
			Status: "completed",
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("invalid status", func(t *testing.T) {
		f := newFixture()
		f.repo.byID[1] = sampleReservation(1, 100, domain.StatusConfirmed)
		f.staff.staff[200] = true

		err := f.service.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
			UserID: 200,
			Status: "vanished",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
