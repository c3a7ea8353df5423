package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-engine/internal/domain"
	reservationRepo "github.com/salonmarket/booking-engine/internal/infra/storage/reservation"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/internal/service/reservations/models"
	"github.com/salonmarket/booking-engine/pkg/ptr"
	"github.com/salonmarket/booking-engine/pkg/types"
)

type fakeRepo struct {
	reservations map[int64]*domain.Reservation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reservations: make(map[int64]*domain.Reservation)}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (f *fakeRepo) GetByCustomer(_ context.Context, customerID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.CustomerID != customerID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		copied := *res
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeRepo) GetBySalonWithFilter(_ context.Context, filter domain.SalonReservationsFilter) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, res := range f.reservations {
		if res.SalonID != filter.SalonID {
			continue
		}
		if filter.StaffID != nil && res.StaffID != *filter.StaffID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeInactive && !res.IsBlocking() {
			continue
		}
		copied := *res
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	res, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	now := time.Now()
	res.Status = domain.StatusCancelled
	res.CancellationReason = &reason
	res.CancelledAt = &now
	return nil
}

type fakeCatalogClient struct {
	salon *catalogservice.Salon
}

func (f *fakeCatalogClient) GetSalon(_ context.Context, _ int64) (*catalogservice.Salon, error) {
	if f.salon == nil {
		return nil, catalogservice.ErrSalonNotFound
	}
	return f.salon, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const (
	customerID = int64(1)
	managerID  = int64(50)
	strangerID = int64(99)
)

func testReservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		CustomerID:      customerID,
		SalonID:         10,
		StaffID:         100,
		ServiceID:       1,
		Date:            time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("11:00"),
		DurationMinutes: 60,
		Status:          status,
		ServiceName:     "Haircut",
		FinalPriceCents: 5000,
	}
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(
		repo,
		&fakeCatalogClient{
			salon: &catalogservice.Salon{
				ID:         10,
				Name:       "Glow",
				ManagerIDs: []int64{managerID},
				IsActive:   true,
			},
		},
		passthroughTxManager{},
		noopLogger{},
	)
}

func TestGetByID(t *testing.T) {
	repo := newFakeRepo()
	repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
	svc := newTestService(repo)

	t.Run("owner sees own reservation", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, customerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("manager sees salon reservation", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, managerID)
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, strangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, customerID)
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID:             customerID,
			CancellationReason: "plans changed",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelled, repo.reservations[1].Status)
		require.NotNil(t, repo.reservations[1].CancellationReason)
		assert.Equal(t, "plans changed", *repo.reservations[1].CancellationReason)
	})

	t.Run("manager cancels", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusPending)
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID:             managerID,
			CancellationReason: "staff unavailable",
		})
		assert.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID: strangerID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Equal(t, domain.StatusConfirmed, repo.reservations[1].Status)
	})

	t.Run("completed reservation cannot be cancelled", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusCompleted)
		svc := newTestService(repo)

		err := svc.Cancel(context.Background(), 1, &models.CancelReservationRequest{
			UserID: customerID,
		})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestComplete(t *testing.T) {
	t.Run("manager completes confirmed reservation", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
		svc := newTestService(repo)

		err := svc.Complete(context.Background(), 1, managerID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, repo.reservations[1].Status)
	})

	t.Run("second complete fails with invalid transition", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
		svc := newTestService(repo)

		require.NoError(t, svc.Complete(context.Background(), 1, managerID))

		err := svc.Complete(context.Background(), 1, managerID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("customer cannot complete", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
		svc := newTestService(repo)

		err := svc.Complete(context.Background(), 1, customerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("cancelled reservation cannot be completed", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusCancelled)
		svc := newTestService(repo)

		err := svc.Complete(context.Background(), 1, managerID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestMarkNoShow(t *testing.T) {
	t.Run("manager marks confirmed reservation", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
		svc := newTestService(repo)

		err := svc.MarkNoShow(context.Background(), 1, managerID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusNoShow, repo.reservations[1].Status)
	})

	t.Run("completed reservation cannot be marked", func(t *testing.T) {
		repo := newFakeRepo()
		repo.reservations[1] = testReservation(1, domain.StatusCompleted)
		svc := newTestService(repo)

		err := svc.MarkNoShow(context.Background(), 1, managerID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestGetUserReservations(t *testing.T) {
	repo := newFakeRepo()
	repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
	repo.reservations[2] = testReservation(2, domain.StatusCancelled)
	svc := newTestService(repo)

	t.Run("all statuses", func(t *testing.T) {
		resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID: customerID,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		resp, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID: customerID,
			Status: ptr.Ptr("cancelled"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Reservations, 1)
		assert.Equal(t, "cancelled", resp.Reservations[0].Status)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, err := svc.GetUserReservations(context.Background(), &models.GetUserReservationsRequest{
			UserID: customerID,
			Status: ptr.Ptr("bogus"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetSalonReservations(t *testing.T) {
	repo := newFakeRepo()
	repo.reservations[1] = testReservation(1, domain.StatusConfirmed)
	repo.reservations[2] = testReservation(2, domain.StatusCancelled)
	svc := newTestService(repo)

	t.Run("manager gets active reservations", func(t *testing.T) {
		resp, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
			UserID:  managerID,
			SalonID: 10,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 1)
	})

	t.Run("include inactive", func(t *testing.T) {
		resp, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
			UserID:          managerID,
			SalonID:         10,
			IncludeInactive: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Reservations, 2)
	})

	t.Run("non-manager denied", func(t *testing.T) {
		_, err := svc.GetSalonReservations(context.Background(), &models.GetSalonReservationsRequest{
			UserID:  customerID,
			SalonID: 10,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}
