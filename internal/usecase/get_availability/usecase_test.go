package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-engine/internal/domain"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/pkg/types"
)

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeReservationRepo) GetByStaffAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeConfigRepo struct {
	config *domain.SalonSlotsConfig
}

func (f *fakeConfigRepo) GetBySalon(_ context.Context, _ int64) (*domain.SalonSlotsConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakeCatalogClient struct {
	service    *catalogservice.Service
	staff      *catalogservice.Staff
	serviceErr error
	staffErr   error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return f.service, nil
}

func (f *fakeCatalogClient) GetStaff(_ context.Context, _, _ int64) (*catalogservice.Staff, error) {
	if f.staffErr != nil {
		return nil, f.staffErr
	}
	return f.staff, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func allWeekSchedule(open, close string) catalogservice.WeekSchedule {
	day := catalogservice.DaySchedule{
		IsOpen:    true,
		OpenTime:  &open,
		CloseTime: &close,
	}
	return catalogservice.WeekSchedule{
		Monday:    day,
		Tuesday:   day,
		Wednesday: day,
		Thursday:  day,
		Friday:    day,
		Saturday:  day,
		Sunday:    day,
	}
}

func mustTS(t *testing.T, v string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return ts
}

func staffReservation(t *testing.T, start, end string, status domain.ReservationStatus) *domain.Reservation {
	t.Helper()
	startTS := mustTS(t, start)
	endTS := mustTS(t, end)
	minutes, err := startTS.MinutesUntil(endTS)
	require.NoError(t, err)

	return &domain.Reservation{
		StaffID:         100,
		StartTime:       startTS,
		EndTime:         endTS,
		DurationMinutes: minutes,
		Status:          status,
	}
}

func newTestUseCase(reservations []*domain.Reservation, cfg *domain.SalonSlotsConfig, now time.Time) *UseCase {
	uc := NewUseCase(
		&fakeReservationRepo{reservations: reservations},
		&fakeConfigRepo{config: cfg},
		&fakeCatalogClient{
			service: &catalogservice.Service{
				ID:              1,
				SalonID:         10,
				Name:            "Haircut",
				PriceCents:      5000,
				DurationMinutes: 60,
				IsActive:        true,
			},
			staff: &catalogservice.Staff{
				ID:           100,
				SalonID:      10,
				Name:         "Anna",
				ServiceIDs:   []int64{1},
				WorkingHours: allWeekSchedule("09:00", "17:00"),
				IsActive:     true,
			},
		},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func findSlot(t *testing.T, slots []Slot, start string) Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartTime.String() == start {
			return s
		}
	}
	t.Fatalf("slot %s not found", start)
	return Slot{}
}

func TestExecute_SlotGridWithExistingReservation(t *testing.T) {
	// Рабочие часы 09:00-17:00, шаг 30 мин, услуга 60 мин,
	// подтверждённое бронирование 10:00-11:00
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		[]*domain.Reservation{
			staffReservation(t, "10:00", "11:00", domain.StatusConfirmed),
		},
		&domain.SalonSlotsConfig{SlotGranularityMinutes: 30},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    1,
		SalonID:   10,
		StaffID:   100,
		ServiceID: 1,
		Date:      date,
	})
	require.NoError(t, err)

	// 09:00 .. 16:00 с шагом 30 минут, последний слот 16:00-17:00
	assert.Len(t, resp.Slots, 15)

	assert.True(t, findSlot(t, resp.Slots, "09:00").Available)
	// 09:30-10:30 пересекается с бронированием
	assert.False(t, findSlot(t, resp.Slots, "09:30").Available)
	assert.False(t, findSlot(t, resp.Slots, "10:00").Available)
	assert.False(t, findSlot(t, resp.Slots, "10:30").Available)
	// 11:00 граничит с концом бронирования - свободен
	assert.True(t, findSlot(t, resp.Slots, "11:00").Available)
	assert.True(t, findSlot(t, resp.Slots, "16:00").Available)

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, "16:00", last.StartTime.String())
	assert.Equal(t, "17:00", last.EndTime.String())
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		[]*domain.Reservation{
			staffReservation(t, "10:00", "11:00", domain.StatusCancelled),
		},
		&domain.SalonSlotsConfig{SlotGranularityMinutes: 30},
		now,
	)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1, Date: date,
	})
	require.NoError(t, err)

	assert.True(t, findSlot(t, resp.Slots, "10:00").Available)
}

func TestExecute_DayOff(t *testing.T) {
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(nil, &domain.SalonSlotsConfig{SlotGranularityMinutes: 30}, now)

	// Переопределение на дату: выходной
	client := uc.catalogClient.(*fakeCatalogClient)
	client.staff.DateOverrides = []catalogservice.DateOverride{
		{Date: "2025-06-17", Schedule: catalogservice.DaySchedule{IsOpen: false}},
	}

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1, Date: date,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MinNoticeMarksTodaySlots(t *testing.T) {
	// Сегодня 10:45, min notice 60 минут: всё до 11:45 занято
	now := time.Date(2025, 6, 17, 10, 45, 0, 0, time.UTC)
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(nil, &domain.SalonSlotsConfig{
		SlotGranularityMinutes: 30,
		MinNoticeMinutes:       60,
	}, now)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1, Date: date,
	})
	require.NoError(t, err)

	assert.False(t, findSlot(t, resp.Slots, "11:30").Available)
	assert.True(t, findSlot(t, resp.Slots, "12:00").Available)
}

func TestExecute_DateValidation(t *testing.T) {
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)

	t.Run("past date rejected", func(t *testing.T) {
		uc := newTestUseCase(nil, nil, now)
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1,
			Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("advance limit enforced", func(t *testing.T) {
		uc := newTestUseCase(nil, &domain.SalonSlotsConfig{
			SlotGranularityMinutes: 30,
			AdvanceBookingDays:     7,
		}, now)
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1,
			Date: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})
}

func TestExecute_StaffNotEligible(t *testing.T) {
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, nil, now)

	client := uc.catalogClient.(*fakeCatalogClient)
	client.staff.ServiceIDs = []int64{2}

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1,
		Date: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrStaffNotEligible)
}

func TestExecute_NotFoundErrors(t *testing.T) {
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	t.Run("staff not found", func(t *testing.T) {
		uc := newTestUseCase(nil, nil, now)
		uc.catalogClient.(*fakeCatalogClient).staffErr = catalogservice.ErrStaffNotFound

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 1, SalonID: 10, StaffID: 999, ServiceID: 1, Date: date,
		})
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("service not found", func(t *testing.T) {
		uc := newTestUseCase(nil, nil, now)
		uc.catalogClient.(*fakeCatalogClient).serviceErr = catalogservice.ErrServiceNotFound

		_, err := uc.Execute(context.Background(), &Request{
			UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 999, Date: date,
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestExecute_IdempotentWithoutWrites(t *testing.T) {
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		[]*domain.Reservation{
			staffReservation(t, "13:00", "14:00", domain.StatusPending),
		},
		&domain.SalonSlotsConfig{SlotGranularityMinutes: 30},
		now,
	)

	req := &Request{UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1, Date: date}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_InvalidInput(t *testing.T) {
	now := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	uc := newTestUseCase(nil, nil, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, SalonID: 0, StaffID: 100, ServiceID: 1,
		Date: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: 1, SalonID: 10, StaffID: 100, ServiceID: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
