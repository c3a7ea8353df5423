package reschedule_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-engine/internal/domain"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	reservationRepo "github.com/salonmarket/booking-engine/internal/infra/storage/reservation"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/pkg/types"
)

type memoryLedger struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{reservations: make(map[int64]*domain.Reservation)}
}

func (l *memoryLedger) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, ok := l.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (l *memoryLedger) GetByStaffAndDate(_ context.Context, staffID int64, date time.Time, blockingOnly bool) ([]*domain.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]*domain.Reservation, 0)
	for _, res := range l.reservations {
		if res.StaffID != staffID || !res.Date.Equal(date) {
			continue
		}
		if blockingOnly && !res.IsBlocking() {
			continue
		}
		copied := *res
		result = append(result, &copied)
	}
	return result, nil
}

func (l *memoryLedger) Reschedule(_ context.Context, id int64, date time.Time, start, end types.TimeString) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, ok := l.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Date = date
	res.StartTime = start
	res.EndTime = end
	return nil
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
	staff *catalogservice.Staff
}

func (f *fakeCatalogClient) GetStaff(_ context.Context, _, _ int64) (*catalogservice.Staff, error) {
	return f.staff, nil
}

type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
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
		Monday: day, Tuesday: day, Wednesday: day, Thursday: day,
		Friday: day, Saturday: day, Sunday: day,
	}
}

func mustTS(t *testing.T, v string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return ts
}

func existingReservation(t *testing.T, id int64, start, end string, status domain.ReservationStatus) *domain.Reservation {
	t.Helper()
	startTS := mustTS(t, start)
	endTS := mustTS(t, end)
	minutes, err := startTS.MinutesUntil(endTS)
	require.NoError(t, err)

	return &domain.Reservation{
		ID:              id,
		CustomerID:      1,
		SalonID:         10,
		StaffID:         100,
		ServiceID:       1,
		Date:            time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		StartTime:       startTS,
		EndTime:         endTS,
		DurationMinutes: minutes,
		Status:          status,
		ServiceName:     "Haircut",
		FinalPriceCents: 5000,
	}
}

func newTestUseCase(ledger *memoryLedger) *UseCase {
	uc := NewUseCase(
		ledger,
		&fakeConfigRepo{config: &domain.SalonSlotsConfig{SlotGranularityMinutes: 30}},
		&fakeCatalogClient{
			staff: &catalogservice.Staff{
				ID:           100,
				SalonID:      10,
				Name:         "Anna",
				ServiceIDs:   []int64{1},
				WorkingHours: allWeekSchedule("09:00", "17:00"),
				IsActive:     true,
			},
		},
		&serialTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC),
	}
	return uc
}

func TestExecute_MovesReservation(t *testing.T) {
	ledger := newMemoryLedger()
	ledger.reservations[1] = existingReservation(t, 1, "10:00", "11:00", domain.StatusConfirmed)

	uc := newTestUseCase(ledger)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		CustomerID:    1,
		Date:          time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTS(t, "14:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "14:00", resp.StartTime.String())
	// Длительность зафиксирована: конец сдвигается на те же 60 минут
	assert.Equal(t, "15:00", resp.EndTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, int64(5000), resp.FinalPriceCents)

	stored, err := ledger.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "14:00", stored.StartTime.String())
	assert.True(t, stored.Date.Equal(time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)))
}

func TestExecute_ConflictWithOtherReservation(t *testing.T) {
	ledger := newMemoryLedger()
	ledger.reservations[1] = existingReservation(t, 1, "10:00", "11:00", domain.StatusConfirmed)
	ledger.reservations[2] = existingReservation(t, 2, "14:00", "15:00", domain.StatusConfirmed)
	ledger.reservations[2].CustomerID = 2

	uc := newTestUseCase(ledger)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		CustomerID:    1,
		Date:          time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTS(t, "14:30"),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OwnWindowDoesNotConflict(t *testing.T) {
	// Перенос на полчаса вперёд: новое окно пересекается со старым окном
	// самого бронирования, это не конфликт
	ledger := newMemoryLedger()
	ledger.reservations[1] = existingReservation(t, 1, "10:00", "11:00", domain.StatusConfirmed)

	uc := newTestUseCase(ledger)

	resp, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		CustomerID:    1,
		Date:          time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTS(t, "10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30", resp.StartTime.String())
	assert.Equal(t, "11:30", resp.EndTime.String())
}

func TestExecute_Forbidden(t *testing.T) {
	ledger := newMemoryLedger()
	ledger.reservations[1] = existingReservation(t, 1, "10:00", "11:00", domain.StatusConfirmed)

	uc := newTestUseCase(ledger)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		CustomerID:    99,
		Date:          time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTS(t, "14:00"),
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_TerminalStatusesRejected(t *testing.T) {
	for _, status := range []domain.ReservationStatus{
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			ledger := newMemoryLedger()
			ledger.reservations[1] = existingReservation(t, 1, "10:00", "11:00", status)

			uc := newTestUseCase(ledger)

			_, err := uc.Execute(context.Background(), &Request{
				ReservationID: 1,
				CustomerID:    1,
				Date:          time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
				StartTime:     mustTS(t, "14:00"),
			})
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_OutOfHours(t *testing.T) {
	ledger := newMemoryLedger()
	ledger.reservations[1] = existingReservation(t, 1, "10:00", "11:00", domain.StatusConfirmed)

	uc := newTestUseCase(ledger)

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		CustomerID:    1,
		Date:          time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTS(t, "16:30"),
	})
	assert.ErrorIs(t, err, ErrOutOfHours)
}

func TestExecute_NotFound(t *testing.T) {
	uc := newTestUseCase(newMemoryLedger())

	_, err := uc.Execute(context.Background(), &Request{
		ReservationID: 42,
		CustomerID:    1,
		Date:          time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTS(t, "14:00"),
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
