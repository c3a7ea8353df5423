package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmarket/booking-engine/internal/domain"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	promoRepo "github.com/salonmarket/booking-engine/internal/infra/storage/promo"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/pkg/ptr"
	"github.com/salonmarket/booking-engine/pkg/types"
)

// memoryLedger хранит бронирования в памяти
// Имитирует семантику репозитория: создание видно последующим чтениям
type memoryLedger struct {
	mu           sync.Mutex
	nextID       int64
	reservations []*domain.Reservation
}

func (l *memoryLedger) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	res.ID = l.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt

	stored := *res
	l.reservations = append(l.reservations, &stored)
	return res, nil
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

type fakeConfigRepo struct {
	config *domain.SalonSlotsConfig
}

func (f *fakeConfigRepo) GetBySalon(_ context.Context, _ int64) (*domain.SalonSlotsConfig, error) {
	if f.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return f.config, nil
}

type fakePromoRepo struct {
	mu    sync.Mutex
	promo *domain.PromoCode
}

func (f *fakePromoRepo) GetByCodeForUpdate(_ context.Context, salonID int64, code string) (*domain.PromoCode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.promo == nil || f.promo.Code != code {
		return nil, promoRepo.ErrPromoNotFound
	}
	copied := *f.promo
	return &copied, nil
}

func (f *fakePromoRepo) IncrementUsage(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.promo == nil || f.promo.ID != id {
		return promoRepo.ErrPromoNotFound
	}
	f.promo.UsedCount++
	return nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	staff   *catalogservice.Staff
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	return f.service, nil
}

func (f *fakeCatalogClient) GetStaff(_ context.Context, _, _ int64) (*catalogservice.Staff, error) {
	return f.staff, nil
}

// serialTxManager последовательно выполняет транзакционные блоки
// Воспроизводит сериализацию, которую в production даёт FOR UPDATE
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

type testEnv struct {
	uc     *UseCase
	ledger *memoryLedger
	promos *fakePromoRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ledger := &memoryLedger{}
	promos := &fakePromoRepo{}

	uc := NewUseCase(
		ledger,
		&fakeConfigRepo{config: &domain.SalonSlotsConfig{SlotGranularityMinutes: 30}},
		promos,
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
		&serialTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTimeProvider{
		now: time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC),
	}

	return &testEnv{uc: uc, ledger: ledger, promos: promos}
}

func baseRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		CustomerID: 1,
		SalonID:    10,
		StaffID:    100,
		ServiceID:  1,
		Date:       time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		StartTime:  mustTS(t, "10:00"),
	}
}

func TestExecute_CreatesConfirmedReservation(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, int64(5000), resp.ServicePriceCents)
	assert.Equal(t, int64(5000), resp.FinalPriceCents)
	assert.Zero(t, resp.DiscountPercent)
}

func TestExecute_SlotConflict(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	// Точно то же окно
	_, err = env.uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Частичное пересечение: 10:30-11:30
	req := baseRequest(t)
	req.StartTime = mustTS(t, "10:30")
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Граничащее окно 11:00-12:00 свободно
	req = baseRequest(t)
	req.StartTime = mustTS(t, "11:00")
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentSameWindow(t *testing.T) {
	// Две сессии конкурентно бронируют одно окно:
	// ровно одна получает бронирование, вторая - ErrSlotConflict
	env := newTestEnv(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := baseRequest(t)
			req.CustomerID = int64(i + 1)
			_, errs[i] = env.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	conflicted := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotConflict):
			conflicted++
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)

	reservations, err := env.ledger.GetByStaffAndDate(context.Background(), 100, baseRequest(t).Date, true)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
}

func TestExecute_CancelledReservationFreesWindow(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)

	// Отменяем напрямую в реестре
	env.ledger.mu.Lock()
	for _, res := range env.ledger.reservations {
		if res.ID == resp.ID {
			res.Status = domain.StatusCancelled
		}
	}
	env.ledger.mu.Unlock()

	_, err = env.uc.Execute(context.Background(), baseRequest(t))
	assert.NoError(t, err)
}

func TestExecute_OutOfHours(t *testing.T) {
	env := newTestEnv(t)

	t.Run("before opening", func(t *testing.T) {
		req := baseRequest(t)
		req.StartTime = mustTS(t, "08:00")
		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutOfHours)
	})

	t.Run("window ends after closing", func(t *testing.T) {
		req := baseRequest(t)
		req.StartTime = mustTS(t, "16:30")
		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutOfHours)
	})

	t.Run("day off", func(t *testing.T) {
		env := newTestEnv(t)
		staff := env.uc.catalogClient.(*fakeCatalogClient).staff
		staff.DateOverrides = []catalogservice.DateOverride{
			{Date: "2025-06-17", Schedule: catalogservice.DaySchedule{IsOpen: false}},
		}

		_, err := env.uc.Execute(context.Background(), baseRequest(t))
		assert.ErrorIs(t, err, ErrOutOfHours)
	})
}

func TestExecute_OffGridStartRejected(t *testing.T) {
	env := newTestEnv(t)

	req := baseRequest(t)
	req.StartTime = mustTS(t, "10:15")
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_StaffNotEligible(t *testing.T) {
	env := newTestEnv(t)
	env.uc.catalogClient.(*fakeCatalogClient).staff.ServiceIDs = []int64{2}

	_, err := env.uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrStaffNotEligible)
}

func TestExecute_PromoApplied(t *testing.T) {
	env := newTestEnv(t)
	env.promos.promo = &domain.PromoCode{
		ID:              7,
		SalonID:         10,
		Code:            "SUMMER20",
		DiscountPercent: 20,
		ValidFrom:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		MaxUses:         ptr.Ptr(10),
		UsedCount:       0,
		IsActive:        true,
	}

	req := baseRequest(t)
	req.PromoCode = ptr.Ptr("SUMMER20")

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.ServicePriceCents)
	assert.Equal(t, 20.0, resp.DiscountPercent)
	assert.Equal(t, int64(4000), resp.FinalPriceCents)
	require.NotNil(t, resp.PromoCode)
	assert.Equal(t, "SUMMER20", *resp.PromoCode)

	// Счётчик использований увеличен в той же транзакции
	assert.Equal(t, 1, env.promos.promo.UsedCount)
}

func TestExecute_InvalidPromo(t *testing.T) {
	t.Run("unknown code", func(t *testing.T) {
		env := newTestEnv(t)

		req := baseRequest(t)
		req.PromoCode = ptr.Ptr("NOPE")

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPromo)
	})

	t.Run("exhausted code", func(t *testing.T) {
		env := newTestEnv(t)
		env.promos.promo = &domain.PromoCode{
			ID:              7,
			SalonID:         10,
			Code:            "SUMMER20",
			DiscountPercent: 20,
			ValidFrom:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			MaxUses:         ptr.Ptr(1),
			UsedCount:       1,
			IsActive:        true,
		}

		req := baseRequest(t)
		req.PromoCode = ptr.Ptr("SUMMER20")

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPromo)

		// Бронирование не создано, счётчик не изменился
		reservations, lerr := env.ledger.GetByStaffAndDate(context.Background(), 100, req.Date, true)
		require.NoError(t, lerr)
		assert.Empty(t, reservations)
		assert.Equal(t, 1, env.promos.promo.UsedCount)
	})
}

func TestExecute_DateValidation(t *testing.T) {
	t.Run("past date", func(t *testing.T) {
		env := newTestEnv(t)
		req := baseRequest(t)
		req.Date = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("beyond advance limit", func(t *testing.T) {
		env := newTestEnv(t)
		env.uc.configRepo.(*fakeConfigRepo).config.AdvanceBookingDays = 7

		req := baseRequest(t)
		req.Date = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("min notice violated", func(t *testing.T) {
		env := newTestEnv(t)
		env.uc.configRepo.(*fakeConfigRepo).config.MinNoticeMinutes = 120
		env.uc.timeProvider = &fixedTimeProvider{
			now: time.Date(2025, 6, 17, 9, 0, 0, 0, time.UTC),
		}

		// Сегодня в 09:00 бронируем на 10:00 при min notice 120 минут
		_, err := env.uc.Execute(context.Background(), baseRequest(t))
		assert.ErrorIs(t, err, ErrTooLateToReserve)
	})
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(t)

	req := baseRequest(t)
	req.CustomerID = 0
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = baseRequest(t)
	req.StartTime = types.TimeString("")
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func (l *memoryLedger) snapshot() []*domain.Reservation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*domain.Reservation(nil), l.reservations...)
}

func (l *memoryLedger) restore(snapshot []*domain.Reservation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reservations = snapshot
}

// contendedTxManager имитирует проигрыш сериализуемой транзакции:
// первый прогон завершается serialization failure на commit и откатывается,
// а перед повтором в реестре может появиться бронирование конкурента
type contendedTxManager struct {
	ledger     *memoryLedger
	competitor *domain.Reservation
	attempts   int
}

func (m *contendedTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	for attempt := 0; attempt < 3; attempt++ {
		m.attempts++
		snapshot := m.ledger.snapshot()

		err := fn(ctx)
		if m.attempts == 1 {
			// Конкурирующая транзакция выигрывает: commit падает, запись откатывается
			m.ledger.restore(snapshot)
			if err == nil {
				err = fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
			}
		}
		if err == nil {
			return nil
		}

		var pqErr *pq.Error
		if !errors.As(err, &pqErr) || string(pqErr.Code) != "40001" {
			return err
		}
		if m.competitor != nil {
			_, _ = m.ledger.Create(ctx, m.competitor)
			m.competitor = nil
		}
	}
	return errors.New("retries exhausted")
}

func TestExecute_SerializationFailureRetrySucceeds(t *testing.T) {
	// Транзиентный 40001 на commit: повтор проходит без вмешательства клиента
	env := newTestEnv(t)
	txManager := &contendedTxManager{ledger: env.ledger}
	env.uc.txManager = txManager

	resp, err := env.uc.Execute(context.Background(), baseRequest(t))
	require.NoError(t, err)
	assert.Equal(t, 2, txManager.attempts)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)

	reservations, err := env.ledger.GetByStaffAndDate(context.Background(), 100, baseRequest(t).Date, true)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
}

func TestExecute_SerializationFailureRetryFindsCompetitor(t *testing.T) {
	// Проигравшая транзакция на повторе видит бронирование победителя
	// и возвращает конфликт слота, а не внутреннюю ошибку
	env := newTestEnv(t)
	txManager := &contendedTxManager{
		ledger: env.ledger,
		competitor: &domain.Reservation{
			CustomerID: 2,
			SalonID:    10,
			StaffID:    100,
			ServiceID:  1,
			Date:       baseRequest(t).Date,
			StartTime:  mustTS(t, "10:00"),
			EndTime:    mustTS(t, "11:00"),
			Status:     domain.StatusConfirmed,
		},
	}
	env.uc.txManager = txManager

	_, err := env.uc.Execute(context.Background(), baseRequest(t))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 2, txManager.attempts)

	reservations, err := env.ledger.GetByStaffAndDate(context.Background(), 100, baseRequest(t).Date, true)
	require.NoError(t, err)
	assert.Len(t, reservations, 1)
	assert.Equal(t, int64(2), reservations[0].CustomerID)
}
