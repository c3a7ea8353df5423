package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	reservationRepo "github.com/salonmarket/booking-engine/internal/infra/storage/reservation"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/pkg/types"
)

// UseCase use case для переноса бронирования на другое окно
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
// Длительность окна не пересчитывается: она зафиксирована при создании.
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции,
// как и при создании, поскольку перенос меняет множество занятых окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleReservation: reservation=%d, customer=%d, date=%s, time=%s",
		req.ReservationID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Reservation

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование с блокировкой (FOR UPDATE)
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RescheduleReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %w", ErrInternal, err)
		}

		// 3.2. Переносить бронирование может только его владелец
		if reservation.CustomerID != req.CustomerID {
			uc.logger.Warn("RescheduleReservation: customer id=%d is not the owner of reservation id=%d",
				req.CustomerID, req.ReservationID)
			return ErrForbidden
		}

		// 3.3. Завершённые и отменённые бронирования не переносятся
		if !reservation.CanBeRescheduled() {
			uc.logger.Warn("RescheduleReservation: reservation id=%d has status %s",
				req.ReservationID, reservation.Status)
			return ErrInvalidTransition
		}

		// 3.4. Конец окна: зафиксированная длительность от нового начала
		newEnd, err := req.StartTime.AddMinutes(reservation.DurationMinutes)
		if err != nil {
			uc.logger.Warn("RescheduleReservation: window crosses midnight: %v", err)
			return ErrOutOfHours
		}

		// 3.5. Получаем настройки слотов салона
		config, err := uc.configRepo.GetBySalon(txCtx, reservation.SalonID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("RescheduleReservation: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
		}
		if config == nil {
			config = &domain.SalonSlotsConfig{
				SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
				AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
				MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
			}
		}

		// 3.6. Валидация новой даты
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("RescheduleReservation: date validation failed: %v", err)
			return err
		}

		// 3.7. Новое окно должно лежать в рабочих часах мастера
		staff, err := uc.catalogClient.GetStaff(txCtx, reservation.SalonID, reservation.StaffID)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get staff id=%d: %v", reservation.StaffID, err)
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}

		workingHours := staff.WorkingHoursOn(req.Date)
		if err := validateWindow(workingHours, req.StartTime, newEnd, config.SlotGranularityMinutes); err != nil {
			uc.logger.Warn("RescheduleReservation: window validation failed: %v", err)
			return err
		}

		// 3.8. Проверка минимального времени до начала
		if err := validateNotice(req.Date, req.StartTime, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("RescheduleReservation: notice validation failed: %v", err)
			return err
		}

		// 3.9. Получаем занимающие окно бронирования мастера с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetByStaffAndDate(txCtx, reservation.StaffID, req.Date, true)
		if err != nil {
			uc.logger.Error("RescheduleReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 3.10. Проверяем пересечения, исключая само переносимое бронирование
		if conflict := findOverlap(reservations, reservation.ID, req.StartTime, newEnd); conflict != nil {
			uc.logger.Warn("RescheduleReservation: window %s-%s conflicts with reservation id=%d",
				req.StartTime, newEnd, conflict.ID)
			return ErrSlotConflict
		}

		// 3.11. Переносим бронирование
		if err := uc.reservationRepo.Reschedule(txCtx, reservation.ID, req.Date, req.StartTime, newEnd); err != nil {
			uc.logger.Error("RescheduleReservation: failed to reschedule: %v", err)
			return fmt.Errorf("%w: failed to reschedule: %w", ErrInternal, err)
		}

		reservation.Date = req.Date
		reservation.StartTime = req.StartTime
		reservation.EndTime = newEnd

		result = reservation
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: successfully rescheduled reservation id=%d to %s %s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime)

	return toResponse(result), nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата подходит для переноса
func validateDate(date time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only reserve %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что перенос не нарушает minNoticeMinutes
func validateNotice(date time.Time, startTime types.TimeString, now time.Time, minNoticeMinutes int) error {
	if !isSameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: must reserve at least %d minutes in advance", ErrTooLateToReserve, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must reserve at least %d minutes in advance", ErrTooLateToReserve, minNoticeMinutes)
	}

	return nil
}

// validateWindow проверяет, что окно целиком лежит в рабочих часах
// и что его начало попадает на сетку слотов
func validateWindow(
	workingHours catalogservice.DaySchedule,
	start, end types.TimeString,
	granularityMinutes int,
) error {
	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return ErrOutOfHours
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	if start.IsBefore(openTime) || end.IsAfter(closeTime) {
		return ErrOutOfHours
	}

	offset, err := openTime.MinutesUntil(start)
	if err != nil || offset%granularityMinutes != 0 {
		return ErrInvalidTimeSlot
	}

	return nil
}

// findOverlap ищет занимающее окно бронирование, пересекающееся с [start, end)
// Само переносимое бронирование из проверки исключается
func findOverlap(reservations []*domain.Reservation, excludeID int64, start, end types.TimeString) *domain.Reservation {
	for _, res := range reservations {
		if res.ID == excludeID {
			continue
		}
		if !res.IsBlocking() {
			continue
		}
		if res.Overlaps(start, end) {
			return res
		}
	}
	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
