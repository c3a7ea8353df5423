package create_reservation

import (
	"fmt"
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
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

	if req.PromoCode != nil && *req.PromoCode == "" {
		return fmt.Errorf("%w: promoCode must not be empty", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(reservationDate time.Time, now time.Time, advanceBookingDays int) error {
	if isDateInPast(reservationDate, now) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	dateOnly := time.Date(reservationDate.Year(), reservationDate.Month(), reservationDate.Day(), 0, 0, 0, 0, reservationDate.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only reserve %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateNotice проверяет, что бронирование не нарушает minNoticeMinutes
func validateNotice(
	reservationDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	// Для будущих дат проверка не нужна
	if !isSameDay(reservationDate, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		// Порог ушёл за полночь - сегодня бронировать уже нельзя
		return fmt.Errorf("%w: must reserve at least %d minutes in advance", ErrTooLateToReserve, minNoticeMinutes)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must reserve at least %d minutes in advance", ErrTooLateToReserve, minNoticeMinutes)
	}

	return nil
}

// validateWindow проверяет, что окно [start, end) целиком лежит в рабочих часах
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

	// Начало окна должно отстоять от открытия на целое число шагов сетки
	offset, err := openTime.MinutesUntil(start)
	if err != nil || offset%granularityMinutes != 0 {
		return ErrInvalidTimeSlot
	}

	return nil
}

// findOverlap ищет занимающее окно бронирование, пересекающееся с [start, end)
// Граничные случаи (конец одного равен началу другого) пересечением не считаются
func findOverlap(reservations []*domain.Reservation, start, end types.TimeString) *domain.Reservation {
	for _, res := range reservations {
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
