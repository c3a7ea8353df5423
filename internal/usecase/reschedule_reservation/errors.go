package reschedule_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reschedule_reservation: reservation not found")

	// ErrForbidden возвращается при попытке перенести чужое бронирование
	ErrForbidden = errors.New("reschedule_reservation: reservation belongs to another customer")

	// ErrInvalidTransition возвращается для завершённых и отменённых бронирований
	ErrInvalidTransition = errors.New("reschedule_reservation: reservation cannot be rescheduled")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("reschedule_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reschedule_reservation: date is too far in the future")

	// ErrOutOfHours возвращается, когда окно выходит за рабочие часы мастера
	ErrOutOfHours = errors.New("reschedule_reservation: window is outside working hours")

	// ErrSlotConflict возвращается, когда новое окно пересекается с другим бронированием
	ErrSlotConflict = errors.New("reschedule_reservation: slot is already reserved")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("reschedule_reservation: invalid time slot")

	// ErrTooLateToReserve возвращается при нарушении minNoticeMinutes
	ErrTooLateToReserve = errors.New("reschedule_reservation: too late to reserve this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_reservation: internal error")
)
