package create_reservation

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_reservation: salon not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("create_reservation: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrStaffNotEligible возвращается, когда мастер не выполняет указанную услугу
	ErrStaffNotEligible = errors.New("create_reservation: staff member does not perform this service")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_reservation: invalid reservation date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_reservation: date is too far in the future")

	// ErrOutOfHours возвращается, когда окно выходит за рабочие часы мастера
	ErrOutOfHours = errors.New("create_reservation: window is outside working hours")

	// ErrSlotConflict возвращается, когда окно пересекается с существующим бронированием
	ErrSlotConflict = errors.New("create_reservation: slot is already reserved")

	// ErrInvalidTimeSlot возвращается, когда время начала не лежит на сетке слотов
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrTooLateToReserve возвращается при нарушении minNoticeMinutes
	ErrTooLateToReserve = errors.New("create_reservation: too late to reserve this slot")

	// ErrInvalidPromo возвращается, когда промокод не существует или неприменим
	ErrInvalidPromo = errors.New("create_reservation: invalid promo code")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
