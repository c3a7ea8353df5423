package session

import "errors"

var (
	// ErrInvalidTransition возвращается для события, недопустимого в текущем шаге
	ErrInvalidTransition = errors.New("session: invalid transition")

	// ErrSessionFinalized возвращается при попытке изменить завершённую сессию
	ErrSessionFinalized = errors.New("session: session is finalized")

	// ErrServiceFromAnotherSalon возвращается, когда услуга принадлежит другому салону
	ErrServiceFromAnotherSalon = errors.New("session: service belongs to another salon")

	// ErrStaffNotEligible возвращается при выборе мастера вне отфильтрованного списка
	ErrStaffNotEligible = errors.New("session: staff member is not eligible for the selected service")

	// ErrSlotUnavailable возвращается при выборе занятого слота
	ErrSlotUnavailable = errors.New("session: selected slot is not available")

	// ErrIncompleteSelection возвращается при подтверждении с незаполненными шагами
	ErrIncompleteSelection = errors.New("session: selection is incomplete")
)
