package validate_promo

import "errors"

var (
	// ErrInvalidPromo возвращается, когда промокод не существует или неприменим
	ErrInvalidPromo = errors.New("validate_promo: invalid promo code")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("validate_promo: service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("validate_promo: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("validate_promo: internal error")
)
