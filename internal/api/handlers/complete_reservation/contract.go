package complete_reservation

import "context"

// ReservationService интерфейс сервиса бронирований
type ReservationService interface {
	Complete(ctx context.Context, reservationID int64, userID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
