package reschedule_reservation

import (
	"context"

	rescheduleReservation "github.com/salonmarket/booking-engine/internal/usecase/reschedule_reservation"
)

// RescheduleReservationUseCase интерфейс use case переноса бронирования
type RescheduleReservationUseCase interface {
	Execute(ctx context.Context, req *rescheduleReservation.Request) (*rescheduleReservation.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
