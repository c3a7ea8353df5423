package cancel_reservation

import (
	"context"

	"github.com/salonmarket/booking-engine/internal/service/reservations/models"
)

// ReservationService интерфейс сервиса бронирований
type ReservationService interface {
	Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
