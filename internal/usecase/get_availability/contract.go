package get_availability

import (
	"context"
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// GetByStaffAndDate получает бронирования мастера на конкретную дату
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time, blockingOnly bool) ([]*domain.Reservation, error)
}

// ConfigRepository интерфейс репозитория настроек слотов
type ConfigRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.SalonSlotsConfig, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*catalogservice.Service, error)
	GetStaff(ctx context.Context, salonID, staffID int64) (*catalogservice.Staff, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
