package create_reservation

import (
	"context"
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByStaffAndDate(ctx context.Context, staffID int64, date time.Time, blockingOnly bool) ([]*domain.Reservation, error)
}

// ConfigRepository интерфейс репозитория настроек слотов
type ConfigRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.SalonSlotsConfig, error)
}

// PromoRepository интерфейс репозитория промокодов
type PromoRepository interface {
	// GetByCodeForUpdate блокирует строку промокода до конца транзакции
	GetByCodeForUpdate(ctx context.Context, salonID int64, code string) (*domain.PromoCode, error)
	IncrementUsage(ctx context.Context, id int64) error
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*catalogservice.Service, error)
	GetStaff(ctx context.Context, salonID, staffID int64) (*catalogservice.Staff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
