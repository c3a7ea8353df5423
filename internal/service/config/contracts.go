package config

import (
	"context"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
)

// ConfigRepository интерфейс репозитория настроек слотов
type ConfigRepository interface {
	GetBySalon(ctx context.Context, salonID int64) (*domain.SalonSlotsConfig, error)
	Upsert(ctx context.Context, cfg *domain.SalonSlotsConfig) (*domain.SalonSlotsConfig, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*catalogservice.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
