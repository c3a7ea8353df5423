package get_salon_config

import (
	"context"

	"github.com/salonmarket/booking-engine/internal/service/config/models"
)

// ConfigService интерфейс сервиса настроек слотов
type ConfigService interface {
	GetBySalon(ctx context.Context, salonID int64) (*models.ConfigResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
