package update_salon_config

import (
	"context"

	"github.com/salonmarket/booking-engine/internal/service/config/models"
)

// ConfigService интерфейс сервиса настроек слотов
type ConfigService interface {
	Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
