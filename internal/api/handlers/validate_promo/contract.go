package validate_promo

import (
	"context"

	validatePromo "github.com/salonmarket/booking-engine/internal/usecase/validate_promo"
)

// ValidatePromoUseCase интерфейс use case проверки промокода
type ValidatePromoUseCase interface {
	Execute(ctx context.Context, req *validatePromo.Request) (*validatePromo.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
