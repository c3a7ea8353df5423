package validate_promo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	promoRepo "github.com/salonmarket/booking-engine/internal/infra/storage/promo"
	catalogClient "github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/internal/pricing"
)

// UseCase use case для проверки промокода
type UseCase struct {
	promoRepo     PromoRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	promoRepo PromoRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		promoRepo:     promoRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case проверки промокода
// Операция только читает: блокировок нет, счётчик использований не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ValidatePromo: user=%d, salon=%d, code=%q", req.UserID, req.SalonID, req.Code)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ValidatePromo: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем промокод
	promo, err := uc.promoRepo.GetByCode(ctx, req.SalonID, req.Code)
	if err != nil {
		if errors.Is(err, promoRepo.ErrPromoNotFound) {
			uc.logger.Warn("ValidatePromo: promo code %q not found for salon id=%d", req.Code, req.SalonID)
			return nil, ErrInvalidPromo
		}
		uc.logger.Error("ValidatePromo: failed to get promo code: %v", err)
		return nil, fmt.Errorf("%w: failed to get promo code: %v", ErrInternal, err)
	}

	// 3. Проверяем применимость
	if err := pricing.ValidatePromo(promo, req.SalonID, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("ValidatePromo: promo code %q rejected: %v", req.Code, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPromo, err)
	}

	resp := &Response{
		Code:            promo.Code,
		DiscountPercent: promo.DiscountPercent,
	}

	// 4. Предварительный расчёт цены, если указана услуга
	if req.ServiceID != nil {
		service, err := uc.catalogClient.GetService(ctx, req.SalonID, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrServiceNotFound) {
				uc.logger.Warn("ValidatePromo: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("ValidatePromo: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		quote, err := pricing.Finalize(service.PriceCents, promo.DiscountPercent)
		if err != nil {
			uc.logger.Error("ValidatePromo: failed to finalize price: %v", err)
			return nil, fmt.Errorf("%w: failed to finalize price: %v", ErrInternal, err)
		}

		resp.BasePriceCents = &quote.BasePriceCents
		resp.FinalPriceCents = &quote.FinalPriceCents
	}

	uc.logger.Info("ValidatePromo: promo code %q valid, discount=%.1f%%", promo.Code, promo.DiscountPercent)

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}
