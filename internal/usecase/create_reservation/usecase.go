package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonmarket/booking-engine/internal/domain"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	promoRepo "github.com/salonmarket/booking-engine/internal/infra/storage/promo"
	catalogClient "github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/internal/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	promoRepo       PromoRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	promoRepo PromoRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		promoRepo:       promoRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции:
// бронирования одного мастера на одну дату блокируются через FOR UPDATE,
// поэтому из двух конкурентных запросов на одно окно ровно один получает ErrSlotConflict
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, salon=%d, staff=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем мастера
	staff, err := uc.catalogClient.GetStaff(ctx, req.SalonID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateReservation: staff id=%d not found in salon id=%d", req.StaffID, req.SalonID)
			return nil, ErrStaffNotFound
		}
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("CreateReservation: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateReservation: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что мастер выполняет эту услугу
	if !staff.CanPerform(req.ServiceID) {
		uc.logger.Warn("CreateReservation: staff id=%d is not eligible for service id=%d",
			req.StaffID, req.ServiceID)
		return nil, ErrStaffNotEligible
	}

	// 6. Вычисляем конец окна: длительность берется из услуги и фиксируется
	endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: window crosses midnight: %v", err)
		return nil, ErrOutOfHours
	}

	var result *domain.Reservation

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем настройки слотов салона
		config, err := uc.configRepo.GetBySalon(txCtx, req.SalonID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateReservation: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
		}

		// Если настройки не заданы, используем дефолтные значения
		if config == nil {
			config = &domain.SalonSlotsConfig{
				SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
				AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
				MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
			}
			uc.logger.Info("CreateReservation: using default config for salon=%d", req.SalonID)
		}

		// 7.2. Валидация даты с учетом настроек
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateReservation: date validation failed: %v", err)
			return err
		}

		// 7.3. Окно должно целиком лежать в рабочих часах мастера
		workingHours := staff.WorkingHoursOn(req.Date)
		if err := validateWindow(workingHours, req.StartTime, endTime, config.SlotGranularityMinutes); err != nil {
			uc.logger.Warn("CreateReservation: window validation failed: %v", err)
			return err
		}

		// 7.4. Проверка минимального времени до начала
		if err := validateNotice(req.Date, req.StartTime, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("CreateReservation: notice validation failed: %v", err)
			return err
		}

		// 7.5. Получаем занимающие окно бронирования мастера с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.GetByStaffAndDate(txCtx, req.StaffID, req.Date, true)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 7.6. Проверяем пересечения
		if conflict := findOverlap(reservations, req.StartTime, endTime); conflict != nil {
			uc.logger.Warn("CreateReservation: window %s-%s conflicts with reservation id=%d",
				req.StartTime, endTime, conflict.ID)
			return ErrSlotConflict
		}

		// 7.7. Применяем промокод, если указан
		// Строка промокода блокируется до конца транзакции, чтобы конкурентные
		// бронирования не превысили лимит использований
		discountPercent := 0.0
		var appliedPromoID int64

		if req.PromoCode != nil {
			promo, err := uc.promoRepo.GetByCodeForUpdate(txCtx, req.SalonID, *req.PromoCode)
			if err != nil {
				if errors.Is(err, promoRepo.ErrPromoNotFound) {
					uc.logger.Warn("CreateReservation: promo code %q not found for salon id=%d",
						*req.PromoCode, req.SalonID)
					return ErrInvalidPromo
				}
				uc.logger.Error("CreateReservation: failed to get promo code: %v", err)
				return fmt.Errorf("%w: failed to get promo code: %w", ErrInternal, err)
			}

			if err := pricing.ValidatePromo(promo, req.SalonID, now); err != nil {
				uc.logger.Warn("CreateReservation: promo code %q rejected: %v", *req.PromoCode, err)
				return fmt.Errorf("%w: %v", ErrInvalidPromo, err)
			}

			discountPercent = promo.DiscountPercent
			appliedPromoID = promo.ID
		}

		// 7.8. Рассчитываем итоговую цену
		quote, err := pricing.Finalize(service.PriceCents, discountPercent)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to finalize price: %v", err)
			return fmt.Errorf("%w: failed to finalize price: %v", ErrInternal, err)
		}

		// 7.9. Создаем бронирование с денормализацией данных услуги и цены
		reservation := &domain.Reservation{
			CustomerID:        req.CustomerID,
			SalonID:           req.SalonID,
			StaffID:           req.StaffID,
			ServiceID:         req.ServiceID,
			Date:              req.Date,
			StartTime:         req.StartTime,
			EndTime:           endTime,
			DurationMinutes:   service.DurationMinutes,
			Status:            domain.StatusConfirmed,
			ServiceName:       service.Name,
			ServicePriceCents: quote.BasePriceCents,
			DiscountPercent:   quote.DiscountPercent,
			FinalPriceCents:   quote.FinalPriceCents,
			PromoCode:         req.PromoCode,
			Notes:             req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		// 7.10. Фиксируем использование промокода в той же транзакции
		if appliedPromoID != 0 {
			if err := uc.promoRepo.IncrementUsage(txCtx, appliedPromoID); err != nil {
				uc.logger.Error("CreateReservation: failed to increment promo usage: %v", err)
				return fmt.Errorf("%w: failed to increment promo usage: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	return toResponse(result), nil
}
