package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonmarket/booking-engine/internal/domain"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	catalogClient "github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
)

// UseCase use case для получения сетки слотов мастера
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: user=%d, salon=%d, staff=%d, service=%d, date=%s",
		req.UserID, req.SalonID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем мастера
	staff, err := uc.catalogClient.GetStaff(ctx, req.SalonID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailability: staff id=%d not found in salon id=%d", req.StaffID, req.SalonID)
			return nil, ErrStaffNotFound
		}
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailability: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailability: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что мастер выполняет эту услугу
	if err := validateStaffEligible(staff, req.ServiceID); err != nil {
		uc.logger.Warn("GetAvailability: staff id=%d is not eligible for service id=%d",
			req.StaffID, req.ServiceID)
		return nil, err
	}

	// 6. Получаем настройки слотов салона
	config, err := uc.configRepo.GetBySalon(ctx, req.SalonID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailability: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если настройки не заданы, используем дефолтные значения
	if config == nil {
		config = &domain.SalonSlotsConfig{
			SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
			AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
			MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
		}
		uc.logger.Info("GetAvailability: using default config for salon=%d", req.SalonID)
	}

	// 7. Валидация даты с учетом настроек
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 8. Получаем рабочие часы мастера на указанную дату
	workingHours := staff.WorkingHoursOn(req.Date)
	if !workingHours.IsOpen {
		uc.logger.Info("GetAvailability: staff id=%d does not work on %s",
			req.StaffID, req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 9. Генерируем сетку окон-кандидатов
	slots, err := generateSlots(
		workingHours,
		config.SlotGranularityMinutes,
		service.DurationMinutes,
		req.Date,
		now,
		config.MinNoticeMinutes,
	)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 10. Получаем занимающие окно бронирования мастера на эту дату
	reservations, err := uc.reservationRepo.GetByStaffAndDate(ctx, req.StaffID, req.Date, true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 11. Помечаем занятые окна
	slots = markReservedSlots(slots, reservations)

	uc.logger.Info("GetAvailability: generated %d slots for staff=%d, service=%d, date=%s",
		len(slots), req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Slots:     []Slot{},
	}
}
