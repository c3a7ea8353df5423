package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonmarket/booking-engine/internal/domain"
	configRepo "github.com/salonmarket/booking-engine/internal/infra/storage/config"
	catalogClient "github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/internal/service/config/models"
)

// Service сервис для работы с настройками слотов салона
type Service struct {
	configRepo    ConfigRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	configRepo ConfigRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:    configRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// GetBySalon получает настройки слотов салона
// Публичный метод: если настройки не сохранялись, возвращает дефолтные значения
func (s *Service) GetBySalon(ctx context.Context, salonID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetBySalon: fetching config for salon=%d", salonID)

	if salonID <= 0 {
		return nil, fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	cfg, err := s.configRepo.GetBySalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetBySalon: no config for salon=%d, returning defaults", salonID)
			return models.FromDomainConfig(&domain.SalonSlotsConfig{
				SalonID:                salonID,
				SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
				AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
				MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
			}, false), nil
		}
		s.logger.Error("GetBySalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetBySalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBySalon: successfully fetched config id=%d", cfg.ID)
	return models.FromDomainConfig(cfg, true), nil
}

// Update создает или обновляет настройки слотов салона
// Доступно только менеджерам салона
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating config for salon=%d by user=%d", req.SalonID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateConfigData(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон для проверки прав доступа
	salon, err := s.catalogClient.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			s.logger.Warn("Update: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Update: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Настройки меняет только менеджер салона
	if !salon.IsManagedBy(req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of salon=%d", req.UserID, req.SalonID)
		return nil, ErrAccessDenied
	}

	// 4. Сохраняем настройки (на салон всегда не больше одной записи)
	updated, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Update: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully saved config id=%d for salon=%d", updated.ID, req.SalonID)
	return models.FromDomainConfig(updated, true), nil
}

// validateConfigData проверяет границы значений настроек
func (s *Service) validateConfigData(req *models.UpdateConfigRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if req.MinNoticeMinutes < domain.MinNoticeMinutesLimit ||
		req.MinNoticeMinutes > domain.MaxNoticeMinutesLimit {
		return fmt.Errorf("%w: minNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutesLimit, domain.MaxNoticeMinutesLimit)
	}

	return nil
}
