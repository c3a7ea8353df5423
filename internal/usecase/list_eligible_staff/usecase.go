package list_eligible_staff

import (
	"context"
	"errors"
	"fmt"

	catalogClient "github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
)

// UseCase use case списка мастеров, выполняющих услугу
type UseCase struct {
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogClient CatalogServiceClient, logger Logger) *UseCase {
	return &UseCase{
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Execute выполняет use case списка допущенных мастеров
// Результат используется как набор вариантов на шаге выбора мастера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListEligibleStaff: salon=%d, service=%d", req.SalonID, req.ServiceID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListEligibleStaff: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу
	service, err := uc.catalogClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ListEligibleStaff: service id=%d not found in salon id=%d", req.ServiceID, req.SalonID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ListEligibleStaff: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("ListEligibleStaff: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Получаем мастеров салона, выполняющих услугу
	staff, err := uc.catalogClient.ListStaffForService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("ListEligibleStaff: staff list for service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ListEligibleStaff: failed to list staff for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	resp := &Response{
		SalonID:     req.SalonID,
		ServiceID:   req.ServiceID,
		ServiceName: service.Name,
		Staff:       make([]StaffEntry, 0, len(staff)),
		StaffIDs:    make([]int64, 0, len(staff)),
	}

	// 4. Каталог фильтрует по услуге на своей стороне,
	// здесь отсекаются неактивные и проверяется принадлежность услуги
	for _, s := range staff {
		if !s.IsActive || !s.CanPerform(req.ServiceID) {
			continue
		}
		resp.Staff = append(resp.Staff, StaffEntry{ID: s.ID, Name: s.Name})
		resp.StaffIDs = append(resp.StaffIDs, s.ID)
	}

	uc.logger.Info("ListEligibleStaff: salon=%d, service=%d, eligible=%d", req.SalonID, req.ServiceID, len(resp.Staff))

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}
