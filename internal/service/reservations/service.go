package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonmarket/booking-engine/internal/domain"
	reservationRepo "github.com/salonmarket/booking-engine/internal/infra/storage/reservation"
	catalogClient "github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование или бронирования салона,
// которым он управляет
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByCustomer(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetSalonReservations получает бронирования салона с гибкой фильтрацией
// Поддерживает фильтрацию по мастеру, периоду, статусу и включению неактивных
// Доступно только менеджерам салона
func (s *Service) GetSalonReservations(ctx context.Context, req *models.GetSalonReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSalonReservations: fetching reservations for salon=%d, user=%d", req.SalonID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonReservations: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonReservations: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonReservations: successfully fetched %d reservations for salon=%d", len(reservations), req.SalonID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Клиент может отменить своё бронирование, менеджер - любое бронирование салона.
// Отмена меняет множество занятых окон, поэтому чтение и запись выполняются
// в одной транзакции: GetByID блокирует строку через FOR UPDATE
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !reservation.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
			return ErrCannotCancel
		}

		// Владелец отменяет своё бронирование, иначе требуется доступ менеджера
		if reservation.CustomerID != req.UserID {
			if err := s.checkManagerAccess(txCtx, reservation.SalonID, req.UserID); err != nil {
				s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
				return ErrAccessDenied
			}
		}

		if err := s.reservationRepo.Cancel(txCtx, reservationID, req.CancellationReason); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	return nil
}

// Complete помечает бронирование выполненным
// Доступно только менеджерам салона, переход разрешён только из confirmed.
// Повторный вызов возвращает ErrInvalidTransition
func (s *Service) Complete(ctx context.Context, reservationID int64, userID int64) error {
	s.logger.Info("Complete: completing reservation id=%d by user=%d", reservationID, userID)

	return s.transition(ctx, reservationID, userID, domain.StatusCompleted, func(r *domain.Reservation) bool {
		return r.CanBeCompleted()
	})
}

// MarkNoShow помечает бронирование неявкой клиента
// Доступно только менеджерам салона, переход разрешён только из confirmed
func (s *Service) MarkNoShow(ctx context.Context, reservationID int64, userID int64) error {
	s.logger.Info("MarkNoShow: marking reservation id=%d as no-show by user=%d", reservationID, userID)

	return s.transition(ctx, reservationID, userID, domain.StatusNoShow, func(r *domain.Reservation) bool {
		return r.CanBeMarkedNoShow()
	})
}

// transition выполняет статусный переход под блокировкой строки
func (s *Service) transition(
	ctx context.Context,
	reservationID int64,
	userID int64,
	target domain.ReservationStatus,
	allowed func(*domain.Reservation) bool,
) error {
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("transition: reservation id=%d not found", reservationID)
				return ErrReservationNotFound
			}
			s.logger.Error("transition: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}

		if err := s.checkManagerAccess(txCtx, reservation.SalonID, userID); err != nil {
			return err
		}

		if !allowed(reservation) {
			s.logger.Warn("transition: reservation id=%d cannot go from %s to %s",
				reservationID, reservation.Status, target)
			return ErrInvalidTransition
		}

		if err := s.reservationRepo.UpdateStatus(txCtx, reservationID, target); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("transition: repository error for reservation id=%d: %v", reservationID, err)
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.logger.Info("transition: reservation id=%d moved to %s", reservationID, target)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	if reservation.CustomerID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, reservation.SalonID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, salonID int64, userID int64) error {
	salon, err := s.catalogClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrSalonNotFound) {
			s.logger.Warn("checkManagerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get salon: %v", ErrInternal, err)
	}

	if !salon.IsManagedBy(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of salon=%d", userID, salonID)
		return ErrAccessDenied
	}

	return nil
}
