package create_reservation

import (
	"errors"
	"net/http"

	"github.com/salonmarket/booking-engine/internal/api/handlers"
	"github.com/salonmarket/booking-engine/internal/api/middleware"
	createReservation "github.com/salonmarket/booking-engine/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDateFormat  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotConflict       = "выбранное окно уже занято"
	msgSalonNotFound      = "салон не найден"
	msgStaffNotFound      = "мастер не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgStaffNotEligible   = "мастер не выполняет эту услугу"
	msgInvalidDate        = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgOutOfHours         = "окно выходит за рабочие часы салона"
	msgInvalidTimeSlot    = "некорректное временное окно"
	msgTooLateToReserve   = "слишком поздно для бронирования этого окна"
	msgInvalidPromo       = "промокод недействителен"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: customer_id=%d, salon_id=%d, staff_id=%d",
				customerID, req.SalonID, req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrSalonNotFound):
			h.logger.Warn("POST /reservations - Salon not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createReservation.ErrStaffNotFound):
			h.logger.Warn("POST /reservations - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrStaffNotEligible):
			h.logger.Warn("POST /reservations - Staff not eligible: staff_id=%d, service_id=%d",
				req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid reservation date: customer_id=%d, salon_id=%d",
				customerID, req.SalonID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: customer_id=%d, salon_id=%d",
				customerID, req.SalonID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrOutOfHours):
			h.logger.Warn("POST /reservations - Out of working hours: customer_id=%d, salon_id=%d",
				customerID, req.SalonID)
			handlers.RespondBadRequest(w, msgOutOfHours)

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: customer_id=%d, salon_id=%d",
				customerID, req.SalonID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createReservation.ErrTooLateToReserve):
			h.logger.Warn("POST /reservations - Too late to reserve: customer_id=%d, salon_id=%d",
				customerID, req.SalonID)
			handlers.RespondBadRequest(w, msgTooLateToReserve)

		case errors.Is(err, createReservation.ErrInvalidPromo):
			h.logger.Warn("POST /reservations - Invalid promo code: customer_id=%d, salon_id=%d",
				customerID, req.SalonID)
			handlers.RespondBadRequest(w, msgInvalidPromo)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: customer_id=%d, salon_id=%d, error=%v",
				customerID, req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, customer_id=%d, salon_id=%d",
		result.ID, customerID, req.SalonID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
