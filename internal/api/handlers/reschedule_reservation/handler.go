package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonmarket/booking-engine/internal/api/handlers"
	"github.com/salonmarket/booking-engine/internal/api/middleware"
	rescheduleReservation "github.com/salonmarket/booking-engine/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidDateFormat    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotReschedule     = "бронирование не может быть перенесено"
	msgSlotConflict         = "выбранное окно уже занято"
	msgInvalidDate          = "некорректная дата бронирования"
	msgDateTooFar           = "дата бронирования слишком далеко в будущем"
	msgOutOfHours           = "окно выходит за рабочие часы салона"
	msgInvalidTimeSlot      = "некорректное временное окно"
	msgTooLateToReserve     = "слишком поздно для переноса на это окно"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, customerID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleReservation.ErrForbidden):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Access denied: reservation_id=%d, customer_id=%d",
				reservationID, customerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleReservation.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Cannot reschedule: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleReservation.ErrSlotConflict):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Slot conflict: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, rescheduleReservation.ErrInvalidDate):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid date: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleReservation.ErrDateTooFarInFuture):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Date too far in future: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleReservation.ErrOutOfHours):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Out of working hours: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgOutOfHours)

		case errors.Is(err, rescheduleReservation.ErrInvalidTimeSlot):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid time slot: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleReservation.ErrTooLateToReserve):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Too late to reserve: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgTooLateToReserve)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /reservations/{id}/reschedule - Failed to reschedule: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/reschedule - Reservation rescheduled successfully: reservation_id=%d, customer_id=%d",
		reservationID, customerID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
