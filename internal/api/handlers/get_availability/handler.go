package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonmarket/booking-engine/internal/api/handlers"
	getAvailability "github.com/salonmarket/booking-engine/internal/usecase/get_availability"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidStaffID   = "некорректный ID мастера"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound    = "салон не найден"
	msgStaffNotFound    = "мастер не найден"
	msgServiceNotFound  = "услуга не найдена"
	msgStaffNotEligible = "мастер не выполняет эту услугу"
	msgInvalidReqDate   = "некорректная дата запроса"
	msgDateTooFar       = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/staff/{staffId}/availability
// Query params: serviceId, date (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем salonId и staffId из URL
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	// Обязательные query параметры
	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonID, staffID, serviceID, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailability.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrStaffNotEligible):
			h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Staff not eligible: staff_id=%d, service_id=%d",
				staffID, serviceID)
			handlers.RespondBadRequest(w, msgStaffNotEligible)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Invalid date: salon_id=%d", salonID)
			handlers.RespondBadRequest(w, msgInvalidReqDate)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Date too far in future: salon_id=%d", salonID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/staff/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidReqDate)

		default:
			h.logger.Error("GET /salons/{id}/staff/{id}/availability - Failed to get slots: salon_id=%d, staff_id=%d, error=%v",
				salonID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/staff/{id}/availability - Slots calculated: salon_id=%d, staff_id=%d, count=%d",
		salonID, staffID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
