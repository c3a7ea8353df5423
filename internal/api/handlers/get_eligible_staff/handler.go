package get_eligible_staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonmarket/booking-engine/internal/api/handlers"
	listEligibleStaff "github.com/salonmarket/booking-engine/internal/usecase/list_eligible_staff"
)

const (
	msgInvalidSalonID   = "некорректный ID салона"
	msgInvalidServiceID = "некорректный ID услуги"
	msgServiceNotFound  = "услуга не найдена"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase ListEligibleStaffUseCase
	logger  Logger
}

func NewHandler(useCase ListEligibleStaffUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/services/{serviceId}/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/staff - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/services/{id}/staff - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listEligibleStaff.Request{
		SalonID:   salonID,
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, listEligibleStaff.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{id}/services/{id}/staff - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, listEligibleStaff.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/services/{id}/staff - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /salons/{id}/services/{id}/staff - Failed to list staff: salon_id=%d, service_id=%d, error=%v",
				salonID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/services/{id}/staff - Staff listed: salon_id=%d, service_id=%d, count=%d",
		salonID, serviceID, len(result.Staff))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
