package validate_promo

import (
	"errors"
	"net/http"

	"github.com/salonmarket/booking-engine/internal/api/handlers"
	"github.com/salonmarket/booking-engine/internal/api/middleware"
	validatePromo "github.com/salonmarket/booking-engine/internal/usecase/validate_promo"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidPromo       = "промокод недействителен"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase ValidatePromoUseCase
	logger  Logger
}

func NewHandler(useCase ValidatePromoUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/promos/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /promos/validate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ValidatePromoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /promos/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, validatePromo.ErrInvalidPromo):
			h.logger.Warn("POST /promos/validate - Invalid promo code: salon_id=%d, user_id=%d",
				req.SalonID, userID)
			handlers.RespondBadRequest(w, msgInvalidPromo)

		case errors.Is(err, validatePromo.ErrServiceNotFound):
			h.logger.Warn("POST /promos/validate - Service not found: salon_id=%d", req.SalonID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, validatePromo.ErrInvalidInput):
			h.logger.Warn("POST /promos/validate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /promos/validate - Failed to validate promo: salon_id=%d, error=%v",
				req.SalonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /promos/validate - Promo validated successfully: salon_id=%d, user_id=%d",
		req.SalonID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
