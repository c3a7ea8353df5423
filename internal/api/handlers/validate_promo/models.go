package validate_promo

import (
	validatePromo "github.com/salonmarket/booking-engine/internal/usecase/validate_promo"
)

// ValidatePromoRequest HTTP request model
type ValidatePromoRequest struct {
	SalonID   int64  `json:"salonId"`
	Code      string `json:"code"`
	ServiceID *int64 `json:"serviceId,omitempty"`
}

// ValidatePromoResponse HTTP response model
type ValidatePromoResponse struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discountPercent"`
	BasePriceCents  *int64  `json:"basePriceCents,omitempty"`
	FinalPriceCents *int64  `json:"finalPriceCents,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ValidatePromoRequest) ToUseCaseRequest(userID int64) *validatePromo.Request {
	return &validatePromo.Request{
		UserID:    userID,
		SalonID:   r.SalonID,
		Code:      r.Code,
		ServiceID: r.ServiceID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *validatePromo.Response) *ValidatePromoResponse {
	return &ValidatePromoResponse{
		Code:            resp.Code,
		DiscountPercent: resp.DiscountPercent,
		BasePriceCents:  resp.BasePriceCents,
		FinalPriceCents: resp.FinalPriceCents,
	}
}
