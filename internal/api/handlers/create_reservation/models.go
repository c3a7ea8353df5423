package create_reservation

import (
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	createReservation "github.com/salonmarket/booking-engine/internal/usecase/create_reservation"
	"github.com/salonmarket/booking-engine/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SalonID   int64   `json:"salonId"`
	StaffID   int64   `json:"staffId"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "10:00"
	PromoCode *string `json:"promoCode,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                int64   `json:"id"`
	CustomerID        int64   `json:"customerId"`
	SalonID           int64   `json:"salonId"`
	StaffID           int64   `json:"staffId"`
	ServiceID         int64   `json:"serviceId"`
	Date              string  `json:"date"`
	StartTime         string  `json:"startTime"`
	EndTime           string  `json:"endTime"`
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	ServiceName       string  `json:"serviceName"`
	ServicePriceCents int64   `json:"servicePriceCents"`
	DiscountPercent   float64 `json:"discountPercent"`
	FinalPriceCents   int64   `json:"finalPriceCents"`
	PromoCode         *string `json:"promoCode,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateReservationRequest) ToUseCaseRequest(customerID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		CustomerID: customerID,
		SalonID:    r.SalonID,
		StaffID:    r.StaffID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		PromoCode:  r.PromoCode,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                resp.ID,
		CustomerID:        resp.CustomerID,
		SalonID:           resp.SalonID,
		StaffID:           resp.StaffID,
		ServiceID:         resp.ServiceID,
		Date:              resp.Date.Format(domain.DateFormat),
		StartTime:         resp.StartTime.String(),
		EndTime:           resp.EndTime.String(),
		DurationMinutes:   resp.DurationMinutes,
		Status:            resp.Status,
		ServiceName:       resp.ServiceName,
		ServicePriceCents: resp.ServicePriceCents,
		DiscountPercent:   resp.DiscountPercent,
		FinalPriceCents:   resp.FinalPriceCents,
		PromoCode:         resp.PromoCode,
		Notes:             resp.Notes,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         resp.UpdatedAt.Format(time.RFC3339),
	}
}
