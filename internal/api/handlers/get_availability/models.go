package get_availability

import (
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	getAvailability "github.com/salonmarket/booking-engine/internal/usecase/get_availability"
)

// SlotResponse HTTP модель одного окна сетки
type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// AvailabilityResponse HTTP модель ответа с сеткой слотов
type AvailabilityResponse struct {
	Date      string         `json:"date"`
	SalonID   int64          `json:"salonId"`
	StaffID   int64          `json:"staffId"`
	ServiceID int64          `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из параметров URL
func ToUseCaseRequest(salonID, staffID, serviceID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		SalonID:   salonID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.Available,
		})
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		SalonID:   resp.SalonID,
		StaffID:   resp.StaffID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
