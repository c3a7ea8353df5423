package get_eligible_staff

import (
	listEligibleStaff "github.com/salonmarket/booking-engine/internal/usecase/list_eligible_staff"
)

// StaffResponse HTTP модель одного мастера
type StaffResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EligibleStaffResponse HTTP модель ответа со списком допущенных мастеров
type EligibleStaffResponse struct {
	SalonID     int64           `json:"salonId"`
	ServiceID   int64           `json:"serviceId"`
	ServiceName string          `json:"serviceName"`
	Staff       []StaffResponse `json:"staff"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listEligibleStaff.Response) *EligibleStaffResponse {
	staff := make([]StaffResponse, 0, len(resp.Staff))
	for _, s := range resp.Staff {
		staff = append(staff, StaffResponse{ID: s.ID, Name: s.Name})
	}

	return &EligibleStaffResponse{
		SalonID:     resp.SalonID,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Staff:       staff,
	}
}
