package update_salon_config

import (
	"github.com/salonmarket/booking-engine/internal/service/config/models"
)

// UpdateSalonConfigRequest HTTP request model
type UpdateSalonConfigRequest struct {
	SlotGranularityMinutes int `json:"slotGranularityMinutes"`
	AdvanceBookingDays     int `json:"advanceBookingDays"`
	MinNoticeMinutes       int `json:"minNoticeMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSalonConfigRequest) ToServiceRequest(salonID, userID int64) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:                 userID,
		SalonID:                salonID,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		AdvanceBookingDays:     r.AdvanceBookingDays,
		MinNoticeMinutes:       r.MinNoticeMinutes,
	}
}
