package models

import (
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
)

// UpdateConfigRequest запрос на создание или обновление настроек слотов салона
type UpdateConfigRequest struct {
	UserID                 int64 `json:"userId"`
	SalonID                int64 `json:"salonId"`
	SlotGranularityMinutes int   `json:"slotGranularityMinutes"`
	AdvanceBookingDays     int   `json:"advanceBookingDays"`
	MinNoticeMinutes       int   `json:"minNoticeMinutes"`
}

// ToDomainConfig конвертирует request в domain модель
func (r *UpdateConfigRequest) ToDomainConfig() *domain.SalonSlotsConfig {
	return &domain.SalonSlotsConfig{
		SalonID:                r.SalonID,
		SlotGranularityMinutes: r.SlotGranularityMinutes,
		AdvanceBookingDays:     r.AdvanceBookingDays,
		MinNoticeMinutes:       r.MinNoticeMinutes,
	}
}

// ConfigResponse ответ с настройками слотов салона
type ConfigResponse struct {
	SalonID                int64 `json:"salonId"`
	SlotGranularityMinutes int   `json:"slotGranularityMinutes"`
	AdvanceBookingDays     int   `json:"advanceBookingDays"`
	MinNoticeMinutes       int   `json:"minNoticeMinutes"`

	// false для дефолтных настроек, которые еще не сохранялись
	Persisted bool `json:"persisted"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(cfg *domain.SalonSlotsConfig, persisted bool) *ConfigResponse {
	resp := &ConfigResponse{
		SalonID:                cfg.SalonID,
		SlotGranularityMinutes: cfg.SlotGranularityMinutes,
		AdvanceBookingDays:     cfg.AdvanceBookingDays,
		MinNoticeMinutes:       cfg.MinNoticeMinutes,
		Persisted:              persisted,
	}

	if persisted {
		createdAt := cfg.CreatedAt
		updatedAt := cfg.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}
