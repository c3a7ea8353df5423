package domain

import "time"

// SalonSlotsConfig represents the slot-generation configuration of a salon
type SalonSlotsConfig struct {
	ID      int64
	SalonID int64

	// Шаг сетки слотов: кандидаты начинаются каждые N минут от времени открытия
	SlotGranularityMinutes int

	// Насколько далеко вперед можно бронировать (0 = без ограничений)
	AdvanceBookingDays int

	// Минимальное время до начала слота при бронировании на сегодня
	MinNoticeMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance reservations can be made
func (c *SalonSlotsConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
