package reschedule_reservation

import (
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ReservationID int64            // ID бронирования
	CustomerID    int64            // ID клиента, выполняющего перенос
	Date          time.Time        // Новая дата
	StartTime     types.TimeString // Новое время начала
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID              int64            // ID бронирования
	CustomerID      int64            // ID клиента
	SalonID         int64            // ID салона
	StaffID         int64            // ID мастера
	ServiceID       int64            // ID услуги
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	EndTime         types.TimeString // Новое время конца
	DurationMinutes int              // Длительность (не меняется при переносе)
	Status          string           // Статус бронирования

	ServiceName     string  // Название услуги
	FinalPriceCents int64   // Итоговая цена (не меняется при переносе)
	Notes           *string // Заметки
}

// toResponse конвертирует доменную модель в response
func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:              res.ID,
		CustomerID:      res.CustomerID,
		SalonID:         res.SalonID,
		StaffID:         res.StaffID,
		ServiceID:       res.ServiceID,
		Date:            res.Date,
		StartTime:       res.StartTime,
		EndTime:         res.EndTime,
		DurationMinutes: res.DurationMinutes,
		Status:          string(res.Status),
		ServiceName:     res.ServiceName,
		FinalPriceCents: res.FinalPriceCents,
		Notes:           res.Notes,
	}
}
