package create_reservation

import (
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID int64            // ID клиента
	SalonID    int64            // ID салона
	StaffID    int64            // ID мастера
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала окна (например, "10:00")
	PromoCode  *string          // Промокод (опционально)
	Notes      *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	CustomerID      int64            // ID клиента
	SalonID         int64            // ID салона
	StaffID         int64            // ID мастера
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования

	// Денормализованные данные: фиксируются при создании
	ServiceName       string  // Название услуги
	ServicePriceCents int64   // Базовая цена в центах
	DiscountPercent   float64 // Применённая скидка
	FinalPriceCents   int64   // Итоговая цена в центах
	PromoCode         *string // Применённый промокод
	Notes             *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// toResponse конвертирует доменную модель в response
func toResponse(res *domain.Reservation) *Response {
	return &Response{
		ID:                res.ID,
		CustomerID:        res.CustomerID,
		SalonID:           res.SalonID,
		StaffID:           res.StaffID,
		ServiceID:         res.ServiceID,
		Date:              res.Date,
		StartTime:         res.StartTime,
		EndTime:           res.EndTime,
		DurationMinutes:   res.DurationMinutes,
		Status:            string(res.Status),
		ServiceName:       res.ServiceName,
		ServicePriceCents: res.ServicePriceCents,
		DiscountPercent:   res.DiscountPercent,
		FinalPriceCents:   res.FinalPriceCents,
		PromoCode:         res.PromoCode,
		Notes:             res.Notes,
		CreatedAt:         res.CreatedAt,
		UpdatedAt:         res.UpdatedAt,
	}
}
