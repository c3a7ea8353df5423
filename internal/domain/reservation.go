package domain

import (
	"time"

	"github.com/salonmarket/booking-engine/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
	StatusNoShow    ReservationStatus = "no_show"
)

// Reservation represents a confirmed or pending time reservation for a staff member
type Reservation struct {
	ID         int64
	CustomerID int64
	SalonID    int64
	StaffID    int64
	ServiceID  int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	// Длительность фиксируется при создании из услуги и больше не пересчитывается,
	// даже если длительность услуги потом изменится
	DurationMinutes int

	Status ReservationStatus

	// Denormalized data for history
	ServiceName       string
	ServicePriceCents int64
	DiscountPercent   float64
	FinalPriceCents   int64
	PromoCode         *string
	Notes             *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the reservation occupies its time window
// Only pending and confirmed reservations participate in overlap checks
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCompleted returns true if the reservation can be marked completed
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == StatusConfirmed
}

// CanBeMarkedNoShow returns true if the reservation can be marked as a no-show
func (r *Reservation) CanBeMarkedNoShow() bool {
	return r.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the reservation can be moved to another window
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transitions are allowed
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted || r.Status == StatusNoShow
}

// Overlaps возвращает true, если окно [start, end) пересекается с окном бронирования
// Граничные случаи (конец одного равен началу другого) пересечением не считаются
func (r *Reservation) Overlaps(start, end types.TimeString) bool {
	return r.StartTime.IsBefore(end) && r.EndTime.IsAfter(start)
}

// SalonReservationsFilter фильтр для получения бронирований салона
type SalonReservationsFilter struct {
	SalonID         int64              // Обязательный параметр
	StaffID         *int64             // Фильтр по мастеру (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые бронирования
}
