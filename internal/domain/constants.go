package domain

// Default configuration values
const (
	DefaultSlotGranularityMinutes = 30
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
	DefaultMinNoticeMinutes       = 0
)

// Business validation constants
const (
	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 120
	MinAdvanceBookingDays     = 0
	MaxAdvanceBookingDays     = 365 // 1 year
	MinNoticeMinutesLimit     = 0
	MaxNoticeMinutesLimit     = 10080 // 1 week
	MaxDiscountPercent        = 100
	MaxNotesLength            = 500
	MaxCancellationReasonLen  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, занимающих своё временное окно
// Используются при проверке пересечений и подсчёте доступных слотов
var BlockingStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых переходы запрещены
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
