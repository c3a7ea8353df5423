package catalogservice

import "time"

// Salon модель салона из CatalogService
type Salon struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`

	// Пользователи, управляющие салоном
	ManagerIDs []int64 `json:"manager_ids"`

	IsActive bool `json:"is_active"`
}

// IsManagedBy возвращает true, если пользователь управляет салоном
func (s *Salon) IsManagedBy(userID int64) bool {
	for _, id := range s.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Service модель услуги из CatalogService
type Service struct {
	ID              int64  `json:"id"`
	SalonID         int64  `json:"salon_id"`
	Name            string `json:"name"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
	Category        string `json:"category,omitempty"`
	IsActive        bool   `json:"is_active"`
}

// Staff модель мастера из CatalogService
type Staff struct {
	ID      int64  `json:"id"`
	SalonID int64  `json:"salon_id"`
	Name    string `json:"name"`

	// Услуги, которые мастер может выполнять
	ServiceIDs []int64 `json:"service_ids"`

	WorkingHours WeekSchedule `json:"working_hours"`

	// Переопределения расписания на конкретные даты (отгулы, сокращённые дни)
	DateOverrides []DateOverride `json:"date_overrides,omitempty"`

	IsActive bool `json:"is_active"`
}

// DaySchedule рабочие часы на один день
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // HH:MM
	CloseTime *string `json:"close_time,omitempty"` // HH:MM
}

// WeekSchedule недельное расписание мастера
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DateOverride переопределение расписания на конкретную дату
type DateOverride struct {
	Date     string      `json:"date"` // YYYY-MM-DD
	Schedule DaySchedule `json:"schedule"`
}

// CanPerform возвращает true, если мастер может выполнять услугу
func (s *Staff) CanPerform(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// WorkingHoursOn возвращает рабочие часы мастера на указанную дату
// Переопределение на конкретную дату имеет приоритет над недельным расписанием
func (s *Staff) WorkingHoursOn(date time.Time) DaySchedule {
	dateStr := date.Format("2006-01-02")
	for _, override := range s.DateOverrides {
		if override.Date == dateStr {
			return override.Schedule
		}
	}

	switch date.Weekday() {
	case time.Monday:
		return s.WorkingHours.Monday
	case time.Tuesday:
		return s.WorkingHours.Tuesday
	case time.Wednesday:
		return s.WorkingHours.Wednesday
	case time.Thursday:
		return s.WorkingHours.Thursday
	case time.Friday:
		return s.WorkingHours.Friday
	case time.Saturday:
		return s.WorkingHours.Saturday
	case time.Sunday:
		return s.WorkingHours.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
