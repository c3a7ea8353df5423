package get_availability

import (
	"time"

	"github.com/salonmarket/booking-engine/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	SalonID   int64     // ID салона
	StaffID   int64     // ID мастера
	ServiceID int64     // ID услуги
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	SalonID   int64     // ID салона
	StaffID   int64     // ID мастера
	ServiceID int64     // ID услуги
	Slots     []Slot    // Вся сетка слотов, занятые помечены Available = false
}

// Slot модель временного окна-кандидата
// Производное значение: пересчитывается на каждый запрос и нигде не хранится
type Slot struct {
	StartTime types.TimeString // Время начала окна (например, "10:00")
	EndTime   types.TimeString // Время конца окна, начало + длительность услуги
	Available bool             // Свободно ли окно целиком
}
