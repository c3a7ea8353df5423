// Package session models a customer's multi-step booking attempt as a pure
// value-transition state machine: Service -> Staff -> Date/Time -> Confirm ->
// Finalized. Transitions never touch external state; the orchestrating layer
// feeds in catalog data and availability, and the machine only decides which
// selections are legal and which downstream values a change invalidates.
package session

import (
	"time"

	"github.com/salonmarket/booking-engine/pkg/types"
)

// Step шаг мастера бронирования
type Step string

const (
	StepSelectService  Step = "select_service"
	StepSelectStaff    Step = "select_staff"
	StepSelectDateTime Step = "select_date_time"
	StepConfirm        Step = "confirm"
	StepFinalized      Step = "finalized"
)

// Slot кандидат временного окна, подаётся извне калькулятором доступности
type Slot struct {
	Start     types.TimeString
	End       types.TimeString
	Available bool
}

// Session состояние одной сессии бронирования
// Значение иммутабельно: каждый переход возвращает новую копию,
// одинаковые (состояние, событие, входные данные) дают одинаковый результат
type Session struct {
	SalonID int64
	Step    Step

	ServiceID     *int64
	StaffOptions  []int64
	StaffID       *int64
	Date          *time.Time
	SlotStart     *types.TimeString
	SlotEnd       *types.TimeString
	PromoCode     *string
	ReservationID *int64
}

// New создает сессию бронирования для салона на первом шаге
func New(salonID int64) Session {
	return Session{
		SalonID: salonID,
		Step:    StepSelectService,
	}
}

// SelectService выбирает услугу и переводит сессию на шаг выбора мастера
// staffOptions - мастера, допущенные к услуге; подаются оркестратором из каталога.
// Смена уже выбранной услуги сбрасывает мастера и дату/время:
// допустимые мастера и длительность у новой услуги могут отличаться
func (s Session) SelectService(serviceID, serviceSalonID int64, staffOptions []int64) (Session, error) {
	if s.Step == StepFinalized {
		return s, ErrSessionFinalized
	}
	if serviceSalonID != s.SalonID {
		return s, ErrServiceFromAnotherSalon
	}

	if s.ServiceID != nil && *s.ServiceID != serviceID {
		s.StaffID = nil
		s.clearSlot()
	}

	s.ServiceID = &serviceID
	s.StaffOptions = append([]int64(nil), staffOptions...)
	s.Step = StepSelectStaff

	return s, nil
}

// SelectStaff выбирает мастера из отфильтрованного списка
// Смена уже выбранного мастера сбрасывает дату/время
func (s Session) SelectStaff(staffID int64) (Session, error) {
	if s.Step == StepFinalized {
		return s, ErrSessionFinalized
	}
	if s.ServiceID == nil || s.Step == StepSelectService {
		return s, ErrInvalidTransition
	}
	if !s.staffAllowed(staffID) {
		return s, ErrStaffNotEligible
	}

	if s.StaffID != nil && *s.StaffID != staffID {
		s.clearSlot()
	}

	s.StaffID = &staffID
	s.Step = StepSelectDateTime

	return s, nil
}

// SelectSlot выбирает дату и временное окно
// Принимается только слот с available = true на момент выбора;
// повторная проверка доступности выполняется оркестратором на входе в Confirm
func (s Session) SelectSlot(date time.Time, slot Slot) (Session, error) {
	if s.Step == StepFinalized {
		return s, ErrSessionFinalized
	}
	if s.StaffID == nil || s.Step == StepSelectService || s.Step == StepSelectStaff {
		return s, ErrInvalidTransition
	}
	if !slot.Available {
		return s, ErrSlotUnavailable
	}

	s.Date = &date
	s.SlotStart = &slot.Start
	s.SlotEnd = &slot.End
	s.Step = StepConfirm

	return s, nil
}

// ApplyPromo прикрепляет промокод к сессии
// Промокод не зависит от шагов мастера и переживает смену услуги;
// его валидность проверяется заново при подтверждении
func (s Session) ApplyPromo(code string) (Session, error) {
	if s.Step == StepFinalized {
		return s, ErrSessionFinalized
	}
	s.PromoCode = &code
	return s, nil
}

// ClearPromo убирает промокод из сессии
func (s Session) ClearPromo() (Session, error) {
	if s.Step == StepFinalized {
		return s, ErrSessionFinalized
	}
	s.PromoCode = nil
	return s, nil
}

// Finalize фиксирует созданное бронирование и завершает сессию
// Вызывается оркестратором после успешной записи в реестр броней
func (s Session) Finalize(reservationID int64) (Session, error) {
	if s.Step != StepConfirm {
		return s, ErrInvalidTransition
	}
	if s.ServiceID == nil || s.StaffID == nil || s.Date == nil || s.SlotStart == nil {
		return s, ErrIncompleteSelection
	}

	s.ReservationID = &reservationID
	s.Step = StepFinalized

	return s, nil
}

// SlotConflict возвращает сессию на шаг выбора даты/времени после конфликта
// Слот сбрасывается, остальные выборы сохраняются: сессия не вправе
// молча завершиться с другим окном вместо запрошенного
func (s Session) SlotConflict() (Session, error) {
	if s.Step != StepConfirm {
		return s, ErrInvalidTransition
	}

	s.clearSlot()
	s.Step = StepSelectDateTime

	return s, nil
}

// Back возвращает сессию на предыдущий шаг, сохраняя введённые значения
// Из завершённой сессии возврат запрещён
func (s Session) Back() (Session, error) {
	switch s.Step {
	case StepSelectService:
		return s, ErrInvalidTransition
	case StepSelectStaff:
		s.Step = StepSelectService
	case StepSelectDateTime:
		s.Step = StepSelectStaff
	case StepConfirm:
		s.Step = StepSelectDateTime
	case StepFinalized:
		return s, ErrSessionFinalized
	default:
		return s, ErrInvalidTransition
	}

	return s, nil
}

// ReadyToConfirm сообщает, заполнены ли все шаги для подтверждения
func (s Session) ReadyToConfirm() bool {
	return s.Step == StepConfirm &&
		s.ServiceID != nil &&
		s.StaffID != nil &&
		s.Date != nil &&
		s.SlotStart != nil &&
		s.SlotEnd != nil
}

func (s *Session) clearSlot() {
	s.Date = nil
	s.SlotStart = nil
	s.SlotEnd = nil
}

func (s Session) staffAllowed(staffID int64) bool {
	for _, id := range s.StaffOptions {
		if id == staffID {
			return true
		}
	}
	return false
}
