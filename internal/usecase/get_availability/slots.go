package get_availability

import (
	"time"

	"github.com/salonmarket/booking-engine/internal/domain"
	"github.com/salonmarket/booking-engine/internal/integrations/catalogservice"
	"github.com/salonmarket/booking-engine/pkg/types"
)

// generateSlots генерирует сетку окон-кандидатов на день
// Начала окон идут с шагом granularity от времени открытия мастера,
// длина окна равна длительности услуги. Окно, чей конец выходит
// за время закрытия, в сетку не попадает
func generateSlots(
	workingHours catalogservice.DaySchedule,
	granularityMinutes int,
	serviceDurationMinutes int,
	requestDate time.Time,
	now time.Time,
	minNoticeMinutes int,
) ([]Slot, error) {
	if isDateInPast(requestDate, now) {
		return []Slot{}, nil
	}

	if !workingHours.IsOpen || workingHours.OpenTime == nil || workingHours.CloseTime == nil {
		return []Slot{}, nil
	}

	openTime, err := types.NewTimeStringFromString(*workingHours.OpenTime)
	if err != nil {
		return nil, err
	}

	closeTime, err := types.NewTimeStringFromString(*workingHours.CloseTime)
	if err != nil {
		return nil, err
	}

	// Минимальное допустимое время начала при бронировании на сегодня
	// Для будущих дат ограничения нет
	var minAllowedStart *types.TimeString
	if isSameDay(requestDate, now) {
		currentTime := types.NewTimeString(now)
		minStart, err := currentTime.AddMinutes(minNoticeMinutes)
		if err != nil {
			// Порог ушёл за полночь - сегодня бронировать уже нельзя
			return []Slot{}, nil
		}
		minAllowedStart = &minStart
	}

	slots := make([]Slot, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		slotEnd, err := current.AddMinutes(serviceDurationMinutes)
		if err != nil {
			break
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		// Окна раньше порога min notice попадают в сетку, но занятыми
		available := minAllowedStart == nil || !current.IsBefore(*minAllowedStart)

		slots = append(slots, Slot{
			StartTime: current,
			EndTime:   slotEnd,
			Available: available,
		})

		current, err = current.AddMinutes(granularityMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// markReservedSlots помечает занятыми окна, пересекающиеся с бронированиями
// Пересечение строгое: окна, граничащие с бронированием, остаются свободными
func markReservedSlots(slots []Slot, reservations []*domain.Reservation) []Slot {
	for i := range slots {
		if !slots[i].Available {
			continue
		}

		for _, res := range reservations {
			if !res.IsBlocking() {
				continue
			}
			if res.Overlaps(slots[i].StartTime, slots[i].EndTime) {
				slots[i].Available = false
				break
			}
		}
	}

	return slots
}
