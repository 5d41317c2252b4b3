package domain

import (
	"time"

	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

// AnchorDate вычисляет якорную дату слота: ближайшую дату >= base,
// день недели которой равен targetDay (0 = воскресенье)
// Если base уже приходится на targetDay, возвращается сама base,
// а не дата через неделю
func AnchorDate(base time.Time, targetDay int) time.Time {
	baseDay := int(base.Weekday())
	delta := (targetDay - baseDay + 7) % 7
	return base.AddDate(0, 0, delta)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов [start, end)
// одного дня недели
//
// Единственное правило: startA < endB && startB < endA
// Оно покрывает все случаи (начало внутри, конец внутри, полное вложение),
// а граничные касания (endA == startB) пересечением не считаются
func Overlaps(startA, endA, startB, endB types.TimeString) bool {
	return startA.IsBefore(endB) && startB.IsBefore(endA)
}

// SlotCandidate кандидат на создание или обновление слота
// для проверки конфликтов
type SlotCandidate struct {
	DoctorID   int64
	HospitalID int64
	DayOfWeek  int
	StartTime  types.TimeString
	EndTime    types.TimeString
	AnchorDate time.Time

	// ExcludeSlotID id слота, который надо игнорировать при проверке
	// (при обновлении слот не должен конфликтовать сам с собой)
	ExcludeSlotID *int64
}

// FindConflict возвращает первый активный слот, пересекающийся с кандидатом,
// или nil, если конфликтов нет
//
// Учитываются только слоты, чья якорная дата не позже якорной даты кандидата:
// слот, начинающий действовать после кандидата, конфликтом не считается.
// Правило одностороннее (first-to-register wins) и унаследовано от исходной
// системы; симметричная проверка будущих слотов сознательно не выполняется.
func FindConflict(c SlotCandidate, existing []*DoctorSlot) *DoctorSlot {
	for _, slot := range existing {
		if !slot.IsActive {
			continue
		}
		if c.ExcludeSlotID != nil && slot.ID == *c.ExcludeSlotID {
			continue
		}
		if slot.StartDate.After(c.AnchorDate) {
			continue
		}
		if Overlaps(c.StartTime, c.EndTime, slot.StartTime, slot.EndTime) {
			return slot
		}
	}
	return nil
}
