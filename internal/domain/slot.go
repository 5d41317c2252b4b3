package domain

import (
	"time"

	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

// SlotType тип приёма в слоте расписания врача
type SlotType string

const (
	SlotTypeOutPatients  SlotType = "OUT_PATIENTS"
	SlotTypeIPRounds     SlotType = "IP_ROUNDS"
	SlotTypeSurgery      SlotType = "SURGERY"
	SlotTypeConsultation SlotType = "CONSULTATION"
	SlotTypeEmergency    SlotType = "EMERGENCY"
	SlotTypeOPD          SlotType = "OPD"
	SlotTypeCheckup      SlotType = "CHECKUP"
)

// ScheduleType периодичность повторения слота
// Информационное поле: алгоритм конфликтов работает в модели
// "еженедельно начиная с якорной даты" независимо от значения
type ScheduleType string

const (
	ScheduleWeekly   ScheduleType = "weekly"
	ScheduleBiweekly ScheduleType = "biweekly"
	ScheduleMonthly  ScheduleType = "monthly"
	ScheduleOneTime  ScheduleType = "onetime"
	ScheduleCustom   ScheduleType = "custom"
)

// DoctorSlot повторяющееся еженедельное окно доступности врача
// в конкретной больнице
type DoctorSlot struct {
	ID          int64
	DoctorID    int64
	HospitalID  int64
	Type        SlotType
	Description *string
	DayOfWeek   int // 0 = воскресенье ... 6 = суббота
	StartTime   types.TimeString
	EndTime     types.TimeString
	StartDate   time.Time // якорная дата: первый день действия повторения
	Schedule    ScheduleType
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SlotUpdate набор изменяемых полей слота
// nil означает "поле не меняется"
// Флаг активности сюда не входит: деактивация - отдельная операция,
// и обратного пути у неё нет
type SlotUpdate struct {
	HospitalID  *int64
	Type        *SlotType
	Description *string
	DayOfWeek   *int
	StartTime   *types.TimeString
	EndTime     *types.TimeString
}

// IsEmpty проверяет, что изменений не запрошено
func (u *SlotUpdate) IsEmpty() bool {
	return u.HospitalID == nil && u.Type == nil && u.Description == nil &&
		u.DayOfWeek == nil && u.StartTime == nil && u.EndTime == nil
}

// TouchesSchedule проверяет, затрагивает ли обновление расписание:
// смена дня, времени или больницы требует повторной проверки конфликтов
func (u *SlotUpdate) TouchesSchedule() bool {
	return u.DayOfWeek != nil || u.StartTime != nil || u.EndTime != nil || u.HospitalID != nil
}

// Apply возвращает копию слота с наложенными изменениями
// Исходный слот не модифицируется
func (u *SlotUpdate) Apply(s *DoctorSlot) DoctorSlot {
	merged := *s

	if u.HospitalID != nil {
		merged.HospitalID = *u.HospitalID
	}
	if u.Type != nil {
		merged.Type = *u.Type
	}
	if u.Description != nil {
		merged.Description = u.Description
	}
	if u.DayOfWeek != nil {
		merged.DayOfWeek = *u.DayOfWeek
	}
	if u.StartTime != nil {
		merged.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		merged.EndTime = *u.EndTime
	}

	return merged
}
