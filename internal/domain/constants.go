package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Дни недели: 0 = воскресенье, как в исходной модели данных
const (
	MinDayOfWeek = 0
	MaxDayOfWeek = 6
)

// KnownSlotTypes допустимые типы слотов
// Используется для валидации при создании и обновлении
var KnownSlotTypes = []SlotType{
	SlotTypeOutPatients,
	SlotTypeIPRounds,
	SlotTypeSurgery,
	SlotTypeConsultation,
	SlotTypeEmergency,
	SlotTypeOPD,
	SlotTypeCheckup,
}

// KnownSchedules допустимые значения периодичности
var KnownSchedules = []ScheduleType{
	ScheduleWeekly,
	ScheduleBiweekly,
	ScheduleMonthly,
	ScheduleOneTime,
	ScheduleCustom,
}

// dayNames английские названия дней недели для сообщений об ошибках
// (формат унаследован от исходного API)
var dayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// IsValidDayOfWeek проверяет, что день недели в диапазоне 0-6
func IsValidDayOfWeek(day int) bool {
	return day >= MinDayOfWeek && day <= MaxDayOfWeek
}

// IsKnownSlotType проверяет тип слота по списку допустимых
func IsKnownSlotType(t SlotType) bool {
	for _, known := range KnownSlotTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsKnownSchedule проверяет периодичность по списку допустимых
func IsKnownSchedule(s ScheduleType) bool {
	for _, known := range KnownSchedules {
		if s == known {
			return true
		}
	}
	return false
}

// DayName возвращает английское название дня недели
// Для значения вне диапазона возвращает пустую строку
func DayName(day int) string {
	if !IsValidDayOfWeek(day) {
		return ""
	}
	return dayNames[day]
}
