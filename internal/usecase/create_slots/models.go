package create_slots

import (
	"time"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

// Request модель запроса на создание слотов
// DaysOfWeek может содержать один или несколько дней: на каждый день
// создается отдельный слот со своей якорной датой
type Request struct {
	DoctorID    int64               // ID врача (из аутентификации)
	HospitalID  int64               // ID больницы
	Type        domain.SlotType     // Тип приёма
	Description *string             // Описание (опционально)
	DaysOfWeek  []int               // Дни недели 0-6 (0 = воскресенье)
	StartTime   types.TimeString    // Время начала окна
	EndTime     types.TimeString    // Время конца окна
	StartDate   time.Time           // Базовая дата: якоря дней считаются от неё
	Schedule    domain.ScheduleType // Периодичность (по умолчанию weekly)
}

// DayError ошибка создания слота для конкретного дня недели
type DayError struct {
	DayOfWeek int    // День недели 0-6
	DayName   string // Английское название дня
	Reason    string // Человекочитаемая причина
}

// Response агрегированный результат создания слотов
// Created и Errors заполняются независимо по дням: частичный успех
// означает непустые оба списка
type Response struct {
	Created        []*domain.DoctorSlot
	Errors         []DayError
	PartialSuccess bool
}
