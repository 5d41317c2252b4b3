package create_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_slots: invalid input data")

	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона 0-6
	ErrInvalidDayOfWeek = errors.New("create_slots: invalid day of week (must be 0-6)")

	// ErrInvalidTimeRange возвращается, когда время начала не раньше времени конца
	ErrInvalidTimeRange = errors.New("create_slots: start time must be before end time")

	// ErrUnknownSlotType возвращается при неизвестном типе слота
	ErrUnknownSlotType = errors.New("create_slots: unknown slot type")

	// ErrUnknownSchedule возвращается при неизвестной периодичности
	ErrUnknownSchedule = errors.New("create_slots: unknown schedule")

	// ErrDoctorNotFound возвращается, когда врач не найден в справочнике
	ErrDoctorNotFound = errors.New("create_slots: doctor not found")

	// ErrHospitalNotFound возвращается, когда больница не найдена
	ErrHospitalNotFound = errors.New("create_slots: hospital not found")

	// ErrSlotConflict возвращается, когда интервал пересекается с действующим слотом
	ErrSlotConflict = errors.New("create_slots: time slot conflicts with an existing slot")

	// ErrAllDaysFailed возвращается, когда ни один из запрошенных дней не создан
	ErrAllDaysFailed = errors.New("create_slots: failed to create slots for all requested days")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_slots: internal error")
)
