package update_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_slot: invalid input data")

	// ErrNoChanges возвращается, когда запрос не содержит ни одного поля
	ErrNoChanges = errors.New("update_slot: no fields to update")

	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона 0-6
	ErrInvalidDayOfWeek = errors.New("update_slot: invalid day of week (must be 0-6)")

	// ErrInvalidTimeRange возвращается, когда после слияния изменений
	// время начала не раньше времени конца
	ErrInvalidTimeRange = errors.New("update_slot: start time must be before end time")

	// ErrUnknownSlotType возвращается при неизвестном типе слота
	ErrUnknownSlotType = errors.New("update_slot: unknown slot type")

	// ErrSlotNotFound возвращается, когда слот не найден
	// или не принадлежит запрашивающему врачу
	ErrSlotNotFound = errors.New("update_slot: slot not found")

	// ErrHospitalNotFound возвращается, когда новая больница не найдена
	ErrHospitalNotFound = errors.New("update_slot: hospital not found")

	// ErrSlotConflict возвращается, когда обновлённое окно пересекается
	// с другим действующим слотом; обновление отклоняется целиком
	ErrSlotConflict = errors.New("update_slot: time slot conflicts with an existing slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_slot: internal error")
)
