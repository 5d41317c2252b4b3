package update_slot

import (
	"fmt"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
)

// validateIDs валидирует идентификаторы запроса
// Выполняется до проверки принадлежности: без корректных ID искать нечего
func validateIDs(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateChanges валидирует значения предложенных изменений
// Вызывается только после успешной проверки принадлежности: чужой слот
// должен получать "не найдено", а не ошибку валидации
// Слияние с текущим состоянием и проверка итогового интервала
// выполняются позже, внутри транзакции
func validateChanges(req *Request) error {
	if req.Changes.IsEmpty() {
		return ErrNoChanges
	}

	if req.Changes.HospitalID != nil && *req.Changes.HospitalID <= 0 {
		return fmt.Errorf("%w: hospitalID must be positive", ErrInvalidInput)
	}

	if req.Changes.Type != nil && !domain.IsKnownSlotType(*req.Changes.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownSlotType, *req.Changes.Type)
	}

	if req.Changes.DayOfWeek != nil && !domain.IsValidDayOfWeek(*req.Changes.DayOfWeek) {
		return fmt.Errorf("%w: got %d", ErrInvalidDayOfWeek, *req.Changes.DayOfWeek)
	}

	if req.Changes.StartTime != nil {
		if err := req.Changes.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
	}

	if req.Changes.EndTime != nil {
		if err := req.Changes.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateMerged проверяет инварианты итогового слота после слияния
func validateMerged(merged *domain.DoctorSlot) error {
	if !merged.StartTime.IsBefore(merged.EndTime) {
		return ErrInvalidTimeRange
	}
	return nil
}
