package create_slots

import (
	"fmt"
	"sort"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Выполняется до любых обращений к хранилищу (fail fast)
func validateRequest(req *Request) error {
	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.HospitalID <= 0 {
		return fmt.Errorf("%w: hospitalID must be positive", ErrInvalidInput)
	}

	if req.Type == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidInput)
	}

	if !domain.IsKnownSlotType(req.Type) {
		return fmt.Errorf("%w: %q", ErrUnknownSlotType, req.Type)
	}

	if len(req.DaysOfWeek) == 0 {
		return fmt.Errorf("%w: at least one day of week is required", ErrInvalidInput)
	}

	for _, day := range req.DaysOfWeek {
		if !domain.IsValidDayOfWeek(day) {
			return fmt.Errorf("%w: got %d", ErrInvalidDayOfWeek, day)
		}
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	// Полуоткрытый интервал [start, end) обязан быть непустым
	if !req.StartTime.IsBefore(req.EndTime) {
		return ErrInvalidTimeRange
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.Schedule != "" && !domain.IsKnownSchedule(req.Schedule) {
		return fmt.Errorf("%w: %q", ErrUnknownSchedule, req.Schedule)
	}

	return nil
}

// normalizeDays убирает дубликаты дней и сортирует их по возрастанию,
// чтобы порядок обработки был детерминированным
func normalizeDays(days []int) []int {
	seen := make(map[int]struct{}, len(days))
	out := make([]int, 0, len(days))

	for _, day := range days {
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}

	sort.Ints(out)
	return out
}
