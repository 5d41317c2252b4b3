package update_slot

import (
	"github.com/m04kA/MedDir-SlotService/internal/domain"
	updateSlot "github.com/m04kA/MedDir-SlotService/internal/usecase/update_slot"
	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

// UpdateSlotRequest HTTP request model
// Все поля опциональны: отсутствующее поле не меняется
type UpdateSlotRequest struct {
	HospitalID  *int64  `json:"hospitalId,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateSlotRequest) ToUseCaseRequest(slotID, doctorID int64) (*updateSlot.Request, error) {
	changes := domain.SlotUpdate{
		HospitalID:  r.HospitalID,
		Description: r.Description,
		DayOfWeek:   r.DayOfWeek,
	}

	if r.Type != nil {
		slotType := domain.SlotType(*r.Type)
		changes.Type = &slotType
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		changes.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		changes.EndTime = &endTime
	}

	return &updateSlot.Request{
		SlotID:   slotID,
		DoctorID: doctorID,
		Changes:  changes,
	}, nil
}
