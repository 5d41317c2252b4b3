package create_slots

import (
	"errors"
	"time"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	serviceModels "github.com/m04kA/MedDir-SlotService/internal/service/slots/models"
	createSlots "github.com/m04kA/MedDir-SlotService/internal/usecase/create_slots"
	"github.com/m04kA/MedDir-SlotService/pkg/types"
)

var errNoDaysProvided = errors.New("no days of week provided")

// CreateSlotsRequest HTTP request model
// Принимаются оба варианта: dayOfWeek для одного дня и daysOfWeek для
// нескольких; при передаче обоих значения объединяются
type CreateSlotsRequest struct {
	HospitalID  int64   `json:"hospitalId"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	DayOfWeek   *int    `json:"dayOfWeek,omitempty"`
	DaysOfWeek  []int   `json:"daysOfWeek,omitempty"`
	StartTime   string  `json:"startTime"` // "09:00"
	EndTime     string  `json:"endTime"`   // "13:00"
	StartDate   string  `json:"startDate"` // "2026-09-01"
	Schedule    *string `json:"schedule,omitempty"`
}

// DayErrorResponse причина отказа по одному дню недели
type DayErrorResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	DayName   string `json:"dayName"`
	Reason    string `json:"reason"`
}

// CreateSlotsResponse HTTP response model
type CreateSlotsResponse struct {
	Created        []serviceModels.SlotResponse `json:"created"`
	Errors         []DayErrorResponse           `json:"errors,omitempty"`
	PartialSuccess bool                         `json:"partialSuccess"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSlotsRequest) ToUseCaseRequest(doctorID int64) (*createSlots.Request, error) {
	// Парсим дату
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	days := make([]int, 0, len(r.DaysOfWeek)+1)
	if r.DayOfWeek != nil {
		days = append(days, *r.DayOfWeek)
	}
	days = append(days, r.DaysOfWeek...)
	if len(days) == 0 {
		return nil, errNoDaysProvided
	}

	var schedule domain.ScheduleType
	if r.Schedule != nil {
		schedule = domain.ScheduleType(*r.Schedule)
	}

	return &createSlots.Request{
		DoctorID:    doctorID,
		HospitalID:  r.HospitalID,
		Type:        domain.SlotType(r.Type),
		Description: r.Description,
		DaysOfWeek:  days,
		StartTime:   startTime,
		EndTime:     endTime,
		StartDate:   startDate,
		Schedule:    schedule,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSlots.Response) *CreateSlotsResponse {
	created := make([]serviceModels.SlotResponse, 0, len(resp.Created))
	for _, slot := range resp.Created {
		created = append(created, *serviceModels.FromDomainSlot(slot))
	}

	dayErrors := make([]DayErrorResponse, 0, len(resp.Errors))
	for _, dayErr := range resp.Errors {
		dayErrors = append(dayErrors, DayErrorResponse{
			DayOfWeek: dayErr.DayOfWeek,
			DayName:   dayErr.DayName,
			Reason:    dayErr.Reason,
		})
	}

	return &CreateSlotsResponse{
		Created:        created,
		Errors:         dayErrors,
		PartialSuccess: resp.PartialSuccess,
	}
}
