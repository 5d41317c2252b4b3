package models

import (
	"time"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
)

// SlotResponse модель слота для вызывающей стороны
type SlotResponse struct {
	ID          int64   `json:"id"`
	DoctorID    int64   `json:"doctorId"`
	HospitalID  int64   `json:"hospitalId"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	DayOfWeek   int     `json:"dayOfWeek"`
	DayName     string  `json:"dayName"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	StartDate   string  `json:"startDate"`
	Schedule    string  `json:"schedule"`
	IsActive    bool    `json:"isActive"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// SlotListResponse список слотов врача
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlot конвертирует domain-модель в response
func FromDomainSlot(s *domain.DoctorSlot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		DoctorID:    s.DoctorID,
		HospitalID:  s.HospitalID,
		Type:        string(s.Type),
		Description: s.Description,
		DayOfWeek:   s.DayOfWeek,
		DayName:     domain.DayName(s.DayOfWeek),
		StartTime:   s.StartTime.String(),
		EndTime:     s.EndTime.String(),
		StartDate:   s.StartDate.Format(domain.DateFormat),
		Schedule:    string(s.Schedule),
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainSlotList конвертирует список domain-моделей в response
func FromDomainSlotList(slots []*domain.DoctorSlot) *SlotListResponse {
	out := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, *FromDomainSlot(s))
	}
	return &SlotListResponse{
		Slots: out,
		Total: len(out),
	}
}
