package create_slots

import (
	"context"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/hospitalservice"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/staffservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.DoctorSlot) (*domain.DoctorSlot, error)
	ListActive(ctx context.Context, doctorID, hospitalID int64, dayOfWeek int) ([]*domain.DoctorSlot, error)
}

// StaffServiceClient интерфейс клиента справочника персонала
type StaffServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*staffservice.Doctor, error)
}

// HospitalServiceClient интерфейс клиента справочника больниц
type HospitalServiceClient interface {
	GetHospital(ctx context.Context, hospitalID int64) (*hospitalservice.Hospital, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
