package slots

import (
	"context"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/staffservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetOwned(ctx context.Context, id int64, doctorID int64) (*domain.DoctorSlot, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.DoctorSlot, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// StaffServiceClient интерфейс клиента справочника персонала
type StaffServiceClient interface {
	GetDoctor(ctx context.Context, doctorID int64) (*staffservice.Doctor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
