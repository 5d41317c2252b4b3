package update_slot

import (
	"context"
	"time"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	"github.com/m04kA/MedDir-SlotService/internal/integrations/hospitalservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetOwned(ctx context.Context, id int64, doctorID int64) (*domain.DoctorSlot, error)
	ListActive(ctx context.Context, doctorID, hospitalID int64, dayOfWeek int) ([]*domain.DoctorSlot, error)
	Update(ctx context.Context, id int64, upd domain.SlotUpdate, startDate *time.Time) (*domain.DoctorSlot, error)
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
