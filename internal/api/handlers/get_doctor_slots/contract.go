package get_doctor_slots

import (
	"context"

	"github.com/m04kA/MedDir-SlotService/internal/service/slots/models"
)

type SlotService interface {
	List(ctx context.Context, doctorID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
