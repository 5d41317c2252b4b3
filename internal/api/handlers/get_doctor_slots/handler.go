package get_doctor_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/MedDir-SlotService/internal/api/handlers"
	"github.com/m04kA/MedDir-SlotService/internal/api/middleware"
	"github.com/m04kA/MedDir-SlotService/internal/service/slots"
)

const (
	msgUnauthorized   = "требуется аутентификация"
	msgDoctorNotFound = "врач не найден"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Идентификатор врача проставлен middleware Auth
	doctorID, ok := middleware.DoctorIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /slots - Missing doctor ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Получаем слоты врача
	result, err := h.service.List(r.Context(), doctorID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrDoctorNotFound):
			h.logger.Warn("GET /slots - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		default:
			h.logger.Error("GET /slots - Failed to get slots: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: doctor_id=%d, count=%d",
		doctorID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
