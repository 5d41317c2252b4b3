package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MedDir-SlotService/internal/api/handlers"
	"github.com/m04kA/MedDir-SlotService/internal/api/middleware"
	"github.com/m04kA/MedDir-SlotService/internal/service/slots"
)

const (
	msgUnauthorized  = "требуется аутентификация"
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
)

// DeleteSlotResponse HTTP response model
type DeleteSlotResponse struct {
	Message string `json:"message"`
}

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

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Идентификатор врача проставлен middleware Auth
	doctorID, ok := middleware.DoctorIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("DELETE /slots/{id} - Missing doctor ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем slotId из URL
	vars := mux.Vars(r)
	slotIDStr := vars["slotId"]

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Деактивируем слот (историческое удаление всегда мягкое)
	err = h.service.SoftDelete(r.Context(), slotID, doctorID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%d, doctor_id=%d",
				slotID, doctorID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("DELETE /slots/{id} - Failed to delete slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot deactivated successfully: slot_id=%d, doctor_id=%d",
		slotID, doctorID)
	handlers.RespondJSON(w, http.StatusOK, DeleteSlotResponse{Message: "слот деактивирован"})
}
