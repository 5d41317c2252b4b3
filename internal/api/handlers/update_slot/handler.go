package update_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MedDir-SlotService/internal/api/handlers"
	"github.com/m04kA/MedDir-SlotService/internal/api/middleware"
	serviceModels "github.com/m04kA/MedDir-SlotService/internal/service/slots/models"
	updateSlot "github.com/m04kA/MedDir-SlotService/internal/usecase/update_slot"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoChanges          = "не указано ни одного изменяемого поля"
	msgInvalidDayOfWeek   = "день недели должен быть в диапазоне 0-6"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgUnknownSlotType    = "неизвестный тип слота"
	msgSlotNotFound       = "слот не найден"
	msgHospitalNotFound   = "больница не найдена"
	msgSlotConflict       = "интервал пересекается с другим слотом врача"
)

type Handler struct {
	usecase UpdateSlotUseCase
	logger  Logger
}

func NewHandler(usecase UpdateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Идентификатор врача проставлен middleware Auth
	doctorID, ok := middleware.DoctorIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("PUT /slots/{id} - Missing doctor ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Извлекаем slotId из URL
	vars := mux.Vars(r)
	slotIDStr := vars["slotId"]

	slotID, err := strconv.ParseInt(slotIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Декодируем body
	var req UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	ucReq, err := req.ToUseCaseRequest(slotID, doctorID)
	if err != nil {
		h.logger.Warn("PUT /slots/{id} - Invalid request data: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем слот
	resp, err := h.usecase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, updateSlot.ErrNoChanges):
			h.logger.Warn("PUT /slots/{id} - No changes requested: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgNoChanges)

		case errors.Is(err, updateSlot.ErrInvalidDayOfWeek):
			h.logger.Warn("PUT /slots/{id} - Invalid day of week: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, updateSlot.ErrInvalidTimeRange):
			h.logger.Warn("PUT /slots/{id} - Invalid time range: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateSlot.ErrUnknownSlotType):
			h.logger.Warn("PUT /slots/{id} - Unknown slot type: slot_id=%d", slotID)
			handlers.RespondBadRequest(w, msgUnknownSlotType)

		case errors.Is(err, updateSlot.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{id} - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, updateSlot.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{id} - Slot not found: slot_id=%d, doctor_id=%d", slotID, doctorID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, updateSlot.ErrHospitalNotFound):
			h.logger.Warn("PUT /slots/{id} - Hospital not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgHospitalNotFound)

		case errors.Is(err, updateSlot.ErrSlotConflict):
			h.logger.Warn("PUT /slots/{id} - Slot conflict: slot_id=%d, doctor_id=%d", slotID, doctorID)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("PUT /slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{id} - Slot updated successfully: slot_id=%d, doctor_id=%d", slotID, doctorID)
	handlers.RespondJSON(w, http.StatusOK, serviceModels.FromDomainSlot(resp.Slot))
}
