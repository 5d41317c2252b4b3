package create_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/MedDir-SlotService/internal/api/handlers"
	"github.com/m04kA/MedDir-SlotService/internal/api/middleware"
	createSlots "github.com/m04kA/MedDir-SlotService/internal/usecase/create_slots"
)

const (
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDayOfWeek   = "день недели должен быть в диапазоне 0-6"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
	msgUnknownSlotType    = "неизвестный тип слота"
	msgUnknownSchedule    = "неизвестная периодичность"
	msgDoctorNotFound     = "врач не найден"
	msgHospitalNotFound   = "больница не найдена"
)

type Handler struct {
	usecase CreateSlotsUseCase
	logger  Logger
}

func NewHandler(usecase CreateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		usecase: usecase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Идентификатор врача проставлен middleware Auth
	doctorID, ok := middleware.DoctorIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /slots - Missing doctor ID in context")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Декодируем body
	var req CreateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель use case
	ucReq, err := req.ToUseCaseRequest(doctorID)
	if err != nil {
		h.logger.Warn("POST /slots - Invalid request data: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем слоты
	resp, err := h.usecase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlots.ErrAllDaysFailed):
			// Ни один день не создан: отдаем клиенту причины по дням
			h.logger.Warn("POST /slots - All days failed: doctor_id=%d", doctorID)
			handlers.RespondBadRequest(w, joinDayErrors(resp.Errors))

		case errors.Is(err, createSlots.ErrInvalidDayOfWeek):
			h.logger.Warn("POST /slots - Invalid day of week: doctor_id=%d", doctorID)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, createSlots.ErrInvalidTimeRange):
			h.logger.Warn("POST /slots - Invalid time range: doctor_id=%d", doctorID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createSlots.ErrUnknownSlotType):
			h.logger.Warn("POST /slots - Unknown slot type: doctor_id=%d, type=%s", doctorID, req.Type)
			handlers.RespondBadRequest(w, msgUnknownSlotType)

		case errors.Is(err, createSlots.ErrUnknownSchedule):
			h.logger.Warn("POST /slots - Unknown schedule: doctor_id=%d", doctorID)
			handlers.RespondBadRequest(w, msgUnknownSchedule)

		case errors.Is(err, createSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createSlots.ErrDoctorNotFound):
			h.logger.Warn("POST /slots - Doctor not found: doctor_id=%d", doctorID)
			handlers.RespondNotFound(w, msgDoctorNotFound)

		case errors.Is(err, createSlots.ErrHospitalNotFound):
			h.logger.Warn("POST /slots - Hospital not found: doctor_id=%d, hospital_id=%d",
				doctorID, req.HospitalID)
			handlers.RespondNotFound(w, msgHospitalNotFound)

		default:
			h.logger.Error("POST /slots - Failed to create slots: doctor_id=%d, error=%v", doctorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Частичный успех отдаем как 200, полный - как 201
	status := http.StatusCreated
	if resp.PartialSuccess {
		status = http.StatusOK
	}

	h.logger.Info("POST /slots - Slots created: doctor_id=%d, created=%d, errors=%d",
		doctorID, len(resp.Created), len(resp.Errors))
	handlers.RespondJSON(w, status, FromUseCaseResponse(resp))
}

// joinDayErrors собирает пер-дневные причины в одно сообщение
func joinDayErrors(dayErrors []createSlots.DayError) string {
	parts := make([]string, 0, len(dayErrors))
	for _, dayErr := range dayErrors {
		parts = append(parts, dayErr.DayName+": "+dayErr.Reason)
	}
	return strings.Join(parts, "; ")
}
