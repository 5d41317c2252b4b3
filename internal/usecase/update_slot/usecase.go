package update_slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	slotRepo "github.com/m04kA/MedDir-SlotService/internal/infra/storage/slot"
	hospitalClient "github.com/m04kA/MedDir-SlotService/internal/integrations/hospitalservice"
)

// UseCase use case обновления слота расписания
// Применяет частичный набор изменений; если затронуты день, время или
// больница, итоговый (слитый) слот повторно проходит проверку конфликтов
// против всех остальных действующих слотов врача
type UseCase struct {
	slotRepo       SlotRepository
	hospitalClient HospitalServiceClient
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	hospitalClient HospitalServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:       slotRepo,
		hospitalClient: hospitalClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет обновление слота
// Обновление атомарно: при конфликте не применяется ни одно поле
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateSlot: slot=%d, doctor=%d", req.SlotID, req.DoctorID)

	// 1. Валидация идентификаторов
	if err := validateIDs(req); err != nil {
		uc.logger.Warn("UpdateSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка принадлежности до любой другой валидации
	// Чужой слот неотличим от несуществующего и получает "не найдено"
	// даже при некорректном наборе изменений
	if _, err := uc.slotRepo.GetOwned(ctx, req.SlotID, req.DoctorID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("UpdateSlot: slot id=%d not found for doctor=%d", req.SlotID, req.DoctorID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("UpdateSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 3. Валидация изменений
	if err := validateChanges(req); err != nil {
		uc.logger.Warn("UpdateSlot: validation failed: %v", err)
		return nil, err
	}

	// 4. Если запрошен перенос в другую больницу - проверяем её существование
	if req.Changes.HospitalID != nil {
		if _, err := uc.hospitalClient.GetHospital(ctx, *req.Changes.HospitalID); err != nil {
			if errors.Is(err, hospitalClient.ErrHospitalNotFound) {
				uc.logger.Warn("UpdateSlot: hospital id=%d not found", *req.Changes.HospitalID)
				return nil, ErrHospitalNotFound
			}
			uc.logger.Error("UpdateSlot: failed to get hospital id=%d: %v", *req.Changes.HospitalID, err)
			return nil, fmt.Errorf("%w: failed to get hospital: %v", ErrInternal, err)
		}
	}

	var updated *domain.DoctorSlot

	// 5. Чтение, проверка конфликтов и запись - в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Повторное чтение внутри транзакции: состояние слота могло
		// измениться между предварительной проверкой и захватом блокировки
		existing, err := uc.slotRepo.GetOwned(txCtx, req.SlotID, req.DoctorID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 5.2. Слияние: неизменённые поля + предложенные изменения
		merged := req.Changes.Apply(existing)

		if err := validateMerged(&merged); err != nil {
			return err
		}

		// 5.3. При смене дня недели якорная дата пересчитывается
		// от прежней якорной даты слота
		var newStartDate *time.Time
		anchor := existing.StartDate
		if merged.DayOfWeek != existing.DayOfWeek {
			anchor = domain.AnchorDate(existing.StartDate, merged.DayOfWeek)
			newStartDate = &anchor
		}

		// 5.4. Повторная проверка конфликтов, только если изменение
		// затрагивает расписание
		if req.Changes.TouchesSchedule() {
			others, err := uc.slotRepo.ListActive(txCtx, req.DoctorID, merged.HospitalID, merged.DayOfWeek)
			if err != nil {
				return fmt.Errorf("%w: failed to list active slots: %v", ErrInternal, err)
			}

			candidate := domain.SlotCandidate{
				DoctorID:      req.DoctorID,
				HospitalID:    merged.HospitalID,
				DayOfWeek:     merged.DayOfWeek,
				StartTime:     merged.StartTime,
				EndTime:       merged.EndTime,
				AnchorDate:    anchor,
				ExcludeSlotID: &req.SlotID,
			}

			if conflict := domain.FindConflict(candidate, others); conflict != nil {
				return fmt.Errorf("%w: %s %s-%s overlaps slot id=%d (%s-%s)",
					ErrSlotConflict, domain.DayName(merged.DayOfWeek),
					merged.StartTime, merged.EndTime,
					conflict.ID, conflict.StartTime, conflict.EndTime)
			}
		}

		// 5.5. Все изменённые поля записываются одним UPDATE
		updated, err = uc.slotRepo.Update(txCtx, req.SlotID, req.Changes, newStartDate)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: failed to update slot: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateSlot: successfully updated slot id=%d", updated.ID)
	return &Response{Slot: updated}, nil
}
