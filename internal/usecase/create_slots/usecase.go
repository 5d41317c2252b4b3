package create_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	hospitalClient "github.com/m04kA/MedDir-SlotService/internal/integrations/hospitalservice"
	staffClient "github.com/m04kA/MedDir-SlotService/internal/integrations/staffservice"
)

// Сообщения, попадающие в пер-дневные ошибки ответа
// Формат "Monday: ..." унаследован от исходного API
const (
	reasonConflict = "time slot conflicts with an existing slot"
	reasonStorage  = "failed to create slot"
	reasonDeadline = "request deadline reached before this day was processed"
)

// UseCase use case создания слотов расписания
// Один запрос порождает по слоту на каждый выбранный день недели;
// дни обрабатываются независимо, каждый в собственной сериализуемой
// транзакции, и отказ одного дня не прерывает остальные
type UseCase struct {
	slotRepo       SlotRepository
	staffClient    StaffServiceClient
	hospitalClient HospitalServiceClient
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	staffClient StaffServiceClient,
	hospitalClient HospitalServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:       slotRepo,
		staffClient:    staffClient,
		hospitalClient: hospitalClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет создание слотов
// Классификация результата:
//   - все дни успешны: Response без ошибок, err == nil
//   - часть дней успешна: Response с PartialSuccess=true, err == nil
//   - все дни отказали: Response с ошибками и err == ErrAllDaysFailed;
//     слоты при этом не созданы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlots: doctor=%d, hospital=%d, type=%s, days=%v, window=%s-%s, baseDate=%s",
		req.DoctorID, req.HospitalID, req.Type, req.DaysOfWeek,
		req.StartTime, req.EndTime, req.StartDate.Format(domain.DateFormat))

	// 1. Валидация входных данных (до любых обращений к хранилищу)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что врач существует
	if _, err := uc.staffClient.GetDoctor(ctx, req.DoctorID); err != nil {
		if errors.Is(err, staffClient.ErrDoctorNotFound) {
			uc.logger.Warn("CreateSlots: doctor id=%d not found", req.DoctorID)
			return nil, ErrDoctorNotFound
		}
		uc.logger.Error("CreateSlots: failed to get doctor id=%d: %v", req.DoctorID, err)
		return nil, fmt.Errorf("%w: failed to get doctor: %v", ErrInternal, err)
	}

	// 3. Проверяем, что больница существует
	if _, err := uc.hospitalClient.GetHospital(ctx, req.HospitalID); err != nil {
		if errors.Is(err, hospitalClient.ErrHospitalNotFound) {
			uc.logger.Warn("CreateSlots: hospital id=%d not found", req.HospitalID)
			return nil, ErrHospitalNotFound
		}
		uc.logger.Error("CreateSlots: failed to get hospital id=%d: %v", req.HospitalID, err)
		return nil, fmt.Errorf("%w: failed to get hospital: %v", ErrInternal, err)
	}

	schedule := req.Schedule
	if schedule == "" {
		schedule = domain.ScheduleWeekly
	}

	resp := &Response{
		Created: make([]*domain.DoctorSlot, 0, len(req.DaysOfWeek)),
		Errors:  make([]DayError, 0),
	}

	// 4. Обрабатываем каждый день независимо
	// Междневных транзакций нет намеренно: вызывающая сторона должна
	// узнать, какие именно дни создались, а какие - нет
	for _, day := range normalizeDays(req.DaysOfWeek) {
		// Дедлайн запроса: необработанные дни фиксируем как ошибки,
		// а не пропускаем молча
		if ctx.Err() != nil {
			uc.logger.Warn("CreateSlots: context done before day=%d: %v", day, ctx.Err())
			resp.Errors = append(resp.Errors, DayError{
				DayOfWeek: day,
				DayName:   domain.DayName(day),
				Reason:    reasonDeadline,
			})
			continue
		}

		created, err := uc.createForDay(ctx, req, day, schedule)
		if err != nil {
			reason := reasonStorage
			if errors.Is(err, ErrSlotConflict) {
				reason = reasonConflict
			}
			uc.logger.Warn("CreateSlots: day=%s failed: %v", domain.DayName(day), err)
			resp.Errors = append(resp.Errors, DayError{
				DayOfWeek: day,
				DayName:   domain.DayName(day),
				Reason:    reason,
			})
			continue
		}

		uc.logger.Info("CreateSlots: created slot id=%d for %s, anchor=%s",
			created.ID, domain.DayName(day), created.StartDate.Format(domain.DateFormat))
		resp.Created = append(resp.Created, created)
	}

	// 5. Классифицируем агрегированный результат
	if len(resp.Created) == 0 {
		uc.logger.Warn("CreateSlots: all %d days failed for doctor=%d", len(resp.Errors), req.DoctorID)
		return resp, ErrAllDaysFailed
	}

	resp.PartialSuccess = len(resp.Errors) > 0

	uc.logger.Info("CreateSlots: created %d slot(s), %d error(s) for doctor=%d",
		len(resp.Created), len(resp.Errors), req.DoctorID)
	return resp, nil
}

// createForDay создает слот для одного дня недели
// Чтение существующих слотов (FOR UPDATE) и запись выполняются в одной
// сериализуемой транзакции: конкурентные запросы с пересекающимися
// окнами не могут оба пройти проверку конфликтов
func (uc *UseCase) createForDay(ctx context.Context, req *Request, day int, schedule domain.ScheduleType) (*domain.DoctorSlot, error) {
	// Якорная дата: ближайшая дата >= базовой с нужным днём недели
	anchor := domain.AnchorDate(req.StartDate, day)

	var created *domain.DoctorSlot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Действующие слоты врача в этой больнице на этот день
		existing, err := uc.slotRepo.ListActive(txCtx, req.DoctorID, req.HospitalID, day)
		if err != nil {
			return fmt.Errorf("%w: failed to list active slots: %v", ErrInternal, err)
		}

		candidate := domain.SlotCandidate{
			DoctorID:   req.DoctorID,
			HospitalID: req.HospitalID,
			DayOfWeek:  day,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			AnchorDate: anchor,
		}

		if conflict := domain.FindConflict(candidate, existing); conflict != nil {
			return fmt.Errorf("%w: %s %s-%s overlaps slot id=%d (%s-%s)",
				ErrSlotConflict, domain.DayName(day), req.StartTime, req.EndTime,
				conflict.ID, conflict.StartTime, conflict.EndTime)
		}

		slot := &domain.DoctorSlot{
			DoctorID:    req.DoctorID,
			HospitalID:  req.HospitalID,
			Type:        req.Type,
			Description: req.Description,
			DayOfWeek:   day,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			StartDate:   anchor,
			Schedule:    schedule,
			IsActive:    true,
		}

		created, err = uc.slotRepo.Create(txCtx, slot)
		if err != nil {
			return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return created, nil
}
