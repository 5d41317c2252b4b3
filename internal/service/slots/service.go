package slots

import (
	"context"
	"errors"
	"fmt"

	slotRepo "github.com/m04kA/MedDir-SlotService/internal/infra/storage/slot"
	staffClient "github.com/m04kA/MedDir-SlotService/internal/integrations/staffservice"
	"github.com/m04kA/MedDir-SlotService/internal/service/slots/models"
)

// Service сервис для работы со слотами расписания врача
// Отвечает за операции без проверки конфликтов: список и мягкое удаление
type Service struct {
	slotRepo    SlotRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// List получает все активные слоты врача
// Сортировка по (день недели, время начала) выполняется на стороне хранилища
func (s *Service) List(ctx context.Context, doctorID int64) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots for doctor=%d", doctorID)

	// Проверяем, что врач существует в справочнике
	if err := s.checkDoctorExists(ctx, doctorID); err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListByDoctor(ctx, doctorID)
	if err != nil {
		s.logger.Error("List: repository error for doctor=%d: %v", doctorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d slots for doctor=%d", len(slots), doctorID)
	return models.FromDomainSlotList(slots), nil
}

// GetByID получает слот по ID с проверкой принадлежности врачу
func (s *Service) GetByID(ctx context.Context, slotID int64, doctorID int64) (*models.SlotResponse, error) {
	s.logger.Info("GetByID: fetching slot id=%d for doctor=%d", slotID, doctorID)

	slot, err := s.slotRepo.GetOwned(ctx, slotID, doctorID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("GetByID: slot id=%d not found for doctor=%d", slotID, doctorID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// SoftDelete помечает слот неактивным
// Слот никогда не удаляется физически; операция идемпотентна -
// повторное удаление уже неактивного слота завершается успехом
func (s *Service) SoftDelete(ctx context.Context, slotID int64, doctorID int64) error {
	s.logger.Info("SoftDelete: deactivating slot id=%d by doctor=%d", slotID, doctorID)

	// Проверка принадлежности до любых изменений
	// Чужой слот неотличим от несуществующего
	slot, err := s.slotRepo.GetOwned(ctx, slotID, doctorID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SoftDelete: slot id=%d not found for doctor=%d", slotID, doctorID)
			return ErrSlotNotFound
		}
		s.logger.Error("SoftDelete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	// Уже неактивен - no-op успех
	if !slot.IsActive {
		s.logger.Info("SoftDelete: slot id=%d is already inactive", slotID)
		return nil
	}

	if err := s.slotRepo.SetActive(ctx, slotID, false); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SoftDelete: slot id=%d disappeared during deactivation", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("SoftDelete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SoftDelete: successfully deactivated slot id=%d", slotID)
	return nil
}

// checkDoctorExists проверяет наличие врача в справочнике персонала
func (s *Service) checkDoctorExists(ctx context.Context, doctorID int64) error {
	_, err := s.staffClient.GetDoctor(ctx, doctorID)
	if err != nil {
		if errors.Is(err, staffClient.ErrDoctorNotFound) {
			s.logger.Warn("checkDoctorExists: doctor id=%d not found", doctorID)
			return ErrDoctorNotFound
		}
		s.logger.Error("checkDoctorExists: failed to get doctor id=%d: %v", doctorID, err)
		return fmt.Errorf("%w: checkDoctorExists - failed to get doctor: %v", ErrInternal, err)
	}
	return nil
}
