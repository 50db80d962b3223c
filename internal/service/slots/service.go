package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots/models"
)

// Service сервис для работы со слотами: ручное создание, редактирование,
// смена статуса, удаление и список. Резервирование - в usecase reserve_slot.
type Service struct {
	slotRepo       SlotRepository
	definitionRepo DefinitionRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	definitionRepo DefinitionRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:       slotRepo,
		definitionRepo: definitionRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateSlot создает открытый слот вне генерации.
// Если endAt не указан, он вычисляется из длительности слота в определении.
func (s *Service) CreateSlot(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: definition=%d, startAt=%s", req.DefinitionID, req.StartAt.Format(time.RFC3339))

	if req.DefinitionID <= 0 {
		return nil, domain.NewValidationError("definitionId", "must be positive")
	}

	var result *domain.Slot
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		def, err := s.definitionRepo.GetByID(txCtx, req.DefinitionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("CreateSlot: definition id=%d not found", req.DefinitionID)
				return ErrDefinitionNotFound
			}
			s.logger.Error("CreateSlot: failed to get definition id=%d: %v", req.DefinitionID, err)
			return fmt.Errorf("%w: CreateSlot - get definition: %v", ErrInternal, err)
		}

		slot := &domain.Slot{
			DefinitionID: def.ID,
			Date:         domain.DateOf(req.StartAt),
			StartAt:      req.StartAt,
			Status:       domain.SlotOpen,
			Assignment:   domain.NoAssignment(),
			Note:         req.Note,
			IsActive:     true,
		}
		if req.EndAt != nil {
			slot.EndAt = *req.EndAt
		} else if !req.StartAt.IsZero() {
			slot.EndAt = req.StartAt.Add(time.Duration(def.SlotDurationMinutes) * time.Minute)
		}

		if err := slot.Validate(); err != nil {
			s.logger.Warn("CreateSlot: validation failed: %v", err)
			return err
		}

		created, err := s.slotRepo.Create(txCtx, slot)
		if err != nil {
			s.logger.Error("CreateSlot: repository error: %v", err)
			return fmt.Errorf("%w: CreateSlot - repository error: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("CreateSlot", err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%d", result.ID)
	return models.FromDomain(result), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return models.FromDomain(slot), nil
}

// UpdateSlot обновляет время, заметку и активность слота.
// Итоговый слот проверяется целиком (endAt > startAt).
func (s *Service) UpdateSlot(ctx context.Context, id int64, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("UpdateSlot: updating slot id=%d", id)

	patch := req.ToDomainPatch()

	var result *domain.Slot
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.slotRepo.GetByID(txCtx, id)
		if err != nil {
			return s.mapRepoError("UpdateSlot", id, err)
		}

		if patch.IsEmpty() {
			result = current
			return nil
		}

		merged := patch.Apply(*current)
		if err := merged.Validate(); err != nil {
			s.logger.Warn("UpdateSlot: validation failed for slot id=%d: %v", id, err)
			return err
		}

		updated, err := s.slotRepo.Update(txCtx, id, patch)
		if err != nil {
			return s.mapRepoError("UpdateSlot", id, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, s.mapTxError("UpdateSlot", err)
	}

	return models.FromDomain(result), nil
}

// SetStatus переводит слот в open или closed. Перевод в reserved отклоняется:
// резервирование выполняется только через reserve.
func (s *Service) SetStatus(ctx context.Context, id int64, req *models.SetStatusRequest) (*models.SlotResponse, error) {
	s.logger.Info("SetStatus: slot id=%d, status=%q", id, req.Status)

	tr, err := buildTransition(req.Status, req.Reason)
	if err != nil {
		s.logger.Warn("SetStatus: invalid status for slot id=%d: %v", id, err)
		return nil, err
	}

	slot, err := s.slotRepo.Transition(ctx, id, tr)
	if err != nil {
		return nil, s.mapRepoError("SetStatus", id, err)
	}

	s.logger.Info("SetStatus: slot id=%d is now %s", id, slot.Status)
	return models.FromDomain(slot), nil
}

// SetStatusMany меняет статус набора слотов одним запросом.
// Результат частичный: пропущенные слоты не считаются ошибкой.
func (s *Service) SetStatusMany(ctx context.Context, req *models.SetStatusManyRequest) (*models.SetStatusManyResponse, error) {
	ids := uniqueIDs(req.IDs)
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "at least one id is required")
	}

	tr, err := buildTransition(req.Status, req.Reason)
	if err != nil {
		s.logger.Warn("SetStatusMany: invalid status: %v", err)
		return nil, err
	}

	updated, err := s.slotRepo.TransitionMany(ctx, ids, tr)
	if err != nil {
		s.logger.Error("SetStatusMany: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetStatusMany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetStatusMany: status=%s, updated=%d, skipped=%d", tr.To, len(updated), len(ids)-len(updated))

	return &models.SetStatusManyResponse{
		UpdatedCount: len(updated),
		SkippedCount: len(ids) - len(updated),
		UpdatedIDs:   updated,
	}, nil
}

// Delete удаляет слот в любом статусе
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting slot id=%d", id)

	if err := s.slotRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}
	return nil
}

// DeleteMany удаляет слоты; несуществующие ID не считаются ошибкой
func (s *Service) DeleteMany(ctx context.Context, req *models.DeleteSlotsRequest) (*models.DeleteSlotsResponse, error) {
	ids := uniqueIDs(req.IDs)
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "at least one id is required")
	}

	deleted, err := s.slotRepo.DeleteMany(ctx, ids)
	if err != nil {
		s.logger.Error("DeleteMany: repository error: %v", err)
		return nil, fmt.Errorf("%w: DeleteMany - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteMany: requested=%d, deleted=%d", len(ids), deleted)
	return &models.DeleteSlotsResponse{DeletedCount: deleted}, nil
}

// List возвращает страницу слотов по фильтру
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	page := req.Page.Normalize()

	// подсчет и выборка страницы в одной транзакции
	var result domain.SlotPage
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.slotRepo.List(txCtx, req.Filter, page)
		return err
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return &models.SlotListResponse{
		Items:      models.FromDomainList(result.Items),
		TotalCount: result.TotalCount,
		Page:       page.Number,
		PageSize:   page.Size,
	}, nil
}

// mapTxError переводит ошибки begin/commit в класс внутренних ошибок
func (s *Service) mapTxError(op string, err error) error {
	if domain.IsClassified(err) {
		return err
	}
	s.logger.Error("%s: transaction error: %v", op, err)
	return fmt.Errorf("%w: %s - transaction error: %v", ErrInternal, op, err)
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Warn("%s: slot id=%d not found", op, id)
		return ErrSlotNotFound
	case errors.Is(err, domain.ErrConflict):
		s.logger.Warn("%s: slot id=%d status conflict", op, id)
		return ErrStatusConflict
	case errors.Is(err, domain.ErrValidation):
		return err
	default:
		s.logger.Error("%s: repository error for slot id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func buildTransition(status string, reason *string) (domain.StatusTransition, error) {
	target, err := domain.ParseSlotStatus(status)
	if err != nil {
		return domain.StatusTransition{}, domain.NewValidationError("status", "must be one of open, closed")
	}
	if reason != nil && len(*reason) > domain.MaxReasonLength {
		return domain.StatusTransition{}, domain.NewValidationError("reason", "is too long")
	}
	return domain.TransitionTo(target, reason)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
