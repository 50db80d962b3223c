package definitions

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
)

// Service сервис для работы с определениями записи.
// Репозиторий - единственный источник правды; список активных
// определений вычисляется из полного списка.
type Service struct {
	definitionRepo DefinitionRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса определений
func NewService(
	definitionRepo DefinitionRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		definitionRepo: definitionRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Create создает определение; все нарушенные поля возвращаются в одной ValidationError
func (s *Service) Create(ctx context.Context, req *models.CreateDefinitionRequest) (*models.DefinitionResponse, error) {
	s.logger.Info("Create: creating definition name=%q", req.Name)

	def := req.ToDomain()
	if err := def.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.definitionRepo.Create(ctx, def)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created definition id=%d", created.ID)
	return models.FromDomain(created), nil
}

// GetByID получает определение по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.DefinitionResponse, error) {
	def, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomain(def), nil
}

// ListAll возвращает все определения, включая неактивные
func (s *Service) ListAll(ctx context.Context) ([]*models.DefinitionResponse, error) {
	defs, err := s.definitionRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListAll - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainList(defs), nil
}

// ListActive возвращает только активные определения
func (s *Service) ListActive(ctx context.Context) ([]*models.DefinitionResponse, error) {
	defs, err := s.definitionRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	active := make([]*domain.AppointmentDefinition, 0, len(defs))
	for _, def := range defs {
		if def.IsActive {
			active = append(active, def)
		}
	}
	return models.FromDomainList(active), nil
}

// Update применяет частичное обновление и заново валидирует определение целиком.
// Уже созданные слоты не меняются.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateDefinitionRequest) (*models.DefinitionResponse, error) {
	s.logger.Info("Update: updating definition id=%d", id)

	var result *domain.AppointmentDefinition
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := s.get(txCtx, "Update", id)
		if err != nil {
			return err
		}

		updated := req.ToDomainPatch().Apply(*current)
		if err := updated.Validate(); err != nil {
			s.logger.Warn("Update: validation failed for definition id=%d: %v", id, err)
			return err
		}

		saved, err := s.definitionRepo.Update(txCtx, &updated)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ErrDefinitionNotFound
			}
			s.logger.Error("Update: repository error for definition id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})
	if err != nil {
		if !domain.IsClassified(err) {
			s.logger.Error("Update: transaction error for definition id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Update - transaction error: %v", ErrInternal, err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated definition id=%d", id)
	return models.FromDomain(result), nil
}

// Delete удаляет определение без слотов
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting definition id=%d", id)

	err := s.definitionRepo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logger.Warn("Delete: definition id=%d not found", id)
			return ErrDefinitionNotFound
		case errors.Is(err, domain.ErrConflict):
			s.logger.Warn("Delete: definition id=%d still has slots", id)
			return ErrDefinitionInUse
		default:
			s.logger.Error("Delete: repository error for definition id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: successfully deleted definition id=%d", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.AppointmentDefinition, error) {
	def, err := s.definitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("%s: definition id=%d not found", op, id)
			return nil, ErrDefinitionNotFound
		}
		s.logger.Error("%s: repository error for definition id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return def, nil
}
