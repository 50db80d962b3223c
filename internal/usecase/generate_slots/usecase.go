package generate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const defaultBatchSize = 500

// Options параметры генерации из секции [scheduling]
type Options struct {
	Location          *time.Location
	MaxGenerationDays int
	InsertBatchSize   int
}

// UseCase use case предпросмотра и сохранения сгенерированных слотов
type UseCase struct {
	definitionRepo DefinitionRepository
	slotRepo       SlotRepository
	generator      *Generator
	metrics        Metrics
	logger         Logger

	maxDays   int
	batchSize int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	definitionRepo DefinitionRepository,
	slotRepo SlotRepository,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	batchSize := opts.InsertBatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &UseCase{
		definitionRepo: definitionRepo,
		slotRepo:       slotRepo,
		generator:      NewGenerator(opts.Location),
		metrics:        metrics,
		logger:         logger,
		maxDays:        opts.MaxGenerationDays,
		batchSize:      batchSize,
	}
}

// Preview считает итоги генерации, ничего не сохраняя
func (uc *UseCase) Preview(ctx context.Context, req *Request) (*Summary, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlotsPreview: validation failed: %v", err)
		return nil, err
	}

	def, err := uc.getDefinition(ctx, req.DefinitionID)
	if err != nil {
		return nil, err
	}

	summary, err := uc.generator.Count(def, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateSlotsPreview: definition=%d, range=%s..%s, days=%d, matching=%d, total=%d",
		def.ID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		summary.TotalDays, summary.MatchingDays, summary.TotalSlots)

	return &summary, nil
}

// Commit генерирует слоты и сохраняет их пачками по batchSize.
// Ошибка пачки не прерывает генерацию: результат содержит и созданные,
// и несохранённые слоты. Ошибка возвращается, только если не создано ничего.
func (uc *UseCase) Commit(ctx context.Context, req *Request) (*CommitResponse, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlotsCommit: validation failed: %v", err)
		return nil, err
	}

	if err := validateRange(req, uc.maxDays); err != nil {
		uc.logger.Warn("GenerateSlotsCommit: range rejected: %v", err)
		return nil, err
	}

	def, err := uc.getDefinition(ctx, req.DefinitionID)
	if err != nil {
		return nil, err
	}

	slots, summary, err := uc.generator.Expand(def, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	uc.logger.Info("GenerateSlotsCommit: batch=%s, definition=%d, range=%s..%s, slots=%d",
		batchID, def.ID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat), len(slots))

	resp := &CommitResponse{
		BatchID: batchID,
		Summary: summary,
		Slots:   make([]*domain.Slot, 0, len(slots)),
	}

	var lastErr error
	for start := 0; start < len(slots); start += uc.batchSize {
		end := start + uc.batchSize
		if end > len(slots) {
			end = len(slots)
		}

		created, err := uc.slotRepo.CreateBatch(ctx, slots[start:end])
		if err != nil {
			uc.logger.Error("GenerateSlotsCommit: batch=%s, chunk %d..%d failed: %v", batchID, start, end, err)
			resp.FailedCount += end - start
			lastErr = err
			continue
		}

		resp.CreatedCount += len(created)
		resp.Slots = append(resp.Slots, created...)
	}

	uc.metrics.RecordSlotsGenerated(resp.CreatedCount)

	if resp.CreatedCount == 0 && resp.FailedCount > 0 {
		return nil, fmt.Errorf("%w: batch %s: %v", ErrNothingCreated, batchID, lastErr)
	}

	uc.logger.Info("GenerateSlotsCommit: batch=%s done, created=%d, failed=%d",
		batchID, resp.CreatedCount, resp.FailedCount)

	return resp, nil
}

func (uc *UseCase) getDefinition(ctx context.Context, id int64) (*domain.AppointmentDefinition, error) {
	def, err := uc.definitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.Warn("GenerateSlots: definition id=%d not found", id)
			return nil, ErrDefinitionNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get definition id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get definition: %v", ErrInternal, err)
	}
	return def, nil
}
