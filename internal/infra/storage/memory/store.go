// Package memory хранит определения и слоты в памяти процесса.
// Используется драйвером database.driver = "memory" и в тестах сервисов.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/domain/slotquery"
)

// Store общее состояние обоих репозиториев. Один мьютекс защищает и слоты,
// и определения, чтобы проверка ссылок при удалении была согласованной.
type Store struct {
	mu sync.RWMutex

	definitions map[int64]domain.AppointmentDefinition
	slots       map[int64]domain.Slot

	nextDefinitionID int64
	nextSlotID       int64

	now func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		definitions: make(map[int64]domain.AppointmentDefinition),
		slots:       make(map[int64]domain.Slot),
		now:         time.Now,
	}
}

// Definitions возвращает репозиторий определений поверх хранилища
func (s *Store) Definitions() *DefinitionRepository {
	return &DefinitionRepository{store: s}
}

// Slots возвращает репозиторий слотов поверх хранилища
func (s *Store) Slots() *SlotRepository {
	return &SlotRepository{store: s}
}

// DefinitionRepository репозиторий определений в памяти
type DefinitionRepository struct {
	store *Store
}

// Create создает новое определение
func (r *DefinitionRepository) Create(_ context.Context, def *domain.AppointmentDefinition) (*domain.AppointmentDefinition, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDefinitionID++
	now := s.now()

	stored := *def
	stored.ID = s.nextDefinitionID
	stored.Weekdays = append(domain.Weekdays(nil), def.Weekdays...)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.definitions[stored.ID] = stored

	out := stored
	return &out, nil
}

// GetByID получает определение по ID
func (r *DefinitionRepository) GetByID(_ context.Context, id int64) (*domain.AppointmentDefinition, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.definitions[id]
	if !ok {
		return nil, ErrDefinitionNotFound
	}
	return &def, nil
}

// ListAll возвращает все определения, отсортированные по имени
func (r *DefinitionRepository) ListAll(_ context.Context) ([]*domain.AppointmentDefinition, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]*domain.AppointmentDefinition, 0, len(s.definitions))
	for _, def := range s.definitions {
		d := def
		defs = append(defs, &d)
	}

	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Name != defs[j].Name {
			return defs[i].Name < defs[j].Name
		}
		return defs[i].ID < defs[j].ID
	})

	return defs, nil
}

// Update перезаписывает определение целиком
func (r *DefinitionRepository) Update(_ context.Context, def *domain.AppointmentDefinition) (*domain.AppointmentDefinition, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.definitions[def.ID]
	if !ok {
		return nil, ErrDefinitionNotFound
	}

	stored := *def
	stored.Weekdays = append(domain.Weekdays(nil), def.Weekdays...)
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = s.now()
	s.definitions[def.ID] = stored

	out := stored
	return &out, nil
}

// Delete удаляет определение, если на него не ссылается ни один слот
func (r *DefinitionRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.definitions[id]; !ok {
		return ErrDefinitionNotFound
	}
	for _, slot := range s.slots {
		if slot.DefinitionID == id {
			return ErrDefinitionInUse
		}
	}

	delete(s.definitions, id)
	return nil
}

// SlotRepository репозиторий слотов в памяти
type SlotRepository struct {
	store *Store
}

// Create создает один слот
func (r *SlotRepository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	created, err := r.CreateBatch(ctx, []*domain.Slot{slot})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateBatch сохраняет слоты целиком или не сохраняет ни одного
func (r *SlotRepository) CreateBatch(_ context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range slots {
		if _, ok := s.definitions[slot.DefinitionID]; !ok {
			return nil, ErrUnknownDefinition
		}
	}

	now := s.now()
	out := make([]*domain.Slot, 0, len(slots))
	for _, slot := range slots {
		s.nextSlotID++

		stored := *slot
		stored.ID = s.nextSlotID
		if stored.Date.IsZero() {
			stored.Date = domain.DateOf(slot.StartAt)
		}
		stored.CreatedAt = now
		stored.UpdatedAt = now
		s.slots[stored.ID] = stored

		created := stored
		out = append(out, &created)
	}

	return out, nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return &slot, nil
}

// Update применяет патч к редактируемым полям слота
func (r *SlotRepository) Update(_ context.Context, id int64, patch domain.SlotPatch) (*domain.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}

	updated := patch.Apply(slot)
	updated.UpdatedAt = s.now()
	s.slots[id] = updated

	return &updated, nil
}

// Transition переводит слот в новый статус, если текущий статус это допускает.
// Проверка и запись выполняются под одной блокировкой.
func (r *SlotRepository) Transition(_ context.Context, id int64, tr domain.StatusTransition) (*domain.Slot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[id]
	if !ok {
		return nil, ErrSlotNotFound
	}
	if !canApply(slot, tr) {
		return nil, ErrStatusConflict
	}

	updated := s.apply(slot, tr)
	return &updated, nil
}

// TransitionMany применяет переход к набору слотов и возвращает ID обновлённых
func (r *SlotRepository) TransitionMany(_ context.Context, ids []int64, tr domain.StatusTransition) ([]int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]int64, 0, len(ids))
	for _, id := range ids {
		slot, ok := s.slots[id]
		if !ok || !canApply(slot, tr) {
			continue
		}
		s.apply(slot, tr)
		updated = append(updated, id)
	}

	return updated, nil
}

// Delete удаляет слот
func (r *SlotRepository) Delete(_ context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[id]; !ok {
		return ErrSlotNotFound
	}
	delete(s.slots, id)
	return nil
}

// DeleteMany удаляет слоты по списку ID и возвращает число удалённых
func (r *SlotRepository) DeleteMany(_ context.Context, ids []int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, id := range ids {
		if _, ok := s.slots[id]; ok {
			delete(s.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

// List возвращает страницу слотов по фильтру
func (r *SlotRepository) List(_ context.Context, filter domain.SlotFilter, page domain.Page) (domain.SlotPage, error) {
	s := r.store
	s.mu.RLock()
	all := make([]*domain.Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		sl := slot
		all = append(all, &sl)
	}
	s.mu.RUnlock()

	return slotquery.Paginate(slotquery.Filter(all, filter), page), nil
}

// CountByDefinition возвращает число слотов определения
func (r *SlotRepository) CountByDefinition(_ context.Context, definitionID int64) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, slot := range s.slots {
		if slot.DefinitionID == definitionID {
			count++
		}
	}
	return count, nil
}

func canApply(slot domain.Slot, tr domain.StatusTransition) bool {
	if !tr.Allows(slot.Status) {
		return false
	}
	if tr.To == domain.SlotReserved && !slot.Assignment.IsNone() {
		return false
	}
	return true
}

// apply вызывается под блокировкой записи
func (s *Store) apply(slot domain.Slot, tr domain.StatusTransition) domain.Slot {
	slot.Status = tr.To
	slot.Assignment = tr.Assignment
	slot.CloseReason = tr.Reason
	if tr.Note != nil {
		slot.Note = *tr.Note
	}
	slot.UpdatedAt = s.now()

	s.slots[slot.ID] = slot
	return slot
}
