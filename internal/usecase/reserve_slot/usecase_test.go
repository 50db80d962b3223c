package reserve_slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type outcomes struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *outcomes) RecordReservation(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[outcome]++
}

type failingRepo struct{}

func (failingRepo) Transition(context.Context, int64, domain.StatusTransition) (*domain.Slot, error) {
	return nil, errors.New("connection reset by peer")
}

func setup(t *testing.T) (*UseCase, *memory.Store, int64, *outcomes) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	def, err := store.Definitions().Create(ctx, &domain.AppointmentDefinition{
		Name:                "Consultation",
		Weekdays:            domain.Weekdays{1},
		WindowStart:         types.MustTimeString("09:00"),
		WindowEnd:           types.MustTimeString("10:00"),
		SlotDurationMinutes: 30,
		MaxOccupants:        1,
		IsActive:            true,
	})
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	slot, err := store.Slots().Create(ctx, &domain.Slot{
		DefinitionID: def.ID,
		StartAt:      start,
		EndAt:        start.Add(30 * time.Minute),
		Status:       domain.SlotOpen,
		IsActive:     true,
	})
	require.NoError(t, err)

	m := &outcomes{}
	return NewUseCase(store.Slots(), m, logger.NewNop()), store, slot.ID, m
}

func TestExecute_ReservesForPerson(t *testing.T) {
	uc, _, slotID, m := setup(t)

	slot, err := uc.Execute(context.Background(), &Request{SlotID: slotID, PersonID: ptr.Ptr(int64(42)), Notes: ptr.Ptr("first visit")})

	require.NoError(t, err)
	assert.Equal(t, domain.SlotReserved, slot.Status)
	assert.Equal(t, domain.AssignmentPerson, slot.Assignment.Kind())
	assert.Equal(t, int64(42), slot.Assignment.ID())
	assert.Equal(t, "first visit", slot.Note)
	assert.Equal(t, 1, m.counts[metrics.ReservationSucceeded])
}

func TestExecute_ReservesForCounterparty(t *testing.T) {
	uc, _, slotID, _ := setup(t)

	slot, err := uc.Execute(context.Background(), &Request{SlotID: slotID, CounterpartyID: ptr.Ptr(int64(5))})

	require.NoError(t, err)
	assert.Equal(t, domain.AssignmentCounterparty, slot.Assignment.Kind())
	assert.Nil(t, slot.Assignment.PersonID())
}

func TestExecute_RequiresExactlyOneAssignee(t *testing.T) {
	uc, _, slotID, m := setup(t)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "none", req: &Request{SlotID: slotID}},
		{name: "both", req: &Request{SlotID: slotID, PersonID: ptr.Ptr(int64(1)), CounterpartyID: ptr.Ptr(int64(2))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "assignment", verr.Violations[0].Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Equal(t, 2, m.counts[metrics.ReservationFailed])
}

func TestExecute_SecondReservationConflicts(t *testing.T) {
	uc, _, slotID, m := setup(t)

	_, err := uc.Execute(context.Background(), &Request{SlotID: slotID, PersonID: ptr.Ptr(int64(1))})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{SlotID: slotID, PersonID: ptr.Ptr(int64(2))})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, m.counts[metrics.ReservationConflict])
}

func TestExecute_ClosedSlotConflicts(t *testing.T) {
	uc, store, slotID, _ := setup(t)

	closeTr, err := domain.TransitionTo(domain.SlotClosed, nil)
	require.NoError(t, err)
	_, err = store.Slots().Transition(context.Background(), slotID, closeTr)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{SlotID: slotID, PersonID: ptr.Ptr(int64(1))})

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_ConcurrentCallsHaveOneWinner(t *testing.T) {
	uc, _, slotID, m := setup(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{SlotID: slotID, PersonID: ptr.Ptr(int64(i + 1))})
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrConflict):
			conflicted++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Equal(t, 1, m.counts[metrics.ReservationSucceeded])
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{SlotID: 404, PersonID: ptr.Ptr(int64(1))})

	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_StorageFailure(t *testing.T) {
	uc := NewUseCase(failingRepo{}, metrics.Noop{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{SlotID: 1, PersonID: ptr.Ptr(int64(1))})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
