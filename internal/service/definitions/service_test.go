package definitions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/definitions/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newService() (*Service, *memory.Store) {
	store := memory.NewStore()
	return NewService(store.Definitions(), txmanager.NoopTransactionManager{}, logger.NewNop()), store
}

func validRequest(name string) *models.CreateDefinitionRequest {
	return &models.CreateDefinitionRequest{
		Name:                name,
		Weekdays:            []int{5, 1, 3, 1},
		WindowStart:         types.MustTimeString("09:00"),
		WindowEnd:           types.MustTimeString("12:00"),
		SlotDurationMinutes: 30,
		MaxOccupants:        1,
	}
}

func TestService_Create(t *testing.T) {
	svc, _ := newService()

	got, err := svc.Create(context.Background(), validRequest("Consultation"))

	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.Equal(t, []int{1, 3, 5}, got.Weekdays)
	assert.Equal(t, 6, got.SlotsPerDay)
	assert.True(t, got.IsActive)
}

func TestService_Create_ReportsEveryViolation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), &models.CreateDefinitionRequest{
		Name:                " ",
		WindowStart:         types.MustTimeString("12:00"),
		WindowEnd:           types.MustTimeString("12:00"),
		SlotDurationMinutes: 0,
		MaxOccupants:        0,
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"name", "weekdays", "windowEnd", "slotDurationMinutes", "maxOccupants"}, fields)
}

func TestService_ListActiveIsDerivedFromListAll(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, validRequest("B active"))
	require.NoError(t, err)
	inactive := validRequest("A inactive")
	inactive.IsActive = ptr.Ptr(false)
	_, err = svc.Create(ctx, inactive)
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A inactive", all[0].Name)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "B active", active[0].Name)
}

func TestService_Update(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest("Consultation"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.UpdateDefinitionRequest{
		SlotDurationMinutes: ptr.Ptr(45),
		Weekdays:            &[]int{2},
	})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.SlotDurationMinutes)
	assert.Equal(t, 4, updated.SlotsPerDay)
	assert.Equal(t, []int{2}, updated.Weekdays)
	assert.Equal(t, "Consultation", updated.Name)
}

func TestService_Update_RevalidatesMergedDefinition(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest("Consultation"))
	require.NoError(t, err)

	// Сам по себе патч корректен, но вместе с текущим окном 09:00-12:00 - нет
	_, err = svc.Update(ctx, created.ID, &models.UpdateDefinitionRequest{
		WindowStart: ptr.Ptr(types.MustTimeString("12:30")),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.WindowStart.String())
}

func TestService_Update_ClearsOptionalText(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	req := validRequest("Consultation")
	req.Description = ptr.Ptr("Bring documents")
	req.Location = ptr.Ptr("Room 4")
	created, err := svc.Create(ctx, req)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, &models.UpdateDefinitionRequest{
		Description: ptr.Ptr(""),
		Location:    ptr.Ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)
	assert.Nil(t, updated.Location)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestService_Update_NotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Update(context.Background(), 9, &models.UpdateDefinitionRequest{Name: ptr.Ptr("x")})

	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

// commitFailingTx выполняет fn и имитирует сбой сериализации на commit
type commitFailingTx struct {
	txmanager.NoopTransactionManager
}

func (commitFailingTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("%w: pq: could not serialize access due to concurrent update", txmanager.ErrCommitTx)
}

func TestService_Update_CommitFailureIsInternal(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Definitions(), commitFailingTx{}, logger.NewNop())
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest("Consultation"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, &models.UpdateDefinitionRequest{Name: ptr.Ptr("Renamed")})

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	// ошибки предметной области проходят без переупаковки
	_, err = svc.Update(ctx, 999, &models.UpdateDefinitionRequest{Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrDefinitionNotFound)
	assert.NotErrorIs(t, err, domain.ErrPersistence)
}

func TestService_Delete(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	withSlots, err := svc.Create(ctx, validRequest("With slots"))
	require.NoError(t, err)
	empty, err := svc.Create(ctx, validRequest("Empty"))
	require.NoError(t, err)

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	_, err = store.Slots().Create(ctx, &domain.Slot{
		DefinitionID: withSlots.ID,
		StartAt:      start,
		EndAt:        start.Add(30 * time.Minute),
		Status:       domain.SlotOpen,
		IsActive:     true,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, withSlots.ID)
	assert.ErrorIs(t, err, ErrDefinitionInUse)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, svc.Delete(ctx, empty.ID))
	assert.ErrorIs(t, svc.Delete(ctx, empty.ID), ErrDefinitionNotFound)
}
