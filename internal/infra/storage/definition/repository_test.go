package definition

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(dbmetrics.Wrap(db, nil)), mock
}

var created = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func definitionRow(id int64, name string) *sqlmock.Rows {
	return sqlmock.NewRows(columns).AddRow(
		id,
		name,
		nil,
		[]byte("{1,3,5}"),
		"09:00",
		"12:00",
		30,
		1,
		"Hall A",
		true,
		created,
		created,
	)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)

	def := &domain.AppointmentDefinition{
		Name:                "Consultation",
		Weekdays:            domain.Weekdays{1, 3, 5},
		WindowStart:         types.MustTimeString("09:00"),
		WindowEnd:           types.MustTimeString("12:00"),
		SlotDurationMinutes: 30,
		MaxOccupants:        1,
		IsActive:            true,
	}

	mock.ExpectQuery(`INSERT INTO appointment_definitions \(name,description,weekdays,.*\) VALUES .* RETURNING id, created_at, updated_at`).
		WithArgs("Consultation", nil, pq.Int64Array{1, 3, 5}, "09:00", "12:00", 30, 1, nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(4), created, created))

	got, err := repo.Create(context.Background(), def)

	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT id, name, .* FROM appointment_definitions WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(definitionRow(4, "Consultation"))

	got, err := repo.GetByID(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "Consultation", got.Name)
	assert.Equal(t, domain.Weekdays{1, 3, 5}, got.Weekdays)
	assert.Equal(t, "09:00", got.WindowStart.String())
	assert.Equal(t, 6, got.SlotsPerDay())
	require.NotNil(t, got.Location)
	assert.Equal(t, "Hall A", *got.Location)
	assert.Nil(t, got.Description)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`SELECT .* FROM appointment_definitions`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrDefinitionNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_ListAll(t *testing.T) {
	repo, mock := newRepo(t)

	rows := definitionRow(1, "A").AddRow(
		int64(2), "B", "desc", []byte("{0}"), "22:00", "02:00", 60, 2, nil, false, created, created,
	)
	mock.ExpectQuery(`SELECT .* FROM appointment_definitions ORDER BY name ASC, id ASC`).WillReturnRows(rows)

	got, err := repo.ListAll(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[1].IsActive)
	assert.Equal(t, 4, got[1].SlotsPerDay())
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`UPDATE appointment_definitions SET name = \$1`).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.Update(context.Background(), &domain.AppointmentDefinition{ID: 5, Name: "x"})

	assert.ErrorIs(t, err, ErrDefinitionNotFound)
}

func TestRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM appointment_definitions WHERE id = \$1`).
					WithArgs(int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM appointment_definitions`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: ErrDefinitionNotFound,
		},
		{
			name: "referenced by slots",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM appointment_definitions`).
					WillReturnError(&pq.Error{Code: foreignKeyViolation})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name: "driver failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM appointment_definitions`).
					WillReturnError(assert.AnError)
			},
			wantErr: domain.ErrPersistence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)
			tt.setup(mock)

			err := repo.Delete(context.Background(), 3)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
