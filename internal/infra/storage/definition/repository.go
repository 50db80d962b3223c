package definition

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const (
	table = "appointment_definitions"

	// foreignKeyViolation код ошибки PostgreSQL при нарушении внешнего ключа
	foreignKeyViolation = "23503"
)

var columns = []string{
	"id",
	"name",
	"description",
	"weekdays",
	"window_start",
	"window_end",
	"slot_duration_minutes",
	"max_occupants",
	"location",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с определениями записи
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория определений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое определение
func (r *Repository) Create(ctx context.Context, def *domain.AppointmentDefinition) (*domain.AppointmentDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"description",
			"weekdays",
			"window_start",
			"window_end",
			"slot_duration_minutes",
			"max_occupants",
			"location",
			"is_active",
		).
		Values(
			def.Name,
			def.Description,
			weekdaysArray(def.Weekdays),
			def.WindowStart,
			def.WindowEnd,
			def.SlotDurationMinutes,
			def.MaxOccupants,
			def.Location,
			def.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&def.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	def.CreatedAt = createdAt.Time
	def.UpdatedAt = updatedAt.Time

	return def, nil
}

// GetByID получает определение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	def, err := scanDefinition(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDefinitionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan definition: %v", ErrScanRow, err)
	}

	return def, nil
}

// ListAll получает все определения, включая неактивные
func (r *Repository) ListAll(ctx context.Context) ([]*domain.AppointmentDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	defs := make([]*domain.AppointmentDefinition, 0)
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		defs = append(defs, def)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return defs, nil
}

// Update перезаписывает все редактируемые поля определения
func (r *Repository) Update(ctx context.Context, def *domain.AppointmentDefinition) (*domain.AppointmentDefinition, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", def.Name).
		Set("description", def.Description).
		Set("weekdays", weekdaysArray(def.Weekdays)).
		Set("window_start", def.WindowStart).
		Set("window_end", def.WindowEnd).
		Set("slot_duration_minutes", def.SlotDurationMinutes).
		Set("max_occupants", def.MaxOccupants).
		Set("location", def.Location).
		Set("is_active", def.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": def.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanDefinition(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDefinitionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет определение. Если на него ссылаются слоты (ON DELETE RESTRICT),
// возвращает ErrDefinitionInUse - такие определения отключаются флагом is_active.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return ErrDefinitionInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDefinitionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDefinition(row rowScanner) (*domain.AppointmentDefinition, error) {
	var (
		def                  domain.AppointmentDefinition
		weekdays             pq.Int64Array
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&def.ID,
		&def.Name,
		&def.Description,
		&weekdays,
		&def.WindowStart,
		&def.WindowEnd,
		&def.SlotDurationMinutes,
		&def.MaxOccupants,
		&def.Location,
		&def.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	def.Weekdays = make(domain.Weekdays, len(weekdays))
	for i, d := range weekdays {
		def.Weekdays[i] = int(d)
	}
	def.CreatedAt = createdAt.Time
	def.UpdatedAt = updatedAt.Time

	return &def, nil
}

func weekdaysArray(w domain.Weekdays) pq.Int64Array {
	out := make(pq.Int64Array, len(w))
	for i, d := range w {
		out[i] = int64(d)
	}
	return out
}
