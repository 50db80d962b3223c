package slot

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

const table = "appointment_slots"

var columns = []string{
	"id",
	"definition_id",
	"slot_date",
	"start_at",
	"end_at",
	"status",
	"person_id",
	"counterparty_id",
	"note",
	"close_reason",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает один слот
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	created, err := r.CreateBatch(ctx, []*domain.Slot{slot})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// CreateBatch вставляет слоты одним INSERT ... VALUES (...), (...) запросом.
// Порядок возвращённых слотов совпадает с порядком входных.
// Дубликаты по definition/date/time не проверяются.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	if len(slots) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(table).
		Columns(
			"definition_id",
			"slot_date",
			"start_at",
			"end_at",
			"status",
			"person_id",
			"counterparty_id",
			"note",
			"close_reason",
			"is_active",
		)

	for _, s := range slots {
		insert = insert.Values(
			s.DefinitionID,
			s.Date.Format(domain.DateFormat),
			s.StartAt,
			s.EndAt,
			s.Status,
			s.Assignment.PersonID(),
			s.Assignment.CounterpartyID(),
			s.Note,
			s.CloseReason,
			s.IsActive,
		)
	}

	query, args, err := insert.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(slots) {
			return nil, fmt.Errorf("%w: CreateBatch - more rows returned than inserted", ErrScanRow)
		}
		s := slots[i]
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&s.ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returning: %v", ErrScanRow, err)
		}
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}
	if i != len(slots) {
		return nil, fmt.Errorf("%w: CreateBatch - inserted %d of %d rows", ErrScanRow, i, len(slots))
	}

	return slots, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Update обновляет редактируемые поля слота (время, заметка, активность).
// Статус и назначение здесь не меняются - только через Transition.
func (r *Repository) Update(ctx context.Context, id int64, patch domain.SlotPatch) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	update := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.StartAt != nil {
		update = update.
			Set("start_at", *patch.StartAt).
			Set("slot_date", domain.DateOf(*patch.StartAt).Format(domain.DateFormat))
	}
	if patch.EndAt != nil {
		update = update.Set("end_at", *patch.EndAt)
	}
	if patch.Note != nil {
		update = update.Set("note", *patch.Note)
	}
	if patch.IsActive != nil {
		update = update.Set("is_active", *patch.IsActive)
	}

	query, args, err := update.Suffix(returning()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return slot, nil
}

// Transition атомарно переводит слот в новый статус одним условным UPDATE:
//
//	UPDATE appointment_slots SET status = ... WHERE id = $1 AND status IN (...)
//
// Проверка текущего статуса и запись выполняются одной командой, поэтому из двух
// конкурентных резервирований одного открытого слота применится только одно.
// Если ни одна строка не обновлена, отличаем "нет слота" от "статус не подходит".
func (r *Repository) Transition(ctx context.Context, id int64, tr domain.StatusTransition) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := transitionQuery(tr).
		Where(squirrel.Eq{"id": id}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Transition - build update query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return slot, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Transition - execute update: %v", ErrExecQuery, err)
	}

	exists, err := r.exists(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrSlotNotFound
	}
	return nil, ErrStatusConflict
}

// TransitionMany применяет переход к набору слотов и возвращает ID обновлённых.
// Слоты с неподходящим статусом и несуществующие ID пропускаются.
func (r *Repository) TransitionMany(ctx context.Context, ids []int64, tr domain.StatusTransition) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := transitionQuery(tr).
		Where(squirrel.Expr("id = ANY(?)", pq.Int64Array(ids))).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionMany - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionMany - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	updated := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: TransitionMany - scan id: %v", ErrScanRow, err)
		}
		updated = append(updated, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: TransitionMany - rows error: %v", ErrScanRow, err)
	}

	return updated, nil
}

// Delete удаляет слот независимо от статуса
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
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteMany удаляет слоты по списку ID; несуществующие ID игнорируются
func (r *Repository) DeleteMany(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Expr("id = ANY(?)", pq.Int64Array(ids))).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteMany - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// List возвращает страницу слотов по фильтру и общее количество совпадений
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter, page domain.Page) (domain.SlotPage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	page = page.Normalize()

	countQuery, countArgs, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return domain.SlotPage{}, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return domain.SlotPage{}, fmt.Errorf("%w: List - scan count: %v", ErrScanRow, err)
	}

	query, args, err := applyFilter(psqlbuilder.Select(columns...).From(table), filter).
		OrderBy("start_at ASC", "id ASC").
		Limit(uint64(page.Size)).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return domain.SlotPage{}, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.SlotPage{}, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items, err := scanSlots(rows)
	if err != nil {
		return domain.SlotPage{}, err
	}

	return domain.SlotPage{Items: items, TotalCount: total}, nil
}

// CountByDefinition количество слотов, ссылающихся на определение
func (r *Repository) CountByDefinition(ctx context.Context, definitionID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"definition_id": definitionID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByDefinition - build count query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByDefinition - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

func (r *Repository) exists(ctx context.Context, executor DBExecutor, id int64) (bool, error) {
	query, args, err := psqlbuilder.Select("1").
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// transitionQuery строит UPDATE без условия по id
func transitionQuery(tr domain.StatusTransition) squirrel.UpdateBuilder {
	from := make([]string, len(tr.From))
	for i, s := range tr.From {
		from[i] = string(s)
	}

	update := psqlbuilder.Update(table).
		Set("status", tr.To).
		Set("person_id", tr.Assignment.PersonID()).
		Set("counterparty_id", tr.Assignment.CounterpartyID()).
		Set("close_reason", tr.Reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": from})

	if tr.Note != nil {
		update = update.Set("note", *tr.Note)
	}

	// Вместимость слота - одно назначение: резервировать можно только пустой слот
	if tr.To == domain.SlotReserved {
		update = update.Where(squirrel.Eq{"person_id": nil, "counterparty_id": nil})
	}

	return update
}

// applyFilter добавляет условия фильтра к запросу
func applyFilter(b squirrel.SelectBuilder, f domain.SlotFilter) squirrel.SelectBuilder {
	if f.DefinitionID != nil {
		b = b.Where(squirrel.Eq{"definition_id": *f.DefinitionID})
	}
	if f.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*f.Status)})
	}

	// slot_date имеет тип date: сравнение с календарным днём эквивалентно
	// границам 00:00:00 и 23:59:59
	from, to := f.DateBounds()
	if from != nil {
		b = b.Where(squirrel.GtOrEq{"slot_date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		b = b.Where(squirrel.LtOrEq{"slot_date": to.Format(domain.DateFormat)})
	}

	if f.PersonID != nil {
		b = b.Where(squirrel.Eq{"person_id": *f.PersonID})
	}
	if f.CounterpartyID != nil {
		b = b.Where(squirrel.Eq{"counterparty_id": *f.CounterpartyID})
	}
	if f.IsActive != nil {
		b = b.Where(squirrel.Eq{"is_active": *f.IsActive})
	}

	return b
}

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var (
		slot                     domain.Slot
		personID, counterpartyID sql.NullInt64
		closeReason              sql.NullString
		createdAt, updatedAt     sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.DefinitionID,
		&slot.Date,
		&slot.StartAt,
		&slot.EndAt,
		&slot.Status,
		&personID,
		&counterpartyID,
		&slot.Note,
		&closeReason,
		&slot.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Assignment, err = domain.AssignmentFromIDs(nullInt64Ptr(personID), nullInt64Ptr(counterpartyID))
	if err != nil {
		return nil, err
	}
	if closeReason.Valid {
		reason := closeReason.String
		slot.CloseReason = &reason
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
