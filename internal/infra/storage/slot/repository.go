package slot

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MedDir-SlotService/internal/domain"
	"github.com/m04kA/MedDir-SlotService/pkg/dbmetrics"
	"github.com/m04kA/MedDir-SlotService/pkg/psqlbuilder"
)

// slotColumns полный набор колонок таблицы doctor_slots
var slotColumns = []string{
	"id",
	"doctor_id",
	"hospital_id",
	"type",
	"description",
	"day_of_week",
	"start_time",
	"end_time",
	"start_date",
	"schedule",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами расписания врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
// Если в контексте передана активная транзакция (через context.Value), использует её —
// при создании с проверкой конфликтов запись обязана идти в той же транзакции,
// что и чтение существующих слотов
func (r *Repository) Create(ctx context.Context, s *domain.DoctorSlot) (*domain.DoctorSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("doctor_slots").
		Columns(
			"doctor_id",
			"hospital_id",
			"type",
			"description",
			"day_of_week",
			"start_time",
			"end_time",
			"start_date",
			"schedule",
			"is_active",
		).
		Values(
			s.DoctorID,
			s.HospitalID,
			s.Type,
			s.Description,
			s.DayOfWeek,
			s.StartTime,
			s.EndTime,
			s.StartDate,
			s.Schedule,
			s.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.DoctorSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("doctor_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlotRow(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetOwned получает слот по ID с проверкой принадлежности врачу
// Чужой слот неотличим от несуществующего: в обоих случаях ErrSlotNotFound
func (r *Repository) GetOwned(ctx context.Context, id int64, doctorID int64) (*domain.DoctorSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("doctor_slots").
		Where(squirrel.Eq{"id": id, "doctor_id": doctorID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOwned - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlotRow(executor.QueryRowContext(ctx, query, args...), "GetOwned")
}

// ListActive получает активные слоты врача в больнице на день недели
// Используется при проверке конфликтов; внутри транзакции добавляет
// FOR UPDATE, чтобы сериализовать конкурентные check-then-write
func (r *Repository) ListActive(ctx context.Context, doctorID, hospitalID int64, dayOfWeek int) ([]*domain.DoctorSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("doctor_slots").
		Where(squirrel.Eq{
			"doctor_id":   doctorID,
			"hospital_id": hospitalID,
			"day_of_week": dayOfWeek,
			"is_active":   true,
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "ListActive")
}

// ListByDoctor получает все активные слоты врача по всем больницам
// Сортировка: день недели, затем время начала
func (r *Repository) ListByDoctor(ctx context.Context, doctorID int64) ([]*domain.DoctorSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("doctor_slots").
		Where(squirrel.Eq{
			"doctor_id": doctorID,
			"is_active": true,
		}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "ListByDoctor")
}

// Update применяет частичное обновление слота одним UPDATE
// Все изменённые поля записываются атомарно; якорная дата пересчитывается
// вызывающей стороной и передается через startDate (nil - не менять)
func (r *Repository) Update(ctx context.Context, id int64, upd domain.SlotUpdate, startDate *time.Time) (*domain.DoctorSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("doctor_slots").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	changed := false
	if upd.HospitalID != nil {
		updateBuilder = updateBuilder.Set("hospital_id", *upd.HospitalID)
		changed = true
	}
	if upd.Type != nil {
		updateBuilder = updateBuilder.Set("type", *upd.Type)
		changed = true
	}
	if upd.Description != nil {
		updateBuilder = updateBuilder.Set("description", *upd.Description)
		changed = true
	}
	if upd.DayOfWeek != nil {
		updateBuilder = updateBuilder.Set("day_of_week", *upd.DayOfWeek)
		changed = true
	}
	if upd.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *upd.StartTime)
		changed = true
	}
	if upd.EndTime != nil {
		updateBuilder = updateBuilder.Set("end_time", *upd.EndTime)
		changed = true
	}
	if startDate != nil {
		updateBuilder = updateBuilder.Set("start_date", *startDate)
		changed = true
	}

	if !changed {
		return nil, ErrNoFieldsToUpdate
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(slotColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanSlotRow(executor.QueryRowContext(ctx, query, args...), "Update")
}

// SetActive устанавливает флаг активности слота
// Идемпотентна: повторная деактивация уже неактивного слота - не ошибка
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("doctor_slots").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlotRow сканирует одну строку в DoctorSlot
func (r *Repository) scanSlotRow(row *sql.Row, op string) (*domain.DoctorSlot, error) {
	var s domain.DoctorSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.DoctorID,
		&s.HospitalID,
		&s.Type,
		&s.Description,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.StartDate,
		&s.Schedule,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows, op string) ([]*domain.DoctorSlot, error) {
	slots := make([]*domain.DoctorSlot, 0)

	for rows.Next() {
		var s domain.DoctorSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.DoctorID,
			&s.HospitalID,
			&s.Type,
			&s.Description,
			&s.DayOfWeek,
			&s.StartTime,
			&s.EndTime,
			&s.StartDate,
			&s.Schedule,
			&s.IsActive,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}
