package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sysu-ecnc-dev/shift-planner/internal/domain"
)

// 数据库中 day_of_week 取值为 1~7，对应 Monday~Sunday
func dayToColumn(day domain.Day) int32 {
	return int32(day) + 1
}

func columnToDay(v int32) (domain.Day, error) {
	day := domain.Day(v - 1)
	if !day.Valid() {
		return 0, fmt.Errorf("无效的 day_of_week: %d", v)
	}
	return day, nil
}

func insertPreferences(ctx context.Context, tx *sql.Tx, worker *domain.Worker) error {
	for _, day := range domain.Days {
		kind, ok := worker.PreferenceOn(day)
		if !ok {
			continue
		}

		query := `
			INSERT INTO worker_preferences (worker_id, day_of_week, shift)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, worker.ID, dayToColumn(day), kind.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) CreateWorker(worker *domain.Worker) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO workers (name)
		VALUES ($1)
		RETURNING id, created_at, version
	`
	if err := tx.QueryRowContext(ctx, query, worker.Name).Scan(&worker.ID, &worker.CreatedAt, &worker.Version); err != nil {
		return err
	}

	if err := insertPreferences(ctx, tx, worker); err != nil {
		return err
	}

	return tx.Commit()
}

// GetAllWorkers 按照员工的创建顺序返回整个名册
func (r *Repository) GetAllWorkers() ([]*domain.Worker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT w.id, w.name, w.created_at, w.version, wp.day_of_week, wp.shift
		FROM workers w
		LEFT JOIN worker_preferences wp ON w.id = wp.worker_id
		ORDER BY w.id, wp.day_of_week
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]*domain.Worker, 0)
	workersMap := make(map[int64]*domain.Worker)

	for rows.Next() {
		var row struct {
			worker    domain.Worker
			dayOfWeek sql.NullInt32
			shift     sql.NullString
		}

		dst := []any{
			&row.worker.ID,
			&row.worker.Name,
			&row.worker.CreatedAt,
			&row.worker.Version,
			&row.dayOfWeek,
			&row.shift,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		worker, exists := workersMap[row.worker.ID]
		if !exists {
			worker = &row.worker
			worker.Preferences = make(map[domain.Day]domain.ShiftKind)
			workersMap[worker.ID] = worker
			workers = append(workers, worker)
		}

		if !row.dayOfWeek.Valid || !row.shift.Valid {
			// 说明这个员工没有任何偏好，这是有可能的
			continue
		}

		if err := addPreference(worker, row.dayOfWeek.Int32, row.shift.String); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

func (r *Repository) GetWorkerByID(id int64) (*domain.Worker, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT name, created_at, version
		FROM workers WHERE id = $1
	`

	worker := &domain.Worker{
		ID:          id,
		Preferences: make(map[domain.Day]domain.ShiftKind),
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&worker.Name, &worker.CreatedAt, &worker.Version); err != nil {
		return nil, err
	}

	query = `
		SELECT day_of_week, shift
		FROM worker_preferences WHERE worker_id = $1
		ORDER BY day_of_week
	`
	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var dayOfWeek int32
		var shift string
		if err := rows.Scan(&dayOfWeek, &shift); err != nil {
			return nil, err
		}
		if err := addPreference(worker, dayOfWeek, shift); err != nil {
			return nil, err
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return worker, nil
}

// UpdateWorker 更新员工的名字并用 worker.Preferences 整体替换原有的偏好
func (r *Repository) UpdateWorker(worker *domain.Worker) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE workers
		SET name = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`
	if err := tx.QueryRowContext(ctx, query, worker.Name, worker.ID, worker.Version).Scan(&worker.Version); err != nil {
		return err
	}

	// 先把原先的偏好删除再插入
	query = `DELETE FROM worker_preferences WHERE worker_id = $1`
	if _, err := tx.ExecContext(ctx, query, worker.ID); err != nil {
		return err
	}

	if err := insertPreferences(ctx, tx, worker); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) DeleteWorker(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM workers WHERE id = $1`
	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func addPreference(worker *domain.Worker, dayOfWeek int32, shift string) error {
	day, err := columnToDay(dayOfWeek)
	if err != nil {
		return err
	}
	kind, err := domain.ParseShiftKind(shift)
	if err != nil {
		return err
	}
	worker.Preferences[day] = kind
	return nil
}
