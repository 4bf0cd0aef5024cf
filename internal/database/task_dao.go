package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/task-tracker/internal/model"
)

type TaskDAO struct {
	Logger *slog.Logger
	*DB
}

func NewTaskDAO(logger *slog.Logger, db *DB) *TaskDAO {
	return &TaskDAO{
		Logger: logger.With("dao", "task"),
		DB:     db,
	}
}

type InsertTaskDTO struct {
	User        model.UserID
	Name        string
	Category    string
	ScheduledAt time.Time
	Status      model.TaskStatus
}

func (dao *TaskDAO) Insert(ctx context.Context, dto InsertTaskDTO) (model.TaskID, error) {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert("tasks").
		Columns("user_id", "name", "category", "scheduled_at", "status").
		Values(dto.User, dto.Name, dto.Category, dto.ScheduledAt, dto.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}

	logger.Debug("build query", "sql", query)

	var id model.TaskID
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.Scan(&id); err != nil {
		logger.Warn("failed query execute", "error", err)
		return 0, err
	}

	logger.Debug("success query execute", "insertId", id)

	return id, nil
}

func (dao *TaskDAO) Get(ctx context.Context, id model.TaskID) (model.Task, error) {
	logger := dao.Logger.With("query", "get")

	query, args, err := dao.Builder.
		Select("*").
		From("tasks").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Task{}, err
	}

	logger.Debug("build query", "sql", query)

	var task model.Task
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&task); err != nil {
		if IsNoRows(err) {
			return model.Task{}, model.NewError("task", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Task{}, err
	}

	return task, nil
}

type UpdateTaskDTO struct {
	Name        string
	Category    string
	ScheduledAt time.Time
	Status      model.TaskStatus
}

func (dao *TaskDAO) Update(ctx context.Context, id model.TaskID, dto UpdateTaskDTO) error {
	logger := dao.Logger.With("query", "update")

	query, args, err := dao.Builder.
		Update("tasks").
		Set("name", dto.Name).
		Set("category", dto.Category).
		Set("scheduled_at", dto.ScheduledAt).
		Set("status", dto.Status).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return err
	}

	logger.Debug("success query execute", "updateId", id)

	return nil
}

func (dao *TaskDAO) Delete(ctx context.Context, id model.TaskID) error {
	logger := dao.Logger.With("query", "delete")

	query, args, err := dao.Builder.
		Delete("tasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return err
	}

	logger.Debug("success query execute", "deleteId", id)

	return nil
}

// FindAll returns every task, newest scheduled time first.
func (dao *TaskDAO) FindAll(ctx context.Context) ([]model.Task, error) {
	logger := dao.Logger.With("query", "findAll")

	query, args, err := dao.Builder.
		Select("*").
		From("tasks").
		OrderBy("scheduled_at DESC").
		ToSql()
	if err != nil {
		return []model.Task{}, err
	}

	logger.Debug("build query", "sql", query)

	tasks := make([]model.Task, 0)
	if err := dao.SelectContext(ctx, &tasks, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return []model.Task{}, err
	}

	logger.Debug("success query execute", "countTasks", len(tasks))

	return tasks, nil
}

func (dao *TaskDAO) FindByUser(ctx context.Context, user model.UserID) ([]model.Task, error) {
	logger := dao.Logger.With("query", "findByUser")

	query, args, err := dao.Builder.
		Select("*").
		From("tasks").
		Where(squirrel.Eq{"user_id": user}).
		OrderBy("scheduled_at DESC").
		ToSql()
	if err != nil {
		return []model.Task{}, err
	}

	logger.Debug("build query", "sql", query)

	tasks := make([]model.Task, 0)
	if err := dao.SelectContext(ctx, &tasks, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return []model.Task{}, err
	}

	logger.Debug("success query execute", "countTasks", len(tasks), "userId", user)

	return tasks, nil
}

// CountByStatus returns per-status task counts in a single GROUP BY query.
// Statuses with no tasks are absent from the map.
func (dao *TaskDAO) CountByStatus(ctx context.Context) (map[model.TaskStatus]int64, error) {
	logger := dao.Logger.With("query", "countByStatus")

	query, args, err := dao.Builder.
		Select("status", "COUNT(*) AS count").
		From("tasks").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, err
	}

	logger.Debug("build query", "sql", query)

	rows, err := dao.QueryxContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.TaskStatus]int64, len(model.TaskStatuses()))
	for rows.Next() {
		var (
			status model.TaskStatus
			count  int64
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.Debug("success query execute", "countStatuses", len(counts))

	return counts, nil
}
