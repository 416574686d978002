package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/projects_control/internal/pkg/pgtools"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/taskrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var taskColumns = []string{ //nolint:gochecknoglobals
	"id", "project_id", "title", "description", "status", "priority", "assignee_id",
	"creator_id", "due_date", "estimated_hours", "completed_at", "created_at", "updated_at",
}

type TasksPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) TasksPostgresRepo {
	return TasksPostgresRepo{
		db: db,
	}
}

func scanTask(row pgx.Row) (models.Task, error) {
	var t models.Task

	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.AssigneeID,
		&t.CreatorID, &t.DueDate, &t.EstimatedHours, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)

	return t, err //nolint:wrapcheck
}

func mapWriteError(err error) error {
	if pgtools.ErrCode(err) == pgtools.CodeForeignKeyViolation {
		return taskrepo.ErrInvalidRef
	}

	return fmt.Errorf("exec error: %w", err)
}

func (tr TasksPostgresRepo) CreateTask(ctx context.Context, t models.Task) (int64, error) {
	var id int64

	err := pgtools.WithTx(ctx, tr.db, "create", func(tx pgx.Tx) error {
		query, args, err := pgtools.PSQL.Insert("tasks").
			Columns("project_id", "title", "description", "status", "priority", "assignee_id",
				"creator_id", "due_date", "estimated_hours", "completed_at", "created_at", "updated_at").
			Values(t.ProjectID, t.Title, t.Description, t.Status, t.Priority, t.AssigneeID,
				t.CreatorID, t.DueDate, t.EstimatedHours, t.CompletedAt, t.CreatedAt, t.UpdatedAt).
			Suffix("RETURNING id").ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return mapWriteError(err)
		}

		return nil
	})

	return id, err //nolint:wrapcheck
}

func (tr TasksPostgresRepo) GetTask(ctx context.Context, id int64) (models.Task, error) {
	var t models.Task

	err := pgtools.WithTx(ctx, tr.db, "get", func(tx pgx.Tx) error {
		query, args, err := pgtools.PSQL.Select(taskColumns...).
			From("tasks").
			Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		t, err = scanTask(tx.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return taskrepo.ErrNotFound
		} else if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		return nil
	})

	return t, err //nolint:wrapcheck
}

func applyTaskFilter(sb squirrel.SelectBuilder, req taskrepo.ListTasksRequest) squirrel.SelectBuilder {
	if req.ProjectID != nil {
		sb = sb.Where(squirrel.Eq{"project_id": *req.ProjectID})
	}

	if req.AssigneeID != nil {
		sb = sb.Where(squirrel.Eq{"assignee_id": *req.AssigneeID})
	}

	if req.Status != "" {
		sb = sb.Where(squirrel.Eq{"status": req.Status})
	}

	if req.Priority != "" {
		sb = sb.Where(squirrel.Eq{"priority": req.Priority})
	}

	if req.VisibleTo != nil {
		sb = sb.Where(squirrel.Or{
			squirrel.Eq{"assignee_id": *req.VisibleTo},
			squirrel.Expr("project_id IN (SELECT p.id FROM projects p WHERE p.manager_id = ? "+
				"UNION SELECT pm.project_id FROM project_members pm WHERE pm.user_id = ?)",
				*req.VisibleTo, *req.VisibleTo),
		})
	}

	if req.CustomerID != nil {
		sb = sb.Where(squirrel.Expr("project_id IN (SELECT p.id FROM projects p WHERE p.customer_id = ?)",
			*req.CustomerID))
	}

	if req.DueBefore != nil {
		sb = sb.Where(squirrel.Lt{"due_date": *req.DueBefore}).
			Where(squirrel.NotEq{"status": models.TaskDone})
	}

	return sb
}

func (tr TasksPostgresRepo) ListTasks(ctx context.Context, req taskrepo.ListTasksRequest) ([]models.Task, error) {
	tasks := make([]models.Task, 0, 10) //nolint:gomnd

	err := pgtools.WithTx(ctx, tr.db, "list", func(tx pgx.Tx) error {
		sb := applyTaskFilter(pgtools.PSQL.Select(taskColumns...).From("tasks"), req).
			OrderBy("due_date ASC NULLS LAST", "id ASC")

		if req.Offset != 0 {
			sb = sb.Offset(uint64(req.Offset))
		}

		if req.Limit != 0 {
			sb = sb.Limit(uint64(req.Limit))
		}

		query, args, err := sb.ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query error: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTask(rows)
			if err != nil {
				return fmt.Errorf("scan error %w", err)
			}

			tasks = append(tasks, t)
		}

		return rows.Err() //nolint:wrapcheck
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return tasks, nil
}

func (tr TasksPostgresRepo) CountTasksByStatus(ctx context.Context,
	req taskrepo.ListTasksRequest,
) (map[models.TaskStatus]int, error) {
	counts := make(map[models.TaskStatus]int)

	err := pgtools.WithTx(ctx, tr.db, "count", func(tx pgx.Tx) error {
		query, args, err := applyTaskFilter(pgtools.PSQL.Select("status", "count(*)").From("tasks"), req).
			GroupBy("status").ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query error: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				status models.TaskStatus
				n      int
			)

			if err := rows.Scan(&status, &n); err != nil {
				return fmt.Errorf("scan error %w", err)
			}

			counts[status] = n
		}

		return rows.Err() //nolint:wrapcheck
	})

	return counts, err //nolint:wrapcheck
}

func (tr TasksPostgresRepo) UpdateTask(ctx context.Context, t models.Task) error {
	return pgtools.WithTx(ctx, tr.db, "update", func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := pgtools.PSQL.Update("tasks").
			Set("title", t.Title).
			Set("description", t.Description).
			Set("status", t.Status).
			Set("priority", t.Priority).
			Set("assignee_id", t.AssigneeID).
			Set("due_date", t.DueDate).
			Set("estimated_hours", t.EstimatedHours).
			Set("completed_at", t.CompletedAt).
			Set("updated_at", t.UpdatedAt).
			Where(squirrel.Eq{"id": t.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return mapWriteError(err)
		}

		if ct.RowsAffected() == 0 {
			return taskrepo.ErrNotFound
		}

		return nil
	})
}

func (tr TasksPostgresRepo) DeleteTask(ctx context.Context, id int64) error {
	return pgtools.WithTx(ctx, tr.db, "delete", func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := pgtools.PSQL.Delete("tasks").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("exec error: %w", err)
		}

		if ct.RowsAffected() == 0 {
			return taskrepo.ErrNotFound
		}

		return nil
	})
}
