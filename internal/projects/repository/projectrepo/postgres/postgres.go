package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leopold1975/projects_control/internal/pkg/pgtools"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const membersColumn = "COALESCE((SELECT array_agg(pm.user_id ORDER BY pm.user_id) " +
	"FROM project_members pm WHERE pm.project_id = projects.id), '{}') AS member_ids"

var projectColumns = []string{ //nolint:gochecknoglobals
	"id", "name", "description", "customer_id", "manager_id", "status",
	"start_date", "end_date", membersColumn, "created_at", "updated_at",
}

type ProjectsPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) ProjectsPostgresRepo {
	return ProjectsPostgresRepo{
		db: db,
	}
}

func scanProject(row pgx.Row) (models.Project, error) {
	var p models.Project

	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.CustomerID, &p.ManagerID, &p.Status,
		&p.StartDate, &p.EndDate, &p.MemberIDs, &p.CreatedAt, &p.UpdatedAt)

	return p, err //nolint:wrapcheck
}

func mapWriteError(err error) error {
	if pgtools.ErrCode(err) == pgtools.CodeForeignKeyViolation {
		return projectrepo.ErrInvalidRef
	}

	return fmt.Errorf("exec error: %w", err)
}

// releaseAssigneesQuery unassigns the project's tasks whose assignee is neither the manager nor a member.
func releaseAssigneesQuery(projectID int64) squirrel.UpdateBuilder {
	return pgtools.PSQL.Update("tasks").
		Set("assignee_id", squirrel.Expr("NULL")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"project_id": projectID}).
		Where("assignee_id IS NOT NULL").
		Where("assignee_id IS DISTINCT FROM (SELECT p.manager_id FROM projects p WHERE p.id = tasks.project_id)").
		Where("NOT EXISTS (SELECT 1 FROM project_members pm " +
			"WHERE pm.project_id = tasks.project_id AND pm.user_id = tasks.assignee_id)")
}

func releaseAssignees(ctx context.Context, tx pgx.Tx, projectID int64) error {
	query, args, err := releaseAssigneesQuery(projectID).ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("release assignees error: %w", err)
	}

	return nil
}

func (pr ProjectsPostgresRepo) CreateProject(ctx context.Context, p models.Project) (int64, error) {
	var id int64

	err := pgtools.WithTx(ctx, pr.db, "create", func(tx pgx.Tx) error {
		query, args, err := pgtools.PSQL.Insert("projects").
			Columns("name", "description", "customer_id", "manager_id", "status",
				"start_date", "end_date", "created_at", "updated_at").
			Values(p.Name, p.Description, p.CustomerID, p.ManagerID, p.Status,
				p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt).
			Suffix("RETURNING id").ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return mapWriteError(err)
		}

		for _, userID := range p.MemberIDs {
			if err := addMember(ctx, tx, id, userID); err != nil {
				return err
			}
		}

		return nil
	})

	return id, err //nolint:wrapcheck
}

func (pr ProjectsPostgresRepo) GetProject(ctx context.Context, id int64) (models.Project, error) {
	var p models.Project

	err := pgtools.WithTx(ctx, pr.db, "get", func(tx pgx.Tx) error {
		query, args, err := pgtools.PSQL.Select(projectColumns...).
			From("projects").
			Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		p, err = scanProject(tx.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return projectrepo.ErrNotFound
		} else if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		return nil
	})

	return p, err //nolint:wrapcheck
}

func applyProjectFilter(sb squirrel.SelectBuilder, req projectrepo.ListProjectsRequest) squirrel.SelectBuilder {
	if req.CustomerID != nil {
		sb = sb.Where(squirrel.Eq{"customer_id": *req.CustomerID})
	}

	if req.Status != "" {
		sb = sb.Where(squirrel.Eq{"status": req.Status})
	}

	if req.ParticipantID != nil {
		sb = sb.Where(squirrel.Or{
			squirrel.Eq{"manager_id": *req.ParticipantID},
			squirrel.Expr("EXISTS (SELECT 1 FROM project_members pm "+
				"WHERE pm.project_id = projects.id AND pm.user_id = ?)", *req.ParticipantID),
		})
	}

	if req.Search != "" {
		sb = sb.Where(squirrel.Like{"lower(name)": "%" + strings.ToLower(req.Search) + "%"})
	}

	return sb
}

func (pr ProjectsPostgresRepo) ListProjects(ctx context.Context,
	req projectrepo.ListProjectsRequest,
) ([]models.Project, error) {
	projects := make([]models.Project, 0, 10) //nolint:gomnd

	err := pgtools.WithTx(ctx, pr.db, "list", func(tx pgx.Tx) error {
		sb := applyProjectFilter(pgtools.PSQL.Select(projectColumns...).From("projects"), req).
			OrderBy("id ASC")

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
			p, err := scanProject(rows)
			if err != nil {
				return fmt.Errorf("scan error %w", err)
			}

			projects = append(projects, p)
		}

		return rows.Err() //nolint:wrapcheck
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return projects, nil
}

func (pr ProjectsPostgresRepo) CountProjectsByStatus(ctx context.Context,
	req projectrepo.ListProjectsRequest,
) (map[models.ProjectStatus]int, error) {
	counts := make(map[models.ProjectStatus]int)

	err := pgtools.WithTx(ctx, pr.db, "count", func(tx pgx.Tx) error {
		query, args, err := applyProjectFilter(pgtools.PSQL.Select("status", "count(*)").From("projects"), req).
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
				status models.ProjectStatus
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

func (pr ProjectsPostgresRepo) UpdateProject(ctx context.Context, p models.Project) error {
	return pgtools.WithTx(ctx, pr.db, "update", func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := pgtools.PSQL.Update("projects").
			Set("name", p.Name).
			Set("description", p.Description).
			Set("customer_id", p.CustomerID).
			Set("manager_id", p.ManagerID).
			Set("status", p.Status).
			Set("start_date", p.StartDate).
			Set("end_date", p.EndDate).
			Set("updated_at", p.UpdatedAt).
			Where(squirrel.Eq{"id": p.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return mapWriteError(err)
		}

		if ct.RowsAffected() == 0 {
			return projectrepo.ErrNotFound
		}

		return releaseAssignees(ctx, tx, p.ID)
	})
}

func (pr ProjectsPostgresRepo) DeleteProject(ctx context.Context, id int64) error {
	return pgtools.WithTx(ctx, pr.db, "delete", func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := pgtools.PSQL.Delete("projects").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("exec error: %w", err)
		}

		if ct.RowsAffected() == 0 {
			return projectrepo.ErrNotFound
		}

		return nil
	})
}

func addMember(ctx context.Context, tx pgx.Tx, projectID, userID int64) error {
	query, args, err := pgtools.PSQL.Insert("project_members").
		Columns("project_id", "user_id").
		Values(projectID, userID).
		Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return mapWriteError(err)
	}

	return nil
}

func (pr ProjectsPostgresRepo) AddMember(ctx context.Context, projectID, userID int64) error {
	return pgtools.WithTx(ctx, pr.db, "add member", func(tx pgx.Tx) error { //nolint:wrapcheck
		return addMember(ctx, tx, projectID, userID)
	})
}

func (pr ProjectsPostgresRepo) RemoveMember(ctx context.Context, projectID, userID int64) error {
	return pgtools.WithTx(ctx, pr.db, "remove member", func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := pgtools.PSQL.Delete("project_members").
			Where(squirrel.Eq{"project_id": projectID, "user_id": userID}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("exec error: %w", err)
		}

		if ct.RowsAffected() == 0 {
			return projectrepo.ErrMemberNotFound
		}

		return releaseAssignees(ctx, tx, projectID)
	})
}
