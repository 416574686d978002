package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/projects_control/internal/pkg/pgtools"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/parameterrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var parameterColumns = []string{ //nolint:gochecknoglobals
	"id", "key", "value", "description", "valid_from", "valid_to", "created_at", "updated_at",
}

type ParametersPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) ParametersPostgresRepo {
	return ParametersPostgresRepo{
		db: db,
	}
}

func scanParameter(row pgx.Row) (models.Parameter, error) {
	var p models.Parameter

	err := row.Scan(&p.ID, &p.Key, &p.Value, &p.Description, &p.ValidFrom, &p.ValidTo, &p.CreatedAt, &p.UpdatedAt)

	return p, err //nolint:wrapcheck
}

func mapWriteError(err error) error {
	if pgtools.ErrCode(err) == pgtools.CodeExclusionViolation {
		return parameterrepo.ErrOverlap
	}

	return fmt.Errorf("exec error: %w", err)
}

func (pr ParametersPostgresRepo) CreateParameter(ctx context.Context, p models.Parameter) (int64, error) {
	var id int64

	err := pgtools.WithTx(ctx, pr.db, "create", func(tx pgx.Tx) error {
		query, args, err := pgtools.PSQL.Insert("parameters").
			Columns("key", "value", "description", "valid_from", "valid_to", "created_at", "updated_at").
			Values(p.Key, p.Value, p.Description, p.ValidFrom, p.ValidTo, p.CreatedAt, p.UpdatedAt).
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

func (pr ParametersPostgresRepo) getBy(ctx context.Context, sb squirrel.SelectBuilder) (models.Parameter, error) {
	var p models.Parameter

	err := pgtools.WithTx(ctx, pr.db, "get", func(tx pgx.Tx) error {
		query, args, err := sb.ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		p, err = scanParameter(tx.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return parameterrepo.ErrNotFound
		} else if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		return nil
	})

	return p, err //nolint:wrapcheck
}

func (pr ParametersPostgresRepo) GetParameter(ctx context.Context, id int64) (models.Parameter, error) {
	return pr.getBy(ctx, pgtools.PSQL.Select(parameterColumns...).
		From("parameters").
		Where(squirrel.Eq{"id": id}))
}

func (pr ParametersPostgresRepo) ListParameters(ctx context.Context,
	req parameterrepo.ListParametersRequest,
) ([]models.Parameter, error) {
	params := make([]models.Parameter, 0, 10) //nolint:gomnd

	err := pgtools.WithTx(ctx, pr.db, "list", func(tx pgx.Tx) error {
		sb := pgtools.PSQL.Select(parameterColumns...).From("parameters")

		if req.Key != "" {
			sb = sb.Where(squirrel.Eq{"key": req.Key})
		}

		if req.ValidAt != nil {
			sb = sb.Where(squirrel.LtOrEq{"valid_from": *req.ValidAt}).
				Where(squirrel.Or{
					squirrel.Eq{"valid_to": nil},
					squirrel.Gt{"valid_to": *req.ValidAt},
				})
		}

		sb = sb.OrderBy("key ASC", "valid_from ASC")

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
			p, err := scanParameter(rows)
			if err != nil {
				return fmt.Errorf("scan error %w", err)
			}

			params = append(params, p)
		}

		return rows.Err() //nolint:wrapcheck
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return params, nil
}

func (pr ParametersPostgresRepo) UpdateParameter(ctx context.Context, p models.Parameter) error {
	return pgtools.WithTx(ctx, pr.db, "update", func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := pgtools.PSQL.Update("parameters").
			Set("key", p.Key).
			Set("value", p.Value).
			Set("description", p.Description).
			Set("valid_from", p.ValidFrom).
			Set("valid_to", p.ValidTo).
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
			return parameterrepo.ErrNotFound
		}

		return nil
	})
}

func (pr ParametersPostgresRepo) DeleteParameter(ctx context.Context, id int64) error {
	return pgtools.WithTx(ctx, pr.db, "delete", func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := pgtools.PSQL.Delete("parameters").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("exec error: %w", err)
		}

		if ct.RowsAffected() == 0 {
			return parameterrepo.ErrNotFound
		}

		return nil
	})
}
