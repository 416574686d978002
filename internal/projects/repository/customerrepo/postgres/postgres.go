package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leopold1975/projects_control/internal/pkg/pgtools"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/customerrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var customerColumns = []string{ //nolint:gochecknoglobals
	"id", "name", "email", "phone", "address", "notes", "created_at", "updated_at",
}

type CustomersPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) CustomersPostgresRepo {
	return CustomersPostgresRepo{
		db: db,
	}
}

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var c models.Customer

	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.Notes, &c.CreatedAt, &c.UpdatedAt)

	return c, err //nolint:wrapcheck
}

func (cr CustomersPostgresRepo) CreateCustomer(ctx context.Context, c models.Customer) (int64, error) {
	var id int64

	err := pgtools.WithTx(ctx, cr.db, "create", func(tx pgx.Tx) error {
		query, args, err := pgtools.PSQL.Insert("customers").
			Columns("name", "email", "phone", "address", "notes", "created_at", "updated_at").
			Values(c.Name, c.Email, c.Phone, c.Address, c.Notes, c.CreatedAt, c.UpdatedAt).
			Suffix("RETURNING id").ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		return nil
	})

	return id, err //nolint:wrapcheck
}

func (cr CustomersPostgresRepo) GetCustomer(ctx context.Context, id int64) (models.Customer, error) {
	var c models.Customer

	err := pgtools.WithTx(ctx, cr.db, "get", func(tx pgx.Tx) error {
		query, args, err := pgtools.PSQL.Select(customerColumns...).
			From("customers").
			Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		c, err = scanCustomer(tx.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			return customerrepo.ErrNotFound
		} else if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}

		return nil
	})

	return c, err //nolint:wrapcheck
}

func applyCustomerFilter(sb squirrel.SelectBuilder, req customerrepo.ListCustomersRequest) squirrel.SelectBuilder {
	if req.ID != nil {
		sb = sb.Where(squirrel.Eq{"id": *req.ID})
	}

	if req.Search != "" {
		pattern := "%" + strings.ToLower(req.Search) + "%"
		sb = sb.Where(squirrel.Or{
			squirrel.Like{"lower(name)": pattern},
			squirrel.Like{"lower(email)": pattern},
		})
	}

	return sb
}

func (cr CustomersPostgresRepo) ListCustomers(ctx context.Context,
	req customerrepo.ListCustomersRequest,
) ([]models.Customer, error) {
	customers := make([]models.Customer, 0, 10) //nolint:gomnd

	err := pgtools.WithTx(ctx, cr.db, "list", func(tx pgx.Tx) error {
		sb := applyCustomerFilter(pgtools.PSQL.Select(customerColumns...).From("customers"), req).
			OrderBy("name ASC", "id ASC")

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
			c, err := scanCustomer(rows)
			if err != nil {
				return fmt.Errorf("scan error %w", err)
			}

			customers = append(customers, c)
		}

		return rows.Err() //nolint:wrapcheck
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return customers, nil
}

func (cr CustomersPostgresRepo) CountCustomers(ctx context.Context, req customerrepo.ListCustomersRequest) (int, error) {
	var n int

	err := pgtools.WithTx(ctx, cr.db, "count", func(tx pgx.Tx) error {
		query, args, err := applyCustomerFilter(pgtools.PSQL.Select("count(*)").From("customers"), req).ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		return tx.QueryRow(ctx, query, args...).Scan(&n) //nolint:wrapcheck
	})

	return n, err //nolint:wrapcheck
}

func (cr CustomersPostgresRepo) exec(ctx context.Context, where string, b squirrel.Sqlizer) error {
	return pgtools.WithTx(ctx, cr.db, where, func(tx pgx.Tx) error { //nolint:wrapcheck
		query, args, err := b.ToSql()
		if err != nil {
			return fmt.Errorf("to sql error: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			if pgtools.ErrCode(err) == pgtools.CodeForeignKeyViolation {
				return customerrepo.ErrInUse
			}

			return fmt.Errorf("exec error: %w", err)
		}

		if ct.RowsAffected() == 0 {
			return customerrepo.ErrNotFound
		}

		return nil
	})
}

func (cr CustomersPostgresRepo) UpdateCustomer(ctx context.Context, c models.Customer) error {
	return cr.exec(ctx, "update", pgtools.PSQL.Update("customers").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone", c.Phone).
		Set("address", c.Address).
		Set("notes", c.Notes).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID}))
}

func (cr CustomersPostgresRepo) DeleteCustomer(ctx context.Context, id int64) error {
	return cr.exec(ctx, "delete", pgtools.PSQL.Delete("customers").
		Where(squirrel.Eq{"id": id}))
}
