package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/pgtools"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/userrepo"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var userColumns = []string{ //nolint:gochecknoglobals
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"user_role", "customer_id", "is_active", "last_login_at", "created_at", "updated_at",
}

type UsersPostgresRepo struct {
	db *pgxpool.Pool
}

func New(db *pgxpool.Pool) UsersPostgresRepo {
	return UsersPostgresRepo{
		db: db,
	}
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.CustomerID, &u.Active, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)

	return u, err //nolint:wrapcheck
}

func mapWriteError(err error) error {
	if pgtools.ErrCode(err) == pgtools.CodeUniqueViolation {
		return userrepo.ErrAlreadyExists
	}

	return fmt.Errorf("exec error: %w", err)
}

func (ur UsersPostgresRepo) CreateUser(ctx context.Context, u models.User) (id int64, err error) { //nolint:nonamedreturns
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "create")
	}()

	query, args, err := pgtools.PSQL.Insert("users").
		Columns("username", "email", "password_hash", "first_name", "last_name",
			"user_role", "customer_id", "is_active", "created_at", "updated_at").
		Values(u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName,
			u.Role, u.CustomerID, u.Active, u.CreatedAt, u.UpdatedAt).
		Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapWriteError(err)
	}

	return id, nil
}

func (ur UsersPostgresRepo) getBy(ctx context.Context, where squirrel.Sqlizer) (u models.User, err error) { //nolint:nonamedreturns
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return models.User{}, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "get")
	}()

	query, args, err := pgtools.PSQL.Select(userColumns...).
		From("users").
		Where(where).ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("to sql error: %w", err)
	}

	u, err = scanUser(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, userrepo.ErrNotFound
		}

		return models.User{}, fmt.Errorf("scan error: %w", err)
	}

	return u, nil
}

func (ur UsersPostgresRepo) GetUser(ctx context.Context, id int64) (models.User, error) {
	return ur.getBy(ctx, squirrel.Eq{"id": id})
}

func (ur UsersPostgresRepo) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return ur.getBy(ctx, squirrel.Eq{"username": username})
}

func (ur UsersPostgresRepo) ListUsers(ctx context.Context, //nolint:nonamedreturns
	req userrepo.ListUsersRequest,
) (users []models.User, err error) {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "list")
	}()

	sb := pgtools.PSQL.Select(userColumns...).From("users")

	if req.Role != "" {
		sb = sb.Where(squirrel.Eq{"user_role": req.Role})
	}

	if req.Active != nil {
		sb = sb.Where(squirrel.Eq{"is_active": *req.Active})
	}

	if req.CustomerID != nil {
		sb = sb.Where(squirrel.Eq{"customer_id": *req.CustomerID})
	}

	if req.Search != "" {
		pattern := "%" + strings.ToLower(req.Search) + "%"
		sb = sb.Where(squirrel.Or{
			squirrel.Like{"lower(username)": pattern},
			squirrel.Like{"lower(email)": pattern},
			squirrel.Like{"lower(last_name)": pattern},
		})
	}

	sb = sb.OrderBy("id ASC")

	if req.Offset != 0 {
		sb = sb.Offset(uint64(req.Offset))
	}

	if req.Limit != 0 {
		sb = sb.Limit(uint64(req.Limit))
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("to sql error: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	users = make([]models.User, 0, 10) //nolint:gomnd

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error %w", err)
		}

		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return users, nil
}

func (ur UsersPostgresRepo) exec(ctx context.Context, where string, //nolint:nonamedreturns
	b squirrel.Sqlizer,
) (err error) {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, where)
	}()

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("to sql error: %w", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(err)
	}

	if ct.RowsAffected() == 0 {
		return userrepo.ErrNotFound
	}

	return nil
}

func (ur UsersPostgresRepo) UpdateUser(ctx context.Context, u models.User) error {
	return ur.exec(ctx, "update", pgtools.PSQL.Update("users").
		Set("username", u.Username).
		Set("email", u.Email).
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("user_role", u.Role).
		Set("customer_id", u.CustomerID).
		Set("is_active", u.Active).
		Set("updated_at", u.UpdatedAt).
		Where(squirrel.Eq{"id": u.ID}))
}

func (ur UsersPostgresRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return ur.exec(ctx, "update password", pgtools.PSQL.Update("users").
		Set("password_hash", hash).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}))
}

func (ur UsersPostgresRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return ur.exec(ctx, "update last login", pgtools.PSQL.Update("users").
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}))
}

func (ur UsersPostgresRepo) DeleteUser(ctx context.Context, id int64) error {
	return ur.exec(ctx, "delete", pgtools.PSQL.Delete("users").
		Where(squirrel.Eq{"id": id}))
}

func (ur UsersPostgresRepo) CountUsers(ctx context.Context, role models.Role) (n int, err error) { //nolint:nonamedreturns
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = pgtools.CommitOrRollback(ctx, tx, err, "count")
	}()

	sb := pgtools.PSQL.Select("count(*)").From("users")
	if role != "" {
		sb = sb.Where(squirrel.Eq{"user_role": role})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("to sql error: %w", err)
	}

	if err = tx.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}

	return n, nil
}
