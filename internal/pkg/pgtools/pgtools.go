package pgtools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/config"
	"github.com/Leopold1975/projects_control/migrations"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // driver for migrations
	"github.com/pressly/goose/v3"
)

const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeExclusionViolation  = "23P01"
	CodeCheckViolation      = "23514"
)

// PSQL builds statements with $n placeholders.
var PSQL = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar) //nolint:gochecknoglobals

func Connect(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	type result struct {
		db  *pgxpool.Pool
		err error
	}

	resCh := make(chan result, 1)

	go func() {
		defer close(resCh)

		dbc, err := pgxpool.New(ctx, connString)
		if err != nil {
			resCh <- result{err: fmt.Errorf("cannot create db pool error: %w", err)}

			return
		}

		defaultDelay := time.Second

		for {
			if err := dbc.Ping(ctx); err != nil {
				time.Sleep(defaultDelay)
				defaultDelay += time.Second

				if defaultDelay > time.Second*10 {
					dbc.Close()
					resCh <- result{err: fmt.Errorf("cannot ping db error: %w", err)}

					return
				}

				continue
			}

			break
		}

		resCh <- result{db: dbc}
	}()
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context error: %w", ctx.Err())
	case res := <-resCh:
		if res.err != nil {
			return nil, res.err
		}

		return res.db, nil
	}
}

func ApplyMigration(cfg config.PostgresDB) error {
	defaultVersion := 0

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect error: %w", err)
	}

	connString := "postgres://" + cfg.Username + ":" + cfg.Password + "@" +
		cfg.Addr + "/" + cfg.DB + "?sslmode=" + cfg.SSLmode

	dbM, err := goose.OpenDBWithDriver("pgx", connString)
	if err != nil {
		return fmt.Errorf("goose open pgx db error: %w", err)
	}
	defer dbM.Close()

	if cfg.Reload {
		if err := goose.DownTo(dbM, ".", int64(defaultVersion)); err != nil {
			return fmt.Errorf("goose down error: %w", err)
		}
	}

	if cfg.Version == 0 {
		if err := goose.Up(dbM, "."); err != nil {
			return fmt.Errorf("goose up error: %w", err)
		}

		return nil
	}

	if err := goose.UpTo(dbM, ".", int64(cfg.Version)); err != nil {
		return fmt.Errorf("goose up error: %w", err)
	}

	return nil
}

func CommitOrRollback(ctx context.Context, tx pgx.Tx, err error, where string) error {
	if err == nil {
		if errT := tx.Commit(ctx); errT != nil {
			err = fmt.Errorf("commit error: %w", errT)
		}
	} else {
		if errT := tx.Rollback(ctx); errT != nil {
			err = fmt.Errorf("%s error: %w rollback error: %w", where, err, errT)
		} else {
			err = fmt.Errorf("%s error: %w", where, err)
		}
	}

	return err
}

// WithTx runs fn in a transaction committed on success and rolled back on error.
func WithTx(ctx context.Context, db *pgxpool.Pool, where string, fn func(pgx.Tx) error) (err error) { //nolint:nonamedreturns
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("cannot begin transaction error: %w", err)
	}

	defer func() {
		err = CommitOrRollback(ctx, tx, err, where)
	}()

	return fn(tx)
}

func Shutdown(ctx context.Context, db *pgxpool.Pool) error {
	done := make(chan struct{})

	go func() {
		db.Close()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context error: %w", ctx.Err())
	case <-done:
		return nil
	}
}

// ErrCode returns the SQLSTATE of a Postgres error or an empty string.
func ErrCode(err error) string {
	target := new(pgconn.PgError)
	if errors.As(err, &target) {
		return target.Code
	}

	return ""
}
