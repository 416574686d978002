package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/config"
	"github.com/Leopold1975/projects_control/internal/pkg/pgtools"
	"github.com/Leopold1975/projects_control/internal/pkg/redistools"
	"github.com/Leopold1975/projects_control/internal/projects/api/server"
	cr "github.com/Leopold1975/projects_control/internal/projects/repository/customerrepo/postgres"
	pc "github.com/Leopold1975/projects_control/internal/projects/repository/parametercache/redis"
	parr "github.com/Leopold1975/projects_control/internal/projects/repository/parameterrepo/postgres"
	pr "github.com/Leopold1975/projects_control/internal/projects/repository/projectrepo/postgres"
	tr "github.com/Leopold1975/projects_control/internal/projects/repository/taskrepo/postgres"
	ts "github.com/Leopold1975/projects_control/internal/projects/repository/tokenstore/redis"
	ur "github.com/Leopold1975/projects_control/internal/projects/repository/userrepo/postgres"
	"github.com/Leopold1975/projects_control/internal/projects/services/authservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/customerservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/dashboardservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/parameterservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/projectservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/taskservice"
	"github.com/Leopold1975/projects_control/internal/projects/services/userservice"
	"github.com/Leopold1975/projects_control/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

type ProjectsApp struct {
	s    Server
	db   *pgxpool.Pool
	rdb  *redis.Client
	lg   logger.Logger
	cfg  config.Config
	done chan struct{}
}

func New(ctx context.Context, cfg config.Config) (*ProjectsApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("can't get logger error: %w", err)
	}

	if err := pgtools.ApplyMigration(cfg.PostgresDB); err != nil {
		return nil, fmt.Errorf("apply migration error: %w", err)
	}

	db, err := pgtools.Connect(ctx, cfg.PostgresDB.ConnString())
	if err != nil {
		return nil, fmt.Errorf("postgres initializing error: %w", err)
	}

	rdb, err := redistools.New(ctx, cfg.RedisCache)
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("redis initializing error: %w", err)
	}

	userRepo := ur.New(db)
	customerRepo := cr.New(db)
	projectRepo := pr.New(db)
	taskRepo := tr.New(db)
	parameterRepo := parr.New(db)

	access := permissionservice.NewDefault()

	authService := authservice.New(userRepo, ts.New(rdb), cfg.Auth, lg)

	if err := authService.EnsureAdmin(ctx); err != nil {
		db.Close()
		rdb.Close()

		return nil, fmt.Errorf("ensure admin error: %w", err)
	}

	parameterService := parameterservice.New(parameterRepo, pc.New(rdb, cfg.RedisCache.ExpTime), access, lg)

	go parameterService.BackgroundRefresh(ctx, cfg.RedisCache.ExpTime)

	s := server.New(cfg, server.Services{
		Auth:       authService,
		Users:      userservice.New(userRepo, access, cfg.Auth.BcryptCost),
		Customers:  customerservice.New(customerRepo, access),
		Projects:   projectservice.New(projectRepo, userRepo, access),
		Tasks:      taskservice.New(taskRepo, projectRepo, access),
		Parameters: parameterService,
		Dashboard:  dashboardservice.New(projectRepo, taskRepo, customerRepo, access),
	}, lg)

	return &ProjectsApp{
		s:    s,
		db:   db,
		rdb:  rdb,
		lg:   lg,
		cfg:  cfg,
		done: make(chan struct{}),
	}, nil
}

// Run serves until ctx is done or the server fails, then stops the app.
func (pa *ProjectsApp) Run(ctx context.Context) {
	defer close(pa.done)

	pa.lg.Infof("STARTED SERVER ON %s", pa.cfg.Server.Addr)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := pa.s.Start(ctx); err != nil {
			pa.lg.Errorf("server start error: %s", err.Error())
			cancel()
		}
	}()

	<-ctx.Done()

	ctxS, cancelS := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancelS()

	if err := pa.Stop(ctxS); err != nil { //nolint:contextcheck
		pa.lg.Errorf("stop error: %s", err.Error())
	}
}

// Done is closed once Run has stopped the app.
func (pa *ProjectsApp) Done() <-chan struct{} {
	return pa.done
}

func (pa *ProjectsApp) Stop(ctx context.Context) error {
	var errs []error

	if err := pa.s.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if err := pgtools.Shutdown(ctx, pa.db); err != nil {
		errs = append(errs, fmt.Errorf("postgres shutdown error: %w", err))
	}

	if err := pa.rdb.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis close error: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	pa.lg.Info("Shutdowned successfully")
	pa.lg.Sync() //nolint:errcheck

	return nil
}
