package parameterservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/validation"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	repo "github.com/Leopold1975/projects_control/internal/projects/repository/parameterrepo"
	ps "github.com/Leopold1975/projects_control/internal/projects/services/permissionservice"
	"github.com/Leopold1975/projects_control/pkg/logger"
)

var (
	ErrRange   = fmt.Errorf("%w: valid_to must be after valid_from", apperr.ErrInvalid)
	ErrOverlap = fmt.Errorf("%w: %w", apperr.ErrConflict, repo.ErrOverlap)
)

type ParameterService struct {
	parameterRepo  Repository
	parameterCache Cache
	access         Access
	lg             logger.Logger
	now            func() time.Time
}

type Repository interface {
	CreateParameter(context.Context, models.Parameter) (int64, error)
	GetParameter(context.Context, int64) (models.Parameter, error)
	ListParameters(context.Context, repo.ListParametersRequest) ([]models.Parameter, error)
	UpdateParameter(context.Context, models.Parameter) error
	DeleteParameter(context.Context, int64) error
}

type Cache interface {
	SetParameter(context.Context, models.Parameter) error
	GetParameter(ctx context.Context, key string) (models.Parameter, error)
	DeleteParameter(ctx context.Context, key string) error
}

type Access interface {
	DenyUnlessGranted(ctx context.Context, p models.Principal, perm ps.Permission, object any) error
}

func New(parameterRepo Repository, parameterCache Cache, access Access, lg logger.Logger) *ParameterService {
	return &ParameterService{
		parameterRepo:  parameterRepo,
		parameterCache: parameterCache,
		access:         access,
		lg:             lg,
		now:            time.Now,
	}
}

func mapRepoError(err error, where string) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case errors.Is(err, repo.ErrOverlap):
		return ErrOverlap
	}

	return fmt.Errorf("%s error: %w", where, err)
}

func (pss *ParameterService) ListParameters(ctx context.Context, p models.Principal,
	req ListParametersRequest,
) ([]models.Parameter, error) {
	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ParameterList, nil); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	params, err := pss.parameterRepo.ListParameters(ctx, repo.ListParametersRequest{
		Key:     req.Key,
		ValidAt: req.ValidAt,
		Offset:  req.Offset,
		Limit:   req.Limit,
	})
	if err != nil {
		return nil, mapRepoError(err, "list parameters")
	}

	return params, nil
}

func (pss *ParameterService) GetParameter(ctx context.Context, p models.Principal, id int64) (models.Parameter, error) {
	param, err := pss.parameterRepo.GetParameter(ctx, id)
	if err != nil {
		return models.Parameter{}, mapRepoError(err, "get parameter")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ParameterView, param); err != nil {
		return models.Parameter{}, err //nolint:wrapcheck
	}

	return param, nil
}

// Value resolves the parameter of key valid at the given time, now when at is nil.
// The current value is served from the cache when present.
func (pss *ParameterService) Value(ctx context.Context, p models.Principal, key string,
	at *time.Time,
) (models.Parameter, error) {
	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ParameterView, models.Parameter{Key: key}); err != nil { //nolint:exhaustruct
		return models.Parameter{}, err //nolint:wrapcheck
	}

	now := pss.now()
	current := at == nil

	if current {
		at = &now

		param, err := pss.parameterCache.GetParameter(ctx, key)
		if err == nil && param.ValidAt(now) {
			pss.lg.Debugf("parameter %s cache hit", key)

			return param, nil
		}

		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			pss.lg.Errorf("get parameter %s cache error: %s", key, err.Error())
		}
	}

	params, err := pss.parameterRepo.ListParameters(ctx, repo.ListParametersRequest{
		Key:     key,
		ValidAt: at,
		Offset:  0,
		Limit:   1,
	})
	if err != nil {
		return models.Parameter{}, mapRepoError(err, "list parameters")
	}

	if len(params) == 0 {
		return models.Parameter{}, fmt.Errorf("%w: %w: %s", apperr.ErrNotFound, repo.ErrNotFound, key)
	}

	if current {
		if err := pss.parameterCache.SetParameter(ctx, params[0]); err != nil {
			pss.lg.Errorf("set parameter %s cache error: %s", key, err.Error())
		}
	}

	return params[0], nil
}

func (pss *ParameterService) build(param *models.Parameter, req ParameterRequest) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	param.Key = req.Key
	param.Value = req.Value
	param.Description = req.Description
	param.ValidTo = req.ValidTo

	if req.ValidFrom != nil {
		param.ValidFrom = *req.ValidFrom
	} else if param.ValidFrom.IsZero() {
		param.ValidFrom = pss.now()
	}

	if param.ValidTo != nil && !param.ValidTo.After(param.ValidFrom) {
		return ErrRange
	}

	return nil
}

// checkOverlap rejects param when another record of the same key shares part of its range.
func (pss *ParameterService) checkOverlap(ctx context.Context, param models.Parameter) error {
	existing, err := pss.parameterRepo.ListParameters(ctx, repo.ListParametersRequest{ //nolint:exhaustruct
		Key: param.Key,
	})
	if err != nil {
		return mapRepoError(err, "list parameters")
	}

	for _, e := range existing {
		if e.ID != param.ID && e.Overlaps(param) {
			return fmt.Errorf("%w: parameter %d", ErrOverlap, e.ID)
		}
	}

	return nil
}

func (pss *ParameterService) invalidate(ctx context.Context, keys ...string) {
	for _, k := range keys {
		if err := pss.parameterCache.DeleteParameter(ctx, k); err != nil {
			pss.lg.Errorf("delete parameter %s cache error: %s", k, err.Error())
		}
	}
}

func (pss *ParameterService) CreateParameter(ctx context.Context, p models.Principal,
	req ParameterRequest,
) (models.Parameter, error) {
	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ParameterCreate, nil); err != nil {
		return models.Parameter{}, err //nolint:wrapcheck
	}

	var param models.Parameter

	if err := pss.build(&param, req); err != nil {
		return models.Parameter{}, err
	}

	if err := pss.checkOverlap(ctx, param); err != nil {
		return models.Parameter{}, err
	}

	now := pss.now()
	param.CreatedAt = now
	param.UpdatedAt = now

	id, err := pss.parameterRepo.CreateParameter(ctx, param)
	if err != nil {
		return models.Parameter{}, mapRepoError(err, "create parameter")
	}

	param.ID = id
	pss.invalidate(ctx, param.Key)

	return param, nil
}

func (pss *ParameterService) UpdateParameter(ctx context.Context, p models.Principal, id int64,
	req ParameterRequest,
) (models.Parameter, error) {
	param, err := pss.parameterRepo.GetParameter(ctx, id)
	if err != nil {
		return models.Parameter{}, mapRepoError(err, "get parameter")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ParameterEdit, param); err != nil {
		return models.Parameter{}, err //nolint:wrapcheck
	}

	oldKey := param.Key

	if err := pss.build(&param, req); err != nil {
		return models.Parameter{}, err
	}

	if err := pss.checkOverlap(ctx, param); err != nil {
		return models.Parameter{}, err
	}

	param.UpdatedAt = pss.now()

	if err := pss.parameterRepo.UpdateParameter(ctx, param); err != nil {
		return models.Parameter{}, mapRepoError(err, "update parameter")
	}

	pss.invalidate(ctx, oldKey)

	if param.Key != oldKey {
		pss.invalidate(ctx, param.Key)
	}

	return param, nil
}

func (pss *ParameterService) DeleteParameter(ctx context.Context, p models.Principal, id int64) error {
	param, err := pss.parameterRepo.GetParameter(ctx, id)
	if err != nil {
		return mapRepoError(err, "get parameter")
	}

	if err := pss.access.DenyUnlessGranted(ctx, p, ps.ParameterDelete, param); err != nil {
		return err //nolint:wrapcheck
	}

	if err := pss.parameterRepo.DeleteParameter(ctx, id); err != nil {
		return mapRepoError(err, "delete parameter")
	}

	pss.invalidate(ctx, param.Key)

	return nil
}

// BackgroundRefresh reloads the currently valid parameters into the cache every ttl until ctx is done.
func (pss *ParameterService) BackgroundRefresh(ctx context.Context, ttl time.Duration) {
	t := time.NewTicker(ttl)
	defer t.Stop()

	if err := pss.refresh(ctx); err != nil {
		pss.lg.Errorf("refresh error: %s", err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := pss.refresh(ctx); err != nil {
				pss.lg.Errorf("refresh error: %s", err.Error())
			}
		}
	}
}

func (pss *ParameterService) refresh(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)

		now := pss.now()

		params, err := pss.parameterRepo.ListParameters(ctx, repo.ListParametersRequest{ //nolint:exhaustruct
			ValidAt: &now,
		})
		if err != nil {
			errCh <- fmt.Errorf("list parameters error: %w", err)

			return
		}

		for _, p := range params {
			if err := pss.parameterCache.SetParameter(ctx, p); err != nil {
				errCh <- fmt.Errorf("set parameter cache error: %w", err)

				return
			}
		}

		pss.lg.Debugf("refreshed %d parameters", len(params))
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled error: %w", ctx.Err())
	case err := <-errCh:
		return err
	}
}
