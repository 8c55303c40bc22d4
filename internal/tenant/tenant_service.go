package tenant

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	tenanterrors "go-hrms/internal/tenant/errors"
)

// defaultModules is what a fresh plan enables unless provisioning narrows it.
var defaultModules = []string{"leave", "employee", "attendance", "payroll", "assets", "onboarding", "settings"}

// RoleSeeder creates the fixed role list for a new tenant. Implemented by
// the rbac module; declared here so provisioning does not import it. The
// seeder must write through the supplied transaction.
type RoleSeeder interface {
	SeedTenantRoles(ctx context.Context, tx *sql.Tx, tenantID string) error
}

//go:generate mockgen -source=tenant_service.go -destination=mock/tenant_service_mock.go -package=mock
type Service interface {
	// Resolve turns a tenant id from the auth context into a live tenant,
	// rejecting suspended and expired tenants with distinct errors.
	Resolve(ctx context.Context, id string) (*Tenant, error)

	// Super-admin operations (unscoped route set).
	Provision(ctx context.Context, req ProvisionTenantRequest) (TenantResponse, error)
	List(ctx context.Context) ([]TenantResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateTenantStatusRequest) (TenantResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	seeder RoleSeeder
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, seeder RoleSeeder, logger ...*zap.Logger) Service {
	l := zap.L().Named("tenant.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("tenant.service")
	}
	return &service{db: db, repo: repo, seeder: seeder, logger: l}
}

func (s *service) Resolve(ctx context.Context, id string) (*Tenant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, tenanterrors.ErrInvalidTenantID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenanterrors.ErrTenantNotFound
		}
		return nil, err
	}

	switch t.Status {
	case StatusSuspended:
		return nil, tenanterrors.ErrTenantSuspended
	case StatusExpired:
		return nil, tenanterrors.ErrTenantExpired
	}

	return t, nil
}

func (s *service) Provision(ctx context.Context, req ProvisionTenantRequest) (TenantResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("provision tenant begin tx failed", zap.Error(err))
		return TenantResponse{}, err
	}
	defer tx.Rollback()

	status := StatusActive
	if req.Trial {
		status = StatusTrial
	}
	maxEmployees := req.MaxEmployees
	if maxEmployees == 0 {
		maxEmployees = 50
	}
	modules := req.EnabledModules
	if len(modules) == 0 {
		modules = defaultModules
	}

	t := &Tenant{
		ID:             uuid.New(),
		Name:           strings.TrimSpace(req.Name),
		Status:         status,
		MaxEmployees:   maxEmployees,
		EnabledModules: modules,
	}

	if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
		return TenantResponse{}, mapRepositoryError(err)
	}

	// Fixed seed list: Admin, HR, Project Manager, Employee, Intern,
	// Consultant, Accountant.
	if err := s.seeder.SeedTenantRoles(ctx, tx, t.ID.String()); err != nil {
		s.logger.Error("seed tenant roles failed",
			zap.String("tenant_id", t.ID.String()),
			zap.Error(err),
		)
		return TenantResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("provision tenant commit failed", zap.Error(err))
		return TenantResponse{}, err
	}
	s.logger.Info("tenant provisioned",
		zap.String("tenant_id", t.ID.String()),
		zap.String("name", t.Name),
		zap.String("status", t.Status),
	)

	return mapToResponse(*t), nil
}

func (s *service) List(ctx context.Context) ([]TenantResponse, error) {
	tenants, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]TenantResponse, len(tenants))
	for i, t := range tenants {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateTenantStatusRequest) (TenantResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TenantResponse{}, tenanterrors.ErrInvalidTenantID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TenantResponse{}, tenanterrors.ErrTenantNotFound
		}
		return TenantResponse{}, err
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return TenantResponse{}, err
	}
	t.Status = req.Status

	s.logger.Info("tenant status updated",
		zap.String("tenant_id", id),
		zap.String("status", req.Status),
	)

	return mapToResponse(*t), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return tenanterrors.ErrTenantNameTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return tenanterrors.ErrTenantNameTaken
	}

	return err
}

func mapToResponse(t Tenant) TenantResponse {
	return TenantResponse{
		ID:             t.ID.String(),
		Name:           t.Name,
		Status:         t.Status,
		MaxEmployees:   t.MaxEmployees,
		EnabledModules: t.EnabledModules,
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
	}
}
