package rbac

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hrms/internal/identity"
)

// permissionCatalog is the immutable reference data, seeded once and shared
// by every tenant.
var permissionCatalog = []Permission{
	{Code: "leave:apply", Label: "Apply for leave", Category: "leave"},
	{Code: "leave:read", Label: "View leave requests", Category: "leave"},
	{Code: "leave:approve", Label: "Approve or reject leave", Category: "leave"},
	{Code: "employee:read", Label: "View employees", Category: "employee"},
	{Code: "employee:manage", Label: "Manage employees", Category: "employee"},
	{Code: "attendance:read", Label: "View attendance", Category: "attendance"},
	{Code: "attendance:manage", Label: "Manage attendance", Category: "attendance"},
	{Code: "payroll:read", Label: "View payroll", Category: "payroll"},
	{Code: "payroll:manage", Label: "Manage payroll", Category: "payroll"},
	{Code: "asset:read", Label: "View assets", Category: "assets"},
	{Code: "asset:manage", Label: "Manage assets", Category: "assets"},
	{Code: "onboarding:manage", Label: "Manage onboarding", Category: "onboarding"},
	{Code: "role:manage", Label: "Manage roles and permissions", Category: "settings"},
}

type roleSeed struct {
	Kind        identity.RoleKind
	Description string
	Modules     []string
	Permissions []string
}

func defaultRoleSeeds() []roleSeed {
	allPerms := make([]string, len(permissionCatalog))
	for i, p := range permissionCatalog {
		allPerms[i] = p.Code
	}

	return []roleSeed{
		{
			Kind:        identity.RoleAdmin,
			Description: "Full access to every module",
			Modules:     []string{"leave", "employee", "attendance", "payroll", "assets", "onboarding", "settings"},
			Permissions: allPerms,
		},
		{
			Kind:        identity.RoleHR,
			Description: "People operations: employees, leave, onboarding",
			Modules:     []string{"leave", "employee", "attendance", "assets", "onboarding"},
			Permissions: []string{
				"leave:apply", "leave:read", "leave:approve",
				"employee:read", "employee:manage",
				"attendance:read", "attendance:manage",
				"asset:read", "asset:manage",
				"onboarding:manage",
			},
		},
		{
			Kind:        identity.RoleProjectManager,
			Description: "First-line approver for direct reports",
			Modules:     []string{"leave", "employee", "attendance"},
			Permissions: []string{"leave:apply", "leave:read", "leave:approve", "employee:read", "attendance:read"},
		},
		{
			Kind:        identity.RoleEmployee,
			Description: "Standard employee self-service",
			Modules:     []string{"leave", "attendance"},
			Permissions: []string{"leave:apply", "leave:read", "attendance:read"},
		},
		{
			Kind:        identity.RoleIntern,
			Description: "Intern self-service",
			Modules:     []string{"leave"},
			Permissions: []string{"leave:apply", "leave:read"},
		},
		{
			Kind:        identity.RoleConsultant,
			Description: "External consultant self-service",
			Modules:     []string{"leave"},
			Permissions: []string{"leave:apply", "leave:read"},
		},
		{
			Kind:        identity.RoleAccountant,
			Description: "Payroll and finance",
			Modules:     []string{"payroll", "leave"},
			Permissions: []string{"payroll:read", "payroll:manage", "leave:apply", "leave:read"},
		},
	}
}

// Seeder creates the fixed role list when a tenant is provisioned.
// Implements tenant.RoleSeeder.
type Seeder struct {
	repo   Repository
	logger *zap.Logger
}

func NewSeeder(repo Repository, logger ...*zap.Logger) *Seeder {
	l := zap.L().Named("rbac.seeder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.seeder")
	}
	return &Seeder{repo: repo, logger: l}
}

// SeedTenantRoles writes the fixed role list. When tx is non-nil every
// write joins the caller's transaction, so a half-seeded tenant never
// survives a provisioning failure.
func (s *Seeder) SeedTenantRoles(ctx context.Context, tx *sql.Tx, tenantID string) error {
	tenantUUID, err := uuid.Parse(tenantID)
	if err != nil {
		return err
	}

	repo := s.repo.WithTx(tx)

	catalog := make([]Permission, len(permissionCatalog))
	copy(catalog, permissionCatalog)
	for i := range catalog {
		catalog[i].ID = uuid.New()
	}
	if err := repo.EnsurePermissions(ctx, catalog); err != nil {
		return err
	}

	for _, seed := range defaultRoleSeeds() {
		role := &Role{
			ID:                uuid.New(),
			TenantID:          tenantUUID,
			Name:              string(seed.Kind),
			Description:       seed.Description,
			AccessibleModules: seed.Modules,
		}
		if err := repo.CreateRole(ctx, role); err != nil {
			return err
		}
		if err := repo.UpdateRolePermissions(ctx, role.ID.String(), seed.Permissions); err != nil {
			return err
		}
	}

	s.logger.Info("tenant roles seeded",
		zap.String("tenant_id", tenantID),
		zap.Int("roles", len(defaultRoleSeeds())),
	)
	return nil
}
