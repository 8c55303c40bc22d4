package rbac

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	// LoadTenantPolicy rebuilds the enforcer from the tenant's stored
	// roles and grants.
	LoadTenantPolicy(ctx context.Context, tenantID string) error

	// PermissionsForUser resolves the union of "module:action" strings a
	// user holds through its roles. Used once at login to embed the set
	// into the access token.
	PermissionsForUser(ctx context.Context, tenantID, userID string) (roles []string, permissions []string, err error)

	// HasModuleAccess gates route groups by role-level module visibility,
	// independent of fine-grained permissions.
	HasModuleAccess(ctx context.Context, tenantID string, roleNames []string, module string) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

func (s *service) LoadTenantPolicy(ctx context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadTenantPolicyUnlocked(ctx, tenantID)
}

func (s *service) loadTenantPolicyUnlocked(ctx context.Context, tenantID string) error {
	s.enforcer.ClearPolicy()

	rolePerms, err := s.repo.GetRolePermissions(ctx, tenantID)
	if err != nil {
		return err
	}
	s.logger.Debug("rbac policy loaded",
		zap.String("tenant_id", tenantID),
		zap.Int("role_permissions", len(rolePerms)),
	)

	for _, rp := range rolePerms {
		module, action, ok := splitPermissionCode(rp.Code)
		if !ok {
			s.logger.Warn("skipping malformed permission code",
				zap.String("tenant_id", tenantID),
				zap.String("code", rp.Code),
			)
			continue
		}
		if _, err := s.enforcer.AddPolicy(rp.RoleName, tenantID, module, action); err != nil {
			return err
		}
	}

	return nil
}

func (s *service) PermissionsForUser(ctx context.Context, tenantID, userID string) ([]string, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadTenantPolicyUnlocked(ctx, tenantID); err != nil {
		return nil, nil, err
	}

	roleNames, err := s.repo.RoleNamesByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, nil, err
	}

	for _, role := range roleNames {
		if _, err := s.enforcer.AddGroupingPolicy(userID, role, tenantID); err != nil {
			return nil, nil, err
		}
	}

	implicit, err := s.enforcer.GetImplicitPermissionsForUser(userID, tenantID)
	if err != nil {
		return nil, nil, err
	}

	seen := map[string]struct{}{}
	permissions := make([]string, 0, len(implicit))
	for _, p := range implicit {
		// p = [subject, tenant, module, action]
		if len(p) < 4 {
			continue
		}
		code := fmt.Sprintf("%s:%s", p[2], p[3])
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		permissions = append(permissions, code)
	}

	return roleNames, permissions, nil
}

func (s *service) HasModuleAccess(ctx context.Context, tenantID string, roleNames []string, module string) (bool, error) {
	if len(roleNames) == 0 {
		return false, nil
	}

	modules, err := s.repo.AccessibleModules(ctx, tenantID, roleNames)
	if err != nil {
		return false, err
	}
	for _, m := range modules {
		if m == module {
			return true, nil
		}
	}
	return false, nil
}

func splitPermissionCode(code string) (module, action string, ok bool) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
