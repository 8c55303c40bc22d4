package rbac

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-hrms/internal/shared/connection"
)

type RolePermissionRow struct {
	RoleName string
	Code     string
}

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Policy loading
	GetRolePermissions(ctx context.Context, tenantID string) ([]RolePermissionRow, error)
	RoleNamesByUser(ctx context.Context, tenantID, userID string) ([]string, error)
	AccessibleModules(ctx context.Context, tenantID string, roleNames []string) ([]string, error)

	// Management
	ListRoles(ctx context.Context, tenantID string) ([]Role, error)
	GetRoleByID(ctx context.Context, tenantID, id string) (*Role, error)
	CreateRole(ctx context.Context, role *Role) error
	UpdateRolePermissions(ctx context.Context, roleID string, permissionCodes []string) error

	ListPermissions(ctx context.Context) ([]Permission, error)
	GetPermissionsByRoleID(ctx context.Context, roleID string) ([]Permission, error)
	EnsurePermissions(ctx context.Context, perms []Permission) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: connection.GORMWithTx(r.db, tx)}
}

func (r *repository) GetRolePermissions(ctx context.Context, tenantID string) ([]RolePermissionRow, error) {
	var result []RolePermissionRow

	err := r.db.WithContext(ctx).
		Table("role_permissions").
		Select("roles.name AS role_name, permissions.code AS code").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("roles.tenant_id = ?", tenantID).
		Scan(&result).Error

	return result, err
}

func (r *repository) RoleNamesByUser(ctx context.Context, tenantID, userID string) ([]string, error) {
	var names []string

	err := r.db.WithContext(ctx).
		Table("user_roles").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("user_roles.user_id = ?", userID).
		Where("roles.tenant_id = ?", tenantID).
		Scan(&names).Error

	return names, err
}

func (r *repository) AccessibleModules(ctx context.Context, tenantID string, roleNames []string) ([]string, error) {
	var roles []Role
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("name IN ?", roleNames).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var modules []string
	for _, role := range roles {
		for _, m := range role.AccessibleModules {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			modules = append(modules, m)
		}
	}
	return modules, nil
}

func (r *repository) ListRoles(ctx context.Context, tenantID string) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repository) GetRoleByID(ctx context.Context, tenantID, id string) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&role, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) CreateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) UpdateRolePermissions(ctx context.Context, roleID string, permissionCodes []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM role_permissions WHERE role_id = ?", roleID).Error; err != nil {
			return err
		}

		for _, code := range permissionCodes {
			err := tx.Exec(`
INSERT INTO role_permissions (role_id, permission_id)
SELECT ?, id FROM permissions WHERE code = ?
`, roleID, code).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) ListPermissions(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).Order("category, code").Find(&perms).Error
	return perms, err
}

func (r *repository) GetPermissionsByRoleID(ctx context.Context, roleID string) ([]Permission, error) {
	var perms []Permission
	err := r.db.WithContext(ctx).
		Table("permissions").
		Select("permissions.*").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Scan(&perms).Error
	return perms, err
}

func (r *repository) EnsurePermissions(ctx context.Context, perms []Permission) error {
	for _, p := range perms {
		err := r.db.WithContext(ctx).Exec(`
INSERT INTO permissions (id, code, label, category)
VALUES (?, ?, ?, ?)
ON CONFLICT (code) DO NOTHING
`, p.ID, p.Code, p.Label, p.Category).Error
		if err != nil {
			return err
		}
	}
	return nil
}
