package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByRolesAndTenant(ctx context.Context, tenantID string, roleNames []string) ([]User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByRolesAndTenant lists users holding any of the given roles inside a
// tenant. Used to fan notifications out to the HR/Admin group.
func (r *repository) FindByRolesAndTenant(ctx context.Context, tenantID string, roleNames []string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.tenant_id = ?", tenantID).
		Where("roles.name IN ?", roleNames).
		Where("users.status = ?", StatusActive).
		Distinct().
		Scan(&users).Error
	return users, err
}
