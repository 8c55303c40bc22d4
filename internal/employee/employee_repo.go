package employee

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByUserAndTenant(ctx context.Context, tenantID, userID string) (*Employee, error)
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Employee, error)
	FindAllByTenant(ctx context.Context, tenantID string) ([]Employee, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByUserAndTenant(ctx context.Context, tenantID, userID string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&e, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindAllByTenant(ctx context.Context, tenantID string) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
