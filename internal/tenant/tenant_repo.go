package tenant

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"go-hrms/internal/shared/connection"
)

//go:generate mockgen -source=tenant_repo.go -destination=mock/tenant_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id string) (*Tenant, error)
	Create(ctx context.Context, t *Tenant) error
	UpdateStatus(ctx context.Context, id, status string) error

	// Super-admin only: the one intentionally unscoped query set.
	FindAll(ctx context.Context) ([]Tenant, error)
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

func (r *repository) FindByID(ctx context.Context, id string) (*Tenant, error) {
	var t Tenant
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Create(ctx context.Context, t *Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&Tenant{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Tenant, error) {
	var tenants []Tenant
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&tenants).Error
	return tenants, err
}
