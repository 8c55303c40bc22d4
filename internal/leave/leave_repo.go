package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	"go-hrms/internal/shared/connection"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveRequest, error)
	FindAllByEmployee(ctx context.Context, tenantID, employeeID string) ([]LeaveRequest, error)
	FindByStatuses(ctx context.Context, tenantID string, statuses []WorkflowStatus) ([]LeaveRequest, error)
	FindActiveOn(ctx context.Context, tenantID string, day time.Time) ([]LeaveRequest, error)
	HasOverlappingPeriod(ctx context.Context, tenantID, employeeID string, startDate, endDate time.Time) (bool, error)
	SumDaysByType(ctx context.Context, tenantID, employeeID string, year int) (map[Type]float64, error)
	ApplyDecision(ctx context.Context, tenantID, id string, from WorkflowStatus, approval *Approval) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Approvals", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, tenantID, employeeID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByStatuses(ctx context.Context, tenantID string, statuses []WorkflowStatus) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("workflow_status IN ?", statuses).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindActiveOn(ctx context.Context, tenantID string, day time.Time) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Order("start_date ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, tenantID, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("tenant_id = ?", tenantID).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) SumDaysByType(ctx context.Context, tenantID, employeeID string, year int) (map[Type]float64, error) {
	type row struct {
		LeaveType Type
		Days      float64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Select("leave_type, COALESCE(SUM(total_days), 0) AS days").
		Where("tenant_id = ?", tenantID).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []Status{StatusApproved, StatusPending}).
		Where("EXTRACT(YEAR FROM start_date) = ?", year).
		Group("leave_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	used := make(map[Type]float64, len(rows))
	for _, r := range rows {
		used[r.LeaveType] = r.Days
	}
	return used, nil
}

// ApplyDecision moves a request to the approval's target status and
// appends the approval row, but only if the request is still in the
// status the caller observed. A false return with a nil error means the
// guard failed: someone else decided first.
func (r *repository) ApplyDecision(ctx context.Context, tenantID, id string, from WorkflowStatus, approval *Approval) (bool, error) {
	applied := false
	updates := map[string]any{"workflow_status": approval.ToStatus}
	switch approval.ToStatus {
	case WorkflowApproved:
		updates["status"] = StatusApproved
	case WorkflowRejected:
		updates["status"] = StatusRejected
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&LeaveRequest{}).
			Where("tenant_id = ?", tenantID).
			Where("id = ?", id).
			Where("workflow_status = ?", from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Create(approval).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}
