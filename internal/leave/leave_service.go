package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/identity"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/notification"
	"go-hrms/internal/user"
)

const statsCacheTTL = 10 * time.Minute

// RoleDirectory resolves the role names a user holds within a tenant.
// Satisfied by the rbac repository.
type RoleDirectory interface {
	RoleNamesByUser(ctx context.Context, tenantID, userID string) ([]string, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, tenantID string, actor identity.Principal, req ApplyLeaveRequest) (LeaveResponse, error)
	MyLeaves(ctx context.Context, tenantID string, actor identity.Principal) ([]LeaveResponse, error)
	PendingApprovals(ctx context.Context, tenantID string, actor identity.Principal) ([]LeaveResponse, error)
	Approve(ctx context.Context, tenantID string, actor identity.Principal, id, comment string) (LeaveResponse, error)
	Reject(ctx context.Context, tenantID string, actor identity.Principal, id, comment string) (LeaveResponse, error)
	ActiveToday(ctx context.Context, tenantID string) ([]LeaveResponse, error)
	Stats(ctx context.Context, tenantID string, actor identity.Principal, year int) (LeaveStatsResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	employees  employee.Repository
	users      user.Repository
	roles      RoleDirectory
	dispatcher notification.Dispatcher
	rdb        *redis.Client
	sf         singleflight.Group
	logger     *zap.Logger
	now        func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	users user.Repository,
	roles RoleDirectory,
	dispatcher notification.Dispatcher,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		employees:  employees,
		users:      users,
		roles:      roles,
		dispatcher: dispatcher,
		rdb:        rdb,
		logger:     l,
		now:        time.Now,
	}
}

func (s *service) Apply(ctx context.Context, tenantID string, actor identity.Principal, req ApplyLeaveRequest) (LeaveResponse, error) {
	leaveType, ok := ParseType(req.LeaveType)
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, endDate, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if req.IsHalfDay && !startDate.Equal(endDate) {
		return LeaveResponse{}, leaveerrors.ErrHalfDaySpansDays
	}

	emp, err := s.employees.FindByUserAndTenant(ctx, tenantID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeProfileMissing
		}
		s.logger.Error("apply leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	totalDays := endDate.Sub(startDate).Hours()/24 + 1
	if req.IsHalfDay {
		totalDays = 0.5
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingPeriod(ctx, tenantID, emp.ID.String(), startDate, endDate)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("apply leave overlap detected",
			zap.String("tenant_id", tenantID),
			zap.String("employee_id", emp.ID.String()),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	allocation := AnnualAllocation(emp.EmploymentType, emp.EmployeeStatus, emp.DateOfJoining, s.now())
	used, err := qtx.SumDaysByType(ctx, tenantID, emp.ID.String(), startDate.Year())
	if err != nil {
		s.logger.Error("apply leave usage query failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	// Paid and Unpaid leave carry no annual allocation, so only the
	// allocated types are balance-gated.
	if alloc, gated := allocation[leaveType]; gated {
		if totalDays > RemainingBalance(alloc, used[leaveType]) {
			return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	roleKinds, err := s.roleKindsOf(ctx, tenantID, actor.UserID)
	if err != nil {
		s.logger.Error("apply leave role lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:             uuid.New(),
		TenantID:       emp.TenantID,
		EmployeeID:     emp.ID,
		LeaveType:      leaveType,
		StartDate:      startDate,
		EndDate:        endDate,
		IsHalfDay:      req.IsHalfDay,
		TotalDays:      totalDays,
		Reason:         req.Reason,
		Status:         StatusPending,
		WorkflowStatus: InitialWorkflowStatus(roleKinds),
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave applied",
		zap.String("tenant_id", tenantID),
		zap.String("leave_id", l.ID.String()),
		zap.String("leave_type", string(leaveType)),
		zap.Float64("total_days", totalDays),
		zap.String("workflow_status", string(l.WorkflowStatus)),
	)

	s.invalidateStats(ctx, tenantID, emp.ID.String(), startDate.Year())
	s.notify(ctx, events.LeaveRequested, l, actor.UserID,
		append([]string{actor.UserID}, s.queueRecipients(ctx, tenantID, l.WorkflowStatus)...))

	return mapToResponse(l), nil
}

func (s *service) MyLeaves(ctx context.Context, tenantID string, actor identity.Principal) ([]LeaveResponse, error) {
	emp, err := s.employees.FindByUserAndTenant(ctx, tenantID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrEmployeeProfileMissing
		}
		return nil, err
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, tenantID, emp.ID.String())
	if err != nil {
		return nil, err
	}
	return mapToResponses(leaves), nil
}

func (s *service) PendingApprovals(ctx context.Context, tenantID string, actor identity.Principal) ([]LeaveResponse, error) {
	var statuses []WorkflowStatus
	switch {
	case actor.IsApproverHR():
		statuses = []WorkflowStatus{WorkflowPendingPM, WorkflowPendingHR, WorkflowPendingApproval}
	case actor.IsApproverPM():
		statuses = []WorkflowStatus{WorkflowPendingPM}
	default:
		return nil, leaveerrors.ErrNotApprover
	}

	leaves, err := s.repo.FindByStatuses(ctx, tenantID, statuses)
	if err != nil {
		return nil, err
	}
	return mapToResponses(leaves), nil
}

func (s *service) Approve(ctx context.Context, tenantID string, actor identity.Principal, id, comment string) (LeaveResponse, error) {
	return s.decide(ctx, tenantID, actor, id, ActionApprove, comment)
}

func (s *service) Reject(ctx context.Context, tenantID string, actor identity.Principal, id, comment string) (LeaveResponse, error) {
	return s.decide(ctx, tenantID, actor, id, ActionReject, comment)
}

func (s *service) decide(ctx context.Context, tenantID string, actor identity.Principal, id, action, comment string) (LeaveResponse, error) {
	if !actor.IsApproverHR() && !actor.IsApproverPM() {
		return LeaveResponse{}, leaveerrors.ErrNotApprover
	}

	approverID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrNotApprover
	}

	l, err := s.repo.FindByIDAndTenant(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("decide leave lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	act := Actor{ID: approverID, IsHR: actor.IsApproverHR(), IsPM: actor.IsApproverPM()}

	var (
		decision Decision
		ok       bool
	)
	if action == ActionApprove {
		applicantIsConsultant, cerr := s.applicantIsConsultant(ctx, tenantID, l.EmployeeID.String())
		if cerr != nil {
			s.logger.Error("decide leave applicant role lookup failed", zap.Error(cerr))
			return LeaveResponse{}, cerr
		}
		decision, ok = ApproveDecision(l.WorkflowStatus, act, applicantIsConsultant)
	} else {
		decision, ok = RejectDecision(l.WorkflowStatus, act)
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrInvalidApprovalAction
	}

	approval := &Approval{
		ID:             uuid.New(),
		TenantID:       l.TenantID,
		LeaveRequestID: l.ID,
		ApproverID:     approverID,
		ActedAs:        string(decision.ActedAs),
		Action:         action,
		FromStatus:     l.WorkflowStatus,
		ToStatus:       decision.Next,
		Comment:        comment,
	}

	applied, err := s.repo.ApplyDecision(ctx, tenantID, id, l.WorkflowStatus, approval)
	if err != nil {
		s.logger.Error("decide leave apply failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if !applied {
		s.logger.Warn("decide leave lost status race",
			zap.String("leave_id", id),
			zap.String("observed_status", string(l.WorkflowStatus)),
		)
		return LeaveResponse{}, leaveerrors.ErrApprovalConflict
	}

	l.WorkflowStatus = decision.Next
	switch decision.Next {
	case WorkflowApproved:
		l.Status = StatusApproved
	case WorkflowRejected:
		l.Status = StatusRejected
	}
	l.Approvals = append(l.Approvals, *approval)

	s.logger.Info("leave decision applied",
		zap.String("tenant_id", tenantID),
		zap.String("leave_id", id),
		zap.String("action", action),
		zap.String("acted_as", string(decision.ActedAs)),
		zap.String("workflow_status", string(decision.Next)),
	)

	s.invalidateStats(ctx, tenantID, l.EmployeeID.String(), l.StartDate.Year())

	applicant := s.applicantRecipient(ctx, tenantID, l.EmployeeID.String())
	switch decision.Next {
	case WorkflowApproved:
		s.notify(ctx, events.LeaveApproved, l, actor.UserID, applicant)
	case WorkflowRejected:
		s.notify(ctx, events.LeaveRejected, l, actor.UserID, applicant)
	default:
		// The applicant hears about every hop; the HR queue gets its
		// own notification.
		s.notify(ctx, events.LeaveRoutedHR, l, actor.UserID, applicant)
		s.notify(ctx, events.LeaveRoutedHR, l, actor.UserID, s.queueRecipients(ctx, tenantID, decision.Next))
	}

	return mapToResponse(l), nil
}

func (s *service) ActiveToday(ctx context.Context, tenantID string) ([]LeaveResponse, error) {
	today := s.now().Truncate(24 * time.Hour)
	leaves, err := s.repo.FindActiveOn(ctx, tenantID, today)
	if err != nil {
		return nil, err
	}
	return mapToResponses(leaves), nil
}

func (s *service) Stats(ctx context.Context, tenantID string, actor identity.Principal, year int) (LeaveStatsResponse, error) {
	emp, err := s.employees.FindByUserAndTenant(ctx, tenantID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveStatsResponse{}, leaveerrors.ErrEmployeeProfileMissing
		}
		return LeaveStatsResponse{}, err
	}

	if year == 0 {
		year = s.now().Year()
	}

	key := statsCacheKey(tenantID, emp.ID.String(), year)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp LeaveStatsResponse
			if json.Unmarshal(cached, &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		return s.computeStats(ctx, tenantID, emp, year)
	})
	if err != nil {
		return LeaveStatsResponse{}, err
	}
	resp := v.(LeaveStatsResponse)

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, key, payload, statsCacheTTL).Err(); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return resp, nil
}

func (s *service) computeStats(ctx context.Context, tenantID string, emp *employee.Employee, year int) (LeaveStatsResponse, error) {
	allocation := AnnualAllocation(emp.EmploymentType, emp.EmployeeStatus, emp.DateOfJoining, s.now())
	used, err := s.repo.SumDaysByType(ctx, tenantID, emp.ID.String(), year)
	if err != nil {
		return LeaveStatsResponse{}, err
	}

	resp := LeaveStatsResponse{Year: year}
	for _, t := range []Type{TypeCasual, TypeSick, TypeFloating} {
		resp.Balances = append(resp.Balances, LeaveBalance{
			LeaveType: string(t),
			Allocated: allocation[t],
			Used:      used[t],
			Available: RemainingBalance(allocation[t], used[t]),
		})
	}
	return resp, nil
}

func (s *service) roleKindsOf(ctx context.Context, tenantID, userID string) ([]identity.RoleKind, error) {
	names, err := s.roles.RoleNamesByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	kinds := make([]identity.RoleKind, 0, len(names))
	for _, n := range names {
		if k, ok := identity.ParseRoleKind(n); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func (s *service) applicantIsConsultant(ctx context.Context, tenantID, employeeID string) (bool, error) {
	emp, err := s.employees.FindByIDAndTenant(ctx, tenantID, employeeID)
	if err != nil {
		return false, err
	}
	kinds, err := s.roleKindsOf(ctx, tenantID, emp.UserID.String())
	if err != nil {
		return false, err
	}
	for _, k := range kinds {
		if k == identity.RoleConsultant {
			return true, nil
		}
	}
	return false, nil
}

// queueRecipients resolves the user ids that watch a pending queue.
func (s *service) queueRecipients(ctx context.Context, tenantID string, status WorkflowStatus) []string {
	var roleNames []string
	switch normalizeQueue(status) {
	case WorkflowPendingPM:
		roleNames = []string{string(identity.RoleProjectManager)}
	case WorkflowPendingHR:
		roleNames = []string{string(identity.RoleHR), string(identity.RoleAdmin)}
	default:
		return nil
	}

	recipients, err := s.users.FindByRolesAndTenant(ctx, tenantID, roleNames)
	if err != nil {
		s.logger.Warn("resolve queue recipients failed", zap.Error(err))
		return nil
	}
	ids := make([]string, 0, len(recipients))
	for _, u := range recipients {
		ids = append(ids, u.ID.String())
	}
	return ids
}

func (s *service) applicantRecipient(ctx context.Context, tenantID, employeeID string) []string {
	emp, err := s.employees.FindByIDAndTenant(ctx, tenantID, employeeID)
	if err != nil {
		s.logger.Warn("resolve applicant recipient failed", zap.Error(err))
		return nil
	}
	return []string{emp.UserID.String()}
}

// notify queues a workflow event. Notification failure never fails the
// request; the state change has already committed.
func (s *service) notify(ctx context.Context, eventType string, l *LeaveRequest, actorID string, recipients []string) {
	if s.dispatcher == nil {
		return
	}

	err := s.dispatcher.DispatchLeaveEvent(ctx, events.LeaveWorkflowEvent{
		EventType:      eventType,
		TenantID:       l.TenantID.String(),
		LeaveID:        l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		ActorID:        actorID,
		LeaveType:      string(l.LeaveType),
		WorkflowStatus: string(l.WorkflowStatus),
		TotalDays:      l.TotalDays,
		Recipients:     recipients,
		OccurredAt:     s.now().UTC(),
	})
	if err != nil {
		s.logger.Error("dispatch leave event failed",
			zap.String("event_type", eventType),
			zap.String("leave_id", l.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *service) invalidateStats(ctx context.Context, tenantID, employeeID string, year int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, statsCacheKey(tenantID, employeeID, year)).Err(); err != nil {
		s.logger.Warn("stats cache invalidation failed", zap.Error(err))
	}
}

func statsCacheKey(tenantID, employeeID string, year int) string {
	return fmt.Sprintf("leave:stats:%s:%s:%d", tenantID, employeeID, year)
}

func parsePeriod(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}
