package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/identity"
	"go-hrms/internal/leave"
	leaveerrors "go-hrms/internal/leave/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/user"
)

type fakeLeaveRepository struct {
	createFn               func(ctx context.Context, l *leave.LeaveRequest) error
	findByIDAndTenantFn    func(ctx context.Context, tenantID, id string) (*leave.LeaveRequest, error)
	findAllByEmployeeFn    func(ctx context.Context, tenantID, employeeID string) ([]leave.LeaveRequest, error)
	findByStatusesFn       func(ctx context.Context, tenantID string, statuses []leave.WorkflowStatus) ([]leave.LeaveRequest, error)
	findActiveOnFn         func(ctx context.Context, tenantID string, day time.Time) ([]leave.LeaveRequest, error)
	hasOverlappingPeriodFn func(ctx context.Context, tenantID, employeeID string, startDate, endDate time.Time) (bool, error)
	sumDaysByTypeFn        func(ctx context.Context, tenantID, employeeID string, year int) (map[leave.Type]float64, error)
	applyDecisionFn        func(ctx context.Context, tenantID, id string, from leave.WorkflowStatus, approval *leave.Approval) (bool, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository { return f }

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*leave.LeaveRequest, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAllByEmployee(ctx context.Context, tenantID, employeeID string) ([]leave.LeaveRequest, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, tenantID, employeeID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByStatuses(ctx context.Context, tenantID string, statuses []leave.WorkflowStatus) ([]leave.LeaveRequest, error) {
	if f.findByStatusesFn != nil {
		return f.findByStatusesFn(ctx, tenantID, statuses)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindActiveOn(ctx context.Context, tenantID string, day time.Time) ([]leave.LeaveRequest, error) {
	if f.findActiveOnFn != nil {
		return f.findActiveOnFn(ctx, tenantID, day)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) HasOverlappingPeriod(ctx context.Context, tenantID, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingPeriodFn != nil {
		return f.hasOverlappingPeriodFn(ctx, tenantID, employeeID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) SumDaysByType(ctx context.Context, tenantID, employeeID string, year int) (map[leave.Type]float64, error) {
	if f.sumDaysByTypeFn != nil {
		return f.sumDaysByTypeFn(ctx, tenantID, employeeID, year)
	}
	return map[leave.Type]float64{}, nil
}

func (f *fakeLeaveRepository) ApplyDecision(ctx context.Context, tenantID, id string, from leave.WorkflowStatus, approval *leave.Approval) (bool, error) {
	if f.applyDecisionFn != nil {
		return f.applyDecisionFn(ctx, tenantID, id, from, approval)
	}
	return true, nil
}

type fakeEmployeeRepository struct {
	findByUserAndTenantFn func(ctx context.Context, tenantID, userID string) (*employee.Employee, error)
	findByIDAndTenantFn   func(ctx context.Context, tenantID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) FindByUserAndTenant(ctx context.Context, tenantID, userID string) (*employee.Employee, error) {
	if f.findByUserAndTenantFn != nil {
		return f.findByUserAndTenantFn(ctx, tenantID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	if f.findByIDAndTenantFn != nil {
		return f.findByIDAndTenantFn(ctx, tenantID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) CountByTenant(ctx context.Context, tenantID string) (int64, error) {
	return 0, nil
}

type fakeUserRepository struct {
	findByRolesAndTenantFn func(ctx context.Context, tenantID string, roleNames []string) ([]user.User, error)
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByRolesAndTenant(ctx context.Context, tenantID string, roleNames []string) ([]user.User, error) {
	if f.findByRolesAndTenantFn != nil {
		return f.findByRolesAndTenantFn(ctx, tenantID, roleNames)
	}
	return nil, nil
}

type fakeRoleDirectory struct {
	rolesByUser map[string][]string
}

func (f *fakeRoleDirectory) RoleNamesByUser(ctx context.Context, tenantID, userID string) ([]string, error) {
	return f.rolesByUser[userID], nil
}

type fakeDispatcher struct {
	events []events.LeaveWorkflowEvent
	err    error
}

func (f *fakeDispatcher) DispatchLeaveEvent(ctx context.Context, event events.LeaveWorkflowEvent) error {
	f.events = append(f.events, event)
	return f.err
}

type leaveServiceDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	service    leave.Service
	repo       *fakeLeaveRepository
	employees  *fakeEmployeeRepository
	users      *fakeUserRepository
	roles      *fakeRoleDirectory
	dispatcher *fakeDispatcher
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	employees := &fakeEmployeeRepository{}
	users := &fakeUserRepository{}
	roles := &fakeRoleDirectory{rolesByUser: map[string][]string{}}
	dispatcher := &fakeDispatcher{}

	svc := leave.NewService(db, repo, employees, users, roles, dispatcher, nil)

	return &leaveServiceDeps{
		db:         db,
		sqlMock:    sqlMock,
		service:    svc,
		repo:       repo,
		employees:  employees,
		users:      users,
		roles:      roles,
		dispatcher: dispatcher,
	}
}

func activeEmployee(tenantID uuid.UUID, userID uuid.UUID) *employee.Employee {
	return &employee.Employee{
		ID:             uuid.New(),
		TenantID:       tenantID,
		UserID:         userID,
		EmploymentType: employee.EmploymentFullTime,
		EmployeeStatus: employee.StatusActive,
		DateOfJoining:  time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestLeaveService_Apply(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	actor := identity.Principal{UserID: userID.String(), TenantID: tenantID.String(), Roles: []string{"Employee"}}

	validReq := leave.ApplyLeaveRequest{
		LeaveType: "Casual",
		StartDate: "2026-06-10",
		EndDate:   "2026-06-12",
		Reason:    "family event",
	}

	t.Run("success routes employee to manager queue", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		emp := activeEmployee(tenantID, userID)
		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			assert.Equal(t, tenantID.String(), tid)
			assert.Equal(t, userID.String(), uid)
			return emp, nil
		}
		deps.roles.rolesByUser[userID.String()] = []string{"Employee"}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *leave.LeaveRequest
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveRequest) error {
			created = l
			return nil
		}

		resp, err := deps.service.Apply(ctx, tenantID.String(), actor, validReq)
		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, 3.0, created.TotalDays)
		assert.Equal(t, leave.StatusPending, created.Status)
		assert.Equal(t, leave.WorkflowPendingPM, created.WorkflowStatus)
		assert.Equal(t, string(leave.StatusPending), resp.Status)
		assert.Equal(t, string(leave.WorkflowPendingPM), resp.WorkflowStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())

		assert.Len(t, deps.dispatcher.events, 1)
		assert.Equal(t, events.LeaveRequested, deps.dispatcher.events[0].EventType)
	})

	t.Run("manager applicant lands in hr queue", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		emp := activeEmployee(tenantID, userID)
		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return emp, nil
		}
		deps.roles.rolesByUser[userID.String()] = []string{"Project Manager"}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Apply(ctx, tenantID.String(), actor, validReq)
		assert.NoError(t, err)
		assert.Equal(t, string(leave.WorkflowPendingHR), resp.WorkflowStatus)
	})

	t.Run("half day must be a single date", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := validReq
		req.IsHalfDay = true
		_, err := deps.service.Apply(ctx, tenantID.String(), actor, req)
		assert.ErrorIs(t, err, leaveerrors.ErrHalfDaySpansDays)
	})

	t.Run("half day counts half a day", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		emp := activeEmployee(tenantID, userID)
		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return emp, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		req := validReq
		req.EndDate = req.StartDate
		req.IsHalfDay = true

		resp, err := deps.service.Apply(ctx, tenantID.String(), actor, req)
		assert.NoError(t, err)
		assert.Equal(t, 0.5, resp.TotalDays)
	})

	t.Run("unknown leave type rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := validReq
		req.LeaveType = "Sabbatical"
		_, err := deps.service.Apply(ctx, tenantID.String(), actor, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("reversed dates rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := validReq
		req.StartDate, req.EndDate = req.EndDate, req.StartDate
		_, err := deps.service.Apply(ctx, tenantID.String(), actor, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("overlapping period fails validation", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return activeEmployee(tenantID, userID), nil
		}
		deps.repo.hasOverlappingPeriodFn = func(ctx context.Context, tid, eid string, startDate, endDate time.Time) (bool, error) {
			return true, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Apply(ctx, tenantID.String(), actor, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
		assert.Equal(t, http.StatusBadRequest, apperror.ToHTTP(err).Status)
		assert.Empty(t, deps.dispatcher.events)
	})

	t.Run("insufficient balance rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return activeEmployee(tenantID, userID), nil
		}
		deps.repo.sumDaysByTypeFn = func(ctx context.Context, tid, eid string, year int) (map[leave.Type]float64, error) {
			assert.Equal(t, 2026, year)
			return map[leave.Type]float64{leave.TypeCasual: 10.5}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		// 3 requested, 12 allocated, 10.5 already used.
		_, err := deps.service.Apply(ctx, tenantID.String(), actor, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})

	t.Run("intern cannot take sick leave", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		emp := activeEmployee(tenantID, userID)
		emp.EmploymentType = employee.EmploymentIntern
		emp.DateOfJoining = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return emp, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		req := validReq
		req.LeaveType = "Sick"
		req.StartDate = "2026-06-10"
		req.EndDate = "2026-06-10"

		_, err := deps.service.Apply(ctx, tenantID.String(), actor, req)
		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
	})

	t.Run("unpaid leave skips the balance gate", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return activeEmployee(tenantID, userID), nil
		}
		deps.repo.sumDaysByTypeFn = func(ctx context.Context, tid, eid string, year int) (map[leave.Type]float64, error) {
			return map[leave.Type]float64{leave.TypeUnpaid: 40}, nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		req := validReq
		req.LeaveType = "Unpaid"

		_, err := deps.service.Apply(ctx, tenantID.String(), actor, req)
		assert.NoError(t, err)
	})

	t.Run("missing employee profile", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Apply(ctx, tenantID.String(), actor, validReq)
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeProfileMissing)
	})

	t.Run("dispatcher failure does not fail the request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return activeEmployee(tenantID, userID), nil
		}
		deps.dispatcher.err = errors.New("broker unreachable")

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		_, err := deps.service.Apply(ctx, tenantID.String(), actor, validReq)
		assert.NoError(t, err)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	applicantUserID := uuid.New()

	hr := identity.Principal{UserID: uuid.New().String(), TenantID: tenantID.String(), Roles: []string{"HR"}}
	pm := identity.Principal{UserID: uuid.New().String(), TenantID: tenantID.String(), Roles: []string{"Project Manager"}}
	plain := identity.Principal{UserID: uuid.New().String(), TenantID: tenantID.String(), Roles: []string{"Employee"}}

	pendingRequest := func(status leave.WorkflowStatus) (*leave.LeaveRequest, *employee.Employee) {
		emp := activeEmployee(tenantID, applicantUserID)
		return &leave.LeaveRequest{
			ID:             uuid.New(),
			TenantID:       tenantID,
			EmployeeID:     emp.ID,
			LeaveType:      leave.TypeCasual,
			StartDate:      time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
			TotalDays:      3,
			Reason:         "family event",
			WorkflowStatus: status,
		}, emp
	}

	wire := func(deps *leaveServiceDeps, l *leave.LeaveRequest, emp *employee.Employee, applicantRoles []string) {
		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*leave.LeaveRequest, error) {
			if id == l.ID.String() {
				return l, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		deps.employees.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*employee.Employee, error) {
			return emp, nil
		}
		deps.roles.rolesByUser[applicantUserID.String()] = applicantRoles
	}

	t.Run("manager approval escalates and appends trail", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowPendingPM)
		wire(deps, l, emp, []string{"Employee"})

		var recorded *leave.Approval
		deps.repo.applyDecisionFn = func(ctx context.Context, tid, id string, from leave.WorkflowStatus, approval *leave.Approval) (bool, error) {
			assert.Equal(t, leave.WorkflowPendingPM, from)
			recorded = approval
			return true, nil
		}

		resp, err := deps.service.Approve(ctx, tenantID.String(), pm, l.ID.String(), "fine by me")
		assert.NoError(t, err)
		assert.Equal(t, string(leave.StatusPending), resp.Status)
		assert.Equal(t, string(leave.WorkflowPendingHR), resp.WorkflowStatus)

		assert.NotNil(t, recorded)
		assert.Equal(t, leave.ActionApprove, recorded.Action)
		assert.Equal(t, "Project Manager", recorded.ActedAs)
		assert.Equal(t, leave.WorkflowPendingPM, recorded.FromStatus)
		assert.Equal(t, leave.WorkflowPendingHR, recorded.ToStatus)
		assert.Equal(t, "fine by me", recorded.Comment)

		assert.Len(t, resp.Approvals, 1)
		// One notification for the applicant, one for the HR queue.
		assert.Len(t, deps.dispatcher.events, 2)
		assert.Equal(t, events.LeaveRoutedHR, deps.dispatcher.events[0].EventType)
		assert.Equal(t, events.LeaveRoutedHR, deps.dispatcher.events[1].EventType)
	})

	t.Run("hr approves escalated request to completion", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowPendingHR)
		wire(deps, l, emp, []string{"Employee"})

		resp, err := deps.service.Approve(ctx, tenantID.String(), hr, l.ID.String(), "")
		assert.NoError(t, err)
		assert.Equal(t, string(leave.StatusApproved), resp.Status)
		assert.Equal(t, string(leave.WorkflowApproved), resp.WorkflowStatus)
		assert.Equal(t, events.LeaveApproved, deps.dispatcher.events[0].EventType)
	})

	t.Run("hr override approves directly from manager queue", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowPendingPM)
		wire(deps, l, emp, []string{"Employee"})

		resp, err := deps.service.Approve(ctx, tenantID.String(), hr, l.ID.String(), "")
		assert.NoError(t, err)
		assert.Equal(t, string(leave.WorkflowApproved), resp.WorkflowStatus)
		assert.Equal(t, "HR", resp.Approvals[0].ActedAs)
	})

	t.Run("manager approval of consultant is single step", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowPendingPM)
		wire(deps, l, emp, []string{"Consultant"})

		resp, err := deps.service.Approve(ctx, tenantID.String(), pm, l.ID.String(), "")
		assert.NoError(t, err)
		assert.Equal(t, string(leave.WorkflowApproved), resp.WorkflowStatus)
	})

	t.Run("legacy pending approval status approves like hr queue", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowPendingApproval)
		wire(deps, l, emp, []string{"Employee"})

		var recorded *leave.Approval
		deps.repo.applyDecisionFn = func(ctx context.Context, tid, id string, from leave.WorkflowStatus, approval *leave.Approval) (bool, error) {
			assert.Equal(t, leave.WorkflowPendingApproval, from) // guard uses the stored value
			recorded = approval
			return true, nil
		}

		resp, err := deps.service.Approve(ctx, tenantID.String(), hr, l.ID.String(), "")
		assert.NoError(t, err)
		assert.Equal(t, string(leave.WorkflowApproved), resp.WorkflowStatus)
		assert.Equal(t, leave.WorkflowPendingApproval, recorded.FromStatus)
	})

	t.Run("concurrent decision maps to conflict", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowPendingPM)
		wire(deps, l, emp, []string{"Employee"})

		deps.repo.applyDecisionFn = func(ctx context.Context, tid, id string, from leave.WorkflowStatus, approval *leave.Approval) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Approve(ctx, tenantID.String(), hr, l.ID.String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrApprovalConflict)
		assert.Empty(t, deps.dispatcher.events)
	})

	t.Run("terminal request cannot be approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowApproved)
		wire(deps, l, emp, []string{"Employee"})

		_, err := deps.service.Approve(ctx, tenantID.String(), hr, l.ID.String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalAction)
	})

	t.Run("non approver is forbidden", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		l, emp := pendingRequest(leave.WorkflowPendingPM)
		wire(deps, l, emp, []string{"Employee"})

		_, err := deps.service.Approve(ctx, tenantID.String(), plain, l.ID.String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrNotApprover)
	})

	t.Run("unknown request is not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Approve(ctx, tenantID.String(), hr, uuid.NewString(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	applicantUserID := uuid.New()

	hr := identity.Principal{UserID: uuid.New().String(), Roles: []string{"HR"}}
	pm := identity.Principal{UserID: uuid.New().String(), Roles: []string{"Project Manager"}}

	setup := func(t *testing.T, status leave.WorkflowStatus) (*leaveServiceDeps, *leave.LeaveRequest) {
		deps := setupLeaveServiceTest(t)
		t.Cleanup(func() { deps.db.Close() })

		emp := activeEmployee(tenantID, applicantUserID)
		l := &leave.LeaveRequest{
			ID:             uuid.New(),
			TenantID:       tenantID,
			EmployeeID:     emp.ID,
			LeaveType:      leave.TypeSick,
			StartDate:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
			TotalDays:      2,
			WorkflowStatus: status,
		}
		deps.repo.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*leave.LeaveRequest, error) {
			return l, nil
		}
		deps.employees.findByIDAndTenantFn = func(ctx context.Context, tid, id string) (*employee.Employee, error) {
			return emp, nil
		}
		return deps, l
	}

	t.Run("manager rejects from manager queue with comment", func(t *testing.T) {
		deps, l := setup(t, leave.WorkflowPendingPM)

		var recorded *leave.Approval
		deps.repo.applyDecisionFn = func(ctx context.Context, tid, id string, from leave.WorkflowStatus, approval *leave.Approval) (bool, error) {
			recorded = approval
			return true, nil
		}

		resp, err := deps.service.Reject(ctx, tenantID.String(), pm, l.ID.String(), "project deadline")
		assert.NoError(t, err)
		assert.Equal(t, string(leave.StatusRejected), resp.Status)
		assert.Equal(t, string(leave.WorkflowRejected), resp.WorkflowStatus)
		assert.Equal(t, leave.ActionReject, recorded.Action)
		assert.Equal(t, "project deadline", recorded.Comment)
		assert.Equal(t, events.LeaveRejected, deps.dispatcher.events[0].EventType)
	})

	t.Run("manager cannot reject once escalated", func(t *testing.T) {
		deps, l := setup(t, leave.WorkflowPendingHR)

		_, err := deps.service.Reject(ctx, tenantID.String(), pm, l.ID.String(), "")
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApprovalAction)
	})

	t.Run("hr rejects from either queue", func(t *testing.T) {
		for _, status := range []leave.WorkflowStatus{leave.WorkflowPendingPM, leave.WorkflowPendingHR} {
			deps, l := setup(t, status)

			resp, err := deps.service.Reject(ctx, tenantID.String(), hr, l.ID.String(), "")
			assert.NoError(t, err, string(status))
			assert.Equal(t, string(leave.WorkflowRejected), resp.WorkflowStatus)
		}
	})
}

func TestLeaveService_PendingApprovals(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New().String()

	t.Run("hr sees both queues including legacy label", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		var queried []leave.WorkflowStatus
		deps.repo.findByStatusesFn = func(ctx context.Context, tid string, statuses []leave.WorkflowStatus) ([]leave.LeaveRequest, error) {
			queried = statuses
			return nil, nil
		}

		hr := identity.Principal{UserID: uuid.New().String(), Roles: []string{"HR"}}
		_, err := deps.service.PendingApprovals(ctx, tenantID, hr)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []leave.WorkflowStatus{
			leave.WorkflowPendingPM,
			leave.WorkflowPendingHR,
			leave.WorkflowPendingApproval,
		}, queried)
	})

	t.Run("manager sees only the manager queue", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		var queried []leave.WorkflowStatus
		deps.repo.findByStatusesFn = func(ctx context.Context, tid string, statuses []leave.WorkflowStatus) ([]leave.LeaveRequest, error) {
			queried = statuses
			return nil, nil
		}

		pm := identity.Principal{UserID: uuid.New().String(), Roles: []string{"Project Manager"}}
		_, err := deps.service.PendingApprovals(ctx, tenantID, pm)
		assert.NoError(t, err)
		assert.Equal(t, []leave.WorkflowStatus{leave.WorkflowPendingPM}, queried)
	})

	t.Run("plain employee is forbidden", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		plain := identity.Principal{UserID: uuid.New().String(), Roles: []string{"Employee"}}
		_, err := deps.service.PendingApprovals(ctx, tenantID, plain)
		assert.ErrorIs(t, err, leaveerrors.ErrNotApprover)
	})
}

func TestLeaveService_Stats(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	actor := identity.Principal{UserID: userID.String(), Roles: []string{"Employee"}}

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	deps.employees.findByUserAndTenantFn = func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
		return activeEmployee(tenantID, userID), nil
	}
	deps.repo.sumDaysByTypeFn = func(ctx context.Context, tid, eid string, year int) (map[leave.Type]float64, error) {
		assert.Equal(t, 2026, year)
		return map[leave.Type]float64{leave.TypeCasual: 4, leave.TypeFloating: 7}, nil
	}

	resp, err := deps.service.Stats(ctx, tenantID.String(), actor, 2026)
	assert.NoError(t, err)
	assert.Equal(t, 2026, resp.Year)
	assert.Len(t, resp.Balances, 3)

	byType := map[string]leave.LeaveBalance{}
	for _, b := range resp.Balances {
		byType[b.LeaveType] = b
	}

	assert.Equal(t, 12.0, byType["Casual"].Allocated)
	assert.Equal(t, 4.0, byType["Casual"].Used)
	assert.Equal(t, 8.0, byType["Casual"].Available)
	assert.Equal(t, 6.0, byType["Sick"].Allocated)
	assert.Equal(t, 0.0, byType["Sick"].Used)
	// Used beyond allocation floors at zero, never negative.
	assert.Equal(t, 5.0, byType["Floating"].Allocated)
	assert.Equal(t, 0.0, byType["Floating"].Available)
}
