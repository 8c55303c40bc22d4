package leave_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-hrms/internal/employee"
	"go-hrms/internal/identity"
	"go-hrms/internal/leave"
)

func TestLeaveService_StatsCache(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()
	actor := identity.Principal{UserID: userID.String(), Roles: []string{"Employee"}}

	emp := &employee.Employee{
		ID:             uuid.New(),
		TenantID:       tenantID,
		UserID:         userID,
		EmploymentType: employee.EmploymentFullTime,
		EmployeeStatus: employee.StatusActive,
		DateOfJoining:  time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	key := fmt.Sprintf("leave:stats:%s:%s:%d", tenantID, emp.ID, 2026)

	expected := leave.LeaveStatsResponse{
		Year: 2026,
		Balances: []leave.LeaveBalance{
			{LeaveType: "Casual", Allocated: 12, Used: 4, Available: 8},
			{LeaveType: "Sick", Allocated: 6, Used: 0, Available: 6},
			{LeaveType: "Floating", Allocated: 5, Used: 0, Available: 5},
		},
	}
	payload, err := json.Marshal(expected)
	assert.NoError(t, err)

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeLeaveRepository{}
	computed := 0
	repo.sumDaysByTypeFn = func(ctx context.Context, tid, eid string, year int) (map[leave.Type]float64, error) {
		computed++
		return map[leave.Type]float64{leave.TypeCasual: 4}, nil
	}

	employees := &fakeEmployeeRepository{
		findByUserAndTenantFn: func(ctx context.Context, tid, uid string) (*employee.Employee, error) {
			return emp, nil
		},
	}

	svc := leave.NewService(db, repo, employees, &fakeUserRepository{}, &fakeRoleDirectory{}, &fakeDispatcher{}, rdb)

	// First call misses the cache, computes, and writes back.
	redisMock.ExpectGet(key).RedisNil()
	redisMock.ExpectSet(key, payload, 10*time.Minute).SetVal("OK")

	got, err := svc.Stats(ctx, tenantID.String(), actor, 2026)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.Equal(t, 1, computed)

	// Second call is served from the cache without touching the repository.
	redisMock.ExpectGet(key).SetVal(string(payload))

	got, err = svc.Stats(ctx, tenantID.String(), actor, 2026)
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.Equal(t, 1, computed)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}
