package leaveerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrHalfDaySpansDays = apperror.New(
		apperror.CodeInvalidInput,
		"half-day leave must start and end on the same date",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeInvalidInput,
		"leave already exists in overlapping period",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"requested days exceed remaining balance for this leave type",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrEmployeeProfileMissing = apperror.New(
		apperror.CodeNotFound,
		"no employee profile for this user",
		http.StatusNotFound,
	)
	ErrNotApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not an approver in this tenant",
		http.StatusForbidden,
	)
	ErrInvalidApprovalAction = apperror.New(
		apperror.CodeInvalidState,
		"invalid approval action for current status or role",
		http.StatusBadRequest,
	)
	ErrApprovalConflict = apperror.New(
		apperror.CodeConflict,
		"request was decided concurrently, refresh and retry",
		http.StatusConflict,
	)
)
