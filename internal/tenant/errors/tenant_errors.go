package tenanterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrTenantNotFound = apperror.New(
		apperror.CodeNotFound,
		"tenant not found",
		http.StatusNotFound,
	)
	ErrTenantSuspended = apperror.New(
		apperror.CodeTenantSuspended,
		"your organization's account is suspended, contact support to restore access",
		http.StatusForbidden,
	)
	ErrTenantExpired = apperror.New(
		apperror.CodeTenantExpired,
		"your organization's subscription has expired, renew the plan to restore access",
		http.StatusForbidden,
	)
	ErrSuperAdminScoped = apperror.New(
		apperror.CodeForbidden,
		"super admin accounts cannot access tenant-scoped resources",
		http.StatusForbidden,
	)
	ErrTenantIDMissing = apperror.New(
		apperror.CodeUnauthorized,
		"tenant id missing from authentication context",
		http.StatusUnauthorized,
	)
	ErrTenantNameTaken = apperror.New(
		apperror.CodeConflict,
		"a tenant with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidTenantID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid tenant id",
		http.StatusBadRequest,
	)
	ErrInvalidTenantStatus = apperror.New(
		apperror.CodeInvalidInput,
		"status must be one of active, suspended, trial, expired",
		http.StatusBadRequest,
	)
)
