package rbacerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
	ErrUnknownPermission = apperror.New(
		apperror.CodeInvalidInput,
		"one or more permission codes are unknown",
		http.StatusBadRequest,
	)
)
