package employee

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	employeeerrors "go-hrms/internal/employee/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{repo: repo, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = employeeerrors.ErrEmployeeNotFound
	}
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Me returns the caller's own HR profile.
func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	principal, _ := contextutil.GetPrincipal(ctx)

	e, err := h.repo.FindByUserAndTenant(ctx, principal.TenantID, principal.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, mapToResponse(*e), nil)
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	principal, _ := contextutil.GetPrincipal(ctx)

	employees, err := h.repo.FindAllByTenant(ctx, principal.TenantID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}

	response.Success(c, http.StatusOK, resp, nil)
}
