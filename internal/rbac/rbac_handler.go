package rbac

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	rbacerrors "go-hrms/internal/rbac/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"
)

type Handler struct {
	repo   Repository
	logger *zap.Logger
}

func NewHandler(repo Repository, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{repo: repo, logger: l}
}

func (h *Handler) writeError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ListRoles(c *gin.Context) {
	ctx := c.Request.Context()
	principal, _ := contextutil.GetPrincipal(ctx)

	roles, err := h.repo.ListRoles(ctx, principal.TenantID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		perms, err := h.repo.GetPermissionsByRoleID(ctx, role.ID.String())
		if err != nil {
			h.writeError(c, err)
			return
		}
		codes := make([]string, len(perms))
		for i, p := range perms {
			codes[i] = p.Code
		}
		resp = append(resp, RoleResponse{
			ID:                role.ID.String(),
			Name:              role.Name,
			Description:       role.Description,
			AccessibleModules: role.AccessibleModules,
			Permissions:       codes,
		})
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPermissions(c *gin.Context) {
	perms, err := h.repo.ListPermissions(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = PermissionResponse{
			ID:       p.ID.String(),
			Code:     p.Code,
			Label:    p.Label,
			Category: p.Category,
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateRolePermissions(c *gin.Context) {
	ctx := c.Request.Context()
	principal, _ := contextutil.GetPrincipal(ctx)
	roleID := c.Param("id")

	if _, err := uuid.Parse(roleID); err != nil {
		h.writeError(c, rbacerrors.ErrInvalidRoleID)
		return
	}

	var req UpdateRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, apperror.MapValidationError(err))
		return
	}

	role, err := h.repo.GetRoleByID(ctx, principal.TenantID, roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.writeError(c, rbacerrors.ErrRoleNotFound)
			return
		}
		h.writeError(c, err)
		return
	}

	if err := h.repo.UpdateRolePermissions(ctx, role.ID.String(), req.Permissions); err != nil {
		h.logger.Error("update role permissions failed",
			zap.String("role_id", roleID),
			zap.Error(err),
		)
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}
