package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/rbac"
	"go-hrms/internal/user"
)

// tokenTTL is the fixed validity window; claims are treated as verified
// facts for the whole window, so keep it short.
const tokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (AuthResponse, error)
}

type service struct {
	users  user.Repository
	rbac   rbac.Service
	logger *zap.Logger
	now    func() time.Time
}

func NewService(users user.Repository, rbacService rbac.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, rbac: rbacService, logger: l, now: time.Now}
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if u.Status != user.StatusActive {
		return AuthResponse{}, autherrors.ErrUserInactive
	}

	tenantID := ""
	var roles, permissions []string
	if u.TenantID != nil {
		tenantID = u.TenantID.String()
		roles, permissions, err = s.rbac.PermissionsForUser(ctx, tenantID, u.ID.String())
		if err != nil {
			s.logger.Error("resolve permissions failed",
				zap.String("user_id", u.ID.String()),
				zap.String("tenant_id", tenantID),
				zap.Error(err),
			)
			return AuthResponse{}, err
		}
	}

	expiresAt := s.now().Add(tokenTTL)
	token, err := s.signToken(u.ID.String(), tenantID, roles, permissions, u.IsSuperAdmin, u.IsCompanyAdmin, expiresAt)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", u.ID.String()),
		zap.String("tenant_id", tenantID),
		zap.Strings("roles", roles),
	)

	return AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		User: UserInfo{
			ID:             u.ID.String(),
			TenantID:       tenantID,
			Email:          u.Email,
			FullName:       u.FullName,
			Roles:          roles,
			Permissions:    permissions,
			IsSuperAdmin:   u.IsSuperAdmin,
			IsCompanyAdmin: u.IsCompanyAdmin,
		},
	}, nil
}

func (s *service) signToken(
	userID, tenantID string,
	roles, permissions []string,
	isSuperAdmin, isCompanyAdmin bool,
	expiresAt time.Time,
) (string, error) {
	claims := jwt.MapClaims{
		"user_id":          userID,
		"tenant_id":        tenantID,
		"roles":            roles,
		"permissions":      permissions,
		"is_super_admin":   isSuperAdmin,
		"is_company_admin": isCompanyAdmin,
		"iat":              s.now().Unix(),
		"exp":              expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
