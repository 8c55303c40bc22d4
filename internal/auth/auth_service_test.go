package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-hrms/internal/auth"
	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/user"
)

type fakeUserRepository struct {
	byEmail map[string]*user.User
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByRolesAndTenant(ctx context.Context, tenantID string, roleNames []string) ([]user.User, error) {
	return nil, nil
}

type fakeRBACService struct {
	roles       []string
	permissions []string
	err         error
}

func (f *fakeRBACService) LoadTenantPolicy(ctx context.Context, tenantID string) error { return nil }

func (f *fakeRBACService) PermissionsForUser(ctx context.Context, tenantID, userID string) ([]string, []string, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.roles, f.permissions, nil
}

func (f *fakeRBACService) HasModuleAccess(ctx context.Context, tenantID string, roleNames []string, module string) (bool, error) {
	return true, nil
}

func hashedPassword(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	tenantID := uuid.New()
	activeUser := func() *user.User {
		return &user.User{
			ID:       uuid.New(),
			TenantID: &tenantID,
			Email:    "pat@acme.test",
			Password: hashedPassword(t, "s3cret"),
			FullName: "Pat Doe",
			Status:   user.StatusActive,
		}
	}

	t.Run("issues a 24h token with embedded claims", func(t *testing.T) {
		u := activeUser()
		users := &fakeUserRepository{byEmail: map[string]*user.User{u.Email: u}}
		rbacSvc := &fakeRBACService{
			roles:       []string{"HR"},
			permissions: []string{"leave:approve", "leave:read"},
		}

		svc := auth.NewService(users, rbacSvc)
		before := time.Now()

		resp, err := svc.Login(ctx, u.Email, "s3cret")
		assert.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, []string{"HR"}, resp.User.Roles)
		assert.Equal(t, tenantID.String(), resp.User.TenantID)

		token, err := jwt.Parse(resp.AccessToken, func(tk *jwt.Token) (any, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		assert.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, u.ID.String(), claims["user_id"])
		assert.Equal(t, tenantID.String(), claims["tenant_id"])
		assert.Equal(t, false, claims["is_super_admin"])
		assert.Equal(t, false, claims["is_company_admin"])

		perms, ok := claims["permissions"].([]any)
		assert.True(t, ok)
		assert.Len(t, perms, 2)

		exp := time.Unix(int64(claims["exp"].(float64)), 0)
		assert.WithinDuration(t, before.Add(24*time.Hour), exp, time.Minute)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		u := activeUser()
		users := &fakeUserRepository{byEmail: map[string]*user.User{u.Email: u}}

		svc := auth.NewService(users, &fakeRBACService{})
		_, err := svc.Login(ctx, u.Email, "nope")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email is invalid credentials", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{byEmail: map[string]*user.User{}}, &fakeRBACService{})
		_, err := svc.Login(ctx, "ghost@acme.test", "s3cret")
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("disabled account is forbidden", func(t *testing.T) {
		u := activeUser()
		u.Status = user.StatusDisabled
		users := &fakeUserRepository{byEmail: map[string]*user.User{u.Email: u}}

		svc := auth.NewService(users, &fakeRBACService{})
		_, err := svc.Login(ctx, u.Email, "s3cret")
		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})

	t.Run("super admin without tenant skips role resolution", func(t *testing.T) {
		u := activeUser()
		u.TenantID = nil
		u.IsSuperAdmin = true
		users := &fakeUserRepository{byEmail: map[string]*user.User{u.Email: u}}
		rbacSvc := &fakeRBACService{err: assert.AnError} // must never be consulted

		svc := auth.NewService(users, rbacSvc)
		resp, err := svc.Login(ctx, u.Email, "s3cret")
		assert.NoError(t, err)
		assert.True(t, resp.User.IsSuperAdmin)
		assert.Empty(t, resp.User.TenantID)
		assert.Empty(t, resp.User.Roles)
	})
}
