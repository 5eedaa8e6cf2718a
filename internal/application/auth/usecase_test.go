package auth_test

import (
	"context"
	"testing"

	"github.com/jhoicas/retail-backoffice/internal/application/auth"
	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/retail-backoffice/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: "s3cr3t", ExpMinutes: 60, Issuer: "test"})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	u, err := uc.CreateUser(ctx, dto.RegisterRequest{Email: " Admin@Tienda.co ", Password: "clave-segura", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin@tienda.co", u.Email)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@tienda.co", Password: "clave-segura"})
	require.NoError(t, err)
	claims, err := jwt.Parse("s3cr3t", res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestRegister_Errores(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.CreateUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "suficiente", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "suficiente"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "suficiente"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Errores(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.co", Password: "suficiente"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@b.co", Password: "suficiente"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_AutoRegistroSoloVendedor(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	for _, role := range []string{entity.RoleAdmin, entity.RoleBodeguero, "root"} {
		_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: role + "@b.co", Password: "suficiente", Role: role})
		assert.ErrorIs(t, err, domain.ErrForbidden, role)
	}
	// el rechazo no deja el usuario creado
	_, err := uc.Login(ctx, dto.LoginRequest{Email: "admin@b.co", Password: "suficiente"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "v@b.co", Password: "suficiente", Role: entity.RoleVendedor})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)

	u, err = uc.CreateUser(ctx, dto.RegisterRequest{Email: "bodega@b.co", Password: "suficiente", Role: entity.RoleBodeguero})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, u.Role)
}

func TestEnsureAdmin(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "root@tienda.co", "clave-segura")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "ROOT@tienda.co", "otra-clave-1")
	require.NoError(t, err)
	assert.False(t, created, "no recrea un email existente")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "root@tienda.co", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.User.Role)
}
