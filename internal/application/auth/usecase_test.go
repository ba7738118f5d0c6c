package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
	"github.com/romero-panificados/inventario-api/pkg/jwt"
)

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	uc := NewAuthUseCase(store.Users(), JWTConfig{Secret: "secreto", ExpMinutes: 10, Issuer: "test"})
	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "admin@romero.co", Password: "clave-segura", Nombre: "Admin", Rol: "admin",
	})
	require.NoError(t, err)
	return uc
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := newAuth(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ADMIN@romero.co", Password: "clave-segura"})

	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Usuario.Rol)
	userID, role, err := jwt.Parse("secreto", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Usuario.ID, userID)
	assert.Equal(t, "admin", role)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@romero.co", Password: "otra"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailDesconocidoMismoError(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@romero.co", Password: "clave-segura"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "admin@romero.co", Password: "clave-segura", Rol: "tecnico",
	})

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateUser_RolInvalido(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "v@romero.co", Password: "clave-segura", Rol: "vendedor",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
