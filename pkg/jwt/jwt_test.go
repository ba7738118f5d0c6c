package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_DevuelveUsuarioYRol(t *testing.T) {
	token, err := Generate("secreto", "user-1", "bodeguero", "romero", 10)
	require.NoError(t, err)

	userID, role, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", "user-1", "admin", "romero", 10)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate("secreto", "user-1", "admin", "romero", -1)
	require.NoError(t, err)

	_, _, err = Parse("secreto", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "admin", "romero", 10)
	assert.Error(t, err)
}
