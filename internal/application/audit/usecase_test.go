package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/application/dto"
	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
)

func TestListarAuditoria_UsuarioNoUUIDEsInvalido(t *testing.T) {
	repo := new(mockAuditRepo)
	uc := NewQueryUseCase(repo)

	_, err := uc.List(context.Background(), dto.AuditListRequest{Usuario: "abc"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListarAuditoria_FiltraPorUsuario(t *testing.T) {
	repo := new(mockAuditRepo)
	uid := "6f1c2d4e-8a9b-4c3d-9e0f-112233445566"
	repo.On("List", mock.Anything, mock.MatchedBy(func(f entity.AuditFilter) bool {
		return f.UsuarioID == uid && f.Accion == entity.AuditLogin
	})).Return([]*entity.AuditEntry{{ID: "a1", UsuarioID: ptr(uid), Accion: entity.AuditLogin}}, 1, nil)
	uc := NewQueryUseCase(repo)

	out, err := uc.List(context.Background(), dto.AuditListRequest{Usuario: " " + uid + " ", Accion: "login"})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Page.Total)
	repo.AssertExpectations(t)
}
