package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
	"github.com/romero-panificados/inventario-api/pkg/logger"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to []string, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

func seedUsers(t *testing.T, store *memory.Store) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "a1", Email: "jefe@romero.co", Role: entity.RoleAdmin, Activo: true}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "a2", Email: "viejo@romero.co", Role: entity.RoleAdmin, Activo: false}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "b1", Email: "bodega@romero.co", Role: entity.RoleBodeguero, Activo: true}))
}

func TestMovementRegistered_EnviaAAdministradoresActivos(t *testing.T) {
	store := memory.NewStore()
	seedUsers(t, store)
	mailer := &mockMailer{}
	mailer.On("Send", []string{"jefe@romero.co"}, "[Inventario] EGRESO de 4 unidad(es) - REF-001", mock.Anything).Return(nil)
	n := NewAdminNotifier(store.Users(), mailer, logger.Nop(), nil, time.Second)

	mov := &entity.Movement{ID: "m1", Referencia: "REF-001", Tipo: entity.MovementEgreso, Cantidad: 4, Fecha: time.Now()}
	n.MovementRegistered(mov, &entity.Product{Nombre: "Rodamiento", Existencia: 6})
	n.Wait()

	mailer.AssertExpectations(t)
}

func TestMovementRegistered_ErrorDeCorreoNoSePropaga(t *testing.T) {
	store := memory.NewStore()
	seedUsers(t, store)
	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp caído"))
	n := NewAdminNotifier(store.Users(), mailer, logger.Nop(), nil, time.Second)

	n.MovementRegistered(&entity.Movement{ID: "m1", Tipo: entity.MovementIngreso, Cantidad: 1}, &entity.Product{})
	n.Wait()

	mailer.AssertNumberOfCalls(t, "Send", 1)
}
