package maintenance

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/domain"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/internal/infrastructure/memory"
	"github.com/romero-panificados/inventario-api/pkg/logger"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to []string, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

var bogota = time.FixedZone("COT", -5*3600)

func seedDue(t *testing.T, store *memory.Store, id, estado string, vence time.Time) {
	t.Helper()
	require.NoError(t, store.Maintenances().Create(context.Background(), &entity.Maintenance{
		ID: id, ProductoID: "p1", Equipo: "Horno " + id, Tipo: entity.MaintenancePreventivo,
		Estado: estado, FechaInstalacion: vence.AddDate(0, -1, 0), FechaVencimiento: &vence,
	}))
}

func newJob(store *memory.Store, mailer *mockMailer, now time.Time, recipient string) *DueAlertJob {
	return NewDueAlertJob(
		DueAlertConfig{Recipient: recipient, Hour: 7, Location: bogota, Timeout: time.Second},
		store.Maintenances(), mailer, fixedClock{now}, logger.Nop(), nil,
	)
}

func TestNextRun_MismoDiaOSiguiente(t *testing.T) {
	j := newJob(memory.NewStore(), &mockMailer{}, time.Time{}, "x@y.co")

	antes := time.Date(2026, 3, 10, 6, 30, 0, 0, bogota)
	assert.Equal(t, time.Date(2026, 3, 10, 7, 0, 0, 0, bogota), j.NextRun(antes))

	exacto := time.Date(2026, 3, 10, 7, 0, 0, 0, bogota)
	assert.Equal(t, time.Date(2026, 3, 11, 7, 0, 0, 0, bogota), j.NextRun(exacto))
}

func TestWindow_DiaCalendarioSiguiente(t *testing.T) {
	j := newJob(memory.NewStore(), &mockMailer{}, time.Time{}, "x@y.co")

	from, to := j.Window(time.Date(2026, 3, 31, 23, 59, 0, 0, bogota))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, bogota), from)
	assert.Equal(t, time.Date(2026, 4, 2, 0, 0, 0, 0, bogota), to)
}

func TestRunOnce_EnviaUnSoloCorreoConLosVencimientosDeManana(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, bogota)
	seedDue(t, store, "1", entity.MaintenanceActivo, time.Date(2026, 3, 11, 9, 0, 0, 0, bogota))
	seedDue(t, store, "2", entity.MaintenanceActivo, time.Date(2026, 3, 11, 23, 0, 0, 0, bogota))
	seedDue(t, store, "3", entity.MaintenanceCompletado, time.Date(2026, 3, 11, 10, 0, 0, 0, bogota))
	seedDue(t, store, "4", entity.MaintenanceActivo, time.Date(2026, 3, 12, 0, 0, 0, 0, bogota))
	seedDue(t, store, "5", entity.MaintenanceActivo, time.Date(2026, 3, 10, 20, 0, 0, 0, bogota))

	mailer := &mockMailer{}
	mailer.On("Send", []string{"planta@romero.co"}, mock.MatchedBy(func(s string) bool {
		return strings.Contains(s, "2 mantenimiento(s)") && strings.Contains(s, "11/03/2026")
	}), mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Horno 1") && strings.Contains(body, "Horno 2") && !strings.Contains(body, "Horno 3")
	})).Return(nil).Once()

	n, err := newJob(store, mailer, now, "planta@romero.co").RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	mailer.AssertExpectations(t)
}

func TestRunOnce_SinVencimientosNoEnvia(t *testing.T) {
	mailer := &mockMailer{}
	n, err := newJob(memory.NewStore(), mailer, time.Now(), "planta@romero.co").RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunOnce_SinDestinatarioSeOmite(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, bogota)
	seedDue(t, store, "1", entity.MaintenanceActivo, now.Add(24*time.Hour))
	mailer := &mockMailer{}

	n, err := newJob(store, mailer, now, "").RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunOnce_ErrorDelCorreoSeReportaSinReintento(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, bogota)
	seedDue(t, store, "1", entity.MaintenanceActivo, now.Add(24*time.Hour))
	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp caído")).Once()

	_, err := newJob(store, mailer, now, "planta@romero.co").RunOnce(context.Background())
	require.Error(t, err)
	mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestRunOnce_Timeout(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, bogota)
	seedDue(t, store, "1", entity.MaintenanceActivo, now.Add(24*time.Hour))
	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).After(200 * time.Millisecond).Return(nil)

	j := NewDueAlertJob(
		DueAlertConfig{Recipient: "planta@romero.co", Hour: 7, Location: bogota, Timeout: 20 * time.Millisecond},
		store.Maintenances(), mailer, fixedClock{now}, logger.Nop(), nil,
	)
	_, err := j.RunOnce(context.Background())
	assert.ErrorIs(t, err, domain.ErrTimeout)
}

func TestStartStop_NoBloquea(t *testing.T) {
	j := newJob(memory.NewStore(), &mockMailer{}, time.Now(), "planta@romero.co")
	j.Start(context.Background())
	j.Start(context.Background())
	j.Stop()
	j.Stop()
}
