package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romero-panificados/inventario-api/internal/application/audit"
	"github.com/romero-panificados/inventario-api/internal/domain/entity"
	"github.com/romero-panificados/inventario-api/pkg/logger"
)

type capturingRecorder struct {
	events []audit.Event
}

func (r *capturingRecorder) Record(ev audit.Event) bool {
	r.events = append(r.events, ev)
	return true
}

// Sin Immutable, Fiber reutiliza los buffers de la petición: los valores auditados
// deben seguir intactos después de atender otras peticiones.
func TestRecordAudit_CopiaValoresDeLaPeticion(t *testing.T) {
	rec := &capturingRecorder{}
	app := fiber.New()
	app.Delete("/items/:id", func(c *fiber.Ctx) error {
		c.Locals(LocalUserID, "u1")
		recordAudit(rec, c, entity.AuditDelete, "item", param(c, "id"), nil)
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})

	ids := []string{"aaaaaaaa", "bbbbbbbb", "cccccccc"}
	for _, id := range ids {
		req := httptest.NewRequest(fiber.MethodDelete, "/items/"+id, nil)
		req.Header.Set(fiber.HeaderXForwardedFor, "10.0.0.1")
		_, err := app.Test(req, -1)
		require.NoError(t, err)

		req = httptest.NewRequest(fiber.MethodGet, "/items/zzzzzzzz", nil)
		req.Header.Set(fiber.HeaderXForwardedFor, "66.66.66.66")
		_, err = app.Test(req, -1)
		require.NoError(t, err)
	}

	require.Len(t, rec.events, len(ids))
	for i, ev := range rec.events {
		require.NotNil(t, ev.EntidadID)
		assert.Equal(t, ids[i], *ev.EntidadID)
		assert.Equal(t, "10.0.0.1", ev.IP)
		require.NotNil(t, ev.UsuarioID)
		assert.Equal(t, "u1", *ev.UsuarioID)
	}
}

func TestNewApp_EsInmutable(t *testing.T) {
	app := NewApp("inventario-test", logger.Nop())
	assert.True(t, app.Config().Immutable)
}
