package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/romero-panificados/inventario-api/internal/application/audit"
	"github.com/romero-panificados/inventario-api/internal/domain"
)

// Límites de espera por tipo de consulta.
var (
	ListTimeout   = 8 * time.Second
	LookupTimeout = 4 * time.Second
)

// withTimeout ejecuta fn con un contexto limitado a d y compite contra ese plazo.
// Perder la carrera devuelve domain.ErrTimeout; el contexto cancelado llega al driver.
// fn no debe usar *fiber.Ctx: corre en otra goroutine.
func withTimeout[T any](c *fiber.Ctx, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(c.UserContext(), d)
	defer cancel()

	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	select {
	case r := <-ch:
		if errors.Is(r.err, context.DeadlineExceeded) {
			r.err = domain.ErrTimeout
		}
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, domain.ErrTimeout
	}
}

// clientIP resuelve la IP del cliente: X-Forwarded-For, X-Real-IP, socket, Fiber.
func clientIP(c *fiber.Ctx) string {
	remote := ""
	if addr := c.Context().RemoteAddr(); addr != nil {
		remote = addr.String()
	}
	return utils.CopyString(audit.ClientIP(c.Get(fiber.HeaderXForwardedFor), c.Get("X-Real-IP"), remote, c.IP()))
}

// param copia el parámetro de ruta: el valor se usa en goroutines y en la auditoría.
func param(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Params(name))
}

// query copia el parámetro de consulta.
func query(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Query(name))
}

// auditRecorder contrato del escritor de auditoría; lo implementa *audit.Recorder.
type auditRecorder interface {
	Record(ev audit.Event) bool
}

// recordAudit encola un registro con el usuario del token y la IP del cliente.
func recordAudit(rec auditRecorder, c *fiber.Ctx, accion, entidad, entidadID string, detalles any) {
	if rec == nil {
		return
	}
	ev := audit.Event{
		Accion:   accion,
		Entidad:  entidad,
		Detalles: detalles,
		IP:       clientIP(c),
	}
	if uid := GetUserID(c); uid != "" {
		ev.UsuarioID = &uid
	}
	if entidadID != "" {
		id := utils.CopyString(entidadID)
		ev.EntidadID = &id
	}
	rec.Record(ev)
}
