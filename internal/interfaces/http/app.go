package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/pkg/logger"
)

// NewApp crea la app Fiber de la API.
// Immutable: los strings de la petición siguen válidos fuera del handler
// (auditoría asíncrona, claves del limitador, consultas con timeout).
func NewApp(name string, log *logger.Logger) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
}
