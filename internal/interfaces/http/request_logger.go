package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/romero-panificados/inventario-api/pkg/logger"
)

// RequestLogger registra método, ruta, status, latencia e IP de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = l.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", clientIP(c)).
			Msg("request")
		return err
	}
}
