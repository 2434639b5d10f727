package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despensa-api/pkg/logger"
)

// HeaderRequestID cabecera de correlación; se respeta la del cliente o se genera una.
const HeaderRequestID = "X-Request-ID"

// RequestLogger deja en el contexto de usuario un logger con request_id, método y ruta,
// y al terminar registra estado y latencia con ese logger (que AuthMiddleware amplía con user_id).
// Los errores devueltos por la cadena se resuelven con el ErrorHandler de la app
// antes de leer el estado final.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(HeaderRequestID, reqID)

		rl := log.With().
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(logger.WithContext(c.UserContext(), rl))

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		zl := logger.FromContext(c.UserContext())
		ev := zl.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = zl.Error()
		case status >= fiber.StatusBadRequest:
			ev = zl.Warn()
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return nil
	}
}
