package http

import "github.com/gofiber/fiber/v2"

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func Health(service string, modeFn func() string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		mode := ""
		if modeFn != nil {
			mode = modeFn()
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service, "candidate_mode": mode})
	}
}
