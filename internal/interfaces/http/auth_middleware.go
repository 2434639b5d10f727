package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/despensa-api/pkg/jwt"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

// LocalUserID clave de c.Locals con el usuario autenticado.
const LocalUserID = "user_id"

// Códigos de rechazo del middleware de autenticación.
const (
	CodeMissingToken = "MISSING_TOKEN"
	CodeInvalidToken = "INVALID_TOKEN"
)

// bearerToken extrae el token de "Authorization: Bearer <token>". Si falla devuelve el código
// y el mensaje del rechazo.
func bearerToken(header string) (token, code, msg string) {
	if header == "" {
		return "", CodeMissingToken, "Authorization header requerido"
	}
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", CodeInvalidToken, "formato: Bearer <token>"
	}
	token = strings.TrimSpace(rest)
	if token == "" {
		return "", CodeMissingToken, "token vacío"
	}
	return token, "", ""
}

// AuthMiddleware valida el JWT, deja el usuario en c.Locals y añade user_id al logger
// de la petición, de modo que todo lo registrado aguas abajo queda atribuido.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		token, code, msg := bearerToken(c.Get(fiber.HeaderAuthorization))
		if code == "" {
			userID, err := jwt.Parse(jwtSecret, token)
			if err == nil && userID != "" {
				c.Locals(LocalUserID, userID)
				rl := logger.FromContext(ctx).With().Str("user_id", userID).Logger()
				c.SetUserContext(logger.WithContext(ctx, rl))
				return c.Next()
			}
			code, msg = CodeInvalidToken, "token inválido o expirado"
		}
		zl := logger.FromContext(ctx)
		zl.Debug().Str("code", code).Msg("autenticación rechazada")
		return errorJSON(c, fiber.StatusUnauthorized, code, msg)
	}
}

// GetUserID devuelve el usuario autenticado, o "" fuera de las rutas protegidas.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}
