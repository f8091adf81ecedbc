package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/auth"
)

// LocalCaller key de c.Locals donde queda el auth.Caller de la petición.
const LocalCaller = "caller"

// TokenVerifier valida un Bearer token (auth.AuthUseCase lo implementa).
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// AuthMiddleware resuelve la identidad una vez por petición y nunca corta la cadena:
// sin header o con formato inválido la petición sigue anónima; con token inválido
// sigue anónima pero recordando el error para los resolvers que exigen identidad.
func AuthMiddleware(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalCaller, resolveCaller(v, c.Get(fiber.HeaderAuthorization)))
		return c.Next()
	}
}

func resolveCaller(v TokenVerifier, header string) auth.Caller {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return auth.Caller{}
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return auth.Caller{}
	}
	id, err := v.Verify(token)
	if err != nil {
		return auth.Caller{TokenErr: err}
	}
	return auth.Caller{Identity: &id}
}

// GetCaller devuelve el Caller de la petición (anónimo si el middleware no corrió).
func GetCaller(c *fiber.Ctx) auth.Caller {
	caller, _ := c.Locals(LocalCaller).(auth.Caller)
	return caller
}
