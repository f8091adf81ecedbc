package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/crm-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName  string
	Schema   *graphqlgo.Schema
	Verifier TokenVerifier
	Logger   *logger.Logger
}

// NewApp crea la app Fiber con recover y log de peticiones.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log.Component("http")))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	gql := NewGraphQLHandler(deps.Schema)
	app.Post("/graphql", AuthMiddleware(deps.Verifier), gql.Serve)
}
