package http

import (
	"github.com/gofiber/fiber/v2"
	graphqlgo "github.com/graph-gophers/graphql-go"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
)

// graphQLRequest cuerpo estándar de una operación GraphQL sobre HTTP.
type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler ejecuta operaciones contra el schema.
type GraphQLHandler struct {
	schema *graphqlgo.Schema
}

// NewGraphQLHandler construye el handler.
func NewGraphQLHandler(schema *graphqlgo.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

// Serve POST /graphql. Los errores de la operación van en "errors" con HTTP 200;
// solo un cuerpo ilegible devuelve 400.
func (h *GraphQLHandler) Serve(c *fiber.Ctx) error {
	var req graphQLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "query requerido"})
	}
	ctx := auth.WithCaller(c.UserContext(), GetCaller(c))
	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	return c.Status(fiber.StatusOK).JSON(resp)
}
