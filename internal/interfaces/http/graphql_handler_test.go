package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/orders"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/jhoicas/crm-api/internal/interfaces/graphql"
	apphttp "github.com/jhoicas/crm-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type gqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions"`
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []gqlError                 `json:"errors"`
}

// newGraphQLApp arma la API completa sobre el backend en memoria.
func newGraphQLApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	clients := memory.NewClientRepository(store)

	authUC := auth.NewAuthUseCase(memory.NewUserRepository(store), auth.JWTConfig{
		Secret: testJWTSecret, TTL: time.Hour, Issuer: testIssuer,
	})
	resolver := graphql.NewResolver(graphql.Deps{
		AuthUC:    authUC,
		ProductUC: usecase.NewProductUseCase(products, usecase.DefaultSearchLimit),
		ClientUC:  usecase.NewClientUseCase(clients),
		OrderUC:   orders.NewUseCase(memory.NewOrderRepository(store), clients, products, orders.PolicyKeep, nil),
		ReportUC:  analytics.NewReportUseCase(memory.NewReportRepository(store), repository.RankTop),
	})
	schema, err := graphql.NewSchema(resolver)
	require.NoError(t, err)

	return apphttp.NewApp(apphttp.RouterDeps{AppName: "crm-api-test", Schema: schema, Verifier: authUC})
}

func postGraphQL(t *testing.T, app *fiber.App, token, query string) gqlResponse {
	t.Helper()
	payload, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out gqlResponse
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func field(t *testing.T, resp gqlResponse, name string, v interface{}) {
	t.Helper()
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data[name], v))
}

func errorCode(t *testing.T, resp gqlResponse) string {
	t.Helper()
	require.NotEmpty(t, resp.Errors)
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

// registerAndLogin crea un vendedor y devuelve su token.
func registerAndLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp := postGraphQL(t, app, "", fmt.Sprintf(
		`mutation { newUser(input: {name: "Ana", lastName: "Gómez", email: %q, password: "secreto1"}) { id email } }`, email))
	require.Empty(t, resp.Errors)

	resp = postGraphQL(t, app, "", fmt.Sprintf(
		`mutation { authenticateUser(input: {email: %q, password: "secreto1"}) { token } }`, email))
	var tok struct{ Token string }
	field(t, resp, "authenticateUser", &tok)
	require.NotEmpty(t, tok.Token)
	return tok.Token
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app := newGraphQLApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestGraphQL_CuerpoInvalido_400(t *testing.T) {
	app := newGraphQLApp(t)
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(`{"query":`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGraphQL_FlujoCompletoDePedido(t *testing.T) {
	app := newGraphQLApp(t)
	token := registerAndLogin(t, app, "ana@acme.com")

	var product struct{ ID string }
	field(t, postGraphQL(t, app, "", `mutation { newProduct(input: {name: "Widget", stock: 10, price: 5}) { id } }`), "newProduct", &product)

	var client struct {
		ID     string
		Vendor string
		Phone  *string
	}
	field(t, postGraphQL(t, app, token,
		`mutation { newClient(input: {name: "Luis", lastName: "Pérez", company: "ACME", email: "luis@acme.com"}) { id vendor phone } }`),
		"newClient", &client)
	assert.NotEmpty(t, client.Vendor)
	assert.Nil(t, client.Phone)

	var order struct {
		ID     string
		Total  float64
		Status string
		Client string
	}
	field(t, postGraphQL(t, app, token, fmt.Sprintf(
		`mutation { newOrder(input: {order: [{id: %q, quantity: 3}], client: %q}) { id total status client } }`,
		product.ID, client.ID)), "newOrder", &order)
	assert.Equal(t, 15.0, order.Total)
	assert.Equal(t, "PENDING", order.Status)
	assert.Equal(t, client.ID, order.Client)

	var stock struct{ Stock int }
	field(t, postGraphQL(t, app, "", fmt.Sprintf(`{ getProduct(id: %q) { stock } }`, product.ID)), "getProduct", &stock)
	assert.Equal(t, 7, stock.Stock)

	var updated struct{ Status string }
	field(t, postGraphQL(t, app, token, fmt.Sprintf(
		`mutation { updateOrder(id: %q, input: {client: %q, status: COMPLETED}) { status } }`, order.ID, client.ID)),
		"updateOrder", &updated)
	assert.Equal(t, "COMPLETED", updated.Status)

	var best []struct {
		Total  float64
		Client []struct{ Email string }
	}
	field(t, postGraphQL(t, app, "", `{ bestClients { total client { email } } }`), "bestClients", &best)
	require.Len(t, best, 1)
	assert.Equal(t, 15.0, best[0].Total)
	require.Len(t, best[0].Client, 1)
	assert.Equal(t, "luis@acme.com", best[0].Client[0].Email)
}

func TestGraphQL_StockInsuficiente(t *testing.T) {
	app := newGraphQLApp(t)
	token := registerAndLogin(t, app, "ana@acme.com")

	var product struct{ ID string }
	field(t, postGraphQL(t, app, "", `mutation { newProduct(input: {name: "Widget", stock: 2, price: 5}) { id } }`), "newProduct", &product)
	var client struct{ ID string }
	field(t, postGraphQL(t, app, token,
		`mutation { newClient(input: {name: "Luis", lastName: "Pérez", company: "ACME", email: "luis@acme.com"}) { id } }`),
		"newClient", &client)

	resp := postGraphQL(t, app, token, fmt.Sprintf(
		`mutation { newOrder(input: {order: [{id: %q, quantity: 3}], client: %q}) { id } }`, product.ID, client.ID))
	assert.Equal(t, graphql.CodeStockExceeded, errorCode(t, resp))
	assert.Equal(t, "The item: Widget exceed the available stock", resp.Errors[0].Message)
}

func TestGraphQL_Anonimo_Unauthenticated(t *testing.T) {
	app := newGraphQLApp(t)

	resp := postGraphQL(t, app, "", `mutation { newClient(input: {name: "Luis", lastName: "Pérez", company: "ACME", email: "luis@acme.com"}) { id } }`)
	assert.Equal(t, graphql.CodeUnauthenticated, errorCode(t, resp))
}

func TestGraphQL_TokenInvalido_InvalidToken(t *testing.T) {
	app := newGraphQLApp(t)

	resp := postGraphQL(t, app, "no-es-un-jwt", `{ getClientsByVendor { id } }`)
	assert.Equal(t, graphql.CodeInvalidToken, errorCode(t, resp))
}

func TestGraphQL_TokenInvalido_NoAfectaOperacionesPublicas(t *testing.T) {
	app := newGraphQLApp(t)

	resp := postGraphQL(t, app, "no-es-un-jwt", `{ getProducts { id } }`)
	assert.Empty(t, resp.Errors)
}

func TestGraphQL_UsuarioDuplicado_Conflict(t *testing.T) {
	app := newGraphQLApp(t)
	registerAndLogin(t, app, "ana@acme.com")

	resp := postGraphQL(t, app, "", `mutation { newUser(input: {name: "Ana", lastName: "Gómez", email: "ANA@acme.com", password: "secreto1"}) { id } }`)
	assert.Equal(t, graphql.CodeConflict, errorCode(t, resp))
	assert.Equal(t, "User already exist", resp.Errors[0].Message)
}

func TestGraphQL_ClienteDeOtroVendedor_Forbidden(t *testing.T) {
	app := newGraphQLApp(t)
	ana := registerAndLogin(t, app, "ana@acme.com")
	beto := registerAndLogin(t, app, "beto@acme.com")

	var client struct{ ID string }
	field(t, postGraphQL(t, app, ana,
		`mutation { newClient(input: {name: "Luis", lastName: "Pérez", company: "ACME", email: "luis@acme.com"}) { id } }`),
		"newClient", &client)

	resp := postGraphQL(t, app, beto, fmt.Sprintf(`{ getClient(id: %q) { id } }`, client.ID))
	assert.Equal(t, graphql.CodeForbidden, errorCode(t, resp))
}

func TestGraphQL_ProductoInexistente_NotFound(t *testing.T) {
	app := newGraphQLApp(t)

	resp := postGraphQL(t, app, "", `mutation { deleteProduct(id: "no-existe") }`)
	assert.Equal(t, graphql.CodeNotFound, errorCode(t, resp))
	assert.Equal(t, "Product not found", resp.Errors[0].Message)
}

func TestGraphQL_PasswordIncorrecto(t *testing.T) {
	app := newGraphQLApp(t)
	registerAndLogin(t, app, "ana@acme.com")

	resp := postGraphQL(t, app, "", `mutation { authenticateUser(input: {email: "ana@acme.com", password: "otro-pass"}) { token } }`)
	assert.Equal(t, graphql.CodePasswordIncorrect, errorCode(t, resp))
}
