package dto_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
)

func TestValidate_ProductoValido(t *testing.T) {
	in := dto.ProductInput{Name: "Widget", Stock: 10, Price: decimal.NewFromFloat(5)}
	assert.NoError(t, dto.Validate(in))
}

func TestValidate_PrecioNegativo(t *testing.T) {
	in := dto.ProductInput{Name: "Widget", Stock: 1, Price: decimal.NewFromFloat(-0.5)}

	err := dto.Validate(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid field price: must be greater than or equal to 0", err.Error())
}

func TestValidate_ReportaSoloElPrimerCampo(t *testing.T) {
	in := dto.CreateUserRequest{Name: "", LastName: "", Email: "no-es-email", Password: "123"}

	err := dto.Validate(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid field name: is required", err.Error())
}

func TestValidate_LineasDelPedido(t *testing.T) {
	in := dto.CreateOrderRequest{
		ClientID: "c-1",
		Items:    []dto.OrderItemInput{{ProductID: "p-1", Quantity: 2}, {ProductID: "p-2", Quantity: 0}},
	}

	err := dto.Validate(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "Invalid field order[1].quantity: must be greater than 0", err.Error())
}

func TestValidate_PedidoSinLineas(t *testing.T) {
	err := dto.Validate(dto.CreateOrderRequest{ClientID: "c-1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "order")
}

func TestValidate_EstadoDesconocido(t *testing.T) {
	in := dto.UpdateOrderRequest{ClientID: "c-1", Status: "SHIPPED"}

	err := dto.Validate(in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "status")
}

func TestValidate_UpdateSinLineasEsValido(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.UpdateOrderRequest{ClientID: "c-1", Status: "COMPLETED"}))
}

func TestNormalize_RecortaEspacios(t *testing.T) {
	in := dto.ClientInput{Name: "  Ana ", LastName: " Gómez", Company: "ACME ", Email: " ana@acme.com "}
	in.Normalize()
	assert.Equal(t, "Ana", in.Name)
	assert.Equal(t, "Gómez", in.LastName)
	assert.Equal(t, "ACME", in.Company)
	assert.Equal(t, "ana@acme.com", in.Email)
}
