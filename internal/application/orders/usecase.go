// Package orders implementa el flujo de pedidos: validación de dueño, descuento de stock
// línea por línea y persistencia del pedido.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// StockFailurePolicy qué hacer con los descuentos ya aplicados cuando una línea falla.
type StockFailurePolicy string

const (
	// PolicyKeep deja aplicados los descuentos de las líneas anteriores.
	PolicyKeep StockFailurePolicy = "keep"
	// PolicyCompensate devuelve el stock descontado antes de retornar el error.
	PolicyCompensate StockFailurePolicy = "compensate"
)

// UseCase casos de uso de pedidos. Los descuentos de stock no son transaccionales:
// cada línea se persiste apenas se valida, y dos pedidos concurrentes sobre el mismo
// producto pueden leer el mismo stock.
type UseCase struct {
	orderRepo   repository.OrderRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	policy      StockFailurePolicy
	log         *logger.Logger
}

// NewUseCase construye el caso de uso. policy vacía equivale a PolicyKeep.
func NewUseCase(
	orderRepo repository.OrderRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	policy StockFailurePolicy,
	log *logger.Logger,
) *UseCase {
	if policy == "" {
		policy = PolicyKeep
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		orderRepo:   orderRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		policy:      policy,
		log:         log.Component("orders"),
	}
}

// reservation descuento ya persistido, para poder compensarlo.
type reservation struct {
	productID string
	quantity  int
}

// Create valida el cliente, descuenta stock en el orden recibido y guarda el pedido
// con vendor = vendorID. El total se calcula con los precios vigentes.
func (uc *UseCase) Create(ctx context.Context, vendorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if _, err := uc.ownedClient(ctx, vendorID, in.ClientID); err != nil {
		return nil, err
	}

	items, reserved, err := uc.reserve(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	status := entity.OrderPending
	if in.Status != "" {
		status = entity.OrderStatus(in.Status)
	}
	now := time.Now().UTC()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Items:     items,
		Total:     entity.ItemsTotal(items),
		ClientID:  in.ClientID,
		VendorID:  vendorID,
		Status:    status,
		Date:      now,
		UpdatedAt: now,
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		uc.rollback(ctx, reserved)
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("vendor_id", vendorID).Str("total", order.Total.String()).Msg("pedido creado")
	return toOrderResponse(order), nil
}

// Update reemplaza el pedido. Si trae líneas se validan y descuentan contra el stock actual
// (los descuentos del pedido original no se devuelven); sin líneas se conservan las actuales.
func (uc *UseCase) Update(ctx context.Context, vendorID, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	order, err := uc.owned(ctx, vendorID, id, "You don't have permissions to update this order")
	if err != nil {
		return nil, err
	}
	if _, err := uc.ownedClient(ctx, vendorID, in.ClientID); err != nil {
		return nil, err
	}

	var reserved []reservation
	if in.Items != nil {
		items, res, err := uc.reserve(ctx, in.Items)
		if err != nil {
			return nil, err
		}
		reserved = res
		order.Items = items
		order.Total = entity.ItemsTotal(items)
	}
	if in.Status != "" {
		order.Status = entity.OrderStatus(in.Status)
	}
	order.ClientID = in.ClientID
	order.UpdatedAt = time.Now().UTC()
	if err := uc.orderRepo.Update(ctx, order); err != nil {
		uc.rollback(ctx, reserved)
		return nil, err
	}
	return toOrderResponse(order), nil
}

// Delete borra el pedido. El stock descontado no se devuelve.
func (uc *UseCase) Delete(ctx context.Context, vendorID, id string) (string, error) {
	if _, err := uc.owned(ctx, vendorID, id, "You don't have permissions to delete this order"); err != nil {
		return "", err
	}
	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		return "", err
	}
	return "Order deleted", nil
}

// GetByID devuelve el pedido si pertenece al vendedor.
func (uc *UseCase) GetByID(ctx context.Context, vendorID, id string) (*dto.OrderResponse, error) {
	order, err := uc.owned(ctx, vendorID, id, "You don't have permissions to this order")
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// List todos los pedidos.
func (uc *UseCase) List(ctx context.Context) ([]*dto.OrderResponse, error) {
	list, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListByVendor pedidos del vendedor.
func (uc *UseCase) ListByVendor(ctx context.Context, vendorID string) ([]*dto.OrderResponse, error) {
	list, err := uc.orderRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// ListByStatus pedidos del vendedor en el estado dado. Un estado desconocido no coincide con nada.
func (uc *UseCase) ListByStatus(ctx context.Context, vendorID, state string) ([]*dto.OrderResponse, error) {
	status := entity.OrderStatus(state)
	if !status.Valid() {
		return []*dto.OrderResponse{}, nil
	}
	list, err := uc.orderRepo.ListByVendorAndStatus(ctx, vendorID, status)
	if err != nil {
		return nil, err
	}
	return toOrderResponses(list), nil
}

// reserve recorre las líneas en orden: cada una relee el producto, valida la cantidad
// y persiste el nuevo stock antes de pasar a la siguiente. Un producto repetido descuenta dos veces.
func (uc *UseCase) reserve(ctx context.Context, lines []dto.OrderItemInput) ([]entity.OrderItem, []reservation, error) {
	items := make([]entity.OrderItem, 0, len(lines))
	reserved := make([]reservation, 0, len(lines))
	fail := func(err error) ([]entity.OrderItem, []reservation, error) {
		uc.rollback(ctx, reserved)
		return nil, nil, err
	}

	for _, line := range lines {
		product, err := uc.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return fail(err)
		}
		if product == nil {
			return fail(domain.NotFound("Product not found"))
		}
		if line.Quantity > product.Stock {
			return fail(&domain.StockExceededError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   line.Quantity,
				Available:   product.Stock,
			})
		}
		if err := uc.productRepo.UpdateStock(ctx, product.ID, product.Stock-line.Quantity); err != nil {
			return fail(err)
		}
		reserved = append(reserved, reservation{productID: product.ID, quantity: line.Quantity})
		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
	}
	return items, reserved, nil
}

// rollback aplica la política de fallo. Con PolicyCompensate devuelve el stock en orden
// inverso; los errores se registran y no reemplazan al error original.
func (uc *UseCase) rollback(ctx context.Context, reserved []reservation) {
	if uc.policy != PolicyCompensate || len(reserved) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	for i := len(reserved) - 1; i >= 0; i-- {
		r := reserved[i]
		product, err := uc.productRepo.GetByID(ctx, r.productID)
		if err == nil && product == nil {
			err = domain.ErrNotFound
		}
		if err == nil {
			err = uc.productRepo.UpdateStock(ctx, r.productID, product.Stock+r.quantity)
		}
		if err != nil {
			uc.log.Error().Err(err).Str("product_id", r.productID).Int("quantity", r.quantity).Msg("no se pudo devolver el stock")
		}
	}
}

func (uc *UseCase) owned(ctx context.Context, vendorID, id, forbidden string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("Order not found")
	}
	if !order.OwnedBy(vendorID) {
		return nil, domain.Forbidden("%s", forbidden)
	}
	return order, nil
}

func (uc *UseCase) ownedClient(ctx context.Context, vendorID, clientID string) (*entity.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.NotFound("Client not found")
	}
	if !client.OwnedBy(vendorID) {
		return nil, domain.Forbidden("You don't have permissions to make orders of this client")
	}
	return client, nil
}

func toOrderResponses(list []*entity.Order) []*dto.OrderResponse {
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return &dto.OrderResponse{
		ID:       o.ID,
		Items:    items,
		Total:    o.Total,
		ClientID: o.ClientID,
		VendorID: o.VendorID,
		Status:   string(o.Status),
		Date:     o.Date,
	}
}
