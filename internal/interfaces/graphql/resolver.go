package graphql

import (
	"context"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/orders"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// Deps casos de uso que usa el resolver raíz.
type Deps struct {
	AuthUC    *auth.AuthUseCase
	ProductUC *usecase.ProductUseCase
	ClientUC  *usecase.ClientUseCase
	OrderUC   *orders.UseCase
	ReportUC  *analytics.ReportUseCase
	Logger    *logger.Logger
}

// Resolver raíz: implementa Query y Mutation.
type Resolver struct {
	auth     *auth.AuthUseCase
	products *usecase.ProductUseCase
	clients  *usecase.ClientUseCase
	orders   *orders.UseCase
	reports  *analytics.ReportUseCase
	log      *logger.Logger
}

// NewResolver construye el resolver raíz.
func NewResolver(deps Deps) *Resolver {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		auth:     deps.AuthUC,
		products: deps.ProductUC,
		clients:  deps.ClientUC,
		orders:   deps.OrderUC,
		reports:  deps.ReportUC,
		log:      log.Component("graphql"),
	}
}

// caller exige identidad en el contexto de la petición.
func (r *Resolver) caller(ctx context.Context, op string) (string, error) {
	id, err := auth.CallerFrom(ctx).Require()
	if err != nil {
		return "", r.fail(op, err)
	}
	return id.ID, nil
}
