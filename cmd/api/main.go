package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/orders"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/interfaces/graphql"
	httpRouter "github.com/jhoicas/crm-api/internal/interfaces/http"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer repos.close()

	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	})
	resolver := graphql.NewResolver(graphql.Deps{
		AuthUC:    authUC,
		ProductUC: usecase.NewProductUseCase(repos.products, cfg.Report.SearchLimit),
		ClientUC:  usecase.NewClientUseCase(repos.clients),
		OrderUC: orders.NewUseCase(repos.orders, repos.clients, repos.products,
			orders.StockFailurePolicy(cfg.Orders.StockFailurePolicy), log),
		ReportUC: analytics.NewReportUseCase(repos.reports, repository.VendorRanking(cfg.Report.VendorRanking)),
		Logger:   log,
	})
	schema, err := graphql.NewSchema(resolver)
	if err != nil {
		log.Fatal().Err(err).Msg("schema GraphQL")
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		Schema:   schema,
		Verifier: authUC,
		Logger:   log,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor listo en /graphql")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
