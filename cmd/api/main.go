package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/comercia/comercia-api/docs"
	appanalytics "github.com/comercia/comercia-api/internal/application/analytics"
	"github.com/comercia/comercia-api/internal/application/auth"
	appcheckout "github.com/comercia/comercia-api/internal/application/checkout"
	appcomex "github.com/comercia/comercia-api/internal/application/comex"
	appsales "github.com/comercia/comercia-api/internal/application/sales"
	"github.com/comercia/comercia-api/internal/application/usecase"
	"github.com/comercia/comercia-api/internal/infrastructure/payment"
	infrapdf "github.com/comercia/comercia-api/internal/infrastructure/pdf"
	"github.com/comercia/comercia-api/internal/infrastructure/postgres"
	httpRouter "github.com/comercia/comercia-api/internal/interfaces/http"
	"github.com/comercia/comercia-api/pkg/config"
	"github.com/comercia/comercia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	quoteRepo := postgres.NewExportQuoteRepository(pool)
	priceListRepo := postgres.NewPriceListRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso
	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	productUC := usecase.NewProductUseCase(productRepo)
	lotUC := usecase.NewLotUseCase(lotRepo, productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	priceListUC := usecase.NewPriceListUseCase(priceListRepo, productRepo)
	saleUC := appsales.NewUseCase(saleRepo, lotRepo, productRepo, clientRepo, txRunner, log)
	quoteUC := appcomex.NewUseCase(quoteRepo, clientRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// Pasarela de pagos + checkout online
	gateway := payment.NewClient(cfg.Payment)
	checkoutUC := appcheckout.NewUseCase(saleRepo, lotRepo, productRepo, txRunner, gateway, log)

	// PDF de listas de precios
	priceListPDF := infrapdf.NewMarotoPriceListGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comercia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		LotUC:        lotUC,
		WarehouseUC:  warehouseUC,
		ClientUC:     clientUC,
		SaleUC:       saleUC,
		CheckoutUC:   checkoutUC,
		QuoteUC:      quoteUC,
		PriceListUC:  priceListUC,
		PriceListPDF: priceListPDF,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
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
