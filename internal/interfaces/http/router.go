package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comercia/comercia-api/internal/application/analytics"
	"github.com/comercia/comercia-api/internal/application/auth"
	"github.com/comercia/comercia-api/internal/application/checkout"
	"github.com/comercia/comercia-api/internal/application/comex"
	"github.com/comercia/comercia-api/internal/application/sales"
	"github.com/comercia/comercia-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	ProductUC    *usecase.ProductUseCase
	LotUC        *usecase.LotUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	ClientUC     *usecase.ClientUseCase
	SaleUC       *sales.UseCase
	CheckoutUC   *checkout.UseCase
	QuoteUC      *comex.UseCase
	PriceListUC  *usecase.PriceListUseCase
	PriceListPDF usecase.PriceListPDFGenerator
	DashboardUC  *analytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Cada grupo protegido pasa por el
// middleware de auth y por la tabla de roles (routes.go).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth y sesión (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/session", authHandler.Session)

	// Checkout online + webhook de la pasarela (público: el comprador no
	// tiene cuenta)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	api.Post("/checkout", checkoutHandler.Checkout)
	api.Post("/checkout/webhook", checkoutHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Menú de navegación filtrado por rol
	protected.Get("/menu", authHandler.Menu)

	// Products
	products := protected.Group("/products", RequireGroup(GroupProducts))
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Lots
	lotHandler := NewLotHandler(deps.LotUC)
	products.Get("/:productId/lots", lotHandler.ListByProduct)
	lots := protected.Group("/lots", RequireGroup(GroupLots))
	lots.Post("/", lotHandler.Register)
	lots.Get("/:id", lotHandler.GetByID)
	lots.Put("/:id", lotHandler.Update)
	lots.Delete("/:id", lotHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses", RequireGroup(GroupWarehouses))
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)

	// Clients
	clients := protected.Group("/clients", RequireGroup(GroupClients))
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Sales
	salesGroup := protected.Group("/sales", RequireGroup(GroupSales))
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Patch("/:id/status", saleHandler.UpdateStatus)
	salesGroup.Delete("/:id", saleHandler.Delete)

	// COMEX quotes
	quotes := protected.Group("/quotes", RequireGroup(GroupQuotes))
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Patch("/:id/status", quoteHandler.UpdateStatus)

	// Price lists
	priceLists := protected.Group("/price-lists", RequireGroup(GroupPriceLists))
	priceListHandler := NewPriceListHandler(deps.PriceListUC, deps.PriceListPDF)
	priceLists.Post("/", priceListHandler.Create)
	priceLists.Get("/", priceListHandler.List)
	priceLists.Get("/:id", priceListHandler.GetByID)
	priceLists.Get("/:id/pdf", priceListHandler.GetPDF)
	priceLists.Delete("/:id", priceListHandler.Delete)

	// Dashboard
	dashboard := protected.Group("/dashboard", RequireGroup(GroupDashboard))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
}
