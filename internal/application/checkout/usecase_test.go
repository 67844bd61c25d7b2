package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
	"github.com/comercia/comercia-api/pkg/logger"
)

// ─────────────────────────────────────────────────────────────
// Dobles en memoria
// ─────────────────────────────────────────────────────────────

type saleRepoFake struct {
	headers map[string]*entity.Sale
	items   map[string][]*entity.SaleItem
}

func newSaleRepoFake() *saleRepoFake {
	return &saleRepoFake{
		headers: make(map[string]*entity.Sale),
		items:   make(map[string][]*entity.SaleItem),
	}
}

func (f *saleRepoFake) CreateHeader(s *entity.Sale) error { f.headers[s.ID] = s; return nil }
func (f *saleRepoFake) CreateItem(it *entity.SaleItem) error {
	f.items[it.SaleID] = append(f.items[it.SaleID], it)
	return nil
}
func (f *saleRepoFake) GetByID(id string) (*entity.Sale, error) { return f.headers[id], nil }
func (f *saleRepoFake) GetByExternalRef(ref string) (*entity.Sale, error) {
	for _, s := range f.headers {
		if s.ExternalRef == ref {
			return s, nil
		}
	}
	return nil, nil
}
func (f *saleRepoFake) GetItems(saleID string) ([]*entity.SaleItem, error) {
	return f.items[saleID], nil
}
func (f *saleRepoFake) List(status string, limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}
func (f *saleRepoFake) UpdateStatus(id, status string) error {
	if s, ok := f.headers[id]; ok {
		s.Status = status
	}
	return nil
}
func (f *saleRepoFake) Delete(id string) error {
	delete(f.headers, id)
	delete(f.items, id)
	return nil
}
func (f *saleRepoFake) SumPaidByClient(clientID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type lotRepoFake struct {
	lots        map[string]*entity.Lot
	candidates  []*entity.Lot
	adjustments map[string]decimal.Decimal
}

func newLotRepoFake(lots ...*entity.Lot) *lotRepoFake {
	f := &lotRepoFake{
		lots:        make(map[string]*entity.Lot),
		adjustments: make(map[string]decimal.Decimal),
	}
	for _, l := range lots {
		f.lots[l.ID] = l
		f.candidates = append(f.candidates, l)
	}
	return f
}

func (f *lotRepoFake) Create(l *entity.Lot) error             { f.lots[l.ID] = l; return nil }
func (f *lotRepoFake) GetByID(id string) (*entity.Lot, error) { return f.lots[id], nil }
func (f *lotRepoFake) ListCandidates(productID, warehouseID string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range f.candidates {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (f *lotRepoFake) ListByProduct(productID string) ([]*entity.Lot, error) {
	return f.ListCandidates(productID, "")
}
func (f *lotRepoFake) Update(l *entity.Lot) error { f.lots[l.ID] = l; return nil }
func (f *lotRepoFake) AdjustRemaining(lotID string, delta decimal.Decimal) error {
	f.adjustments[lotID] = f.adjustments[lotID].Add(delta)
	return nil
}
func (f *lotRepoFake) Delete(id string) error { delete(f.lots, id); return nil }

type productRepoFake struct {
	products map[string]*entity.Product
}

func (f *productRepoFake) Create(p *entity.Product) error             { f.products[p.ID] = p; return nil }
func (f *productRepoFake) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }
func (f *productRepoFake) GetByBarcode(code string) (*entity.Product, error) {
	return nil, nil
}
func (f *productRepoFake) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *productRepoFake) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *productRepoFake) Delete(id string) error { delete(f.products, id); return nil }

type txRunnerFake struct {
	saleRepo repository.SaleRepository
	lotRepo  repository.LotRepository
}

func (t *txRunnerFake) Run(ctx context.Context, fn func(repository.SaleRepository, repository.LotRepository) error) error {
	return fn(t.saleRepo, t.lotRepo)
}

// gatewayFake registra las llamadas a la pasarela y permite simular un fallo.
type gatewayFake struct {
	calls        int
	lastRef      string
	lastItems    []PreferenceItem
	lastShipping decimal.Decimal
	fail         bool
}

func (g *gatewayFake) CreatePreference(ctx context.Context, externalRef string, items []PreferenceItem, buyer PreferenceBuyer, shipping decimal.Decimal) (string, error) {
	g.calls++
	g.lastRef = externalRef
	g.lastItems = items
	g.lastShipping = shipping
	if g.fail {
		return "", errors.New("la pasarela respondió 503")
	}
	return "https://pagos.example/pref/" + externalRef, nil
}

// ─────────────────────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────────────────────

func fecha(s string) *time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return &t
}

func lote(id, productID string, remaining float64, expiry *time.Time) *entity.Lot {
	return &entity.Lot{
		ID:               id,
		ProductID:        productID,
		WarehouseID:      "bodega-1",
		Code:             "L-" + id,
		InitialQuantity:  decimal.NewFromFloat(remaining),
		CurrentRemaining: decimal.NewFromFloat(remaining),
		ExpiryDate:       expiry,
	}
}

func armarUseCase(saleRepo *saleRepoFake, lotRepo *lotRepoFake, gateway *gatewayFake) *UseCase {
	products := map[string]*entity.Product{
		"p1": {
			ID:     "p1",
			Name:   "Yerba Mate 500g",
			Price:  decimal.NewFromInt(100),
			Active: true,
		},
	}
	return NewUseCase(
		saleRepo,
		lotRepo,
		&productRepoFake{products: products},
		&txRunnerFake{saleRepo: saleRepo, lotRepo: lotRepo},
		gateway,
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)
}

func carrito(qty int64) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		Items: []dto.CheckoutItemRequest{{ProductID: "p1", Quantity: qty}},
		Buyer: dto.BuyerInfo{
			Name:    "Ana Gómez",
			Email:   "ana@example.com",
			Phone:   "11-5555-0000",
			Address: "Av. Siempreviva 742",
			City:    "Rosario",
			ZipCode: "2000",
		},
		ShippingCost: decimal.NewFromInt(500),
	}
}

// ─────────────────────────────────────────────────────────────
// Tests Checkout
// ─────────────────────────────────────────────────────────────

func TestCheckout_RegistraCarritoYRedirige(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(lote("A", "p1", 10, fecha("2026-12-01")))
	gateway := &gatewayFake{}
	uc := armarUseCase(saleRepo, lotRepo, gateway)

	resp, err := uc.Checkout(context.Background(), carrito(3))
	require.NoError(t, err)

	sale := saleRepo.headers[resp.SaleID]
	require.NotNil(t, sale, "la venta debe quedar registrada")
	assert.Equal(t, entity.SaleStatusAbandonedCart, sale.Status,
		"el carrito nace como abandonado hasta que el webhook lo resuelva")
	assert.Equal(t, entity.ChannelOnline, sale.Channel)
	assert.True(t, sale.Subtotal.Equal(decimal.NewFromInt(300)), "subtotal: %s", sale.Subtotal)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(800)),
		"el total incluye el envío: %s", sale.Total)
	assert.Contains(t, sale.Notes, "ana@example.com")

	// El stock se retiene al crear el carrito.
	assert.True(t, lotRepo.adjustments["A"].Equal(decimal.NewFromInt(-3)))

	// La pasarela recibe la misma referencia externa que quedó en la venta.
	assert.Equal(t, 1, gateway.calls)
	assert.Equal(t, sale.ExternalRef, gateway.lastRef)
	assert.True(t, gateway.lastShipping.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "https://pagos.example/pref/"+sale.ExternalRef, resp.RedirectURL)
}

func TestCheckout_StockInsuficienteNoLlamaALaPasarela(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(lote("A", "p1", 2, fecha("2026-12-01")))
	gateway := &gatewayFake{}
	uc := armarUseCase(saleRepo, lotRepo, gateway)

	_, err := uc.Checkout(context.Background(), carrito(5))
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInsufficientStock))

	assert.Empty(t, saleRepo.headers, "no debe quedar ninguna venta escrita")
	assert.Empty(t, lotRepo.adjustments, "no debe descontarse stock")
	assert.Equal(t, 0, gateway.calls, "la pasarela no debe enterarse de un carrito fallido")
}

func TestCheckout_PasarelaCaidaConservaElCarrito(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(lote("A", "p1", 10, fecha("2026-12-01")))
	gateway := &gatewayFake{fail: true}
	uc := armarUseCase(saleRepo, lotRepo, gateway)

	_, err := uc.Checkout(context.Background(), carrito(3))
	require.Error(t, err)

	// La venta ya estaba persistida cuando falló la pasarela: queda como
	// carrito abandonado con su stock retenido.
	require.Len(t, saleRepo.headers, 1)
	for _, s := range saleRepo.headers {
		assert.Equal(t, entity.SaleStatusAbandonedCart, s.Status)
	}
	assert.True(t, lotRepo.adjustments["A"].Equal(decimal.NewFromInt(-3)))
}

func TestCheckout_CarritoVacioEsInvalido(t *testing.T) {
	uc := armarUseCase(newSaleRepoFake(), newLotRepoFake(), &gatewayFake{})

	in := carrito(1)
	in.Items = nil
	_, err := uc.Checkout(context.Background(), in)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestCheckout_SinEmailEsInvalido(t *testing.T) {
	uc := armarUseCase(newSaleRepoFake(), newLotRepoFake(), &gatewayFake{})

	in := carrito(1)
	in.Buyer.Email = ""
	_, err := uc.Checkout(context.Background(), in)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

// ─────────────────────────────────────────────────────────────
// Tests HandleWebhook
// ─────────────────────────────────────────────────────────────

func checkoutConVenta(t *testing.T) (*UseCase, *saleRepoFake, *lotRepoFake, string) {
	t.Helper()
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(lote("A", "p1", 10, fecha("2026-12-01")))
	uc := armarUseCase(saleRepo, lotRepo, &gatewayFake{})

	resp, err := uc.Checkout(context.Background(), carrito(2))
	require.NoError(t, err)
	return uc, saleRepo, lotRepo, saleRepo.headers[resp.SaleID].ExternalRef
}

func TestHandleWebhook_ApprovedMarcaPagada(t *testing.T) {
	uc, saleRepo, _, ref := checkoutConVenta(t)

	require.NoError(t, uc.HandleWebhook(dto.PaymentWebhookRequest{ExternalRef: ref, Status: "approved"}))

	sale, _ := saleRepo.GetByExternalRef(ref)
	assert.Equal(t, entity.SaleStatusPaid, sale.Status)
}

func TestHandleWebhook_RejectedCancelaSinReponerStock(t *testing.T) {
	uc, saleRepo, lotRepo, ref := checkoutConVenta(t)

	require.NoError(t, uc.HandleWebhook(dto.PaymentWebhookRequest{ExternalRef: ref, Status: "rejected"}))

	sale, _ := saleRepo.GetByExternalRef(ref)
	assert.Equal(t, entity.SaleStatusCancelled, sale.Status)
	// El rechazo solo cambia el estado: la reposición de stock es una
	// decisión operativa aparte (borrar la venta la repone).
	assert.True(t, lotRepo.adjustments["A"].Equal(decimal.NewFromInt(-2)))
}

func TestHandleWebhook_EstadoDesconocido(t *testing.T) {
	uc, _, _, ref := checkoutConVenta(t)

	err := uc.HandleWebhook(dto.PaymentWebhookRequest{ExternalRef: ref, Status: "in_process"})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestHandleWebhook_ReferenciaInexistente(t *testing.T) {
	uc, _, _, _ := checkoutConVenta(t)

	err := uc.HandleWebhook(dto.PaymentWebhookRequest{ExternalRef: "no-existe", Status: "approved"})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
