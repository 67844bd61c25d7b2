package sales

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
	headers    map[string]*entity.Sale
	items      map[string][]*entity.SaleItem
	failItems  bool  // simula fallo en CreateItem (fase 2)
	failDelete bool  // simula fallo del borrado compensatorio
	deleted    []string
	paidTotal  decimal.Decimal
}

func newSaleRepoFake() *saleRepoFake {
	return &saleRepoFake{
		headers: make(map[string]*entity.Sale),
		items:   make(map[string][]*entity.SaleItem),
	}
}

func (f *saleRepoFake) CreateHeader(s *entity.Sale) error {
	f.headers[s.ID] = s
	return nil
}

func (f *saleRepoFake) CreateItem(it *entity.SaleItem) error {
	if f.failItems {
		return errors.New("violación de constraint simulada")
	}
	f.items[it.SaleID] = append(f.items[it.SaleID], it)
	return nil
}

func (f *saleRepoFake) GetByID(id string) (*entity.Sale, error) {
	return f.headers[id], nil
}

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
	var out []*entity.Sale
	for _, s := range f.headers {
		if status == "" || s.Status == status {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *saleRepoFake) UpdateStatus(id, status string) error {
	if s, ok := f.headers[id]; ok {
		s.Status = status
	}
	return nil
}

func (f *saleRepoFake) Delete(id string) error {
	if f.failDelete {
		return errors.New("no se pudo borrar la cabecera")
	}
	f.deleted = append(f.deleted, id)
	delete(f.headers, id)
	delete(f.items, id)
	return nil
}

func (f *saleRepoFake) SumPaidByClient(clientID string) (decimal.Decimal, error) {
	return f.paidTotal, nil
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

func (f *lotRepoFake) Create(l *entity.Lot) error          { f.lots[l.ID] = l; return nil }
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
	if l, ok := f.lots[lotID]; ok {
		l.CurrentRemaining = l.CurrentRemaining.Add(delta)
	}
	return nil
}
func (f *lotRepoFake) Delete(id string) error { delete(f.lots, id); return nil }

type productRepoFake struct {
	products map[string]*entity.Product
}

func (f *productRepoFake) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *productRepoFake) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *productRepoFake) GetByBarcode(code string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Barcode == code {
			return p, nil
		}
	}
	return nil, nil
}
func (f *productRepoFake) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *productRepoFake) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}
func (f *productRepoFake) Delete(id string) error { delete(f.products, id); return nil }

type clientRepoFake struct {
	clients map[string]*entity.Client
	tiers   map[string]string
}

func (f *clientRepoFake) Create(c *entity.Client) error { f.clients[c.ID] = c; return nil }
func (f *clientRepoFake) GetByID(id string) (*entity.Client, error) {
	return f.clients[id], nil
}
func (f *clientRepoFake) Update(c *entity.Client) error { f.clients[c.ID] = c; return nil }
func (f *clientRepoFake) List(limit, offset int) ([]*entity.Client, error) { return nil, nil }
func (f *clientRepoFake) Delete(id string) error { delete(f.clients, id); return nil }
func (f *clientRepoFake) UpdateTier(id, tier string) error {
	if f.tiers == nil {
		f.tiers = make(map[string]string)
	}
	f.tiers[id] = tier
	if c, ok := f.clients[id]; ok {
		c.Tier = tier
	}
	return nil
}

// txRunnerFake ejecuta la función directamente sobre los mismos fakes,
// sin transacción real.
type txRunnerFake struct {
	saleRepo repository.SaleRepository
	lotRepo  repository.LotRepository
}

func (t *txRunnerFake) Run(ctx context.Context, fn func(repository.SaleRepository, repository.LotRepository) error) error {
	return fn(t.saleRepo, t.lotRepo)
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

func armarUseCase(saleRepo *saleRepoFake, lotRepo *lotRepoFake, products map[string]*entity.Product, clients map[string]*entity.Client) *UseCase {
	if products == nil {
		products = map[string]*entity.Product{}
	}
	if clients == nil {
		clients = map[string]*entity.Client{}
	}
	return NewUseCase(
		saleRepo,
		lotRepo,
		&productRepoFake{products: products},
		&clientRepoFake{clients: clients},
		&txRunnerFake{saleRepo: saleRepo, lotRepo: lotRepo},
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)
}

func productoBase() map[string]*entity.Product {
	return map[string]*entity.Product{
		"p1": {
			ID:             "p1",
			Name:           "Yerba Mate 500g",
			Price:          decimal.NewFromInt(100),
			WholesalePrice: decimal.NewFromInt(80),
			Active:         true,
		},
	}
}

// ─────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────

func TestCreate_AsignaPorVencimientoYDescuentaLotes(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(
		lote("A", "p1", 5, fecha("2026-09-01")),
		lote("B", "p1", 3, fecha("2026-10-01")),
	)
	uc := armarUseCase(saleRepo, lotRepo, productoBase(), nil)

	resp, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: "p1", Quantity: 6}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2, "6 unidades deben salir de dos lotes")

	// El lote que vence primero se agota antes de tocar el siguiente.
	assert.Equal(t, "A", resp.Items[0].LotID)
	assert.True(t, resp.Items[0].Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "B", resp.Items[1].LotID)
	assert.True(t, resp.Items[1].Quantity.Equal(decimal.NewFromInt(1)))

	assert.True(t, lotRepo.adjustments["A"].Equal(decimal.NewFromInt(-5)))
	assert.True(t, lotRepo.adjustments["B"].Equal(decimal.NewFromInt(-1)))

	// subtotal = 6 * 100
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, entity.SaleStatusPending, resp.Status)
}

func TestCreate_AplicaIVASobreSubtotal(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(lote("A", "p1", 10, nil))
	uc := armarUseCase(saleRepo, lotRepo, productoBase(), nil)

	resp, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		TaxRate: decimal.NewFromFloat(0.21),
		Items:   []dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, resp.Tax.Equal(decimal.NewFromInt(42)))
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(242)))
}

func TestCreate_ClienteMayoristaUsaPrecioMayorista(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(lote("A", "p1", 10, nil))
	clients := map[string]*entity.Client{
		"c1": {ID: "c1", Name: "Distribuidora Sur", Tier: entity.TierWholesale},
	}
	uc := armarUseCase(saleRepo, lotRepo, productoBase(), clients)

	resp, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		ClientID: "c1",
		Items:    []dto.SaleLineRequest{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(240)))
}

// Si la segunda línea no alcanza stock, no se escribe NADA: ni cabecera, ni
// líneas, ni descuentos de lote.
func TestCreate_FalloEnSegundaLineaNoEscribeNada(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(
		lote("A", "p1", 10, nil),
		lote("B", "p2", 2, nil),
	)
	products := productoBase()
	products["p2"] = &entity.Product{ID: "p2", Name: "Azúcar 1kg", Price: decimal.NewFromInt(50)}
	uc := armarUseCase(saleRepo, lotRepo, products, nil)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 4},
			{ProductID: "p2", Quantity: 5}, // solo hay 2
		},
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInsufficientStock))

	derr := domain.AsError(err)
	require.NotNil(t, derr)
	assert.Equal(t, "Azúcar 1kg", derr.Product)
	assert.Equal(t, int64(5), derr.Requested)
	assert.Equal(t, int64(2), derr.Available)

	assert.Empty(t, saleRepo.headers, "no debe quedar cabecera")
	assert.Empty(t, lotRepo.adjustments, "no debe descontarse ningún lote")
}

// Si la fase 2 falla, la cabecera recién insertada se borra (compensación) y
// el error original viaja al caller.
func TestCreate_FalloEnFase2BorraCabecera(t *testing.T) {
	saleRepo := newSaleRepoFake()
	saleRepo.failItems = true
	lotRepo := newLotRepoFake(lote("A", "p1", 10, nil))
	uc := armarUseCase(saleRepo, lotRepo, productoBase(), nil)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindPersistence))
	assert.Contains(t, err.Error(), "violación de constraint simulada")

	require.Len(t, saleRepo.deleted, 1, "la cabecera huérfana debe borrarse")
	assert.Empty(t, saleRepo.headers)
}

// Si además falla el borrado compensatorio, es el error del borrado el que
// llega al caller (la causa original queda solo en el log).
func TestCreate_FalloDeCompensacionEnmascaraCausaOriginal(t *testing.T) {
	saleRepo := newSaleRepoFake()
	saleRepo.failItems = true
	saleRepo.failDelete = true
	lotRepo := newLotRepoFake(lote("A", "p1", 10, nil))
	uc := armarUseCase(saleRepo, lotRepo, productoBase(), nil)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no se pudo borrar la cabecera")
	assert.NotContains(t, err.Error(), "violación de constraint simulada")
}

func TestCreate_SinLineasEsInvalido(t *testing.T) {
	saleRepo := newSaleRepoFake()
	uc := armarUseCase(saleRepo, newLotRepoFake(), nil, nil)

	_, err := uc.Create(context.Background(), dto.CreateSaleRequest{})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestUpdateStatus_PagadaRecalculaNivelDelCliente(t *testing.T) {
	saleRepo := newSaleRepoFake()
	saleRepo.paidTotal = decimal.NewFromInt(600_000) // supera el umbral mayorista
	clientID := "c1"
	saleRepo.headers["v1"] = &entity.Sale{
		ID: "v1", ClientID: &clientID, Status: entity.SaleStatusPending,
	}
	clients := map[string]*entity.Client{
		clientID: {ID: clientID, Name: "Almacén Don Luis", Tier: entity.TierRetail},
	}
	uc := armarUseCase(saleRepo, newLotRepoFake(), nil, clients)

	resp, err := uc.UpdateStatus("v1", entity.SaleStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusPaid, resp.Status)
	assert.Equal(t, entity.TierWholesale, clients[clientID].Tier)
}

func TestUpdateStatus_NuncaBajaElNivel(t *testing.T) {
	saleRepo := newSaleRepoFake()
	saleRepo.paidTotal = decimal.NewFromInt(100) // muy por debajo del umbral
	clientID := "c1"
	saleRepo.headers["v1"] = &entity.Sale{
		ID: "v1", ClientID: &clientID, Status: entity.SaleStatusPending,
	}
	clients := map[string]*entity.Client{
		clientID: {ID: clientID, Name: "Mayorista Norte", Tier: entity.TierDistributor},
	}
	uc := armarUseCase(saleRepo, newLotRepoFake(), nil, clients)

	_, err := uc.UpdateStatus("v1", entity.SaleStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.TierDistributor, clients[clientID].Tier)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	uc := armarUseCase(newSaleRepoFake(), newLotRepoFake(), nil, nil)
	_, err := uc.UpdateStatus("v1", "entregada")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestDelete_RestauraStockDeLosLotes(t *testing.T) {
	saleRepo := newSaleRepoFake()
	lotRepo := newLotRepoFake(lote("A", "p1", 0, nil))
	saleRepo.headers["v1"] = &entity.Sale{ID: "v1", Status: entity.SaleStatusPending}
	saleRepo.items["v1"] = []*entity.SaleItem{
		{ID: "i1", SaleID: "v1", ProductID: "p1", LotID: "A", Quantity: decimal.NewFromInt(5)},
	}
	uc := armarUseCase(saleRepo, lotRepo, nil, nil)

	err := uc.Delete(context.Background(), "v1")
	require.NoError(t, err)
	assert.True(t, lotRepo.adjustments["A"].Equal(decimal.NewFromInt(5)), "el stock vuelve al lote")
	assert.Empty(t, saleRepo.headers)
}

func TestDelete_VentaInexistente(t *testing.T) {
	uc := armarUseCase(newSaleRepoFake(), newLotRepoFake(), nil, nil)
	err := uc.Delete(context.Background(), "nada")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
