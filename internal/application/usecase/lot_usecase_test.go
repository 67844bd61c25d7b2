package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
)

// ─────────────────────────────────────────────────────────────
// Dobles en memoria
// ─────────────────────────────────────────────────────────────

type lotRepoFake struct {
	lots map[string]*entity.Lot
}

func newLotRepoFake(lots ...*entity.Lot) *lotRepoFake {
	f := &lotRepoFake{lots: make(map[string]*entity.Lot)}
	for _, l := range lots {
		f.lots[l.ID] = l
	}
	return f
}

func (f *lotRepoFake) Create(l *entity.Lot) error             { f.lots[l.ID] = l; return nil }
func (f *lotRepoFake) GetByID(id string) (*entity.Lot, error) { return f.lots[id], nil }
func (f *lotRepoFake) ListCandidates(productID, warehouseID string) ([]*entity.Lot, error) {
	return f.ListByProduct(productID)
}
func (f *lotRepoFake) ListByProduct(productID string) ([]*entity.Lot, error) {
	var out []*entity.Lot
	for _, l := range f.lots {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}
func (f *lotRepoFake) Update(l *entity.Lot) error { f.lots[l.ID] = l; return nil }
func (f *lotRepoFake) AdjustRemaining(lotID string, delta decimal.Decimal) error {
	if l, ok := f.lots[lotID]; ok {
		l.CurrentRemaining = l.CurrentRemaining.Add(delta)
	}
	return nil
}
func (f *lotRepoFake) Delete(id string) error { delete(f.lots, id); return nil }

type productRepoFake struct {
	products map[string]*entity.Product
}

func (f *productRepoFake) Create(p *entity.Product) error             { f.products[p.ID] = p; return nil }
func (f *productRepoFake) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }
func (f *productRepoFake) GetByBarcode(code string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Barcode == code {
			return p, nil
		}
	}
	return nil, nil
}
func (f *productRepoFake) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *productRepoFake) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (f *productRepoFake) Delete(id string) error { delete(f.products, id); return nil }

// ─────────────────────────────────────────────────────────────
// Fixtures
// ─────────────────────────────────────────────────────────────

func loteConVentas(id string, initial, remaining float64) *entity.Lot {
	return &entity.Lot{
		ID:               id,
		ProductID:        "p1",
		WarehouseID:      "bodega-1",
		Code:             "L-" + id,
		InitialQuantity:  decimal.NewFromFloat(initial),
		CurrentRemaining: decimal.NewFromFloat(remaining),
	}
}

func armarLotUseCase(repo *lotRepoFake) *LotUseCase {
	products := map[string]*entity.Product{
		"p1": {ID: "p1", Name: "Yerba Mate 500g", Active: true},
	}
	return NewLotUseCase(repo, &productRepoFake{products: products})
}

func dec(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// ─────────────────────────────────────────────────────────────
// Tests
// ─────────────────────────────────────────────────────────────

func TestRegister_AltaConExistenciaCompleta(t *testing.T) {
	repo := newLotRepoFake()
	uc := armarLotUseCase(repo)

	exp := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	out, err := uc.Register(dto.RegisterLotRequest{
		ProductID:   "p1",
		WarehouseID: "bodega-1",
		Code:        "L-2026-001",
		Quantity:    decimal.NewFromInt(50),
		ExpiryDate:  &exp,
	})
	require.NoError(t, err)

	assert.True(t, out.CurrentRemaining.Equal(decimal.NewFromInt(50)),
		"el lote nace con su existencia completa")
	assert.True(t, out.InitialQuantity.Equal(out.CurrentRemaining))
}

func TestRegister_CantidadNoPositivaEsInvalida(t *testing.T) {
	uc := armarLotUseCase(newLotRepoFake())

	_, err := uc.Register(dto.RegisterLotRequest{
		ProductID:   "p1",
		WarehouseID: "bodega-1",
		Code:        "L-x",
		Quantity:    decimal.Zero,
	})
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestRegister_ProductoInexistente(t *testing.T) {
	uc := armarLotUseCase(newLotRepoFake())

	_, err := uc.Register(dto.RegisterLotRequest{
		ProductID:   "no-existe",
		WarehouseID: "bodega-1",
		Code:        "L-x",
		Quantity:    decimal.NewFromInt(10),
	})
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}

// El guard de unidades vendidas: un lote de 50 con 20 ya vendidas (quedan 30)
// no puede reducirse por debajo de 20.
func TestUpdate_NoPermiteInicialPorDebajoDeLoVendido(t *testing.T) {
	repo := newLotRepoFake(loteConVentas("A", 50, 30))
	uc := armarLotUseCase(repo)

	_, err := uc.Update("A", dto.UpdateLotRequest{InitialQuantity: dec(15)})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))

	// El lote no debe haberse tocado.
	lot := repo.lots["A"]
	assert.True(t, lot.InitialQuantity.Equal(decimal.NewFromInt(50)))
	assert.True(t, lot.CurrentRemaining.Equal(decimal.NewFromInt(30)))
}

func TestUpdate_ReducirInicialMueveLaExistencia(t *testing.T) {
	repo := newLotRepoFake(loteConVentas("A", 50, 30))
	uc := armarLotUseCase(repo)

	// 20 vendidas; bajar la inicial a 25 deja existencia 5.
	out, err := uc.Update("A", dto.UpdateLotRequest{InitialQuantity: dec(25)})
	require.NoError(t, err)
	assert.True(t, out.CurrentRemaining.Equal(decimal.NewFromInt(5)),
		"existencia = inicial nueva - vendido: %s", out.CurrentRemaining)
}

func TestUpdate_InicialExactamenteLoVendidoDejaCero(t *testing.T) {
	repo := newLotRepoFake(loteConVentas("A", 50, 30))
	uc := armarLotUseCase(repo)

	out, err := uc.Update("A", dto.UpdateLotRequest{InitialQuantity: dec(20)})
	require.NoError(t, err)
	assert.True(t, out.CurrentRemaining.IsZero())
}

func TestUpdate_ClearExpiryBorraElVencimiento(t *testing.T) {
	exp := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	lot := loteConVentas("A", 50, 50)
	lot.ExpiryDate = &exp
	repo := newLotRepoFake(lot)
	uc := armarLotUseCase(repo)

	out, err := uc.Update("A", dto.UpdateLotRequest{ClearExpiry: true})
	require.NoError(t, err)
	assert.Nil(t, out.ExpiryDate)
}

func TestDelete_LoteConVentasNoSeBorra(t *testing.T) {
	repo := newLotRepoFake(loteConVentas("A", 50, 30))
	uc := armarLotUseCase(repo)

	err := uc.Delete("A")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.NotNil(t, repo.lots["A"], "el lote debe seguir existiendo")
}

func TestDelete_LoteSinVentasSeBorra(t *testing.T) {
	repo := newLotRepoFake(loteConVentas("A", 50, 50))
	uc := armarLotUseCase(repo)

	require.NoError(t, uc.Delete("A"))
	assert.Nil(t, repo.lots["A"])
}
