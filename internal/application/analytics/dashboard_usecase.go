package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
	"github.com/comercia/comercia-api/internal/domain/entity"
	"github.com/comercia/comercia-api/internal/domain/repository"
)

const (
	topProductsLimit   = 5
	expiringDays       = 30
	expiringLotsLimit  = 10
)

// DashboardUseCase arma el resumen del tablero: facturación del día y del
// mes, ranking de productos, lotes por vencer y carritos abandonados. Todas
// las consultas son read-only e independientes, así que se lanzan en paralelo.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary ejecuta las cinco consultas del tablero en paralelo y combina
// los resultados. El primer error aborta la respuesta completa.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type metricsResult struct {
		revenue decimal.Decimal
		count   int64
		err     error
	}
	type topResult struct {
		rows []repository.TopProduct
		err  error
	}
	type lotsResult struct {
		lots []*entity.Lot
		err  error
	}
	type countResult struct {
		n   int64
		err error
	}

	todayChan := make(chan metricsResult, 1)
	monthChan := make(chan metricsResult, 1)
	topChan := make(chan topResult, 1)
	lotsChan := make(chan lotsResult, 1)
	cartsChan := make(chan countResult, 1)

	go func() {
		revenue, count, err := uc.repo.GetSalesMetrics(ctx, todayStart, now)
		todayChan <- metricsResult{revenue, count, err}
	}()
	go func() {
		revenue, count, err := uc.repo.GetSalesMetrics(ctx, monthStart, now)
		monthChan <- metricsResult{revenue, count, err}
	}()
	go func() {
		rows, err := uc.repo.GetTopProducts(ctx, monthStart, now, topProductsLimit)
		topChan <- topResult{rows, err}
	}()
	go func() {
		lots, err := uc.repo.ListLotsNearExpiry(ctx, expiringDays, expiringLotsLimit)
		lotsChan <- lotsResult{lots, err}
	}()
	go func() {
		n, err := uc.repo.CountSalesByStatus(ctx, entity.SaleStatusAbandonedCart)
		cartsChan <- countResult{n, err}
	}()

	today := <-todayChan
	month := <-monthChan
	top := <-topChan
	lots := <-lotsChan
	carts := <-cartsChan

	for _, err := range []error{today.err, month.err, top.err, lots.err, carts.err} {
		if err != nil {
			return nil, domain.ErrPersistence(err)
		}
	}

	summary := &dto.DashboardSummaryDTO{
		TodayRevenue:   today.revenue,
		TodaySales:     today.count,
		MonthRevenue:   month.revenue,
		MonthSales:     month.count,
		AbandonedCarts: carts.n,
	}
	for _, p := range top.rows {
		summary.TopProducts = append(summary.TopProducts, dto.TopProductDTO{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Revenue:   p.Revenue,
		})
	}
	for _, l := range lots.lots {
		if l.ExpiryDate == nil {
			continue
		}
		summary.ExpiringLots = append(summary.ExpiringLots, dto.ExpiringLotDTO{
			LotID:      l.ID,
			Code:       l.Code,
			ProductID:  l.ProductID,
			Remaining:  l.CurrentRemaining,
			ExpiryDate: *l.ExpiryDate,
		})
	}
	return summary, nil
}
