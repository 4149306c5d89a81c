package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-analytics-api/internal/application/dto"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
)

// SummaryUseCase arma el resumen global del período en una sola llamada:
// ingreso total, órdenes, clientes distintos y valor promedio de orden.
//
// Las cuatro consultas son independientes y de solo lectura, así que se
// lanzan en paralelo y se recogen al final.
type SummaryUseCase struct {
	repo repository.ReportingRepository
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(repo repository.ReportingRepository) *SummaryUseCase {
	return &SummaryUseCase{repo: repo}
}

// GetSummary ejecuta los cuatro agregados sobre el mismo rango.
func (uc *SummaryUseCase) GetSummary(ctx context.Context, tr repository.TimeRange) (*dto.SummaryDTO, error) {
	type decResult struct {
		value decimal.Decimal
		err   error
	}
	type countResult struct {
		value int64
		err   error
	}

	revenueCh := make(chan decResult, 1)
	avgCh := make(chan decResult, 1)
	ordersCh := make(chan countResult, 1)
	customersCh := make(chan countResult, 1)

	go func() {
		v, err := uc.repo.TotalRevenue(ctx, tr)
		revenueCh <- decResult{v, err}
	}()
	go func() {
		v, err := uc.repo.AverageOrderValue(ctx, tr)
		avgCh <- decResult{v, err}
	}()
	go func() {
		v, err := uc.repo.CountOrders(ctx, tr)
		ordersCh <- countResult{v, err}
	}()
	go func() {
		v, err := uc.repo.CountDistinctCustomers(ctx, tr)
		customersCh <- countResult{v, err}
	}()

	revenue := <-revenueCh
	avg := <-avgCh
	orders := <-ordersCh
	customers := <-customersCh

	if revenue.err != nil {
		return nil, fmt.Errorf("resumen: ingreso total: %w", revenue.err)
	}
	if avg.err != nil {
		return nil, fmt.Errorf("resumen: valor promedio: %w", avg.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("resumen: órdenes: %w", orders.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("resumen: clientes: %w", customers.err)
	}

	return &dto.SummaryDTO{
		TotalRevenue:      revenue.value.Round(2),
		TotalOrders:       orders.value,
		TotalCustomers:    customers.value,
		AverageOrderValue: avg.value.Round(2),
	}, nil
}
