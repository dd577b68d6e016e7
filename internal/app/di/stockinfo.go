package di

import (
	stockinfoadapters "stock_market/internal/feature/stockinfo/adapters"
	stockinfousecase "stock_market/internal/feature/stockinfo/usecase"
)

// NewStockInfoUsecase wires the remote source with the intraday CSV schema.
func NewStockInfoUsecase(source stockinfousecase.StockInfoSource) *stockinfousecase.StockInfoUsecase {
	return stockinfousecase.NewStockInfoUsecase(source, stockinfoadapters.NewIntradayDecoder())
}
