// Package adapters provides the intraday line schema for the stockinfo feature.
package adapters

import (
	"io"

	"github.com/shopspring/decimal"

	"stock_market/internal/feature/stockinfo/domain/entity"
	"stock_market/internal/feature/stockinfo/usecase"
	"stock_market/internal/platform/csvdecode"
)

// intradayMinFields: 0=timestamp, 1=open, 2=high, 3=low, 4=close, 5=volume.
const intradayMinFields = 5

// IntradayDecoder decodes TIME_SERIES_INTRADAY CSV into points.
type IntradayDecoder struct{}

var _ usecase.IntradayDecoder = IntradayDecoder{}

// NewIntradayDecoder creates an IntradayDecoder.
func NewIntradayDecoder() IntradayDecoder {
	return IntradayDecoder{}
}

// Decode skips the header and every line whose close does not parse.
func (IntradayDecoder) Decode(r io.Reader) ([]entity.IntradayPoint, error) {
	return csvdecode.Decode(r, ParseIntradayLine)
}

// ParseIntradayLine maps one CSV line to a point.
func ParseIntradayLine(fields []string) (entity.IntradayPoint, bool) {
	if len(fields) < intradayMinFields {
		return entity.IntradayPoint{}, false
	}
	ts := csvdecode.Field(fields, 0)
	if ts == "" {
		return entity.IntradayPoint{}, false
	}
	closePrice, err := decimal.NewFromString(csvdecode.Field(fields, 4))
	if err != nil {
		return entity.IntradayPoint{}, false
	}
	return entity.IntradayPoint{Timestamp: ts, Close: closePrice}, true
}
