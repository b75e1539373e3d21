package types

import (
	"context"

	"github.com/askov/ladepris-go/hours"
)

// SpotPrice is one hour of raw day-ahead price, DKK per kWh excluding
// VAT and all fees.
type SpotPrice struct {
	Hour  hours.DateHour
	Price float64
}

// SpotPriceProvider fetches the raw day-ahead prices covering the
// given two-day window. Implementations must return the prices in
// ascending order by day then hour.
type SpotPriceProvider interface {
	GetSpotPrices(ctx context.Context, today, tomorrow string) ([]SpotPrice, error)
}
