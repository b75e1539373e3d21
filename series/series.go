package series

import (
	"fmt"
	"time"

	"github.com/askov/ladepris-go/convert"
	"github.com/askov/ladepris-go/fees"
	"github.com/askov/ladepris-go/types"
	"github.com/askov/ladepris-go/types/maybe"
)

// windowHours is the charging session length the price is averaged over.
const windowHours = 4

const hoursPerDay = 24

// SeriesShapeError reports a sub-series that didn't assemble to the
// fixed 24-hour cardinality.
type SeriesShapeError struct {
	Part  string
	Count int
}

func (e SeriesShapeError) Error() string {
	return fmt.Sprintf("%s charge price series has %d points, expected %d", e.Part, e.Count, hoursPerDay)
}

// ChargePrice is the price for starting a charging session at a given
// hour. Price is absent when the forward window can't be computed
// (trailing hours without next-day data, or a zero sentinel from the
// source).
type ChargePrice struct {
	Hour  uint8
	Price maybe.Maybe[float64]
}

// Series is the charging price curve for today and, when the source
// had already published next-day prices at fetch time, for tomorrow.
// Each sub-series holds exactly 24 points, hours 0 through 23.
type Series struct {
	Today    []ChargePrice
	Tomorrow maybe.Maybe[[]ChargePrice]
}

// PromoteTomorrow shifts the tomorrow sub-series into the today slot,
// used when the calendar date rolls past the day the series was
// fetched. Reports false when there is nothing to promote.
func (s Series) PromoteTomorrow() (Series, bool) {
	if !s.Tomorrow.IsValid() {
		return s, false
	}
	return Series{Today: s.Tomorrow.Value(), Tomorrow: maybe.None[[]ChargePrice]()}, true
}

// Build converts raw hourly spot prices into the charging price
// series. With 48 input points today's slice borrows tomorrow's first
// three hours so the forward window stays full across midnight; the
// borrowed hours only supply lookahead and never produce points of
// their own.
func Build(points []types.SpotPrice, schedule fees.Schedule, month time.Month, surcharge float64) (Series, error) {
	if len(points) != hoursPerDay && len(points) != 2*hoursPerDay {
		return Series{}, SeriesShapeError{Part: "input", Count: len(points)}
	}
	for i, p := range points {
		if int(p.Hour.Hour) != i%hoursPerDay {
			return Series{}, fmt.Errorf("input point %d covers hour %d, expected %d", i, p.Hour.Hour, i%hoursPerDay)
		}
	}

	var s Series
	if len(points) == hoursPerDay {
		s.Today = formatSlice(points, schedule, month, surcharge)
		s.Tomorrow = maybe.None[[]ChargePrice]()
	} else {
		s.Today = formatSlice(points[0:hoursPerDay+windowHours-1], schedule, month, surcharge)
		s.Tomorrow = maybe.Some(formatSlice(points[hoursPerDay:], schedule, month, surcharge))
	}

	if err := validate("today", s.Today); err != nil {
		return Series{}, err
	}
	if s.Tomorrow.IsValid() {
		if err := validate("tomorrow", s.Tomorrow.Value()); err != nil {
			return Series{}, err
		}
	}

	return s, nil
}

// formatSlice emits one ChargePrice per start-hour 0..23. The slice is
// either exactly 24 points or 27 (24 plus borrowed lookahead); a
// start-hour whose window runs past the end of the slice gets an
// absent price instead of a short or out-of-range window.
func formatSlice(slice []types.SpotPrice, schedule fees.Schedule, month time.Month, surcharge float64) []ChargePrice {
	prices := make([]ChargePrice, 0, hoursPerDay)

	for hour := 0; hour < hoursPerDay; hour++ {
		if hour+windowHours > len(slice) {
			prices = append(prices, ChargePrice{Hour: uint8(hour), Price: maybe.None[float64]()})
			continue
		}

		sum := 0.0
		for _, p := range slice[hour : hour+windowHours] {
			sum += schedule.Apply(p.Price, int(p.Hour.Hour), month)
		}
		price := convert.TwoDecimals(sum/windowHours + surcharge)

		// The source marks hours it couldn't price with a bare zero.
		if price == 0 {
			prices = append(prices, ChargePrice{Hour: uint8(hour), Price: maybe.None[float64]()})
			continue
		}

		prices = append(prices, ChargePrice{Hour: uint8(hour), Price: maybe.Some(price)})
	}

	return prices
}

func validate(part string, prices []ChargePrice) error {
	if len(prices) != hoursPerDay {
		return SeriesShapeError{Part: part, Count: len(prices)}
	}
	for i, p := range prices {
		if int(p.Hour) != i {
			return fmt.Errorf("%s charge price %d covers hour %d, expected %d", part, i, p.Hour, i)
		}
	}
	return nil
}
