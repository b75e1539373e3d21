package fees

import "time"

type Season int

const (
	Winter Season = iota
	Summer
)

type Band int

const (
	BandHigh Band = iota // normal load, applies when neither low nor peak matches
	BandLow
	BandPeak
)

// Tariff is the transport fee for one band, with a seasonal rate and
// the half-open [FromHour, ToHour) range it applies to. The high band
// has no range of its own, it covers whatever the others don't.
type Tariff struct {
	Summer   float64
	Winter   float64
	FromHour int
	ToHour   int
}

func (t Tariff) rate(season Season) float64 {
	if season == Summer {
		return t.Summer
	}
	return t.Winter
}

func (t Tariff) contains(hour int) bool {
	return t.FromHour <= hour && hour < t.ToHour
}

// MonthRange is a half-open month interval, FromMonth inclusive and
// ToMonth exclusive. Wraparound over new year is not supported.
type MonthRange struct {
	FromMonth time.Month
	ToMonth   time.Month
}

// Schedule holds every fixed fee and tariff that turns a raw spot
// price into the fully loaded consumer price. Read-only after
// construction.
type Schedule struct {
	VatRate      float64 // fraction of the raw price, e.g. 0.25
	StateFee     float64 // DKK/kWh, electricity tax paid to the state (elafgift)
	GridFee      float64 // DKK/kWh, paid to the transmission grid operator
	RetailMargin float64 // DKK/kWh, charged by the electricity retailer

	High Tariff
	Low  Tariff
	Peak Tariff

	SummerPeriod MonthRange
}

// SeasonFor returns Summer when the month falls inside the summer
// period, otherwise Winter.
func (s Schedule) SeasonFor(month time.Month) Season {
	if s.SummerPeriod.FromMonth <= month && month < s.SummerPeriod.ToMonth {
		return Summer
	}
	return Winter
}

// BandFor picks the tariff band for an hour of day. The low band wins
// over peak when ranges overlap, matching how the grid operator
// publishes them.
func (s Schedule) BandFor(hour int) Band {
	if s.Low.contains(hour) {
		return BandLow
	}
	if s.Peak.contains(hour) {
		return BandPeak
	}
	return BandHigh
}

// Apply loads a raw spot price with VAT, the fixed per-kWh fees and
// the transport tariff for the given hour and month. Pure; hour is
// assumed 0-23 and month 1-12.
func (s Schedule) Apply(rawPrice float64, hour int, month time.Month) float64 {
	vat := rawPrice * s.VatRate

	var tariff Tariff
	switch s.BandFor(hour) {
	case BandLow:
		tariff = s.Low
	case BandPeak:
		tariff = s.Peak
	default:
		tariff = s.High
	}

	return rawPrice + vat + s.StateFee + s.GridFee + s.RetailMargin + tariff.rate(s.SeasonFor(month))
}
