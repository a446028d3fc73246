package domain

import "github.com/shopspring/decimal"

// Decimal precision policy, applied uniformly across the engine, the store
// and every external surface: monetary amounts carry 2 fractional digits,
// per-unit rates 6, percentages 2. Division rounds half away from zero.
const (
	MoneyPlaces   = 2
	RatePlaces    = 6
	PercentPlaces = 2
)

var hundred = decimal.NewFromInt(100)

func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatePlaces)
}

func RoundPercent(d decimal.Decimal) decimal.Decimal {
	return d.Round(PercentPlaces)
}

// UnitRate divides cost by units at rate precision. Callers guard units > 0.
func UnitRate(cost, units decimal.Decimal) decimal.Decimal {
	return cost.DivRound(units, RatePlaces)
}

// PercentOf returns part/whole expressed as a percentage. Callers guard
// whole > 0.
func PercentOf(part, whole decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).DivRound(whole, PercentPlaces)
}
