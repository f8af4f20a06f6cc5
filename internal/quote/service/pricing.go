package service

import (
	"math"
	"math/rand"
)

// MarkupPercentage is applied on top of the Super Dispatch base price when
// computing the customer facing quote amount.
const MarkupPercentage = 12.0

const (
	carrierRatePerMile = 1.0
	varianceMin        = 0.95
	varianceSpread     = 0.10
)

// PriceBreakdown holds every intermediate figure of a priced route so the
// response can expose the full calculation.
type PriceBreakdown struct {
	SuperDispatchPrice float64
	InternalAiPrice    float64
	MarkupPercentage   float64
	QuoteAmount        float64
}

// PricingEngine turns a route distance into a quote. The random source is
// injectable so the internal estimate is reproducible under test.
type PricingEngine struct {
	random func() float64
}

func NewPricingEngine() *PricingEngine {
	return &PricingEngine{random: rand.Float64}
}

// NewPricingEngineWithRandom builds an engine whose variance factor is driven
// by the given source. The source must return values in [0, 1).
func NewPricingEngineWithRandom(random func() float64) *PricingEngine {
	return &PricingEngine{random: random}
}

// PriceQuote prices a route. The internal estimate varies within five percent
// of the base price; the quote amount itself is derived from the base price
// only, so two calls over the same distance always quote the same number.
func (p *PricingEngine) PriceQuote(distanceMiles float64) PriceBreakdown {
	base := round2(distanceMiles * carrierRatePerMile)
	variance := varianceMin + p.random()*varianceSpread
	return PriceBreakdown{
		SuperDispatchPrice: base,
		InternalAiPrice:    round2(base * variance),
		MarkupPercentage:   MarkupPercentage,
		QuoteAmount:        round2(base * (1 + MarkupPercentage/100)),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
