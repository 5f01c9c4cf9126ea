package pricing

import (
	"fmt"
	"math"

	domainErrors "github.com/parcelo/logistics/internal/domain/errors"
	"github.com/parcelo/logistics/internal/domain/model"
)

// Tariff holds the rates used to price an order. All monetary values are in
// minor currency units.
type Tariff struct {
	BaseCost          int64
	PerKmRate         int64
	PerKgRate         int64
	PerM3Rate         int64
	PrioritySurcharge int64
	ServicePrices     map[string]int64
}

// DefaultServicePrices lists the additional services offered and their fixed prices.
func DefaultServicePrices() map[string]int64 {
	return map[string]int64{
		"EXPRESS_HANDLING": 2500,
		"INSURANCE":        4000,
		"FRAGILE":          1500,
		"COLD_CHAIN":       6000,
	}
}

// Input describes the package and route attributes of a pricing request.
type Input struct {
	WeightKg   float64
	WidthCm    float64
	HeightCm   float64
	LengthCm   float64
	DistanceKm float64
	Priority   int
	Services   []string
}

// Breakdown itemizes the calculated cost. Total always equals the exact sum
// of the components.
type Breakdown struct {
	Base     int64
	Distance int64
	Weight   int64
	Volume   int64
	Services int64
	Priority int64
	Total    int64
}

// LineItems renders the breakdown as invoice lines, omitting zero components
// except the base cost.
func (b Breakdown) LineItems() []model.LineItem {
	items := []model.LineItem{{Description: "Base cost", Amount: b.Base}}
	optional := []struct {
		desc   string
		amount int64
	}{
		{"Distance", b.Distance},
		{"Weight", b.Weight},
		{"Volume", b.Volume},
		{"Additional services", b.Services},
		{"Priority surcharge", b.Priority},
	}
	for _, item := range optional {
		if item.amount != 0 {
			items = append(items, model.LineItem{Description: item.desc, Amount: item.amount})
		}
	}
	return items
}

// Engine prices orders deterministically from a fixed tariff.
type Engine struct {
	tariff Tariff
}

// NewEngine constructs a pricing engine.
func NewEngine(tariff Tariff) *Engine {
	if tariff.ServicePrices == nil {
		tariff.ServicePrices = DefaultServicePrices()
	}
	return &Engine{tariff: tariff}
}

// Price computes the itemized cost of shipping a package. It is pure: the
// same input always yields the same breakdown.
func (e *Engine) Price(in Input) (Breakdown, error) {
	if err := validate(in, e.tariff); err != nil {
		return Breakdown{}, err
	}

	volumeM3 := in.WidthCm * in.HeightCm * in.LengthCm / 1e6

	var services int64
	for _, svc := range in.Services {
		services += e.tariff.ServicePrices[svc]
	}

	b := Breakdown{
		Base:     e.tariff.BaseCost,
		Distance: roundHalfUp(in.DistanceKm * float64(e.tariff.PerKmRate)),
		Weight:   roundHalfUp(in.WeightKg * float64(e.tariff.PerKgRate)),
		Volume:   roundHalfUp(volumeM3 * float64(e.tariff.PerM3Rate)),
		Services: services,
		Priority: int64(in.Priority) * e.tariff.PrioritySurcharge,
	}
	b.Total = b.Base + b.Distance + b.Weight + b.Volume + b.Services + b.Priority
	return b, nil
}

func validate(in Input, tariff Tariff) error {
	switch {
	case in.WeightKg <= 0:
		return fmt.Errorf("%w: weight must be positive", domainErrors.ErrValidation)
	case in.WidthCm <= 0 || in.HeightCm <= 0 || in.LengthCm <= 0:
		return fmt.Errorf("%w: dimensions must be positive", domainErrors.ErrValidation)
	case in.DistanceKm < 0:
		return fmt.Errorf("%w: distance must not be negative", domainErrors.ErrValidation)
	case in.Priority < 0:
		return fmt.Errorf("%w: priority must not be negative", domainErrors.ErrValidation)
	}
	for _, svc := range in.Services {
		if _, ok := tariff.ServicePrices[svc]; !ok {
			return fmt.Errorf("%w: unknown additional service %q", domainErrors.ErrValidation, svc)
		}
	}
	return nil
}

// roundHalfUp rounds to the nearest minor unit, halves away from zero-point-five up.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
