package takeoff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"takeoffs/internal/domain"
)

func TestPrice_ExactMatch(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	cost, tier := p.Price(domain.TradePlumbing, "PVC", `3/4"`, "pipe")
	assert.Equal(t, 1.10, cost)
	assert.Equal(t, TierExact, tier)
}

func TestPrice_MaterialMatchIsCaseAndEmbeddingTolerant(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	cost, tier := p.Price(domain.TradePlumbing, "Copper pipe", `1"`, "pipe")
	assert.Equal(t, 8.40, cost)
	assert.Equal(t, TierExact, tier)
}

func TestPrice_NearestSize(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	// cast iron only carries 2" and 4"; 3" is closer to neither, the tie
	// resolves to the larger size
	cost, tier := p.Price(domain.TradePlumbing, "cast iron", `3"`, "pipe")
	assert.Equal(t, 16.20, cost)
	assert.Equal(t, TierNearestSize, tier)
}

func TestPrice_NearestSizeTieResolvesLarger(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	// PVC carries 4" and 6"; a 5" request is equidistant and prices as 6"
	cost, tier := p.Price(domain.TradePlumbing, "PVC", `5"`, "pipe")
	assert.Equal(t, 15.50, cost)
	assert.Equal(t, TierNearestSize, tier)
}

func TestPrice_NearestSizePicksMinimumDistance(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	// 1.6" is nearer to 2" than to 1"
	cost, tier := p.Price(domain.TradePlumbing, "copper", `1.6"`, "pipe")
	assert.Equal(t, 14.60, cost)
	assert.Equal(t, TierNearestSize, tier)
}

func TestPrice_TypeDefault(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	cost, tier := p.Price(domain.TradePlumbing, "galvanized", `1"`, "valve")
	assert.Equal(t, 35.00, cost)
	assert.Equal(t, TierTypeDefault, tier)
}

func TestPrice_GlobalDefault(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	cost, tier := p.Price(domain.TradePlumbing, "mystery", "", "widget")
	assert.Equal(t, 10.00, cost)
	assert.Equal(t, TierGlobalDefault, tier)
}

func TestPrice_UnparseableSizeFallsThrough(t *testing.T) {
	p := NewPricingEngine(DefaultCatalog())

	cost, tier := p.Price(domain.TradePlumbing, "PVC", "large", "pipe")
	assert.Equal(t, 2.50, cost)
	assert.Equal(t, TierTypeDefault, tier)
}

func TestWithOverrides_PriceRowAndEntry(t *testing.T) {
	cat := DefaultCatalog().WithOverrides([]domain.CatalogPrice{
		{Trade: domain.TradePlumbing, Material: "PVC", Size: `3/4"`, UnitCost: 1.45},
		{Trade: domain.TradeFraming, Code: "S4", UnitCost: 5.00, LaborRate: 0.07},
	})

	p := NewPricingEngine(cat)
	cost, tier := p.Price(domain.TradePlumbing, "PVC", `3/4"`, "pipe")
	assert.Equal(t, 1.45, cost)
	assert.Equal(t, TierExact, tier)

	e, ok := cat.Entry(domain.TradeFraming, "S4")
	assert.True(t, ok)
	assert.Equal(t, 5.00, e.UnitCost)
	assert.Equal(t, 0.07, e.LaborRate)
	// untouched fields survive the overlay
	assert.Equal(t, `2x4 stud, 8'`, e.Description)
}

func TestWithOverrides_DoesNotMutateReceiver(t *testing.T) {
	base := DefaultCatalog()
	base.WithOverrides([]domain.CatalogPrice{
		{Trade: domain.TradePlumbing, Material: "PVC", Size: `3/4"`, UnitCost: 99},
	})

	p := NewPricingEngine(base)
	cost, _ := p.Price(domain.TradePlumbing, "PVC", `3/4"`, "pipe")
	assert.Equal(t, 1.10, cost)
}

func TestWithOverrides_NewMaterialRow(t *testing.T) {
	cat := DefaultCatalog().WithOverrides([]domain.CatalogPrice{
		{Trade: domain.TradePlumbing, Material: "CPVC", Size: `1/2"`, UnitCost: 1.20},
	})

	p := NewPricingEngine(cat)
	cost, tier := p.Price(domain.TradePlumbing, "CPVC", `1/2"`, "pipe")
	assert.Equal(t, 1.20, cost)
	assert.Equal(t, TierExact, tier)
}
