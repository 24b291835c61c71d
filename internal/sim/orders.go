package sim

import (
	"time"

	"github.com/jogardn/shopsim/pkg/models"
)

const (
	cvrDiscountBoost     = 1.15
	cvrDeepDiscountBoost = 1.10
	cvrWeekendBoost      = 1.03
	cvrJitterMin         = 0.85
	cvrJitterMax         = 1.15
	cvrFloor             = 0.0005
	cvrCeil              = 0.20

	directClicksMin   = 600
	directClicksMax   = 1500
	directJitterMin   = 0.9
	directJitterMax   = 1.1
	directCVRFloor    = 0.0003
	directDemandBase  = 0.5
	directDemandSlope = 0.3

	baseCancelRate  = 0.03
	promoCancelRate = 0.04
	shipDelayRate   = 0.08

	basketMin = 1
	basketMax = 5

	unitDiscountJitter = 0.03
	unitDiscountCap    = 0.25

	quantitySigma = 0.6
)

// conversionGroup is one (channel, campaign) bucket of conversions for a
// day, kept in channel order so order materialization consumes the random
// stream deterministically.
type conversionGroup struct {
	utmSource string
	campaign  string
	count     int
}

// orderIDAlloc hands out sequential order and item IDs across the whole
// run. Counters advance even for discarded zero-total orders, so the ID
// sequence can have gaps.
type orderIDAlloc struct {
	nextOrder int
	nextItem  int
}

// cvrMultiplier adjusts base conversion rates for the day: meaningful
// discounts convert better, deep discounts better still, weekends a touch
// better.
func cvrMultiplier(d time.Time, discount float64) float64 {
	adj := 1.0
	if discount >= 0.15 {
		adj *= cvrDiscountBoost
	}
	if discount >= 0.30 {
		adj *= cvrDeepDiscountBoost
	}
	if isWeekend(d) {
		adj *= cvrWeekendBoost
	}
	return adj
}

// SimulateOrdersDay turns one day's marketing records into orders and line
// items. Conversions are drawn per (channel, campaign) record, plus the
// synthetic direct channel; each conversion becomes exactly one candidate
// order, emitted only if its basket total is positive.
func SimulateOrdersDay(
	cfg *Config,
	rng *Rand,
	date time.Time,
	demand, discount float64,
	records []models.MarketingSpend,
	catalog *Catalog,
	ids *orderIDAlloc,
) ([]models.Order, []models.OrderItem) {
	mult := cvrMultiplier(date, discount)

	groups := make([]conversionGroup, 0, len(records)+1)
	for _, rec := range records {
		ch := cfg.channel(rec.Channel)
		cvr := clamp(ch.BaseCVR*mult*rng.Uniform(cvrJitterMin, cvrJitterMax), cvrFloor, cvrCeil)
		conv := rng.Binomial(rec.Clicks, cvr)
		if conv > 0 {
			groups = append(groups, conversionGroup{
				utmSource: ch.UTMSource,
				campaign:  rec.Campaign,
				count:     conv,
			})
		}
	}

	// Direct traffic has no spend record but converts like a channel.
	directClicks := int(rng.Uniform(directClicksMin, directClicksMax) * (directDemandBase + directDemandSlope*demand))
	directCVR := clamp(cfg.DirectCVR*mult*rng.Uniform(directJitterMin, directJitterMax), directCVRFloor, cvrCeil)
	if conv := rng.Binomial(directClicks, directCVR); conv > 0 {
		groups = append(groups, conversionGroup{
			utmSource: "direct",
			campaign:  cfg.DirectCampaign,
			count:     conv,
		})
	}

	cancelRate := baseCancelRate
	if discount >= 0.15 {
		cancelRate = promoCancelRate
	}

	var orders []models.Order
	var items []models.OrderItem
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			order, basket := buildOrder(cfg, rng, date, discount, catalog, ids, g, cancelRate)
			if order != nil {
				orders = append(orders, *order)
				items = append(items, basket...)
			}
		}
	}
	return orders, items
}

// buildOrder materializes a single conversion. Returns nil if the basket
// total is not positive; the random draws and ID counters still advance.
func buildOrder(
	cfg *Config,
	rng *Rand,
	date time.Time,
	discount float64,
	catalog *Catalog,
	ids *orderIDAlloc,
	g conversionGroup,
	cancelRate float64,
) (*models.Order, []models.OrderItem) {
	ids.nextOrder++
	orderID := ids.nextOrder

	customerID := rng.IntBetween(10000, 99999)
	status := drawStatus(rng, cancelRate)
	payment := rng.Pick(cfg.PaymentMethods)
	state := rng.Pick(cfg.ShippingStates)

	units := basketUnits(rng, date, discount)
	priceDiscount := unitPriceDiscount(rng, discount)
	weights := cfg.categoryWeights(date)

	total := 0.0
	basket := make([]models.OrderItem, 0, units)
	for i := 0; i < units; i++ {
		ids.nextItem++

		category := rng.WeightedPick(weights)
		products := catalog.InCategory(category)
		product := products[rng.Intn(len(products))]

		qty := quantity(rng)
		unitPrice := round2(product.CurrentPrice * (1 - priceDiscount) * rng.Uniform(0.98, 1.02))
		lineTotal := round2(unitPrice * float64(qty))
		total += lineTotal

		basket = append(basket, models.OrderItem{
			ID:              ids.nextItem,
			OrderID:         orderID,
			ProductName:     product.Name,
			ProductCategory: product.Category,
			Quantity:        qty,
			UnitPrice:       unitPrice,
			TotalPrice:      lineTotal,
		})
	}

	if total <= 0 {
		return nil, nil
	}

	return &models.Order{
		ID:            orderID,
		CustomerID:    customerID,
		Date:          date,
		Status:        status,
		TotalAmount:   round2(total),
		PaymentMethod: payment,
		ShippingState: state,
		UTMSource:     g.utmSource,
		UTMCampaign:   g.campaign,
	}, basket
}

// drawStatus picks an order status from a single uniform draw against
// cumulative thresholds: cancel, then a shared pending/shipped band, then
// delivered.
func drawStatus(rng *Rand, cancelRate float64) string {
	x := rng.Float64()
	switch {
	case x < cancelRate:
		return "cancelled"
	case x < cancelRate+shipDelayRate:
		if rng.Float64() < 0.5 {
			return "pending"
		}
		return "shipped"
	default:
		return "delivered"
	}
}

// basketUnits draws the basket size: promos and the holiday season both
// push baskets bigger, with a wide noise term on top. Always in [1, 5].
func basketUnits(rng *Rand, d time.Time, discount float64) int {
	base := rng.Uniform(1.1, 1.8)
	if discount >= 0.15 {
		base += rng.Uniform(0.2, 0.5)
	}
	if isHolidaySeason(d) {
		base += rng.Uniform(0.1, 0.3)
	}
	base += rng.Uniform(-0.3, 1.3)

	units := int(base + 0.5)
	if units < basketMin {
		units = basketMin
	}
	if units > basketMax {
		units = basketMax
	}
	return units
}

// unitPriceDiscount converts the nominal seasonal discount into the
// realized per-unit discount. The cap at 0.25 is intentional: even a 0.60
// Black Friday discount rate never cuts more than a quarter off a single
// unit's price.
func unitPriceDiscount(rng *Rand, discount float64) float64 {
	return clamp(discount+rng.Uniform(-unitDiscountJitter, unitDiscountJitter), 0.0, unitDiscountCap)
}

// quantity draws a per-line unit count from a log-normal, floored at 1.
func quantity(rng *Rand) int {
	q := int(rng.LogNormal(0, quantitySigma) + 0.5)
	if q < 1 {
		q = 1
	}
	return q
}

// channel looks up a channel's parameters by name. Marketing records are
// generated from the same config, so the lookup cannot miss.
func (c *Config) channel(name string) ChannelParams {
	for _, ch := range c.Channels {
		if ch.Name == name {
			return ch
		}
	}
	return ChannelParams{}
}

// categoryWeights returns the seasonal category preference table for a
// date.
func (c *Config) categoryWeights(d time.Time) []CategoryWeight {
	switch {
	case isHolidaySeason(d):
		return c.HolidayWeights
	case isSummer(d):
		return c.SummerWeights
	default:
		return c.DefaultWeights
	}
}
