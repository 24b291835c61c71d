package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jogardn/shopsim/pkg/models"
)

// DayStats summarizes one simulated day, for progress logging and the
// live progress stream.
type DayStats struct {
	Date    time.Time `json:"date"`
	Demand  float64   `json:"demand_factor"`
	Promo   float64   `json:"discount_rate"`
	Orders  int       `json:"orders"`
	Items   int       `json:"items"`
	Revenue float64   `json:"revenue"`
}

// Simulator generates one self-consistent e-commerce dataset per Run call.
// The simulation is a single sequential pass: catalog first, then each date
// in ascending order, channels in config order within the date. All
// randomness comes from one seeded source consumed in that fixed order, so
// reordering any draw would change every downstream table.
type Simulator struct {
	cfg    *Config
	logger *logrus.Logger
	onDay  func(DayStats)
}

// New validates the parameter tables and returns a Simulator. This is the
// only place configuration errors can surface; a Simulator that exists
// cannot fail mid-run.
func New(cfg *Config, logger *logrus.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	return &Simulator{cfg: cfg, logger: logger}, nil
}

// OnDay registers a callback invoked after each simulated day. Used by the
// preview server to stream progress; may be nil.
func (s *Simulator) OnDay(fn func(DayStats)) {
	s.onDay = fn
}

// Run executes the full pass for [start, end], both inclusive, and returns
// the four tables. Deterministic given (seed, start, end).
func (s *Simulator) Run(seed int64, start, end time.Time) (*models.Dataset, error) {
	start = midnightUTC(start)
	end = midnightUTC(end)
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s before start date %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	rng := NewRand(seed)
	ds := &models.Dataset{
		RunID:     uuid.New().String(),
		Seed:      seed,
		StartDate: start,
		EndDate:   end,
	}

	catalog := GenerateCatalog(s.cfg, rng)
	ds.Products = catalog.Products
	s.logger.WithFields(logrus.Fields{
		"run_id":     ds.RunID,
		"seed":       seed,
		"products":   len(ds.Products),
		"categories": len(s.cfg.Categories),
	}).Info("Catalog generated")

	ids := &orderIDAlloc{nextOrder: s.cfg.OrderIDBase, nextItem: s.cfg.OrderItemIDBase}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		demand, discount := Season(d)

		dayMarketing := SimulateMarketingDay(s.cfg, rng, d, demand, discount)
		ds.MarketingSpend = append(ds.MarketingSpend, dayMarketing...)

		dayOrders, dayItems := SimulateOrdersDay(s.cfg, rng, d, demand, discount, dayMarketing, catalog, ids)
		ds.Orders = append(ds.Orders, dayOrders...)
		ds.OrderItems = append(ds.OrderItems, dayItems...)

		stats := DayStats{
			Date:   d,
			Demand: demand,
			Promo:  discount,
			Orders: len(dayOrders),
			Items:  len(dayItems),
		}
		for _, o := range dayOrders {
			stats.Revenue += o.TotalAmount
		}
		stats.Revenue = round2(stats.Revenue)

		if s.onDay != nil {
			s.onDay(stats)
		}
		if d.Day() == 1 {
			s.logger.WithFields(logrus.Fields{
				"date":          d.Format("2006-01-02"),
				"orders_so_far": len(ds.Orders),
			}).Info("Simulating month")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"run_id":         ds.RunID,
		"days":           int(end.Sub(start).Hours()/24) + 1,
		"marketing_rows": len(ds.MarketingSpend),
		"orders":         len(ds.Orders),
		"order_items":    len(ds.OrderItems),
	}).Info("Simulation complete")

	return ds, nil
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
