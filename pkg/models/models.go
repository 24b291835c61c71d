package models

import (
	"time"
)

// Product is one row of the generated catalog. Products are created once at
// the start of a run and never mutated afterwards.
type Product struct {
	ID           int     `json:"product_id"`
	Name         string  `json:"product_name"`
	Category     string  `json:"category"`
	CurrentPrice float64 `json:"current_price"`
	CostPrice    float64 `json:"cost_price"`
}

// MarketingSpend is one row of daily channel-level marketing metrics.
// Invariant: Clicks == floor(Impressions * CTR) and Clicks <= Impressions.
type MarketingSpend struct {
	Date        time.Time `json:"date"`
	Channel     string    `json:"channel"`
	Campaign    string    `json:"campaign_name"`
	SpendAmount float64   `json:"spend_amount"`
	Impressions int       `json:"impressions"`
	Clicks      int       `json:"clicks"`
	CTR         float64   `json:"ctr"`
}

// Order is one converted purchase. TotalAmount is always the exact sum of
// the order's item totals and is strictly positive; zero-total orders are
// never emitted.
type Order struct {
	ID            int       `json:"order_id"`
	CustomerID    int       `json:"customer_id"`
	Date          time.Time `json:"order_date"`
	Status        string    `json:"order_status"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method"`
	ShippingState string    `json:"shipping_state"`
	UTMSource     string    `json:"utm_source"`
	UTMCampaign   string    `json:"utm_campaign"`
}

// OrderItem is one line of an order's basket. The product name and category
// are denormalized snapshots, so downstream consumers never need a catalog
// join.
type OrderItem struct {
	ID              int     `json:"order_item_id"`
	OrderID         int     `json:"order_id"`
	ProductName     string  `json:"product_name"`
	ProductCategory string  `json:"product_category"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	TotalPrice      float64 `json:"total_price"`
}

// Dataset holds the four generated tables for one simulated date range,
// along with the inputs that produced them. Given the same Seed, StartDate
// and EndDate, two runs produce identical tables.
type Dataset struct {
	RunID     string    `json:"run_id"`
	Seed      int64     `json:"seed"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Products       []Product        `json:"products"`
	MarketingSpend []MarketingSpend `json:"marketing_spend"`
	Orders         []Order          `json:"orders"`
	OrderItems     []OrderItem      `json:"order_items"`
}
