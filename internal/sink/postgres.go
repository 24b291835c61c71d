// Package sink loads a generated dataset into Postgres so analytics demos
// can query it directly instead of importing CSVs.
package sink

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/jogardn/shopsim/pkg/models"
)

type Loader struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewLoader(dsn string, logger *logrus.Logger) (*Loader, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Loader{db: db, logger: logger}, nil
}

func (l *Loader) Close() error {
	return l.db.Close()
}

// Load creates the four tables if they don't exist and inserts the whole
// dataset in one transaction, so a failed load leaves nothing behind.
func (l *Loader) Load(ds *models.Dataset) error {
	if err := l.createTables(); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range ds.Products {
		_, err := tx.Exec(
			`INSERT INTO products (product_id, product_name, category, current_price, cost_price)
			 VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.Name, p.Category, p.CurrentPrice, p.CostPrice,
		)
		if err != nil {
			return fmt.Errorf("insert product %d: %w", p.ID, err)
		}
	}

	for _, r := range ds.MarketingSpend {
		_, err := tx.Exec(
			`INSERT INTO marketing_spend (date, channel, campaign_name, spend_amount, impressions, clicks, ctr)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			r.Date, r.Channel, r.Campaign, r.SpendAmount, r.Impressions, r.Clicks, r.CTR,
		)
		if err != nil {
			return fmt.Errorf("insert marketing row %s/%s: %w", r.Date.Format("2006-01-02"), r.Channel, err)
		}
	}

	for _, o := range ds.Orders {
		_, err := tx.Exec(
			`INSERT INTO orders (order_id, customer_id, order_date, order_status, total_amount,
			                     payment_method, shipping_state, utm_source, utm_campaign)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			o.ID, o.CustomerID, o.Date, o.Status, o.TotalAmount,
			o.PaymentMethod, o.ShippingState, o.UTMSource, o.UTMCampaign,
		)
		if err != nil {
			return fmt.Errorf("insert order %d: %w", o.ID, err)
		}
	}

	for _, it := range ds.OrderItems {
		_, err := tx.Exec(
			`INSERT INTO order_items (order_item_id, order_id, product_name, product_category,
			                          quantity, unit_price, total_price)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.OrderID, it.ProductName, it.ProductCategory,
			it.Quantity, it.UnitPrice, it.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	l.logger.WithFields(logrus.Fields{
		"products":       len(ds.Products),
		"marketing_rows": len(ds.MarketingSpend),
		"orders":         len(ds.Orders),
		"order_items":    len(ds.OrderItems),
	}).Info("Dataset loaded into Postgres")
	return nil
}

func (l *Loader) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS products (
			product_id INTEGER PRIMARY KEY,
			product_name VARCHAR(255) NOT NULL,
			category VARCHAR(50) NOT NULL,
			current_price DECIMAL(10,2) NOT NULL,
			cost_price DECIMAL(10,2) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS marketing_spend (
			date DATE NOT NULL,
			channel VARCHAR(50) NOT NULL,
			campaign_name VARCHAR(100) NOT NULL,
			spend_amount DECIMAL(12,2) NOT NULL,
			impressions INTEGER NOT NULL,
			clicks INTEGER NOT NULL,
			ctr DECIMAL(6,4) NOT NULL,
			PRIMARY KEY (date, channel)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id INTEGER PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			order_date DATE NOT NULL,
			order_status VARCHAR(50) NOT NULL,
			total_amount DECIMAL(12,2) NOT NULL,
			payment_method VARCHAR(50) NOT NULL,
			shipping_state VARCHAR(2) NOT NULL,
			utm_source VARCHAR(50) NOT NULL,
			utm_campaign VARCHAR(100) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id INTEGER PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(order_id),
			product_name VARCHAR(255) NOT NULL,
			product_category VARCHAR(50) NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price DECIMAL(10,2) NOT NULL,
			total_price DECIMAL(12,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders(order_date)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
	}

	for _, query := range queries {
		if _, err := l.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
