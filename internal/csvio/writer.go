// Package csvio serializes a generated dataset to one delimited file per
// table, header row first, matching the column order of the in-memory
// models.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jogardn/shopsim/pkg/models"
)

const (
	ProductsFile       = "products.csv"
	MarketingSpendFile = "marketing_spend.csv"
	OrdersFile         = "orders.csv"
	OrderItemsFile     = "order_items.csv"

	dateLayout = "2006-01-02"
)

// WriteDataset writes the four tables into dir, creating it if needed.
func WriteDataset(ds *models.Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeFile(dir, ProductsFile, productRows(ds.Products)); err != nil {
		return err
	}
	if err := writeFile(dir, MarketingSpendFile, marketingRows(ds.MarketingSpend)); err != nil {
		return err
	}
	if err := writeFile(dir, OrdersFile, orderRows(ds.Orders)); err != nil {
		return err
	}
	return writeFile(dir, OrderItemsFile, orderItemRows(ds.OrderItems))
}

func writeFile(dir, name string, rows [][]string) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return f.Close()
}

func productRows(products []models.Product) [][]string {
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, []string{"product_id", "product_name", "category", "current_price", "cost_price"})
	for _, p := range products {
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			p.Category,
			money(p.CurrentPrice),
			money(p.CostPrice),
		})
	}
	return rows
}

func marketingRows(records []models.MarketingSpend) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"date", "channel", "campaign_name", "spend_amount", "impressions", "clicks", "ctr"})
	for _, r := range records {
		rows = append(rows, []string{
			r.Date.Format(dateLayout),
			r.Channel,
			r.Campaign,
			money(r.SpendAmount),
			strconv.Itoa(r.Impressions),
			strconv.Itoa(r.Clicks),
			strconv.FormatFloat(r.CTR, 'f', 4, 64),
		})
	}
	return rows
}

func orderRows(orders []models.Order) [][]string {
	rows := make([][]string, 0, len(orders)+1)
	rows = append(rows, []string{
		"order_id", "customer_id", "order_date", "order_status", "total_amount",
		"payment_method", "shipping_state", "utm_source", "utm_campaign",
	})
	for _, o := range orders {
		rows = append(rows, []string{
			strconv.Itoa(o.ID),
			strconv.Itoa(o.CustomerID),
			o.Date.Format(dateLayout),
			o.Status,
			money(o.TotalAmount),
			o.PaymentMethod,
			o.ShippingState,
			o.UTMSource,
			o.UTMCampaign,
		})
	}
	return rows
}

func orderItemRows(items []models.OrderItem) [][]string {
	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, []string{
		"order_item_id", "order_id", "product_name", "product_category",
		"quantity", "unit_price", "total_price",
	})
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.ID),
			strconv.Itoa(it.OrderID),
			it.ProductName,
			it.ProductCategory,
			strconv.Itoa(it.Quantity),
			money(it.UnitPrice),
			money(it.TotalPrice),
		})
	}
	return rows
}

func money(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
