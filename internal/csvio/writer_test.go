package csvio

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogardn/shopsim/pkg/models"
)

func sampleDataset() *models.Dataset {
	date := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	return &models.Dataset{
		RunID:     "test-run",
		Seed:      22,
		StartDate: date,
		EndDate:   date,
		Products: []models.Product{
			{ID: 10001, Name: "Top KT-482", Category: "Tops", CurrentPrice: 34.5, CostPrice: 15.2},
		},
		MarketingSpend: []models.MarketingSpend{
			{Date: date, Channel: "google_ads", Campaign: "always_on_search", SpendAmount: 1234.567, Impressions: 98000, Clicks: 2450, CTR: 0.025},
		},
		Orders: []models.Order{
			{ID: 500001, CustomerID: 54321, Date: date, Status: "delivered", TotalAmount: 61.0,
				PaymentMethod: "paypal", ShippingState: "CA", UTMSource: "google", UTMCampaign: "always_on_search"},
		},
		OrderItems: []models.OrderItem{
			{ID: 800001, OrderID: 500001, ProductName: "Top KT-482", ProductCategory: "Tops", Quantity: 1, UnitPrice: 30.5, TotalPrice: 30.5},
			{ID: 800002, OrderID: 500001, ProductName: "Top KT-482", ProductCategory: "Tops", Quantity: 1, UnitPrice: 30.5, TotalPrice: 30.5},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteDataset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteDataset(sampleDataset(), dir))

	products := readCSV(t, filepath.Join(dir, ProductsFile))
	require.Len(t, products, 2)
	assert.Equal(t, []string{"product_id", "product_name", "category", "current_price", "cost_price"}, products[0])
	assert.Equal(t, []string{"10001", "Top KT-482", "Tops", "34.50", "15.20"}, products[1])

	marketing := readCSV(t, filepath.Join(dir, MarketingSpendFile))
	require.Len(t, marketing, 2)
	assert.Equal(t, []string{"date", "channel", "campaign_name", "spend_amount", "impressions", "clicks", "ctr"}, marketing[0])
	assert.Equal(t, []string{"2024-06-15", "google_ads", "always_on_search", "1234.57", "98000", "2450", "0.0250"}, marketing[1])

	orders := readCSV(t, filepath.Join(dir, OrdersFile))
	require.Len(t, orders, 2)
	assert.Equal(t, []string{
		"order_id", "customer_id", "order_date", "order_status", "total_amount",
		"payment_method", "shipping_state", "utm_source", "utm_campaign",
	}, orders[0])
	assert.Equal(t, []string{"500001", "54321", "2024-06-15", "delivered", "61.00", "paypal", "CA", "google", "always_on_search"}, orders[1])

	items := readCSV(t, filepath.Join(dir, OrderItemsFile))
	require.Len(t, items, 3)
	assert.Equal(t, []string{
		"order_item_id", "order_id", "product_name", "product_category",
		"quantity", "unit_price", "total_price",
	}, items[0])
	assert.Equal(t, []string{"800001", "500001", "Top KT-482", "Tops", "1", "30.50", "30.50"}, items[1])
}

func TestWriteDatasetCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, WriteDataset(sampleDataset(), dir))

	for _, name := range []string{ProductsFile, MarketingSpendFile, OrdersFile, OrderItemsFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "%s should exist", name)
	}
}
