package repo

import models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"

// Metrics is the dashboard snapshot the admin view renders.
type Metrics struct {
	TodaySales        float64       `json:"today_sales"`
	TodayTransactions int           `json:"today_transactions"`
	TotalProducts     int           `json:"total_products"`
	LowStockCount     int           `json:"low_stock_count"`
	RecentSales       []models.Sale `json:"recent_sales"`
}

// SalesSummary aggregates a date range of sales.
type SalesSummary struct {
	TotalSales        float64 `json:"total_sales"`
	Transactions      int     `json:"transactions"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// DailySales is one bucket of the per-day series.
type DailySales struct {
	Date         string  `json:"date"`
	Total        float64 `json:"total"`
	Transactions int     `json:"transactions"`
}

// TopProduct ranks products by units sold within a range.
type TopProduct struct {
	ProductID    int     `json:"product_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

type MetricsRepository interface {
	// Dashboard computes the snapshot for the given store-local date.
	Dashboard(today string) (Metrics, error)
	Summary(startDate, endDate string) (SalesSummary, error)
	DailySeries(startDate, endDate string) ([]DailySales, error)
	TopProducts(startDate, endDate string, limit int) ([]TopProduct, error)
}
