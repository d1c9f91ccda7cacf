package repo

import "sort"

// InMemoryMetricsRepository derives metrics from the in-memory sale and
// product repositories.
type InMemoryMetricsRepository struct {
	sales    *InMemorySaleRepository
	products *InMemoryProductRepository
}

func NewInMemoryMetricsRepository(sales *InMemorySaleRepository, products *InMemoryProductRepository) *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{sales: sales, products: products}
}

func (r *InMemoryMetricsRepository) Dashboard(today string) (Metrics, error) {
	var m Metrics

	todays, err := r.sales.GetByDateRange(today, today)
	if err != nil {
		return Metrics{}, err
	}
	for _, s := range todays {
		m.TodaySales += s.TotalAmount
	}
	m.TodayTransactions = len(todays)

	products, err := r.products.GetAll()
	if err != nil {
		return Metrics{}, err
	}
	m.TotalProducts = len(products)
	for _, p := range products {
		if p.LowStock() {
			m.LowStockCount++
		}
	}

	limit := 5
	m.RecentSales, err = r.sales.GetAll(&limit)
	return m, err
}

func (r *InMemoryMetricsRepository) Summary(startDate, endDate string) (SalesSummary, error) {
	sales, err := r.sales.GetByDateRange(startDate, endDate)
	if err != nil {
		return SalesSummary{}, err
	}
	var s SalesSummary
	for _, sale := range sales {
		s.TotalSales += sale.TotalAmount
	}
	s.Transactions = len(sales)
	if s.Transactions > 0 {
		s.AverageOrderValue = s.TotalSales / float64(s.Transactions)
	}
	return s, nil
}

func (r *InMemoryMetricsRepository) DailySeries(startDate, endDate string) ([]DailySales, error) {
	sales, err := r.sales.GetByDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	buckets := map[string]*DailySales{}
	for _, s := range sales {
		b, ok := buckets[s.Date]
		if !ok {
			b = &DailySales{Date: s.Date}
			buckets[s.Date] = b
		}
		b.Total += s.TotalAmount
		b.Transactions++
	}
	var series []DailySales
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

func (r *InMemoryMetricsRepository) TopProducts(startDate, endDate string, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	sales, err := r.sales.GetByDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	byProduct := map[int]*TopProduct{}
	for _, s := range sales {
		full, err := r.sales.GetByID(s.ID)
		if err != nil {
			return nil, err
		}
		for _, item := range full.Items {
			t, ok := byProduct[item.ProductID]
			if !ok {
				t = &TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				byProduct[item.ProductID] = t
			}
			t.QuantitySold += item.Quantity
			t.Revenue += item.Subtotal
		}
	}
	var top []TopProduct
	for _, t := range byProduct {
		top = append(top, *t)
	}
	sort.Slice(top, func(i, j int) bool { return top[i].QuantitySold > top[j].QuantitySold })
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}
