package services

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// AnalyticsService aggregates platform activity for dashboards
type AnalyticsService struct {
	db *sql.DB
}

// DashboardStats summarises platform-wide activity
type DashboardStats struct {
	TotalUsers    int             `json:"totalUsers"`
	TotalFarmers  int             `json:"totalFarmers"`
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	OrdersByState map[string]int  `json:"ordersByStatus"`
}

// FarmerSales summarises one farmer's order volume and revenue
type FarmerSales struct {
	FarmerID   string          `json:"farmerId"`
	FarmerName string          `json:"farmerName"`
	OrderCount int             `json:"orderCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ProductSales ranks a product by units ordered
type ProductSales struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	UnitsSold   int    `json:"unitsSold"`
	OrderCount  int    `json:"orderCount"`
}

// IrrigationTrend is a per-day average of a farmer's sensor readings
type IrrigationTrend struct {
	Day             string  `json:"day"`
	AvgSoilMoisture float64 `json:"avgSoilMoisture"`
	AvgTemperature  float64 `json:"avgTemperature"`
	AvgHumidity     float64 `json:"avgHumidity"`
	Readings        int     `json:"readings"`
}

// ForumEngagement summarises community activity
type ForumEngagement struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
	Likes    int `json:"likes"`
}

func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Dashboard computes platform-wide totals. Revenue excludes pending orders.
func (s *AnalyticsService) Dashboard() (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalRevenue:  decimal.Zero,
		OrdersByState: map[string]int{},
	}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM users", &stats.TotalUsers},
		{"SELECT COUNT(*) FROM users WHERE role = 'farmer'", &stats.TotalFarmers},
		{"SELECT COUNT(*) FROM products", &stats.TotalProducts},
		{"SELECT COUNT(*) FROM orders", &stats.TotalOrders},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}

	rows, err := s.db.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to compute order breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan order breakdown: %w", err)
		}
		stats.OrdersByState[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	revenue, err := s.sumRevenue("SELECT total_price FROM orders WHERE status != 'pending'")
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue
	return stats, nil
}

// SalesByFarmer aggregates non-pending order revenue per farmer. An empty
// farmerID covers the whole platform; a non-empty one scopes to that farmer.
func (s *AnalyticsService) SalesByFarmer(farmerID string) ([]FarmerSales, error) {
	query := `
		SELECT u.id, u.name, o.total_price
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.id = p.created_by
		WHERE o.status != 'pending'`
	args := []interface{}{}
	if farmerID != "" {
		query += " AND u.id = ?"
		args = append(args, farmerID)
	}
	query += " ORDER BY u.name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to compute farmer sales: %w", err)
	}
	defer rows.Close()

	byFarmer := map[string]*FarmerSales{}
	order := []string{}
	for rows.Next() {
		var id, name, priceStr string
		if err := rows.Scan(&id, &name, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan farmer sales: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("invalid stored total price: %w", err)
		}

		entry, ok := byFarmer[id]
		if !ok {
			entry = &FarmerSales{FarmerID: id, FarmerName: name, Revenue: decimal.Zero}
			byFarmer[id] = entry
			order = append(order, id)
		}
		entry.OrderCount++
		entry.Revenue = entry.Revenue.Add(price)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sales := make([]FarmerSales, 0, len(order))
	for _, id := range order {
		sales = append(sales, *byFarmer[id])
	}
	return sales, nil
}

// TopProducts ranks products by units ordered across all orders
func (s *AnalyticsService) TopProducts(limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT p.id, p.name, SUM(o.quantity), COUNT(o.id)
		FROM orders o
		JOIN products p ON p.id = o.product_id
		GROUP BY p.id, p.name
		ORDER BY SUM(o.quantity) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}
	defer rows.Close()

	products := []ProductSales{}
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.UnitsSold, &p.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan top products: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// IrrigationTrends averages the farmer's sensor readings per day
func (s *AnalyticsService) IrrigationTrends(farmerID string) ([]IrrigationTrend, error) {
	rows, err := s.db.Query(`
		SELECT date(created_at), AVG(soil_moisture), AVG(temperature), AVG(humidity), COUNT(*)
		FROM sensor_readings
		WHERE created_by = ?
		GROUP BY date(created_at)
		ORDER BY date(created_at)`, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute irrigation trends: %w", err)
	}
	defer rows.Close()

	trends := []IrrigationTrend{}
	for rows.Next() {
		var t IrrigationTrend
		if err := rows.Scan(&t.Day, &t.AvgSoilMoisture, &t.AvgTemperature, &t.AvgHumidity, &t.Readings); err != nil {
			return nil, fmt.Errorf("failed to scan irrigation trends: %w", err)
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

// Forum counts community posts, comments and likes
func (s *AnalyticsService) Forum() (*ForumEngagement, error) {
	engagement := &ForumEngagement{}
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM posts", &engagement.Posts},
		{"SELECT COUNT(*) FROM post_comments", &engagement.Comments},
		{"SELECT COUNT(*) FROM post_likes", &engagement.Likes},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("failed to compute forum engagement: %w", err)
		}
	}
	return engagement, nil
}

// total_price is stored as decimal text, so revenue is summed in Go.
func (s *AnalyticsService) sumRevenue(query string, args ...interface{}) (decimal.Decimal, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute revenue: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var priceStr string
		if err := rows.Scan(&priceStr); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan revenue: %w", err)
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid stored total price: %w", err)
		}
		total = total.Add(price)
	}
	return total, rows.Err()
}
