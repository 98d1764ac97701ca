package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"foodees-api/models"
)

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// RevenuePoint is the sum of order totals in one period ("2024-05" or "2024-05-17").
type RevenuePoint struct {
	Period  string  `json:"period"`
	Revenue float64 `json:"revenue"`
}

type Earnings struct {
	Deliveries     int64   `json:"deliveries"`
	DeliveredTotal float64 `json:"delivered_total"`
}

// CountOrdersBetween counts orders created in [from, to).
func (s *Store) CountOrdersBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := s.conn(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return n, nil
}

func (s *Store) CountOrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	var out []StatusCount
	err := s.conn(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("count orders by status: %w", err)
	}
	return out, nil
}

// RevenueByMonth sums order totals per calendar month (UTC), oldest first.
func (s *Store) RevenueByMonth(ctx context.Context) ([]RevenuePoint, error) {
	return s.revenueSeries(ctx, 0, "2006-01")
}

// DailyRevenue sums a restaurant's order totals per day (UTC), oldest first.
// Cancelled orders never count as revenue.
func (s *Store) DailyRevenue(ctx context.Context, restaurantID uint) ([]RevenuePoint, error) {
	return s.revenueSeries(ctx, restaurantID, "2006-01-02")
}

func (s *Store) revenueSeries(ctx context.Context, restaurantID uint, layout string) ([]RevenuePoint, error) {
	var rows []struct {
		CreatedAt time.Time
		Total     float64
	}
	q := s.conn(ctx).Model(&models.Order{}).
		Select("created_at, total").
		Where("status <> ?", models.StatusCancelled)
	if restaurantID != 0 {
		q = q.Where("restaurant_id = ?", restaurantID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load revenue rows: %w", err)
	}

	// Bucketing happens here rather than in strftime so the series does not
	// depend on how the driver formats DATETIME text.
	sums := map[string]float64{}
	for _, r := range rows {
		sums[r.CreatedAt.UTC().Format(layout)] += r.Total
	}
	points := make([]RevenuePoint, 0, len(sums))
	for period, total := range sums {
		points = append(points, RevenuePoint{Period: period, Revenue: models.RoundMoney(total)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })
	return points, nil
}

// DeliveryEarnings counts and sums the delivered orders of one agent.
func (s *Store) DeliveryEarnings(ctx context.Context, agentID uint) (Earnings, error) {
	var e Earnings
	err := s.conn(ctx).Model(&models.Order{}).
		Select("COUNT(*) AS deliveries, COALESCE(SUM(total), 0) AS delivered_total").
		Where("delivery_id = ? AND status = ?", agentID, models.StatusDelivered).
		Scan(&e).Error
	if err != nil {
		return Earnings{}, fmt.Errorf("sum earnings of agent %d: %w", agentID, err)
	}
	return e, nil
}
