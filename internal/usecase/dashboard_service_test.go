package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/analytics"
	"storefront/internal/domain"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

var dashboardNow = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func newDashboardFixture(t *testing.T) (*DashboardService, *memStore) {
	t.Helper()

	store := newMemStore()
	store.addProduct("p1", "Alpha", 1000, true)
	store.addProduct("p2", "Beta", 2500, false)
	store.addProduct("p3", "Gamma", 700, true)

	store.users["u1"] = &domain.User{ID: "u1", Email: "a@example.com", CreatedAt: time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)}
	store.users["u2"] = &domain.User{ID: "u2", Email: "b@example.com", CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)}

	store.orders["o1"] = &domain.Order{ID: "o1", UserID: "u1", ProductID: "p1", PricePaidInCents: 1000, CreatedAt: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)}
	store.orders["o2"] = &domain.Order{ID: "o2", UserID: "u2", ProductID: "p2", PricePaidInCents: 2500, CreatedAt: time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)}
	store.orders["o3"] = &domain.Order{ID: "o3", UserID: "u2", ProductID: "p1", PricePaidInCents: 500, CreatedAt: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)}

	svc := NewDashboardService(
		memOrders{store}, memUsers{store}, memProducts{store},
		logger.Discard(), metrics.NewWithRegistry(prometheus.NewRegistry()),
		time.UTC, 2,
	)
	svc.now = func() time.Time { return dashboardNow }
	return svc, store
}

func TestGetDashboard(t *testing.T) {
	svc, _ := newDashboardFixture(t)

	dash, err := svc.GetDashboard(context.Background(), DashboardRanges{})
	require.NoError(t, err)

	t.Run("sales use the unfiltered totals and a seven day chart", func(t *testing.T) {
		assert.Equal(t, 40.0, dash.Sales.Amount)
		assert.Equal(t, int64(3), dash.Sales.NumberOfSales)
		assert.Equal(t, analytics.Last7Days.Key, dash.Sales.Range.Key)

		require.Len(t, dash.Sales.Chart, 7)
		assert.Equal(t, "2024-03-04", dash.Sales.Chart[0].Date)
		assert.Equal(t, "2024-03-10", dash.Sales.Chart[6].Date)
		assert.Equal(t, 25.0, dash.Sales.Chart[4].Value)
		assert.Equal(t, 10.0, dash.Sales.Chart[6].Value)
		assert.Zero(t, dash.Sales.Chart[0].Value)
	})

	t.Run("customers average every order over every user", func(t *testing.T) {
		assert.Equal(t, int64(2), dash.Customers.UserCount)
		assert.Equal(t, 20.0, dash.Customers.AverageValuePerUser)
		require.Len(t, dash.Customers.Chart, 7)
		assert.Equal(t, 1, dash.Customers.Chart[5].Value)
	})

	t.Run("products are counted by availability", func(t *testing.T) {
		assert.Equal(t, int64(2), dash.Products.ActiveCount)
		assert.Equal(t, int64(1), dash.Products.InactiveCount)
	})

	t.Run("revenue by product skips products without sales", func(t *testing.T) {
		assert.Equal(t, analytics.AllTime.Key, dash.RevenueByProduct.Range.Key)
		assert.Equal(t, []ProductRevenue{
			{ProductID: "p1", Name: "Alpha", Revenue: 15.0},
			{ProductID: "p2", Name: "Beta", Revenue: 25.0},
		}, dash.RevenueByProduct.Products)
	})

	t.Run("cards are formatted for display", func(t *testing.T) {
		require.Len(t, dash.Cards, 3)
		assert.Equal(t, Card{Title: "Sales", Subtitle: "3 Orders", Body: "$40.00"}, dash.Cards[0])
		assert.Equal(t, Card{Title: "Customers", Subtitle: "$20.00 Average Value", Body: "2"}, dash.Cards[1])
		assert.Equal(t, Card{Title: "Active Products", Subtitle: "1 Inactive", Body: "2"}, dash.Cards[2])
	})
}

func TestGetDashboardRanges(t *testing.T) {
	svc, _ := newDashboardFixture(t)

	tests := []struct {
		name       string
		ranges     DashboardRanges
		salesDays  int
		salesKey   string
		revenueKey string
		revenue    int
	}{
		{
			name:       "unknown keys fall back to defaults",
			ranges:     DashboardRanges{TotalSales: "fortnight", RevenueByProduct: "nope"},
			salesDays:  7,
			salesKey:   "last_7_days",
			revenueKey: "all_time",
			revenue:    2,
		},
		{
			name:       "today",
			ranges:     DashboardRanges{TotalSales: "today", RevenueByProduct: "today"},
			salesDays:  1,
			salesKey:   "today",
			revenueKey: "today",
			revenue:    1,
		},
		{
			name:       "all time sales start at the first order",
			ranges:     DashboardRanges{TotalSales: "all_time", RevenueByProduct: "last_30_days"},
			salesDays:  39,
			salesKey:   "all_time",
			revenueKey: "last_30_days",
			revenue:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dash, err := svc.GetDashboard(context.Background(), tt.ranges)
			require.NoError(t, err)

			assert.Equal(t, tt.salesKey, dash.Sales.Range.Key)
			assert.Len(t, dash.Sales.Chart, tt.salesDays)
			assert.Equal(t, tt.revenueKey, dash.RevenueByProduct.Range.Key)
			assert.Len(t, dash.RevenueByProduct.Products, tt.revenue)
		})
	}
}

func TestCustomerDataWithoutUsers(t *testing.T) {
	store := newMemStore()
	svc := NewDashboardService(
		memOrders{store}, memUsers{store}, memProducts{store},
		logger.Discard(), metrics.NewWithRegistry(prometheus.NewRegistry()),
		nil, 0,
	)
	svc.now = func() time.Time { return dashboardNow }

	data, err := svc.CustomerData(context.Background(), analytics.AllTime, dashboardNow)
	require.NoError(t, err)

	assert.Zero(t, data.UserCount)
	assert.Zero(t, data.AverageValuePerUser)
	assert.NotNil(t, data.Chart)
	assert.Empty(t, data.Chart)
}

func TestRangePresets(t *testing.T) {
	svc, _ := newDashboardFixture(t)

	views := svc.RangePresets()
	require.Len(t, views, len(analytics.Presets()))

	assert.Equal(t, "today", views[0].Key)
	require.NotNil(t, views[0].Start)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), *views[0].Start)

	last := views[len(views)-1]
	assert.Equal(t, "all_time", last.Key)
	assert.Nil(t, last.Start)
	assert.Nil(t, last.End)
}
