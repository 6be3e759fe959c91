package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/domain"
	"storefront/pkg/format"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

// Presets each dashboard card falls back to when its range key is missing or unknown
var (
	DefaultSalesRange            = analytics.Last7Days
	DefaultCustomersRange        = analytics.Last7Days
	DefaultRevenueByProductRange = analytics.AllTime
)

// DashboardRanges carries the raw preset keys a client asked for
type DashboardRanges struct {
	TotalSales       string
	NewCustomers     string
	RevenueByProduct string
}

type Card struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Body     string `json:"body"`
}

type SalesData struct {
	Range         analytics.PresetView             `json:"range"`
	Amount        float64                          `json:"amount"`
	NumberOfSales int64                            `json:"number_of_sales"`
	Chart         []analytics.DailyBucket[float64] `json:"chart"`
}

type CustomerData struct {
	Range               analytics.PresetView         `json:"range"`
	UserCount           int64                        `json:"user_count"`
	AverageValuePerUser float64                      `json:"average_value_per_user"`
	Chart               []analytics.DailyBucket[int] `json:"chart"`
}

type ProductData struct {
	ActiveCount   int64 `json:"active_count"`
	InactiveCount int64 `json:"inactive_count"`
}

type ProductRevenue struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Revenue   float64 `json:"revenue"`
}

type RevenueByProductData struct {
	Range    analytics.PresetView `json:"range"`
	Products []ProductRevenue     `json:"products"`
}

type Dashboard struct {
	Cards            []Card               `json:"cards"`
	Sales            SalesData            `json:"sales"`
	Customers        CustomerData         `json:"customers"`
	Products         ProductData          `json:"products"`
	RevenueByProduct RevenueByProductData `json:"revenue_by_product"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// DashboardService assembles the admin dashboard from storage
type DashboardService struct {
	orders     OrderRepository
	users      UserRepository
	products   ProductRepository
	logger     *logger.Logger
	metrics    *metrics.Metrics
	location   *time.Location
	workerPool int
	now        func() time.Time
}

func NewDashboardService(
	orders OrderRepository,
	users UserRepository,
	products ProductRepository,
	logger *logger.Logger,
	metrics *metrics.Metrics,
	location *time.Location,
	workerPool int,
) *DashboardService {
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		orders:     orders,
		users:      users,
		products:   products,
		logger:     logger,
		metrics:    metrics,
		location:   location,
		workerPool: max(1, workerPool),
		now:        time.Now,
	}
}

// RangePresets enumerates the presets resolved against the current instant
func (s *DashboardService) RangePresets() []analytics.PresetView {
	now := s.now()
	presets := analytics.Presets()
	views := make([]analytics.PresetView, len(presets))
	for i, p := range presets {
		views[i] = p.View(now, s.location)
	}
	return views
}

// GetDashboard fetches the four dashboard sections concurrently
func (s *DashboardService) GetDashboard(ctx context.Context, ranges DashboardRanges) (*Dashboard, error) {
	log := s.logger.WithContext(ctx)
	now := s.now()

	salesPreset := analytics.Resolve(ranges.TotalSales, DefaultSalesRange)
	customersPreset := analytics.Resolve(ranges.NewCustomers, DefaultCustomersRange)
	revenuePreset := analytics.Resolve(ranges.RevenueByProduct, DefaultRevenueByProductRange)

	log.WithFields(map[string]any{
		"sales_range":              salesPreset.Key,
		"customers_range":          customersPreset.Key,
		"revenue_by_product_range": revenuePreset.Key,
	}).Info("Building dashboard")

	var (
		sales                                           *SalesData
		customers                                       *CustomerData
		products                                        *ProductData
		revenue                                         *RevenueByProductData
		salesErr, customersErr, productsErr, revenueErr error
	)

	var wg sync.WaitGroup
	wg.Go(func() { sales, salesErr = s.SalesData(ctx, salesPreset, now) })
	wg.Go(func() { customers, customersErr = s.CustomerData(ctx, customersPreset, now) })
	wg.Go(func() { products, productsErr = s.ProductData(ctx) })
	wg.Go(func() { revenue, revenueErr = s.RevenueByProduct(ctx, revenuePreset, now) })
	wg.Wait()

	for _, err := range []error{salesErr, customersErr, productsErr, revenueErr} {
		if err != nil {
			log.WithError(err).Error("Failed to build dashboard")
			return nil, err
		}
	}

	return &Dashboard{
		Cards: []Card{
			{
				Title:    "Sales",
				Subtitle: format.Number(sales.NumberOfSales) + " Orders",
				Body:     format.Currency(sales.Amount),
			},
			{
				Title:    "Customers",
				Subtitle: format.Currency(customers.AverageValuePerUser) + " Average Value",
				Body:     format.Number(customers.UserCount),
			},
			{
				Title:    "Active Products",
				Subtitle: format.Number(products.InactiveCount) + " Inactive",
				Body:     format.Number(products.ActiveCount),
			},
		},
		Sales:            *sales,
		Customers:        *customers,
		Products:         *products,
		RevenueByProduct: *revenue,
		GeneratedAt:      now,
	}, nil
}

// SalesData pairs all-time revenue figures with a per-day sales chart over preset
func (s *DashboardService) SalesData(ctx context.Context, preset analytics.RangePreset, now time.Time) (*SalesData, error) {
	window := s.window(preset, now)

	totals, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total orders: %w", err)
	}

	orders, err := s.orders.ListCreatedWithin(ctx, window.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for sales chart: %w", err)
	}

	start := time.Now()
	chart := analytics.AggregateByDay(window, orders,
		func(o domain.Order) time.Time { return o.CreatedAt },
		func(total float64, o domain.Order) float64 { return total + float64(o.PricePaidInCents)/100 },
	)
	s.metrics.RecordAggregation("sales", len(chart), time.Since(start))

	return &SalesData{
		Range:         preset.View(now, s.location),
		Amount:        totals.TotalMajor(),
		NumberOfSales: totals.Count,
		Chart:         chart,
	}, nil
}

// CustomerData pairs the user count and average value per user with a per-day signup chart
func (s *DashboardService) CustomerData(ctx context.Context, preset analytics.RangePreset, now time.Time) (*CustomerData, error) {
	window := s.window(preset, now)

	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totals, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to total orders: %w", err)
	}

	users, err := s.users.ListCreatedWithin(ctx, window.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for customer chart: %w", err)
	}

	start := time.Now()
	chart := analytics.AggregateByDay(window, users,
		func(u domain.User) time.Time { return u.CreatedAt },
		func(n int, _ domain.User) int { return n + 1 },
	)
	s.metrics.RecordAggregation("customers", len(chart), time.Since(start))

	return &CustomerData{
		Range:               preset.View(now, s.location),
		UserCount:           userCount,
		AverageValuePerUser: analytics.AveragePerEntity(totals.TotalCents, userCount),
		Chart:               chart,
	}, nil
}

func (s *DashboardService) ProductData(ctx context.Context) (*ProductData, error) {
	active, inactive, err := s.products.CountByAvailability(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	return &ProductData{ActiveCount: active, InactiveCount: inactive}, nil
}

// RevenueByProduct totals each product's orders within preset on a worker
// pool. Products without revenue in the range are left out.
func (s *DashboardService) RevenueByProduct(ctx context.Context, preset analytics.RangePreset, now time.Time) (*RevenueByProductData, error) {
	window := s.window(preset, now)

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	orders, err := s.orders.ListCreatedWithin(ctx, window.Range)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for product revenue: %w", err)
	}

	ordersByProduct := make(map[string][]domain.Order)
	for _, o := range orders {
		ordersByProduct[o.ProductID] = append(ordersByProduct[o.ProductID], o)
	}

	jobs := make(chan domain.Product, len(products))
	results := make(chan ProductRevenue, len(products))

	var wg sync.WaitGroup
	for i := 0; i < s.workerPool; i++ {
		wg.Go(func() {
			for p := range jobs {
				summary := analytics.Summarize(ordersByProduct[p.ID], func(o domain.Order) int64 { return o.PricePaidInCents })
				if summary.TotalCents > 0 {
					results <- ProductRevenue{ProductID: p.ID, Name: p.Name, Revenue: summary.TotalMajor()}
				}
			}
		})
	}

	for _, p := range products {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	revenue := []ProductRevenue{}
	for r := range results {
		revenue = append(revenue, r)
	}

	sort.Slice(revenue, func(i, j int) bool {
		if revenue[i].Name != revenue[j].Name {
			return revenue[i].Name < revenue[j].Name
		}
		return revenue[i].ProductID < revenue[j].ProductID
	})

	return &RevenueByProductData{
		Range:    preset.View(now, s.location),
		Products: revenue,
	}, nil
}

func (s *DashboardService) window(preset analytics.RangePreset, now time.Time) analytics.Window {
	return analytics.Window{
		Range:    preset.Range(now, s.location),
		Location: s.location,
		Now:      now,
	}
}
