package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/discount"
	"storefront/internal/domain"
)

// In-memory storage for service tests

type memStore struct {
	mu       sync.Mutex
	seq      int
	codes    map[string]*domain.DiscountCode
	products map[string]*domain.Product
	orders   map[string]*domain.Order
	users    map[string]*domain.User
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		codes:    make(map[string]*domain.DiscountCode),
		products: make(map[string]*domain.Product),
		orders:   make(map[string]*domain.Order),
		users:    make(map[string]*domain.User),
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

type memCodes struct{ *memStore }

func (r memCodes) Create(_ context.Context, code *domain.DiscountCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.codes {
		if c.Code == code.Code {
			return domain.ErrDuplicateCode
		}
	}
	code.ID = r.nextID("code")
	cp := *code
	r.codes[code.ID] = &cp
	return nil
}

func (r memCodes) GetByID(_ context.Context, id string) (*domain.DiscountCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memCodes) List(_ context.Context) ([]domain.DiscountCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.DiscountCode, 0, len(r.codes))
	for _, c := range r.codes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r memCodes) FindUsable(_ context.Context, code string, filter discount.Filter) (*domain.DiscountCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, c := range r.codes {
		if c.Code == code && filter.Matches(*c) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memCodes) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (r memCodes) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.codes[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Uses > 0 {
		return domain.ErrDiscountCodeInUse
	}
	delete(r.codes, id)
	return nil
}

type memProducts struct{ *memStore }

func (r memProducts) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = r.nextID("product")
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r memProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memProducts) List(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memProducts) SetAvailable(_ context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsAvailableForPurchase = available
	return nil
}

func (r memProducts) CountByAvailability(_ context.Context) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var active, inactive int64
	for _, p := range r.products {
		if p.IsAvailableForPurchase {
			active++
		} else {
			inactive++
		}
	}
	return active, inactive, nil
}

type memOrders struct{ *memStore }

func (r memOrders) sorted(keep func(domain.Order) bool) []domain.Order {
	out := []domain.Order{}
	for _, o := range r.orders {
		if keep(*o) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r memOrders) ListCreatedWithin(_ context.Context, dr analytics.DateRange) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(o domain.Order) bool { return within(dr, o.CreatedAt) }), nil
}

func (r memOrders) Totals(_ context.Context) (analytics.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(domain.Order) bool { return true })
	return analytics.Summarize(all, func(o domain.Order) int64 { return o.PricePaidInCents }), nil
}

func (r memOrders) List(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(domain.Order) bool { return true }), nil
}

func (r memOrders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(o domain.Order) bool { return o.UserID == userID }), nil
}

func (r memOrders) RecordPurchase(_ context.Context, p domain.Purchase, filter discount.Filter) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p.DiscountCodeID != nil {
		code, ok := r.codes[*p.DiscountCodeID]
		if !ok || !filter.Matches(*code) {
			return nil, domain.ErrDiscountCodeUnusable
		}
		code.Uses++
	}

	var user *domain.User
	for _, u := range r.users {
		if u.Email == p.Email {
			user = u
		}
	}
	if user == nil {
		user = &domain.User{ID: r.nextID("user"), Email: p.Email, CreatedAt: filter.Now}
		r.users[user.ID] = user
	}

	order := &domain.Order{
		ID:               r.nextID("order"),
		PricePaidInCents: p.PricePaidInCents,
		UserID:           user.ID,
		ProductID:        p.ProductID,
		DiscountCodeID:   p.DiscountCodeID,
		CreatedAt:        filter.Now,
	}
	r.orders[order.ID] = order
	cp := *order
	return &cp, nil
}

func (r memOrders) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

// within mirrors the inclusive bounds the gorm scopes apply
func within(dr analytics.DateRange, t time.Time) bool {
	if dr.Start != nil && t.Before(*dr.Start) {
		return false
	}
	return dr.End == nil || !t.After(*dr.End)
}

type memUsers struct{ *memStore }

func (r memUsers) ListCreatedWithin(_ context.Context, dr analytics.DateRange) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.users {
		if within(dr, u.CreatedAt) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r memUsers) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r memUsers) ListWithStats(_ context.Context) ([]domain.CustomerStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.CustomerStats{}
	for _, u := range r.users {
		stats := domain.CustomerStats{User: *u}
		for _, o := range r.orders {
			if o.UserID == u.ID {
				stats.OrderCount++
				stats.TotalValueInCents += o.PricePaidInCents
			}
		}
		out = append(out, stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	for oid, o := range r.orders {
		if o.UserID == id {
			delete(r.orders, oid)
		}
	}
	return nil
}

type recordingSender struct {
	mu        sync.Mutex
	receipts  []domain.PurchaseReceipt
	histories []domain.OrderHistory
	err       error
}

func (s *recordingSender) SendPurchaseReceipt(_ context.Context, r domain.PurchaseReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts = append(s.receipts, r)
	return s.err
}

func (s *recordingSender) SendOrderHistory(_ context.Context, h domain.OrderHistory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories = append(s.histories, h)
	return s.err
}

func (m *memStore) addProduct(id, name string, price int64, available bool) {
	m.products[id] = &domain.Product{ID: id, Name: name, PriceInCents: price, IsAvailableForPurchase: available}
}

func (m *memStore) addCode(c domain.DiscountCode) {
	if c.ID == "" {
		c.ID = m.nextID("code")
	}
	m.codes[c.ID] = &c
}

func (m *memStore) codeNamed(code string) *domain.DiscountCode {
	for _, c := range m.codes {
		if c.Code == code {
			return c
		}
	}
	return nil
}
