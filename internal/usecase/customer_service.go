package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/pkg/format"
	"storefront/pkg/logger"
)

// CustomerService covers the admin order/user tables and order history mail
type CustomerService struct {
	users    UserRepository
	orders   OrderRepository
	products ProductRepository
	receipts ReceiptSender
	logger   *logger.Logger
}

func NewCustomerService(
	users UserRepository,
	orders OrderRepository,
	products ProductRepository,
	receipts ReceiptSender,
	logger *logger.Logger,
) *CustomerService {
	return &CustomerService{
		users:    users,
		orders:   orders,
		products: products,
		receipts: receipts,
		logger:   logger,
	}
}

func (s *CustomerService) ListUsers(ctx context.Context) ([]domain.CustomerStats, error) {
	users, err := s.users.ListWithStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user and their orders
func (s *CustomerService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	s.logger.WithContext(ctx).WithField("id", id).Info("User deleted")
	return nil
}

func (s *CustomerService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *CustomerService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order %s: %w", id, err)
	}
	s.logger.WithContext(ctx).WithField("id", id).Info("Order deleted")
	return nil
}

// SendOrderHistory mails a customer every order they placed. Unknown
// addresses are accepted silently so the endpoint does not reveal who bought.
func (s *CustomerService) SendOrderHistory(ctx context.Context, email string) error {
	log := s.logger.WithContext(ctx)

	if s.receipts == nil {
		return domain.ErrMailerUnavailable
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		log.Info("Order history requested for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	orders, err := s.orders.ListByUser(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to list orders for user %s: %w", user.ID, err)
	}

	products := make(map[string]domain.Product)
	history := domain.OrderHistory{Email: user.Email, Orders: make([]domain.OrderHistoryEntry, 0, len(orders))}
	for _, o := range orders {
		product, ok := products[o.ProductID]
		if !ok {
			p, err := s.products.GetByID(ctx, o.ProductID)
			if err != nil {
				return fmt.Errorf("failed to load product %s: %w", o.ProductID, err)
			}
			product = *p
			products[o.ProductID] = product
		}
		history.Orders = append(history.Orders, domain.OrderHistoryEntry{
			Order:     o,
			Product:   product,
			PricePaid: format.CurrencyFromCents(o.PricePaidInCents),
		})
	}

	if err := s.receipts.SendOrderHistory(ctx, history); err != nil {
		return fmt.Errorf("failed to send order history: %w", err)
	}

	log.WithFields(map[string]any{"user_id": user.ID, "orders": len(orders)}).Info("Order history sent")
	return nil
}
