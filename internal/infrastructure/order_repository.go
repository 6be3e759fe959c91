package infrastructure

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/analytics"
	"storefront/internal/discount"
	"storefront/internal/domain"
	"storefront/internal/infrastructure/schema"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(w *Database) *OrderRepository {
	return &OrderRepository{db: w.Db}
}

func (r *OrderRepository) ListCreatedWithin(ctx context.Context, dr analytics.DateRange) ([]domain.Order, error) {
	var rows []schema.Order
	err := r.db.WithContext(ctx).
		Scopes(createdWithin("orders", dr)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

func (r *OrderRepository) Totals(ctx context.Context) (analytics.Summary, error) {
	var summary analytics.Summary
	err := r.db.WithContext(ctx).
		Model(&schema.Order{}).
		Select("COUNT(*) AS count, COALESCE(SUM(price_paid_in_cents), 0) AS total_cents").
		Scan(&summary).Error
	return summary, err
}

// List returns every order, newest first
func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	var rows []schema.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	var rows []schema.Order
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toOrders(rows), nil
}

// RecordPurchase redeems the discount code, upserts the buyer and stores the
// order in one transaction. The redemption is a conditional increment so a
// code that stopped matching since it was quoted is rejected.
func (r *OrderRepository) RecordPurchase(ctx context.Context, purchase domain.Purchase, filter discount.Filter) (*domain.Order, error) {
	var order schema.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if purchase.DiscountCodeID != nil {
			res := tx.Model(&schema.DiscountCode{}).
				Scopes(usableFor(filter)).
				Where("discount_codes.id = ?", *purchase.DiscountCodeID).
				UpdateColumn("uses", gorm.Expr("uses + ?", 1))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrDiscountCodeUnusable
			}
		}

		candidate := schema.User{ID: uuid.New().String(), Email: purchase.Email}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&candidate).Error
		if err != nil {
			return err
		}

		var user schema.User
		if err := tx.Where("email = ?", purchase.Email).First(&user).Error; err != nil {
			return err
		}

		order = schema.Order{
			ID:               uuid.New().String(),
			PricePaidInCents: purchase.PricePaidInCents,
			UserID:           user.ID,
			ProductID:        purchase.ProductID,
			DiscountCodeID:   purchase.DiscountCodeID,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	result := order.ToDomain()
	return &result, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&schema.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toOrders(rows []schema.Order) []domain.Order {
	orders := make([]domain.Order, len(rows))
	for i, row := range rows {
		orders[i] = row.ToDomain()
	}
	return orders
}
