package infrastructure

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/analytics"
	"storefront/internal/domain"
	"storefront/internal/infrastructure/schema"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(w *Database) *UserRepository {
	return &UserRepository{db: w.Db}
}

func (r *UserRepository) ListCreatedWithin(ctx context.Context, dr analytics.DateRange) ([]domain.User, error) {
	var rows []schema.User
	err := r.db.WithContext(ctx).
		Scopes(createdWithin("users", dr)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = row.ToDomain()
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&schema.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row schema.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	user := row.ToDomain()
	return &user, nil
}

type userStatsRow struct {
	schema.User
	OrderCount        int64
	TotalValueInCents int64
}

// ListWithStats returns users newest first with their order figures
func (r *UserRepository) ListWithStats(ctx context.Context) ([]domain.CustomerStats, error) {
	var rows []userStatsRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.*, COUNT(orders.id) AS order_count, COALESCE(SUM(orders.price_paid_in_cents), 0) AS total_value_in_cents").
		Joins("LEFT JOIN orders ON orders.user_id = users.id").
		Group("users.id").
		Order("users.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make([]domain.CustomerStats, len(rows))
	for i, row := range rows {
		stats[i] = domain.CustomerStats{
			User:              row.User.ToDomain(),
			OrderCount:        row.OrderCount,
			TotalValueInCents: row.TotalValueInCents,
		}
	}
	return stats, nil
}

// Delete removes the user along with their orders
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&schema.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("user_id = ?", id).Delete(&schema.Order{}).Error
	})
}

// createdWithin bounds table.created_at by dr, inclusive
func createdWithin(table string, dr analytics.DateRange) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if dr.Start != nil {
			db = db.Where(table+".created_at >= ?", utc(*dr.Start))
		}
		if dr.End != nil {
			db = db.Where(table+".created_at <= ?", utc(*dr.End))
		}
		return db
	}
}
