package infrastructure

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/infrastructure/schema"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(w *Database) *ProductRepository {
	return &ProductRepository{db: w.Db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	row := schema.Product{
		ID:                     product.ID,
		Name:                   product.Name,
		Description:            product.Description,
		PriceInCents:           product.PriceInCents,
		IsAvailableForPurchase: product.IsAvailableForPurchase,
	}
	if row.ID == "" {
		row.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	*product = row.ToDomain()
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var row schema.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	product := row.ToDomain()
	return &product, nil
}

// List returns products ordered by name
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var rows []schema.Product
	if err := r.db.WithContext(ctx).Order("name, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]domain.Product, len(rows))
	for i, row := range rows {
		products[i] = row.ToDomain()
	}
	return products, nil
}

func (r *ProductRepository) SetAvailable(ctx context.Context, id string, available bool) error {
	res := r.db.WithContext(ctx).Model(&schema.Product{}).Where("id = ?", id).Update("is_available_for_purchase", available)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) CountByAvailability(ctx context.Context) (active, inactive int64, err error) {
	db := r.db.WithContext(ctx).Model(&schema.Product{})
	if err = db.Where("is_available_for_purchase = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	db = r.db.WithContext(ctx).Model(&schema.Product{})
	if err = db.Where("is_available_for_purchase = ?", false).Count(&inactive).Error; err != nil {
		return 0, 0, err
	}
	return active, inactive, nil
}
