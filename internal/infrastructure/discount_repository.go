package infrastructure

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/discount"
	"storefront/internal/domain"
	"storefront/internal/infrastructure/schema"
)

// usableFor is the sql rendition of discount.Filter.Matches
func usableFor(filter discount.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("discount_codes.is_active = ?", true).
			Where("(discount_codes.all_products = ? OR EXISTS (SELECT 1 FROM discount_code_products dcp WHERE dcp.discount_code_id = discount_codes.id AND dcp.product_id = ?))", true, filter.ProductID).
			Where("(discount_codes.usage_limit IS NULL OR discount_codes.uses < discount_codes.usage_limit)").
			Where("(discount_codes.expires_at IS NULL OR discount_codes.expires_at > ?)", utc(filter.Now))
	}
}

type DiscountCodeRepository struct {
	db *gorm.DB
}

func NewDiscountCodeRepository(w *Database) *DiscountCodeRepository {
	return &DiscountCodeRepository{db: w.Db}
}

func (r *DiscountCodeRepository) Create(ctx context.Context, code *domain.DiscountCode) error {
	row := schema.DiscountCode{
		ID:             uuid.New().String(),
		Code:           code.Code,
		DiscountAmount: code.DiscountAmount,
		DiscountType:   string(code.DiscountType),
		IsActive:       code.IsActive,
		AllProducts:    code.AllProducts,
		UsageLimit:     code.Limit,
	}
	if code.ExpiresAt != nil {
		expiresAt := utc(*code.ExpiresAt)
		row.ExpiresAt = &expiresAt
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if row.AllProducts || len(code.ProductIDs) == 0 {
			return nil
		}
		links := make([]schema.DiscountCodeProduct, len(code.ProductIDs))
		for i, productID := range code.ProductIDs {
			links[i] = schema.DiscountCodeProduct{DiscountCodeID: row.ID, ProductID: productID}
		}
		return tx.Create(&links).Error
	})
	if isUniqueViolation(err) {
		return domain.ErrDuplicateCode
	}
	if err != nil {
		return err
	}

	*code = row.ToDomain(code.ProductIDs)
	if code.AllProducts {
		code.ProductIDs = []string{}
	}
	return nil
}

func (r *DiscountCodeRepository) GetByID(ctx context.Context, id string) (*domain.DiscountCode, error) {
	var row schema.DiscountCode
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	codes, err := r.withProducts(ctx, []schema.DiscountCode{row})
	if err != nil {
		return nil, err
	}
	return &codes[0], nil
}

// List returns every code, newest first
func (r *DiscountCodeRepository) List(ctx context.Context) ([]domain.DiscountCode, error) {
	var rows []schema.DiscountCode
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withProducts(ctx, rows)
}

func (r *DiscountCodeRepository) FindUsable(ctx context.Context, code string, filter discount.Filter) (*domain.DiscountCode, error) {
	var row schema.DiscountCode
	err := r.db.WithContext(ctx).
		Scopes(usableFor(filter)).
		Where("discount_codes.code = ?", code).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	codes, err := r.withProducts(ctx, []schema.DiscountCode{row})
	if err != nil {
		return nil, err
	}
	return &codes[0], nil
}

func (r *DiscountCodeRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&schema.DiscountCode{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.exists(ctx, id)
	}
	return nil
}

// Delete removes a code only while it has no recorded uses
func (r *DiscountCodeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row schema.DiscountCode
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			return notFound(err)
		}
		if row.Uses > 0 {
			return domain.ErrDiscountCodeInUse
		}
		if err := tx.Where("discount_code_id = ?", id).Delete(&schema.DiscountCodeProduct{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND uses = 0", id).Delete(&schema.DiscountCode{}).Error
	})
}

func (r *DiscountCodeRepository) exists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&schema.DiscountCode{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DiscountCodeRepository) withProducts(ctx context.Context, rows []schema.DiscountCode) ([]domain.DiscountCode, error) {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	productIDs := make(map[string][]string)
	if len(ids) > 0 {
		var links []schema.DiscountCodeProduct
		if err := r.db.WithContext(ctx).Where("discount_code_id IN ?", ids).Order("product_id").Find(&links).Error; err != nil {
			return nil, fmt.Errorf("failed to load discount code products: %w", err)
		}
		for _, link := range links {
			productIDs[link.DiscountCodeID] = append(productIDs[link.DiscountCodeID], link.ProductID)
		}
	}

	codes := make([]domain.DiscountCode, len(rows))
	for i, row := range rows {
		codes[i] = row.ToDomain(productIDs[row.ID])
	}
	return codes, nil
}
