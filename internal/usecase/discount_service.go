package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/pkg/logger"
)

type CreateDiscountCodeInput struct {
	Code           string
	DiscountAmount int
	DiscountType   domain.DiscountType
	AllProducts    bool
	ProductIDs     []string
	Limit          *int
	ExpiresAt      *time.Time
}

// DiscountCodeListing splits codes the way the admin table shows them
type DiscountCodeListing struct {
	Current []domain.DiscountCode `json:"current"`
	Expired []domain.DiscountCode `json:"expired"`
}

type DiscountService struct {
	codes    DiscountCodeRepository
	products ProductRepository
	logger   *logger.Logger
	now      func() time.Time
}

func NewDiscountService(codes DiscountCodeRepository, products ProductRepository, logger *logger.Logger) *DiscountService {
	return &DiscountService{
		codes:    codes,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *DiscountService) Create(ctx context.Context, in CreateDiscountCodeInput) (*domain.DiscountCode, error) {
	log := s.logger.WithContext(ctx)

	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	code := &domain.DiscountCode{
		Code:           in.Code,
		DiscountAmount: in.DiscountAmount,
		DiscountType:   in.DiscountType,
		IsActive:       true,
		AllProducts:    in.AllProducts,
		Limit:          in.Limit,
		ExpiresAt:      in.ExpiresAt,
	}
	if !in.AllProducts {
		code.ProductIDs = in.ProductIDs
	}

	if err := s.codes.Create(ctx, code); err != nil {
		log.WithError(err).WithField("code", in.Code).Error("Failed to create discount code")
		return nil, fmt.Errorf("failed to create discount code: %w", err)
	}

	log.WithFields(map[string]any{
		"id":            code.ID,
		"code":          code.Code,
		"discount_type": code.DiscountType,
		"all_products":  code.AllProducts,
	}).Info("Discount code created")

	return code, nil
}

func (s *DiscountService) validate(ctx context.Context, in *CreateDiscountCodeInput) error {
	in.Code = strings.TrimSpace(in.Code)
	if in.Code == "" {
		return fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	if !in.DiscountType.Valid() {
		return fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidInput, in.DiscountType)
	}
	if in.DiscountAmount <= 0 {
		return fmt.Errorf("%w: discount amount must be positive", domain.ErrInvalidInput)
	}
	if in.DiscountType == domain.DiscountTypePercentage && in.DiscountAmount > 100 {
		return fmt.Errorf("%w: percentage discount cannot exceed 100", domain.ErrInvalidInput)
	}
	if in.Limit != nil && *in.Limit < 1 {
		return fmt.Errorf("%w: limit must be at least 1", domain.ErrInvalidInput)
	}
	if in.ExpiresAt != nil && !in.ExpiresAt.After(s.now()) {
		return fmt.Errorf("%w: expiry must be in the future", domain.ErrInvalidInput)
	}

	if in.AllProducts {
		return nil
	}
	if len(in.ProductIDs) == 0 {
		return fmt.Errorf("%w: choose at least one product or all products", domain.ErrInvalidInput)
	}
	for _, id := range in.ProductIDs {
		if _, err := s.products.GetByID(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: unknown product %s", domain.ErrInvalidInput, id)
			}
			return fmt.Errorf("failed to load product %s: %w", id, err)
		}
	}
	return nil
}

// List separates codes that can still be redeemed from expired or exhausted ones
func (s *DiscountService) List(ctx context.Context) (*DiscountCodeListing, error) {
	codes, err := s.codes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list discount codes: %w", err)
	}

	now := s.now()
	listing := &DiscountCodeListing{
		Current: []domain.DiscountCode{},
		Expired: []domain.DiscountCode{},
	}
	for _, code := range codes {
		if code.ExpiredAt(now) || code.Exhausted() {
			listing.Expired = append(listing.Expired, code)
			continue
		}
		listing.Current = append(listing.Current, code)
	}
	return listing, nil
}

func (s *DiscountService) SetActive(ctx context.Context, id string, active bool) error {
	if err := s.codes.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("failed to update discount code %s: %w", id, err)
	}
	s.logger.WithContext(ctx).WithFields(map[string]any{"id": id, "is_active": active}).Info("Discount code toggled")
	return nil
}

// Delete removes a code that has never been redeemed
func (s *DiscountService) Delete(ctx context.Context, id string) error {
	if err := s.codes.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete discount code %s: %w", id, err)
	}
	s.logger.WithContext(ctx).WithField("id", id).Info("Discount code deleted")
	return nil
}
