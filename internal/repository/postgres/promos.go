package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/pkg/errors"
)

type promoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPromoRepository creates a new promo code repository
func NewPromoRepository(db *sql.DB, logger *zap.Logger) *promoRepository {
	return &promoRepository{
		db:     db,
		logger: logger,
	}
}

func (r *promoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `
		SELECT id, code, discount_type, discount_value, min_order_amount, max_uses, is_active, created_at, updated_at
		FROM promo_codes
		WHERE lower(code) = lower($1)
	`

	var promo domain.PromoCode
	var discountType string
	var maxUses sql.NullInt64

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&promo.ID,
		&promo.Code,
		&discountType,
		&promo.DiscountValue,
		&promo.MinOrderAmount,
		&maxUses,
		&promo.IsActive,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "promo code", ID: code}
	}
	if err != nil {
		r.logger.Error("Failed to get promo code", zap.Error(err))
		return nil, err
	}

	promo.DiscountType = domain.DiscountType(discountType)
	if maxUses.Valid {
		uses := int(maxUses.Int64)
		promo.MaxUses = &uses
	}

	return &promo, nil
}

func (r *promoRepository) Create(ctx context.Context, promo *domain.PromoCode) error {
	query := `
		INSERT INTO promo_codes (id, code, discount_type, discount_value, min_order_amount, max_uses, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now()
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	if promo.CreatedAt.IsZero() {
		promo.CreatedAt = now
	}
	if promo.UpdatedAt.IsZero() {
		promo.UpdatedAt = now
	}
	promo.Code = strings.ToUpper(promo.Code)

	var maxUses interface{}
	if promo.MaxUses != nil {
		maxUses = *promo.MaxUses
	}

	_, err := r.db.ExecContext(ctx, query,
		promo.ID,
		promo.Code,
		string(promo.DiscountType),
		promo.DiscountValue,
		promo.MinOrderAmount,
		maxUses,
		promo.IsActive,
		promo.CreatedAt,
		promo.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create promo code", zap.Error(err))
		return err
	}

	return nil
}
