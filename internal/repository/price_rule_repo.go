package repository

import (
	"context"

	"gorm.io/gorm"

	"shopee_dev_v1_202609/internal/model"
)

// PriceRuleRepository 调价规则仓储
type PriceRuleRepository interface {
	Create(ctx context.Context, rule *model.PriceRule) error
	GetByID(ctx context.Context, id int64) (*model.PriceRule, error)
	Update(ctx context.Context, rule *model.PriceRule) error
	Delete(ctx context.Context, id int64) error

	// ListActiveByShop 按 priority 降序、created_at 升序返回，评估器取第一条命中的
	ListActiveByShop(ctx context.Context, shopID int64) ([]model.PriceRule, error)
	ListByShop(ctx context.Context, shopID int64) ([]model.PriceRule, error)
}

type priceRuleRepo struct {
	db *gorm.DB
}

// NewPriceRuleRepository 创建调价规则仓储
func NewPriceRuleRepository(db *gorm.DB) PriceRuleRepository {
	return &priceRuleRepo{db: db}
}

func (r *priceRuleRepo) Create(ctx context.Context, rule *model.PriceRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *priceRuleRepo) GetByID(ctx context.Context, id int64) (*model.PriceRule, error) {
	var rule model.PriceRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *priceRuleRepo) Update(ctx context.Context, rule *model.PriceRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *priceRuleRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.PriceRule{}, id).Error
}

func (r *priceRuleRepo) ListActiveByShop(ctx context.Context, shopID int64) ([]model.PriceRule, error) {
	var rules []model.PriceRule
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Order("priority DESC, created_at ASC, id ASC").
		Find(&rules).Error
	return rules, err
}

func (r *priceRuleRepo) ListByShop(ctx context.Context, shopID int64) ([]model.PriceRule, error) {
	var rules []model.PriceRule
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("priority DESC, created_at ASC").
		Find(&rules).Error
	return rules, err
}
