package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopee_dev_v1_202609/internal/model"
)

// TokenRepository 店铺凭证仓储
// 凭证以 shop_id 为唯一键做幂等 upsert
type TokenRepository interface {
	GetByShopID(ctx context.Context, shopID int64) (*model.ShopToken, error)
	Upsert(ctx context.Context, token *model.ShopToken) error
	Delete(ctx context.Context, shopID int64) error
}

type tokenRepo struct {
	db *gorm.DB
}

// NewTokenRepository 创建凭证仓储
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) GetByShopID(ctx context.Context, shopID int64) (*model.ShopToken, error) {
	var token model.ShopToken
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Upsert 以 shop_id 冲突检测，冲突则覆盖 token 四件套
// 不更新 created_at
func (r *tokenRepo) Upsert(ctx context.Context, token *model.ShopToken) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shop_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"access_token",
			"refresh_token",
			"access_expires_at",
			"refresh_expires_at",
			"region",
			"updated_at",
		}),
	}).Create(token).Error
}

func (r *tokenRepo) Delete(ctx context.Context, shopID int64) error {
	return r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Delete(&model.ShopToken{}).Error
}
