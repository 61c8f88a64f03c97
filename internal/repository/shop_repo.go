package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopee_dev_v1_202609/internal/model"
)

// ShopFilter 店铺列表过滤条件
type ShopFilter struct {
	Status   int // -1 表示不过滤
	Region   string
	Page     int
	PageSize int
}

// ShopRepository 店铺仓储
type ShopRepository interface {
	Create(ctx context.Context, shop *model.Shop) error
	GetByShopeeID(ctx context.Context, shopeeShopID int64) (*model.Shop, error)
	List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error)
	UpdateFields(ctx context.Context, shopeeShopID int64, fields map[string]interface{}) error
	UpsertTokenMirror(ctx context.Context, shopeeShopID int64, region, accessToken string, expiresAt time.Time) error
	FindExpiring(ctx context.Context, within time.Duration) ([]model.Shop, error)
	MarkSynced(ctx context.Context, shopeeShopID int64, at time.Time) error
}

type shopRepo struct {
	db *gorm.DB
}

// NewShopRepository 创建店铺仓储
func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Create(ctx context.Context, shop *model.Shop) error {
	return r.db.WithContext(ctx).Create(shop).Error
}

func (r *shopRepo) GetByShopeeID(ctx context.Context, shopeeShopID int64) (*model.Shop, error) {
	var shop model.Shop
	err := r.db.WithContext(ctx).
		Where("shopee_shop_id = ?", shopeeShopID).
		First(&shop).Error
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepo) List(ctx context.Context, filter ShopFilter) ([]model.Shop, int64, error) {
	var shops []model.Shop
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Shop{})
	if filter.Status >= 0 {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Order("updated_at DESC").
		Limit(filter.PageSize).
		Offset(offset).
		Find(&shops).Error

	return shops, total, err
}

func (r *shopRepo) UpdateFields(ctx context.Context, shopeeShopID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Shop{}).
		Where("shopee_shop_id = ?", shopeeShopID).
		Updates(fields).Error
}

// UpsertTokenMirror 把凭证状态镜像到店铺记录
// 店铺不存在时顺手建一条待运营补全的记录
func (r *shopRepo) UpsertTokenMirror(ctx context.Context, shopeeShopID int64, region, accessToken string, expiresAt time.Time) error {
	shop := model.Shop{
		ShopeeShopID:    shopeeShopID,
		Region:          region,
		Status:          model.ShopStatusActive,
		IsActive:        true,
		TokenStatus:     model.TokenStatusValid,
		AccessToken:     accessToken,
		AccessExpiresAt: expiresAt,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "shopee_shop_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"token_status",
			"access_token",
			"access_expires_at",
			"is_active",
			"status",
			"updated_at",
		}),
	}).Create(&shop).Error
}

// FindExpiring 找出 access_token 即将到期 (或已过期) 的活跃店铺，供保活任务刷新
func (r *shopRepo) FindExpiring(ctx context.Context, within time.Duration) ([]model.Shop, error) {
	var shops []model.Shop
	deadline := time.Now().Add(within)
	err := r.db.WithContext(ctx).
		Where("status = ?", model.ShopStatusActive).
		Where("token_status <> ?", model.TokenStatusInvalid).
		Where("access_expires_at < ?", deadline).
		Find(&shops).Error
	return shops, err
}

func (r *shopRepo) MarkSynced(ctx context.Context, shopeeShopID int64, at time.Time) error {
	return r.UpdateFields(ctx, shopeeShopID, map[string]interface{}{
		"last_synced_at": at,
	})
}
