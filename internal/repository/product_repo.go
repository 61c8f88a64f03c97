package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopee_dev_v1_202609/internal/model"
)

// remoteColumns 同步路径允许覆盖的列
// 本地运营列 (cost_price / source_urls / notes / tags / custom_price / price_rule_id)
// 刻意不在名单里，远端数据永远覆盖不到
var remoteColumns = []string{
	"shop_id",
	"name",
	"description",
	"sku",
	"category_id",
	"original_price",
	"current_price",
	"currency",
	"stock",
	"images",
	"attributes",
	"status",
	"sold",
	"views",
	"likes",
	"remote_create_time",
	"remote_update_time",
	"last_synced_at",
	"updated_at",
}

// ProductFilter 商品列表过滤条件
type ProductFilter struct {
	ShopID   int64
	Status   string
	Keyword  string
	Page     int
	PageSize int
}

// ProductRepository 商品仓储
type ProductRepository interface {
	GetByItemID(ctx context.Context, itemID int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error)

	// UpsertRemote 同步专用：按 item_id 冲突检测，仅覆盖远端列
	UpsertRemote(ctx context.Context, product *model.Product) error

	// UpdateLocalFields 运营专用：只改本地列
	UpdateLocalFields(ctx context.Context, itemID int64, fields map[string]interface{}) error

	Delete(ctx context.Context, itemID int64) error
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) GetByItemID(ctx context.Context, itemID int64) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.ShopID > 0 {
		query = query.Where("shop_id = ?", filter.ShopID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Keyword != "" {
		query = query.Where("name LIKE ?", "%"+filter.Keyword+"%")
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
		Find(&products).Error

	return products, total, err
}

func (r *productRepo) UpsertRemote(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns(remoteColumns),
	}).Create(product).Error
}

func (r *productRepo) UpdateLocalFields(ctx context.Context, itemID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("item_id = ?", itemID).
		Updates(fields).Error
}

// Delete 只支持显式删除；远端消失不会触发本地删除
func (r *productRepo) Delete(ctx context.Context, itemID int64) error {
	return r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&model.Product{}).Error
}
