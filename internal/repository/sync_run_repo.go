package repository

import (
	"context"

	"gorm.io/gorm"

	"shopee_dev_v1_202609/internal/model"
)

// SyncRunRepository 同步审计仓储，只追加
type SyncRunRepository interface {
	Create(ctx context.Context, run *model.SyncRun) error
	ListByShop(ctx context.Context, shopID int64, limit int) ([]model.SyncRun, error)
	LatestByShop(ctx context.Context, shopID int64) (*model.SyncRun, error)
}

type syncRunRepo struct {
	db *gorm.DB
}

// NewSyncRunRepository 创建同步审计仓储
func NewSyncRunRepository(db *gorm.DB) SyncRunRepository {
	return &syncRunRepo{db: db}
}

func (r *syncRunRepo) Create(ctx context.Context, run *model.SyncRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *syncRunRepo) ListByShop(ctx context.Context, shopID int64, limit int) ([]model.SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []model.SyncRun
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Limit(limit).
		Find(&runs).Error
	return runs, err
}

func (r *syncRunRepo) LatestByShop(ctx context.Context, shopID int64) (*model.SyncRun, error) {
	var run model.SyncRun
	err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}
