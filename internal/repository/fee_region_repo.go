package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shopee_dev_v1_202609/internal/model"
)

// FeeRegionRepository 站点费率仓储
type FeeRegionRepository interface {
	GetByRegion(ctx context.Context, region string) (*model.FeeRegion, error)
	List(ctx context.Context) ([]model.FeeRegion, error)
	Upsert(ctx context.Context, cfg *model.FeeRegion) error
	Delete(ctx context.Context, region string) error
}

type feeRegionRepo struct {
	db *gorm.DB
}

// NewFeeRegionRepository 创建站点费率仓储
func NewFeeRegionRepository(db *gorm.DB) FeeRegionRepository {
	return &feeRegionRepo{db: db}
}

func (r *feeRegionRepo) GetByRegion(ctx context.Context, region string) (*model.FeeRegion, error) {
	var cfg model.FeeRegion
	err := r.db.WithContext(ctx).
		Where("region = ?", region).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *feeRegionRepo) List(ctx context.Context) ([]model.FeeRegion, error) {
	var configs []model.FeeRegion
	err := r.db.WithContext(ctx).Order("region ASC").Find(&configs).Error
	return configs, err
}

func (r *feeRegionRepo) Upsert(ctx context.Context, cfg *model.FeeRegion) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "region"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"currency",
			"symbol",
			"exchange_rate",
			"commission_rate",
			"service_fee_rate",
			"transaction_fee_rate",
			"shipping_cost_local",
			"shipping_cost_intl",
			"updated_at",
		}),
	}).Create(cfg).Error
}

func (r *feeRegionRepo) Delete(ctx context.Context, region string) error {
	return r.db.WithContext(ctx).
		Where("region = ?", region).
		Delete(&model.FeeRegion{}).Error
}
