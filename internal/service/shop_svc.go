package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// ShopService 店铺管理
type ShopService struct {
	shopRepo repository.ShopRepository
	log      *zap.SugaredLogger
}

// NewShopService 创建店铺服务
func NewShopService(shopRepo repository.ShopRepository, log *zap.SugaredLogger) *ShopService {
	return &ShopService{shopRepo: shopRepo, log: log}
}

// CreateShop 新建店铺记录 (待授权状态)
func (s *ShopService) CreateShop(ctx context.Context, shopeeShopID int64, name, region string) (*model.Shop, error) {
	shop := &model.Shop{
		ShopeeShopID: shopeeShopID,
		ShopName:     name,
		Region:       region,
		Status:       model.ShopStatusPending,
		TokenStatus:  model.TokenStatusInvalid,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("店铺创建失败: %w", err)
	}
	return shop, nil
}

// GetShop 查单店
func (s *ShopService) GetShop(ctx context.Context, shopeeShopID int64) (*model.Shop, error) {
	return s.shopRepo.GetByShopeeID(ctx, shopeeShopID)
}

// ListShops 店铺列表
func (s *ShopService) ListShops(ctx context.Context, filter repository.ShopFilter) ([]model.Shop, int64, error) {
	return s.shopRepo.List(ctx, filter)
}

// DeactivateShop 停用店铺 (停用后不再参与定时同步与保活)
func (s *ShopService) DeactivateShop(ctx context.Context, shopeeShopID int64) error {
	return s.shopRepo.UpdateFields(ctx, shopeeShopID, map[string]interface{}{
		"status":    model.ShopStatusInactive,
		"is_active": false,
	})
}
