package service

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// ItemQuote 单品定价结果：引擎推荐 + 规则调整后的最终价
type ItemQuote struct {
	Quote      *Quote           `json:"quote"`
	FinalPrice float64          `json:"final_price"` // 销售币种
	Rule       *model.PriceRule `json:"rule,omitempty"`
}

// ProductService 商品运营
// 同步之外的一切商品写入走这里，只碰本地运营列
type ProductService struct {
	productRepo repository.ProductRepository
	shopRepo    repository.ShopRepository
	pricing     *PricingService
	rules       *PriceRuleService
	log         *zap.SugaredLogger
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	shopRepo repository.ShopRepository,
	pricing *PricingService,
	rules *PriceRuleService,
	log *zap.SugaredLogger,
) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		shopRepo:    shopRepo,
		pricing:     pricing,
		rules:       rules,
		log:         log,
	}
}

// ListProducts 商品列表
func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

// GetProduct 查单品
func (s *ProductService) GetProduct(ctx context.Context, itemID int64) (*model.Product, error) {
	return s.productRepo.GetByItemID(ctx, itemID)
}

// LocalFieldPatch 本地运营列的增量修改，nil 表示不动
type LocalFieldPatch struct {
	CostPrice   *float64 `json:"cost_price"`
	SourceURLs  []string `json:"source_urls"`
	Notes       *string  `json:"notes"`
	Tags        []string `json:"tags"`
	CustomPrice *float64 `json:"custom_price"`
	PriceRuleID *int64   `json:"price_rule_id"`
}

// UpdateLocalFields 修改本地运营列
// 远端列一概不接受，防止运营误改被下次同步静默覆盖
func (s *ProductService) UpdateLocalFields(ctx context.Context, itemID int64, patch LocalFieldPatch) error {
	fields := map[string]interface{}{}
	if patch.CostPrice != nil {
		fields["cost_price"] = *patch.CostPrice
	}
	if patch.SourceURLs != nil {
		fields["source_urls"] = pq.StringArray(patch.SourceURLs)
	}
	if patch.Notes != nil {
		fields["notes"] = *patch.Notes
	}
	if patch.Tags != nil {
		fields["tags"] = pq.StringArray(patch.Tags)
	}
	if patch.CustomPrice != nil {
		fields["custom_price"] = *patch.CustomPrice
	}
	if patch.PriceRuleID != nil {
		fields["price_rule_id"] = *patch.PriceRuleID
	}
	if len(fields) == 0 {
		return nil
	}
	return s.productRepo.UpdateLocalFields(ctx, itemID, fields)
}

// QuoteItem 对单品出价：成本 -> 引擎推荐 -> 规则调整
// 没有成本价直接报 ErrNoCostBasis，调用方应把价格留空而不是填 0
func (s *ProductService) QuoteItem(ctx context.Context, itemID int64, marginTarget float64) (*ItemQuote, error) {
	product, err := s.productRepo.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("商品 %d 不存在: %w", itemID, err)
	}
	if product.CostPrice == nil || *product.CostPrice <= 0 {
		return nil, ErrNoCostBasis
	}

	shop, err := s.shopRepo.GetByShopeeID(ctx, product.ShopID)
	if err != nil {
		return nil, fmt.Errorf("店铺 %d 不存在: %w", product.ShopID, err)
	}

	quote, err := s.pricing.RecommendForRegion(ctx, *product.CostPrice, shop.Region, marginTarget)
	if err != nil {
		return nil, err
	}

	// 人工定价优先于推荐价作为规则基价
	base, _ := quote.MarketPrice.Float64()
	if product.CustomPrice != nil && *product.CustomPrice > 0 {
		base = *product.CustomPrice
	}

	// 规则安全线在销售币种空间比较，成本价先按站点汇率折算
	evalItem := *product
	if fx, _ := quote.ExchangeRate.Float64(); fx > 0 {
		costSale := *product.CostPrice / fx
		evalItem.CostPrice = &costSale
	}

	final, rule, err := s.rules.Evaluate(ctx, &evalItem, base)
	if err != nil {
		return nil, err
	}

	return &ItemQuote{Quote: quote, FinalPrice: final, Rule: rule}, nil
}
