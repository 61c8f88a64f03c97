package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// Quote 定价结果
// 全部金额以成本币种计，MarketPrice 额外折算到站点销售币种。
// 正算与利润展示用同一套成本口径: fixedCost = 成本 + 国际运费 + 本地运费折算
type Quote struct {
	RecommendedPrice decimal.Decimal `json:"recommended_price"` // 成本币种，向上取整到最小货币单位
	MarketPrice      decimal.Decimal `json:"market_price"`      // 销售币种，同样向上取整
	Currency         string          `json:"currency"`          // 销售币种代码
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`     // 销售币种 -> 成本币种换算率

	TotalFeeRate   decimal.Decimal `json:"total_fee_rate"`
	FixedCost      decimal.Decimal `json:"fixed_cost"`
	Commission     decimal.Decimal `json:"commission"`
	ServiceFee     decimal.Decimal `json:"service_fee"`
	TransactionFee decimal.Decimal `json:"transaction_fee"`
	Profit         decimal.Decimal `json:"profit"`
}

// PricingService 定价引擎
// Recommend 为纯计算；RecommendForRegion 负责取站点费率配置
type PricingService struct {
	feeRepo repository.FeeRegionRepository
}

// NewPricingService 创建定价服务
func NewPricingService(feeRepo repository.FeeRegionRepository) *PricingService {
	return &PricingService{feeRepo: feeRepo}
}

// RecommendForRegion 按站点配置推荐售价
func (s *PricingService) RecommendForRegion(ctx context.Context, costPrice float64, region string, marginTarget float64) (*Quote, error) {
	cfg, err := s.feeRepo.GetByRegion(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("站点 %s 费率配置缺失: %w", region, err)
	}
	return Recommend(costPrice, cfg, marginTarget)
}

// Recommend 核心定价公式
//
//	totalFeeRate = commission + service + transaction
//	fixedCost    = cost + shippingIntl + shippingLocal * exchangeRate
//	revenueRate  = 1 - totalFeeRate - marginTarget   (<=0 视为无解)
//	price        = ceil(fixedCost / revenueRate)
//
// 各站点配置互不影响，同一成本在不同站点独立计算
func Recommend(costPrice float64, cfg *model.FeeRegion, marginTarget float64) (*Quote, error) {
	if costPrice <= 0 {
		return nil, ErrNoCostBasis
	}

	cost := decimal.NewFromFloat(costPrice)
	commissionRate := decimal.NewFromFloat(cfg.CommissionRate)
	serviceRate := decimal.NewFromFloat(cfg.ServiceFeeRate)
	transactionRate := decimal.NewFromFloat(cfg.TransactionFeeRate)
	margin := decimal.NewFromFloat(marginTarget)
	fx := decimal.NewFromFloat(cfg.ExchangeRate)

	totalFeeRate := commissionRate.Add(serviceRate).Add(transactionRate)

	shippingLocal := decimal.NewFromFloat(cfg.ShippingCostLocal).Mul(fx)
	fixedCost := cost.
		Add(decimal.NewFromFloat(cfg.ShippingCostIntl)).
		Add(shippingLocal)

	revenueRate := decimal.NewFromInt(1).Sub(totalFeeRate).Sub(margin)
	if revenueRate.Sign() <= 0 {
		return nil, fmt.Errorf("%w (totalFeeRate=%s, margin=%s)", ErrComputation, totalFeeRate, margin)
	}

	price := fixedCost.Div(revenueRate).Ceil()

	commission := price.Mul(commissionRate).Round(0)
	serviceFee := price.Mul(serviceRate).Round(0)
	transactionFee := price.Mul(transactionRate).Round(0)
	profit := price.Sub(commission).Sub(serviceFee).Sub(transactionFee).Sub(fixedCost)

	marketPrice := price
	if fx.Sign() > 0 {
		marketPrice = price.Div(fx).Ceil()
	}

	return &Quote{
		RecommendedPrice: price,
		MarketPrice:      marketPrice,
		Currency:         cfg.Currency,
		ExchangeRate:     fx,
		TotalFeeRate:     totalFeeRate,
		FixedCost:        fixedCost,
		Commission:       commission,
		ServiceFee:       serviceFee,
		TransactionFee:   transactionFee,
		Profit:           profit,
	}, nil
}
