package service

import (
	"context"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// PriceRuleService 调价规则评估器
// 取 priority 最高且命中过滤条件的一条规则应用；命中多条时只用第一条
type PriceRuleService struct {
	ruleRepo repository.PriceRuleRepository
}

// NewPriceRuleService 创建规则评估服务
func NewPriceRuleService(ruleRepo repository.PriceRuleRepository) *PriceRuleService {
	return &PriceRuleService{ruleRepo: ruleRepo}
}

// Evaluate 对单个商品应用调价规则
// 返回调整后价格和生效的规则；没有规则命中 (或被利润率安全线拦下) 时
// 返回原价和 nil。成本口径: item.CostPrice 已折算为与 basePrice 同币种
func (s *PriceRuleService) Evaluate(ctx context.Context, item *model.Product, basePrice float64) (float64, *model.PriceRule, error) {
	rules, err := s.ruleRepo.ListActiveByShop(ctx, item.ShopID)
	if err != nil {
		return basePrice, nil, err
	}

	for i := range rules {
		rule := &rules[i]
		if !ruleMatches(rule, item) {
			continue
		}

		price := applyRule(rule, basePrice)

		// 利润率安全线：跌破则放弃应用，保留原价 (不是错误)
		if rule.MinMarginPercent != nil && item.CostPrice != nil && price > 0 {
			marginPct := (price - *item.CostPrice) / price * 100
			if marginPct < *rule.MinMarginPercent {
				return basePrice, nil, nil
			}
		}

		return price, rule, nil
	}

	return basePrice, nil, nil
}

// ruleMatches 类目与标签过滤，条件为空表示命中所有
func ruleMatches(rule *model.PriceRule, item *model.Product) bool {
	if rule.CategoryID != nil && *rule.CategoryID != item.CategoryID {
		return false
	}
	if rule.Tag != "" {
		found := false
		for _, t := range item.Tags {
			if t == rule.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// applyRule 应用调整并做上下限钳制
func applyRule(rule *model.PriceRule, basePrice float64) float64 {
	var price float64
	switch rule.RuleType {
	case model.RuleTypePercent:
		if rule.AdjustmentDirection == model.AdjustDecrease {
			price = basePrice * (1 - rule.AdjustmentValue)
		} else {
			price = basePrice * (1 + rule.AdjustmentValue)
		}
	case model.RuleTypeFixed:
		if rule.AdjustmentDirection == model.AdjustDecrease {
			price = basePrice - rule.AdjustmentValue
		} else {
			price = basePrice + rule.AdjustmentValue
		}
	default:
		return basePrice
	}

	if rule.MinPrice != nil && price < *rule.MinPrice {
		price = *rule.MinPrice
	}
	if rule.MaxPrice != nil && price > *rule.MaxPrice {
		price = *rule.MaxPrice
	}
	return price
}
