package service

import (
	"context"
	"testing"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// ==================== 调价规则测试 ====================

func newRuleService(t *testing.T) (*PriceRuleService, repository.PriceRuleRepository) {
	db := setupTestDB(t)
	repo := repository.NewPriceRuleRepository(db)
	return NewPriceRuleService(repo), repo
}

func TestEvaluate_PercentIncrease(t *testing.T) {
	svc, repo := newRuleService(t)
	ctx := context.Background()

	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.1, AdjustmentDirection: model.AdjustIncrease,
		IsActive: true, Priority: 1,
	})

	item := &model.Product{ShopID: 100, ItemID: 1}
	price, rule, err := svc.Evaluate(ctx, item, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if price != 1100 {
		t.Errorf("price = %v, want 1100", price)
	}
	if rule == nil {
		t.Error("应返回生效规则")
	}
}

func TestEvaluate_FixedDecreaseWithClamp(t *testing.T) {
	svc, repo := newRuleService(t)
	ctx := context.Background()

	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypeFixed,
		AdjustmentValue: 500, AdjustmentDirection: model.AdjustDecrease,
		MinPrice: f64(800),
		IsActive: true, Priority: 1,
	})

	item := &model.Product{ShopID: 100, ItemID: 1}
	price, _, err := svc.Evaluate(ctx, item, 1000)
	if err != nil {
		t.Fatal(err)
	}
	// 1000 - 500 = 500，被 min_price=800 钳制
	if price != 800 {
		t.Errorf("price = %v, want 800 (min_price 钳制)", price)
	}
}

func TestEvaluate_HighestPriorityWins(t *testing.T) {
	svc, repo := newRuleService(t)
	ctx := context.Background()

	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.05, AdjustmentDirection: model.AdjustIncrease,
		IsActive: true, Priority: 1,
	})
	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.2, AdjustmentDirection: model.AdjustIncrease,
		IsActive: true, Priority: 10,
	})

	item := &model.Product{ShopID: 100, ItemID: 1}
	price, rule, err := svc.Evaluate(ctx, item, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if price != 1200 {
		t.Errorf("price = %v, want 1200 (priority=10 的规则生效)", price)
	}
	if rule == nil || rule.Priority != 10 {
		t.Errorf("生效规则错误: %+v", rule)
	}
}

func TestEvaluate_FilterByCategoryAndTag(t *testing.T) {
	svc, repo := newRuleService(t)
	ctx := context.Background()

	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.5, AdjustmentDirection: model.AdjustIncrease,
		CategoryID: i64(7777),
		IsActive:   true, Priority: 10,
	})
	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.1, AdjustmentDirection: model.AdjustIncrease,
		Tag:      "hot",
		IsActive: true, Priority: 5,
	})

	// 类目不匹配、标签匹配 -> 落到 priority=5 的标签规则
	item := &model.Product{ShopID: 100, ItemID: 1, CategoryID: 1234, Tags: []string{"hot", "new"}}
	price, rule, err := svc.Evaluate(ctx, item, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if price != 1100 {
		t.Errorf("price = %v, want 1100", price)
	}
	if rule == nil || rule.Tag != "hot" {
		t.Errorf("应命中标签规则: %+v", rule)
	}

	// 什么都不匹配 -> 原价
	plain := &model.Product{ShopID: 100, ItemID: 2, CategoryID: 1, Tags: []string{"misc"}}
	price, rule, err = svc.Evaluate(ctx, plain, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if price != 1000 || rule != nil {
		t.Errorf("无规则命中应保留原价: price=%v rule=%+v", price, rule)
	}
}

func TestEvaluate_MinMarginFloor(t *testing.T) {
	svc, repo := newRuleService(t)
	ctx := context.Background()

	// 降价 40%，但要求利润率不低于 30%
	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.4, AdjustmentDirection: model.AdjustDecrease,
		MinMarginPercent: f64(30),
		IsActive:         true, Priority: 1,
	})

	// cost=500: 调整后 600，利润率 (600-500)/600 = 16.7% < 30%，规则放弃
	item := &model.Product{ShopID: 100, ItemID: 1, CostPrice: f64(500)}
	price, rule, err := svc.Evaluate(ctx, item, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if price != 1000 {
		t.Errorf("price = %v, want 1000 (安全线拦下)", price)
	}
	if rule != nil {
		t.Errorf("安全线拦下时不应返回规则: %+v", rule)
	}

	// cost=100: 调整后 600，利润率 83% >= 30%，正常应用
	cheap := &model.Product{ShopID: 100, ItemID: 2, CostPrice: f64(100)}
	price, rule, err = svc.Evaluate(ctx, cheap, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if price != 600 || rule == nil {
		t.Errorf("安全线之上应正常应用: price=%v rule=%+v", price, rule)
	}
}

func TestEvaluate_InactiveRuleIgnored(t *testing.T) {
	svc, repo := newRuleService(t)
	ctx := context.Background()

	_ = repo.Create(ctx, &model.PriceRule{
		ShopID: 100, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.5, AdjustmentDirection: model.AdjustIncrease,
		IsActive: false, Priority: 99,
	})

	item := &model.Product{ShopID: 100, ItemID: 1}
	price, rule, err := svc.Evaluate(ctx, item, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if price != 1000 || rule != nil {
		t.Errorf("停用规则不应生效: price=%v rule=%+v", price, rule)
	}
}
