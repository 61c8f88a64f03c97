package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// ==================== 商品运营测试 ====================

type productFixture struct {
	svc         *ProductService
	productRepo repository.ProductRepository
	ruleRepo    repository.PriceRuleRepository
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	db := setupTestDB(t)
	ctx := context.Background()

	productRepo := repository.NewProductRepository(db)
	shopRepo := repository.NewShopRepository(db)
	feeRepo := repository.NewFeeRegionRepository(db)
	ruleRepo := repository.NewPriceRuleRepository(db)

	if err := shopRepo.Create(ctx, &model.Shop{ShopeeShopID: 900001, ShopName: "测试店", Region: "TW", Status: model.ShopStatusActive}); err != nil {
		t.Fatal(err)
	}
	if err := feeRepo.Upsert(ctx, twFeeConfig()); err != nil {
		t.Fatal(err)
	}

	svc := NewProductService(productRepo, shopRepo,
		NewPricingService(feeRepo), NewPriceRuleService(ruleRepo), testLogger())
	return &productFixture{svc: svc, productRepo: productRepo, ruleRepo: ruleRepo}
}

func (fx *productFixture) seedProduct(t *testing.T, itemID int64, costPrice *float64) {
	t.Helper()
	now := time.Now()
	p := &model.Product{
		ShopID: 900001, ItemID: itemID,
		Name: "零钱包", CurrentPrice: 1000, Currency: "TWD",
		Status: model.ItemStatusNormal, LastSyncedAt: &now,
	}
	if err := fx.productRepo.UpsertRemote(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if costPrice != nil {
		err := fx.productRepo.UpdateLocalFields(context.Background(), itemID, map[string]interface{}{
			"cost_price": *costPrice,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
}

func TestQuoteItem_RecommendedPriceAsBase(t *testing.T) {
	fx := newProductFixture(t)
	fx.seedProduct(t, 101, f64(3000))

	quote, err := fx.svc.QuoteItem(context.Background(), 101, 0.15)
	if err != nil {
		t.Fatal(err)
	}
	// cost=3000, margin=15%: 推荐价 6744 (成本币种)，市场价 1435 (TWD)
	if got := quote.Quote.RecommendedPrice.IntPart(); got != 6744 {
		t.Errorf("RecommendedPrice = %d, want 6744", got)
	}
	if quote.FinalPrice != 1435 {
		t.Errorf("FinalPrice = %v, want 1435 (无规则时等于市场价)", quote.FinalPrice)
	}
	if quote.Rule != nil {
		t.Errorf("无规则时 Rule 应为 nil: %+v", quote.Rule)
	}
}

func TestQuoteItem_CustomPriceOverridesBase(t *testing.T) {
	fx := newProductFixture(t)
	fx.seedProduct(t, 101, f64(3000))
	ctx := context.Background()

	err := fx.productRepo.UpdateLocalFields(ctx, 101, map[string]interface{}{
		"custom_price": 2000.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	_ = fx.ruleRepo.Create(ctx, &model.PriceRule{
		ShopID: 900001, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.1, AdjustmentDirection: model.AdjustIncrease,
		IsActive: true, Priority: 1,
	})

	quote, err := fx.svc.QuoteItem(ctx, 101, 0.15)
	if err != nil {
		t.Fatal(err)
	}
	// 人工定价 2000 为基价，规则 +10% -> 2200
	if quote.FinalPrice != 2200 {
		t.Errorf("FinalPrice = %v, want 2200", quote.FinalPrice)
	}
	if quote.Rule == nil {
		t.Error("应返回生效规则")
	}
}

func TestQuoteItem_MinMarginComparesInSaleCurrency(t *testing.T) {
	fx := newProductFixture(t)
	fx.seedProduct(t, 101, f64(3000))
	ctx := context.Background()

	// 成本 ¥3000 折合销售币种约 NT$638，市场价 1435 降 1% 后
	// 真实利润率约 55%，远高于 10% 安全线，规则必须生效
	_ = fx.ruleRepo.Create(ctx, &model.PriceRule{
		ShopID: 900001, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.01, AdjustmentDirection: model.AdjustDecrease,
		MinMarginPercent: f64(10),
		IsActive:         true, Priority: 1,
	})

	quote, err := fx.svc.QuoteItem(ctx, 101, 0.15)
	if err != nil {
		t.Fatal(err)
	}
	if quote.Rule == nil {
		t.Fatal("利润率高于安全线，规则应生效")
	}
	if want := 1435 * 0.99; quote.FinalPrice != want {
		t.Errorf("FinalPrice = %v, want %v", quote.FinalPrice, want)
	}
}

func TestQuoteItem_MinMarginBlocksBelowLine(t *testing.T) {
	fx := newProductFixture(t)
	fx.seedProduct(t, 101, f64(3000))
	ctx := context.Background()

	// 同一场景但安全线抬到 60%：55% 的真实利润率不达标，规则放弃应用
	_ = fx.ruleRepo.Create(ctx, &model.PriceRule{
		ShopID: 900001, RuleType: model.RuleTypePercent,
		AdjustmentValue: 0.01, AdjustmentDirection: model.AdjustDecrease,
		MinMarginPercent: f64(60),
		IsActive:         true, Priority: 1,
	})

	quote, err := fx.svc.QuoteItem(ctx, 101, 0.15)
	if err != nil {
		t.Fatal(err)
	}
	if quote.Rule != nil {
		t.Errorf("安全线拦下时不应返回规则: %+v", quote.Rule)
	}
	if quote.FinalPrice != 1435 {
		t.Errorf("FinalPrice = %v, want 1435 (保留基价)", quote.FinalPrice)
	}
}

func TestQuoteItem_NoCostBasis(t *testing.T) {
	fx := newProductFixture(t)
	fx.seedProduct(t, 101, nil)

	_, err := fx.svc.QuoteItem(context.Background(), 101, 0.15)
	if !errors.Is(err, ErrNoCostBasis) {
		t.Fatalf("err = %v, want ErrNoCostBasis", err)
	}
}

func TestUpdateLocalFields_PartialPatch(t *testing.T) {
	fx := newProductFixture(t)
	fx.seedProduct(t, 101, f64(3000))
	ctx := context.Background()

	notes := "第一批备注"
	err := fx.svc.UpdateLocalFields(ctx, 101, LocalFieldPatch{
		Notes: &notes,
		Tags:  []string{"hot", "new"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// 第二次只改 notes，tags 与 cost_price 不动
	notes2 := "复核完毕"
	if err := fx.svc.UpdateLocalFields(ctx, 101, LocalFieldPatch{Notes: &notes2}); err != nil {
		t.Fatal(err)
	}

	p, err := fx.productRepo.GetByItemID(ctx, 101)
	if err != nil {
		t.Fatal(err)
	}
	if p.Notes != "复核完毕" {
		t.Errorf("Notes = %q", p.Notes)
	}
	if len(p.Tags) != 2 || p.Tags[0] != "hot" {
		t.Errorf("Tags 不应被清空: %v", p.Tags)
	}
	if p.CostPrice == nil || *p.CostPrice != 3000 {
		t.Errorf("CostPrice 不应被清空: %v", p.CostPrice)
	}
}

func TestUpdateLocalFields_EmptyPatchNoop(t *testing.T) {
	fx := newProductFixture(t)
	if err := fx.svc.UpdateLocalFields(context.Background(), 101, LocalFieldPatch{}); err != nil {
		t.Fatalf("空补丁应为 no-op: %v", err)
	}
}
