package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// PriceRuleController 调价规则 CRUD
type PriceRuleController struct {
	ruleRepo repository.PriceRuleRepository
}

// NewPriceRuleController 创建调价规则控制器
func NewPriceRuleController(ruleRepo repository.PriceRuleRepository) *PriceRuleController {
	return &PriceRuleController{ruleRepo: ruleRepo}
}

// List 规则列表
// GET /api/price-rules?shop_id=123
func (c *PriceRuleController) List(ctx *gin.Context) {
	shopID, _ := strconv.ParseInt(ctx.Query("shop_id"), 10, 64)
	if shopID <= 0 {
		ctx.JSON(400, gin.H{"code": 400, "message": "缺少 shop_id"})
		return
	}

	rules, err := c.ruleRepo.ListByShop(ctx.Request.Context(), shopID)
	if err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, rules)
}

// Create 新建规则
// POST /api/price-rules
func (c *PriceRuleController) Create(ctx *gin.Context) {
	var rule model.PriceRule
	if err := ctx.ShouldBindJSON(&rule); err != nil {
		fail(ctx, 400, err)
		return
	}

	if rule.RuleType != model.RuleTypePercent && rule.RuleType != model.RuleTypeFixed {
		ctx.JSON(400, gin.H{"code": 400, "message": "rule_type 必须是 percent 或 fixed"})
		return
	}

	if err := c.ruleRepo.Create(ctx.Request.Context(), &rule); err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, rule)
}

// Update 更新规则
// PUT /api/price-rules/:id
func (c *PriceRuleController) Update(ctx *gin.Context) {
	id := parseID(ctx, "id")
	if id == 0 {
		return
	}

	rule, err := c.ruleRepo.GetByID(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, 404, err)
		return
	}

	if err := ctx.ShouldBindJSON(rule); err != nil {
		fail(ctx, 400, err)
		return
	}
	rule.ID = id

	if err := c.ruleRepo.Update(ctx.Request.Context(), rule); err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, rule)
}

// Delete 删除规则
// DELETE /api/price-rules/:id
func (c *PriceRuleController) Delete(ctx *gin.Context) {
	id := parseID(ctx, "id")
	if id == 0 {
		return
	}

	if err := c.ruleRepo.Delete(ctx.Request.Context(), id); err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, gin.H{"id": id})
}
