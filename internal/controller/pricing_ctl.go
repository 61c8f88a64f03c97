package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/service"
)

// PricingController 定价试算
type PricingController struct {
	pricingService *service.PricingService
}

// NewPricingController 创建定价控制器
func NewPricingController(pricingService *service.PricingService) *PricingController {
	return &PricingController{pricingService: pricingService}
}

type recommendReq struct {
	CostPrice    float64 `json:"cost_price" binding:"required"`
	Region       string  `json:"region" binding:"required"`
	MarginTarget float64 `json:"margin_target"`
}

// Recommend 按站点费率推荐售价
// POST /api/pricing/recommend
// 费率+利润率无解时返回 422，绝不静默给出负价或无穷大
func (c *PricingController) Recommend(ctx *gin.Context) {
	var req recommendReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, 400, err)
		return
	}

	quote, err := c.pricingService.RecommendForRegion(ctx.Request.Context(), req.CostPrice, req.Region, req.MarginTarget)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComputation), errors.Is(err, service.ErrNoCostBasis):
			fail(ctx, 422, err)
		default:
			fail(ctx, 500, err)
		}
		return
	}
	ok(ctx, quote)
}
