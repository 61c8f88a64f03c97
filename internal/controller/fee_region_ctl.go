package controller

import (
	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
)

// FeeRegionController 站点费率配置
type FeeRegionController struct {
	feeRepo repository.FeeRegionRepository
}

// NewFeeRegionController 创建费率控制器
func NewFeeRegionController(feeRepo repository.FeeRegionRepository) *FeeRegionController {
	return &FeeRegionController{feeRepo: feeRepo}
}

// List 所有站点配置
// GET /api/fee-regions
func (c *FeeRegionController) List(ctx *gin.Context) {
	configs, err := c.feeRepo.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, configs)
}

// Upsert 新建或覆盖站点配置
// PUT /api/fee-regions
func (c *FeeRegionController) Upsert(ctx *gin.Context) {
	var cfg model.FeeRegion
	if err := ctx.ShouldBindJSON(&cfg); err != nil {
		fail(ctx, 400, err)
		return
	}
	if cfg.Region == "" || cfg.Currency == "" {
		ctx.JSON(400, gin.H{"code": 400, "message": "region 与 currency 必填"})
		return
	}

	if err := c.feeRepo.Upsert(ctx.Request.Context(), &cfg); err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, cfg)
}
