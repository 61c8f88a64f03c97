package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/internal/service"
)

// ShopController 店铺控制器
type ShopController struct {
	shopService *service.ShopService
}

// NewShopController 创建店铺控制器
func NewShopController(shopService *service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// List 店铺列表
// GET /api/shops?status=&region=&page=&page_size=
func (c *ShopController) List(ctx *gin.Context) {
	status := -1
	if s := ctx.Query("status"); s != "" {
		status, _ = strconv.Atoi(s)
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	shops, total, err := c.shopService.ListShops(ctx.Request.Context(), repository.ShopFilter{
		Status:   status,
		Region:   ctx.Query("region"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, gin.H{"list": shops, "total": total})
}

type createShopReq struct {
	ShopID int64  `json:"shop_id" binding:"required"`
	Name   string `json:"name"`
	Region string `json:"region" binding:"required"`
}

// Create 新建店铺 (待授权)
// POST /api/shops
func (c *ShopController) Create(ctx *gin.Context) {
	var req createShopReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, 400, err)
		return
	}

	shop, err := c.shopService.CreateShop(ctx.Request.Context(), req.ShopID, req.Name, req.Region)
	if err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, shop)
}

// Deactivate 停用店铺
// DELETE /api/shops/:shop_id
func (c *ShopController) Deactivate(ctx *gin.Context) {
	shopID := parseID(ctx, "shop_id")
	if shopID == 0 {
		return
	}

	if err := c.shopService.DeactivateShop(ctx.Request.Context(), shopID); err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, gin.H{"shop_id": shopID})
}
