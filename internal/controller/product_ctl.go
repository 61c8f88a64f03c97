package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/internal/service"
)

// ProductController 商品控制器
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// List 商品列表
// GET /api/products?shop_id=&status=&keyword=&page=&page_size=
func (c *ProductController) List(ctx *gin.Context) {
	shopID, _ := strconv.ParseInt(ctx.Query("shop_id"), 10, 64)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	products, total, err := c.productService.ListProducts(ctx.Request.Context(), repository.ProductFilter{
		ShopID:   shopID,
		Status:   ctx.Query("status"),
		Keyword:  ctx.Query("keyword"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		fail(ctx, 500, err)
		return
	}

	ok(ctx, gin.H{"list": products, "total": total})
}

// Get 单品详情
// GET /api/products/:item_id
func (c *ProductController) Get(ctx *gin.Context) {
	itemID := parseID(ctx, "item_id")
	if itemID == 0 {
		return
	}

	product, err := c.productService.GetProduct(ctx.Request.Context(), itemID)
	if err != nil {
		fail(ctx, 404, err)
		return
	}
	ok(ctx, product)
}

// UpdateLocal 修改本地运营列 (成本/货源/备注/标签/自定义价)
// PUT /api/products/:item_id/local
func (c *ProductController) UpdateLocal(ctx *gin.Context) {
	itemID := parseID(ctx, "item_id")
	if itemID == 0 {
		return
	}

	var patch service.LocalFieldPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		fail(ctx, 400, err)
		return
	}

	if err := c.productService.UpdateLocalFields(ctx.Request.Context(), itemID, patch); err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, gin.H{"item_id": itemID})
}

// Quote 单品定价 (引擎推荐 + 规则调整)
// POST /api/products/:item_id/quote?margin=0.15
func (c *ProductController) Quote(ctx *gin.Context) {
	itemID := parseID(ctx, "item_id")
	if itemID == 0 {
		return
	}

	margin, err := strconv.ParseFloat(ctx.DefaultQuery("margin", "0.15"), 64)
	if err != nil {
		fail(ctx, 400, err)
		return
	}

	quote, err := c.productService.QuoteItem(ctx.Request.Context(), itemID, margin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCostBasis), errors.Is(err, service.ErrComputation):
			fail(ctx, 422, err)
		default:
			fail(ctx, 500, err)
		}
		return
	}
	ok(ctx, quote)
}
