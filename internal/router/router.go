package router

import (
	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/controller"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	Shop      *controller.ShopController
	Product   *controller.ProductController
	Sync      *controller.SyncController
	Pricing   *controller.PricingController
	PriceRule *controller.PriceRuleController
	FeeRegion *controller.FeeRegionController
}

// SetupRouter 注册所有路由
func SetupRouter(c *Controllers) *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.GET("/callback", c.Auth.Callback)
			auth.POST("/refresh/:shop_id", c.Auth.Refresh)
		}

		// shop 店铺管理
		shops := api.Group("/shops")
		{
			shops.GET("", c.Shop.List)
			shops.POST("", c.Shop.Create)
			shops.DELETE("/:shop_id", c.Shop.Deactivate)
		}

		// product 商品
		products := api.Group("/products")
		{
			products.GET("", c.Product.List)
			products.GET("/:item_id", c.Product.Get)
			products.PUT("/:item_id/local", c.Product.UpdateLocal)
			products.POST("/:item_id/quote", c.Product.Quote)
		}

		// sync 同步
		syncGroup := api.Group("/sync")
		{
			syncGroup.POST("/shops/:shop_id", c.Sync.RunSync)
			syncGroup.GET("/shops/:shop_id/runs", c.Sync.ListRuns)
		}

		// pricing 定价试算
		api.POST("/pricing/recommend", c.Pricing.Recommend)

		// price-rules 调价规则
		rules := api.Group("/price-rules")
		{
			rules.GET("", c.PriceRule.List)
			rules.POST("", c.PriceRule.Create)
			rules.PUT("/:id", c.PriceRule.Update)
			rules.DELETE("/:id", c.PriceRule.Delete)
		}

		// fee-regions 站点费率
		fees := api.Group("/fee-regions")
		{
			fees.GET("", c.FeeRegion.List)
			fees.PUT("", c.FeeRegion.Upsert)
		}
	}

	return r
}
