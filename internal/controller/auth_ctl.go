package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/service"
)

// AuthController 授权回调与手动刷新
type AuthController struct {
	authService *service.AuthService
}

// NewAuthController 创建授权控制器
func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Callback 店铺授权回调
// GET /api/auth/callback?code=xxx&shop_id=123&region=TW
func (c *AuthController) Callback(ctx *gin.Context) {
	code := ctx.Query("code")
	shopID, _ := strconv.ParseInt(ctx.Query("shop_id"), 10, 64)
	region := ctx.DefaultQuery("region", "TW")

	if code == "" || shopID <= 0 {
		ctx.JSON(400, gin.H{"code": 400, "message": "缺少 code 或 shop_id"})
		return
	}

	token, err := c.authService.ExchangeCode(ctx.Request.Context(), code, shopID, region)
	if err != nil {
		fail(ctx, 502, err)
		return
	}

	ok(ctx, gin.H{
		"shop_id":           shopID,
		"access_expires_at": token.AccessExpiresAt,
	})
}

// Refresh 手动刷新单店凭证
// POST /api/auth/refresh/:shop_id
func (c *AuthController) Refresh(ctx *gin.Context) {
	shopID := parseID(ctx, "shop_id")
	if shopID == 0 {
		return
	}

	token, err := c.authService.Refresh(ctx.Request.Context(), shopID)
	if err != nil {
		status := 502
		if errors.Is(err, service.ErrRefreshFailed) || errors.Is(err, service.ErrTokenExpired) {
			status = 401
		}
		fail(ctx, status, err)
		return
	}

	ok(ctx, gin.H{
		"shop_id":           shopID,
		"access_expires_at": token.AccessExpiresAt,
	})
}
