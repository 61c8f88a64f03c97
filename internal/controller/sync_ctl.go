package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/internal/service"
	"shopee_dev_v1_202609/pkg/shopee"
)

// SyncController 同步控制器
type SyncController struct {
	syncService *service.SyncService
	syncRunRepo repository.SyncRunRepository
}

// NewSyncController 创建同步控制器
func NewSyncController(syncService *service.SyncService, syncRunRepo repository.SyncRunRepository) *SyncController {
	return &SyncController{syncService: syncService, syncRunRepo: syncRunRepo}
}

// RunSync 手动触发单店全量同步
// POST /api/sync/shops/:shop_id
// 上游业务错误按 4xx 透传，同步进行中返回 429
func (c *SyncController) RunSync(ctx *gin.Context) {
	shopID := parseID(ctx, "shop_id")
	if shopID == 0 {
		return
	}

	result, err := c.syncService.RunSync(ctx.Request.Context(), shopID, model.SyncTypeManual)
	if err != nil {
		var apiErr *shopee.APIError
		switch {
		case errors.Is(err, service.ErrSyncInProgress):
			fail(ctx, 429, err)
		case errors.As(err, &apiErr):
			ctx.JSON(400, gin.H{
				"code":       400,
				"message":    apiErr.Message,
				"error":      apiErr.Code,
				"request_id": apiErr.RequestID,
			})
		default:
			fail(ctx, 500, err)
		}
		return
	}

	ok(ctx, result)
}

// ListRuns 查询同步历史
// GET /api/sync/shops/:shop_id/runs
func (c *SyncController) ListRuns(ctx *gin.Context) {
	shopID := parseID(ctx, "shop_id")
	if shopID == 0 {
		return
	}

	runs, err := c.syncRunRepo.ListByShop(ctx.Request.Context(), shopID, 50)
	if err != nil {
		fail(ctx, 500, err)
		return
	}
	ok(ctx, runs)
}
