package task

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/internal/service"
)

// TokenTask 凭证保活任务
// 周期扫描即将过期的店铺并集中刷新
type TokenTask struct {
	shopRepo    repository.ShopRepository
	authService *service.AuthService
	cron        *cron.Cron
	log         *zap.SugaredLogger
	spec        string

	// 控制并发刷新的数量，避免对授权接口打出尖峰
	concurrencyLimit int
	sleepTime        time.Duration
}

// NewTokenTask 创建保活任务
// spec 为六段 cron 表达式 (默认每 40 分钟)
func NewTokenTask(shopRepo repository.ShopRepository, authService *service.AuthService, log *zap.SugaredLogger, spec string) *TokenTask {
	if spec == "" {
		spec = "0 0/40 * * * *"
	}
	return &TokenTask{
		shopRepo:         shopRepo,
		authService:      authService,
		cron:             cron.New(cron.WithSeconds()),
		log:              log,
		spec:             spec,
		concurrencyLimit: 10,
		sleepTime:        50 * time.Millisecond,
	}
}

// Start 启动定时任务
func (t *TokenTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.log.Info("[TokenTask] 服务启动，执行首次凭证检查...")
		t.refreshJob(ctx)
	}()

	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.refreshJob(ctx)
	})
	if err != nil {
		t.log.Fatalf("无法启动凭证保活任务: %v", err)
	}

	t.cron.Start()
	t.log.Infof("[TokenTask] 已启动 (%s)", t.spec)
}

// Stop 停止任务
func (t *TokenTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("[TokenTask] 已停止")
}

// refreshJob 批量刷新逻辑
func (t *TokenTask) refreshJob(ctx context.Context) {
	// 提前 1 小时续期，留出重试窗口
	shops, err := t.shopRepo.FindExpiring(ctx, time.Hour)
	if err != nil {
		t.log.Errorw("[TokenTask] 过期店铺查询失败", "err", err)
		return
	}
	if len(shops) == 0 {
		return
	}

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	t.log.Infof("[TokenTask] 开始刷新 %d 个店铺凭证，并发上限 %d", len(shops), t.concurrencyLimit)

loop:
	for _, shop := range shops {
		select {
		case <-ctx.Done():
			// 停止派发，但要等在途刷新收尾
			t.log.Warn("[TokenTask] 任务超时，停止派发新店铺")
			break loop
		default:
		}

		sem <- struct{}{}
		wg.Add(1)

		// 平滑波峰
		time.Sleep(t.sleepTime)

		go func(s model.Shop) {
			defer wg.Done()
			defer func() { <-sem }()

			if _, err := t.authService.Refresh(ctx, s.ShopeeShopID); err != nil {
				// 单店失败只记录，不影响其它店铺
				t.log.Warnw("[TokenTask] 店铺凭证刷新失败", "shop_id", s.ShopeeShopID, "err", err)
			}
		}(shop)
	}

	wg.Wait()
	t.log.Info("[TokenTask] 本轮凭证刷新完成")
}
