package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/internal/service"
)

// SyncTask 商品定时同步任务
// 每日对全部活跃店铺做一次全量同步；引擎自带同店防重入，
// 手动触发撞上定时任务时后来者直接被拒
type SyncTask struct {
	shopRepo    repository.ShopRepository
	syncService *service.SyncService
	cron        *cron.Cron
	log         *zap.SugaredLogger
	spec        string

	concurrencyLimit int
	sleepTime        time.Duration
}

// NewSyncTask 创建定时同步任务
// spec 为六段 cron 表达式 (默认每日凌晨 3 点)
func NewSyncTask(shopRepo repository.ShopRepository, syncService *service.SyncService, log *zap.SugaredLogger, spec string) *SyncTask {
	if spec == "" {
		spec = "0 0 3 * * *"
	}
	return &SyncTask{
		shopRepo:         shopRepo,
		syncService:      syncService,
		cron:             cron.New(cron.WithSeconds()),
		log:              log,
		spec:             spec,
		concurrencyLimit: 3,
		sleepTime:        300 * time.Millisecond,
	}
}

// Start 启动定时任务
func (t *SyncTask) Start() {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Hour)
		defer cancel()
		t.syncAllShops(ctx)
	})
	if err != nil {
		t.log.Fatalf("无法启动商品同步任务: %v", err)
	}

	t.cron.Start()
	t.log.Infof("[SyncTask] 已启动 (%s)", t.spec)
}

// Stop 停止任务
func (t *SyncTask) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.log.Info("[SyncTask] 已停止")
}

// syncAllShops 对所有活跃店铺发起全量同步
func (t *SyncTask) syncAllShops(ctx context.Context) {
	shops, _, err := t.shopRepo.List(ctx, repository.ShopFilter{
		Status:   model.ShopStatusActive,
		PageSize: 1000,
	})
	if err != nil {
		t.log.Errorw("[SyncTask] 店铺列表查询失败", "err", err)
		return
	}
	if len(shops) == 0 {
		t.log.Info("[SyncTask] 无活跃店铺需要同步")
		return
	}

	t.log.Infof("[SyncTask] 开始全量同步 %d 个店铺，并发上限 %d", len(shops), t.concurrencyLimit)

	sem := make(chan struct{}, t.concurrencyLimit)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var okCount, failCount int

loop:
	for _, shop := range shops {
		select {
		case <-ctx.Done():
			// 停止派发，但要等在途店铺收尾再汇总
			t.log.Warn("[SyncTask] 任务超时，停止派发新店铺")
			break loop
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		time.Sleep(t.sleepTime)

		go func(s model.Shop) {
			defer wg.Done()
			defer func() { <-sem }()

			result, err := t.syncService.RunSync(ctx, s.ShopeeShopID, model.SyncTypeScheduled)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failCount++
				if !errors.Is(err, service.ErrSyncInProgress) {
					t.log.Warnw("[SyncTask] 店铺同步失败", "shop_id", s.ShopeeShopID, "err", err)
				}
				return
			}
			okCount++
			t.log.Infow("[SyncTask] 店铺同步完成",
				"shop_id", s.ShopeeShopID, "synced", result.Synced, "failed", result.Failed)
		}(shop)
	}

	wg.Wait()
	t.log.Infof("[SyncTask] 本轮同步结束: 成功 %d, 失败 %d", okCount, failCount)
}
