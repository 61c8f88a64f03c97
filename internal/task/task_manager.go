package task

import (
	"go.uber.org/zap"

	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/internal/service"
)

// TaskManager 统一管理后台定时任务
// 管理范围：凭证保活、商品定时同步
type TaskManager struct {
	tokenTask *TokenTask
	syncTask  *SyncTask
	log       *zap.SugaredLogger
}

// TaskConfig 任务配置
type TaskConfig struct {
	Enabled   bool
	TokenCron string
	SyncCron  string
}

// NewTaskManager 创建任务管理器
// Enabled=false 时返回空管理器，Start/Stop 均为空操作
func NewTaskManager(
	cfg TaskConfig,
	shopRepo repository.ShopRepository,
	authService *service.AuthService,
	syncService *service.SyncService,
	log *zap.SugaredLogger,
) *TaskManager {
	tm := &TaskManager{log: log}
	if !cfg.Enabled {
		return tm
	}

	tm.tokenTask = NewTokenTask(shopRepo, authService, log, cfg.TokenCron)
	tm.syncTask = NewSyncTask(shopRepo, syncService, log, cfg.SyncCron)
	return tm
}

// Start 启动所有任务
func (tm *TaskManager) Start() {
	if tm.tokenTask == nil && tm.syncTask == nil {
		tm.log.Info("[TaskManager] 定时任务已禁用")
		return
	}
	tm.log.Info("[TaskManager] 正在启动定时任务...")
	if tm.tokenTask != nil {
		tm.tokenTask.Start()
	}
	if tm.syncTask != nil {
		tm.syncTask.Start()
	}
	tm.log.Info("[TaskManager] 定时任务已全部启动")
}

// Stop 停止所有任务
func (tm *TaskManager) Stop() {
	if tm.tokenTask != nil {
		tm.tokenTask.Stop()
	}
	if tm.syncTask != nil {
		tm.syncTask.Stop()
	}
	tm.log.Info("[TaskManager] 定时任务已全部停止")
}
