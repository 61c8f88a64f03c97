package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shopee_dev_v1_202609/internal/config"
	"shopee_dev_v1_202609/internal/controller"
	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/internal/router"
	"shopee_dev_v1_202609/internal/service"
	"shopee_dev_v1_202609/internal/task"
	"shopee_dev_v1_202609/pkg/database"
	"shopee_dev_v1_202609/pkg/logger"
	"shopee_dev_v1_202609/pkg/shopee"
)

func main() {
	// 1. 配置与日志
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	zlog := logger.Init(cfg.Server.Debug)
	defer func() { _ = zlog.Sync() }()

	// 2. 数据库
	db := initDatabase(cfg)

	// 3. 依赖装配
	deps, err := initDependencies(cfg, db, zlog)
	if err != nil {
		zlog.Fatalf("依赖初始化失败: %v", err)
	}

	// 4. 定时任务
	deps.Tasks.Start()
	defer deps.Tasks.Stop()

	// 5. 路由与服务
	r := router.SetupRouter(deps.Controllers)
	startServer(cfg.Server.Addr, r, zlog)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Tasks       *task.TaskManager
}

// Repositories 仓储集合
type Repositories struct {
	Shop      repository.ShopRepository
	Token     repository.TokenRepository
	Product   repository.ProductRepository
	PriceRule repository.PriceRuleRepository
	FeeRegion repository.FeeRegionRepository
	SyncRun   repository.SyncRunRepository
}

// Services 服务集合
type Services struct {
	Auth      *service.AuthService
	Shop      *service.ShopService
	Sync      *service.SyncService
	Pricing   *service.PricingService
	PriceRule *service.PriceRuleService
	Product   *service.ProductService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库并建表
func initDatabase(cfg *config.Config) *gorm.DB {
	return database.InitDB(
		cfg.Database.DSN,
		cfg.Server.Debug,
		// Shop
		&model.Shop{}, &model.ShopToken{},
		// Product
		&model.Product{},
		// Pricing
		&model.FeeRegion{}, &model.PriceRule{},
		// Audit
		&model.SyncRun{},
	)
}

// initDependencies 装配全部依赖
func initDependencies(cfg *config.Config, db *gorm.DB, zlog *zap.SugaredLogger) (*Dependencies, error) {
	// -------- Repo 层 --------
	repos := &Repositories{
		Shop:      repository.NewShopRepository(db),
		Token:     repository.NewTokenRepository(db),
		Product:   repository.NewProductRepository(db),
		PriceRule: repository.NewPriceRuleRepository(db),
		FeeRegion: repository.NewFeeRegionRepository(db),
		SyncRun:   repository.NewSyncRunRepository(db),
	}

	// -------- Shopee 客户端 --------
	clientOpts := []shopee.Option{
		shopee.WithRateLimit(cfg.Shopee.RateQPS, int(cfg.Shopee.RateQPS)),
	}
	if cfg.Shopee.BaseURL != "" {
		clientOpts = append(clientOpts, shopee.WithBaseURL(cfg.Shopee.BaseURL))
	}
	client, err := shopee.NewClient(cfg.Shopee.PartnerID, cfg.Shopee.PartnerKey, clientOpts...)
	if err != nil {
		return nil, err
	}

	// -------- Service 层 --------
	authSvc := service.NewAuthService(client, repos.Token, repos.Shop, zlog)
	syncSvc := service.NewSyncService(client, authSvc, repos.Product, repos.SyncRun, repos.Shop, zlog,
		service.SyncOptions{
			PageSize: cfg.Sync.PageSize,
			MaxPages: cfg.Sync.MaxPages,
		})
	pricingSvc := service.NewPricingService(repos.FeeRegion)
	ruleSvc := service.NewPriceRuleService(repos.PriceRule)
	productSvc := service.NewProductService(repos.Product, repos.Shop, pricingSvc, ruleSvc, zlog)
	shopSvc := service.NewShopService(repos.Shop, zlog)

	services := &Services{
		Auth:      authSvc,
		Shop:      shopSvc,
		Sync:      syncSvc,
		Pricing:   pricingSvc,
		PriceRule: ruleSvc,
		Product:   productSvc,
	}

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:      controller.NewAuthController(authSvc),
		Shop:      controller.NewShopController(shopSvc),
		Product:   controller.NewProductController(productSvc),
		Sync:      controller.NewSyncController(syncSvc, repos.SyncRun),
		Pricing:   controller.NewPricingController(pricingSvc),
		PriceRule: controller.NewPriceRuleController(repos.PriceRule),
		FeeRegion: controller.NewFeeRegionController(repos.FeeRegion),
	}

	// -------- Task 层 --------
	tasks := task.NewTaskManager(task.TaskConfig{
		Enabled:   cfg.Task.Enabled,
		TokenCron: cfg.Task.TokenCron,
		SyncCron:  cfg.Task.SyncCron,
	}, repos.Shop, authSvc, syncSvc, zlog)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Tasks:       tasks,
	}, nil
}

// startServer 启动 HTTP 服务并处理优雅退出
func startServer(addr string, handler http.Handler, zlog *zap.SugaredLogger) {
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		zlog.Infof("HTTP 服务启动于 %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalf("HTTP 服务异常退出: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("收到退出信号，开始优雅关闭...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Errorf("优雅关闭失败: %v", err)
	}
	zlog.Info("服务已退出")
}
