package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/pkg/shopee"
)

// SyncResult 一次全量同步的结果
type SyncResult struct {
	RunID        string `json:"run_id"`
	Status       string `json:"status"`
	Synced       int    `json:"synced"`
	Failed       int    `json:"failed"`
	TotalFetched int    `json:"total_fetched"`
}

// SyncOptions 同步引擎可调参数
type SyncOptions struct {
	PageSize int      // 列表页大小，平台上限 50
	MaxPages int      // 防御上游异常翻页的硬上限
	Statuses []string // 拉取的商品状态
}

// DefaultSyncOptions 默认参数
func DefaultSyncOptions() SyncOptions {
	return SyncOptions{
		PageSize: 50,
		MaxPages: 200,
		Statuses: []string{model.ItemStatusNormal, model.ItemStatusUnlist},
	}
}

// SyncService 全量商品同步引擎
// 两遍式：先枚举商品 ID + 批量拉详情，再逐条 upsert 入库。
// 首次调用失败整体报 failure；入库阶段单条失败只计数不中断
type SyncService struct {
	client      *shopee.Client
	auth        *AuthService
	productRepo repository.ProductRepository
	syncRunRepo repository.SyncRunRepository
	shopRepo    repository.ShopRepository
	log         *zap.SugaredLogger
	opts        SyncOptions

	// 同店防重入
	running sync.Map
}

// NewSyncService 创建同步引擎
func NewSyncService(
	client *shopee.Client,
	auth *AuthService,
	productRepo repository.ProductRepository,
	syncRunRepo repository.SyncRunRepository,
	shopRepo repository.ShopRepository,
	log *zap.SugaredLogger,
	opts SyncOptions,
) *SyncService {
	if opts.PageSize <= 0 {
		opts.PageSize = 50
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 200
	}
	if len(opts.Statuses) == 0 {
		opts.Statuses = []string{model.ItemStatusNormal, model.ItemStatusUnlist}
	}
	return &SyncService{
		client:      client,
		auth:        auth,
		productRepo: productRepo,
		syncRunRepo: syncRunRepo,
		shopRepo:    shopRepo,
		log:         log,
		opts:        opts,
	}
}

// RunSync 对单个店铺执行全量同步
func (s *SyncService) RunSync(ctx context.Context, shopID int64, syncType string) (*SyncResult, error) {
	if _, loaded := s.running.LoadOrStore(shopID, struct{}{}); loaded {
		return nil, ErrSyncInProgress
	}
	defer s.running.Delete(shopID)

	startedAt := time.Now()
	runID := uuid.NewString()

	token, err := s.auth.EnsureFresh(ctx, shopID)
	if err != nil {
		s.writeRun(ctx, runID, shopID, syncType, model.SyncStatusFailure, 0, 0, 0, err.Error(), startedAt)
		return nil, err
	}

	// ---------- 第一遍：枚举 + 拉详情 ----------
	items, err := s.fetchAll(ctx, token.AccessToken, shopID)
	if err != nil {
		// 枚举阶段失败：不写入任何商品数据，整体报 failure
		s.writeRun(ctx, runID, shopID, syncType, model.SyncStatusFailure, 0, 0, 0, err.Error(), startedAt)
		return nil, err
	}

	// ---------- 第二遍：逐条入库 ----------
	synced, failed := s.reconcile(ctx, shopID, items)

	status := model.SyncStatusSuccess
	if failed > 0 {
		status = model.SyncStatusPartial
	}
	s.writeRun(ctx, runID, shopID, syncType, status, synced, failed, len(items), "", startedAt)

	if err := s.shopRepo.MarkSynced(ctx, shopID, time.Now()); err != nil {
		s.log.Warnw("更新店铺同步时间失败", "shop_id", shopID, "err", err)
	}

	s.log.Infow("商品同步完成",
		"shop_id", shopID, "run_id", runID, "status", status,
		"synced", synced, "failed", failed, "fetched", len(items))

	return &SyncResult{
		RunID:        runID,
		Status:       status,
		Synced:       synced,
		Failed:       failed,
		TotalFetched: len(items),
	}, nil
}

// fetchAll 顺序翻页拉取全部商品详情
// 终止条件：空页 / has_next_page=false；超过 MaxPages 视为上游异常
func (s *SyncService) fetchAll(ctx context.Context, accessToken string, shopID int64) ([]shopee.ItemBaseInfoDTO, error) {
	var items []shopee.ItemBaseInfoDTO
	offset := 0

	for page := 0; ; page++ {
		if page >= s.opts.MaxPages {
			return nil, fmt.Errorf("翻页超过上限 %d 页 (offset=%d)，疑似上游分页异常", s.opts.MaxPages, offset)
		}

		listRes, err := s.client.GetItemList(ctx, accessToken, shopID, offset, s.opts.PageSize, s.opts.Statuses)
		if err != nil {
			return nil, fmt.Errorf("拉取商品列表失败 (offset=%d): %w", offset, err)
		}
		if len(listRes.Response.Items) == 0 {
			break
		}

		ids := make([]int64, 0, len(listRes.Response.Items))
		for _, brief := range listRes.Response.Items {
			ids = append(ids, brief.ItemID)
		}

		detailRes, err := s.client.GetItemBaseInfo(ctx, accessToken, shopID, ids)
		if err != nil {
			return nil, fmt.Errorf("拉取商品详情失败 (offset=%d, ids=%d 个): %w", offset, len(ids), err)
		}
		items = append(items, detailRes.Response.ItemList...)

		if !listRes.Response.HasNextPage {
			break
		}
		if listRes.Response.NextOffset > 0 {
			offset = listRes.Response.NextOffset
		} else {
			offset += s.opts.PageSize
		}
	}

	return items, nil
}

// reconcile 把远端商品合并进本地镜像
// 单条失败只计数；upsert 按 item_id 幂等，顺序无关
func (s *SyncService) reconcile(ctx context.Context, shopID int64, items []shopee.ItemBaseInfoDTO) (synced, failed int) {
	now := time.Now()
	for i := range items {
		product := toProduct(&items[i], shopID, now)
		if err := s.productRepo.UpsertRemote(ctx, product); err != nil {
			failed++
			s.log.Warnw("商品入库失败", "shop_id", shopID, "item_id", product.ItemID, "err", err)
			continue
		}
		synced++
	}
	return synced, failed
}

// toProduct DTO -> 本地镜像模型，只填远端列
// 本地运营列留零值，upsert 列名单保证它们不会被覆盖
func toProduct(dto *shopee.ItemBaseInfoDTO, shopID int64, now time.Time) *model.Product {
	attrs, _ := json.Marshal(dto.Attributes)

	return &model.Product{
		ShopID:           shopID,
		ItemID:           dto.ItemID,
		Name:             dto.ItemName,
		Description:      dto.Description,
		SKU:              dto.ItemSKU,
		CategoryID:       dto.CategoryID,
		OriginalPrice:    dto.OriginalPrice(),
		CurrentPrice:     dto.CurrentPrice(),
		Currency:         dto.Currency(),
		Stock:            dto.TotalStock(),
		Images:           dto.Image.ImageURLList,
		Attributes:       attrs,
		Status:           dto.ItemStatus,
		Sold:             dto.Sold,
		Views:            dto.Views,
		Likes:            dto.Likes,
		RemoteCreateTime: dto.CreateTime,
		RemoteUpdateTime: dto.UpdateTime,
		LastSyncedAt:     &now,
	}
}

// writeRun 写审计记录，失败只记日志 (审计不阻断业务)
func (s *SyncService) writeRun(ctx context.Context, runID string, shopID int64, syncType, status string, synced, failed, fetched int, errMsg string, startedAt time.Time) {
	completed := time.Now()
	run := &model.SyncRun{
		RunID:        runID,
		ShopID:       shopID,
		SyncType:     syncType,
		Status:       status,
		ItemsSynced:  synced,
		ItemsFailed:  failed,
		TotalFetched: fetched,
		ErrorMessage: errMsg,
		StartedAt:    startedAt,
		CompletedAt:  &completed,
	}
	if err := s.syncRunRepo.Create(ctx, run); err != nil {
		s.log.Errorw("同步审计记录写入失败", "shop_id", shopID, "run_id", runID, "err", err)
	}
}
