package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/pkg/shopee"
)

// refresh_token 有效期平台固定 30 天
const refreshTokenTTL = 30 * 24 * time.Hour

// AuthService 凭证生命周期管理
// 状态机: 未授权 -> 已授权 -> 过期 -> 刷新中 -> 已授权 (刷新失败则退回过期态)
type AuthService struct {
	client    *shopee.Client
	tokenRepo repository.TokenRepository
	shopRepo  repository.ShopRepository
	log       *zap.SugaredLogger

	// 同店刷新单飞，防止并发双刷
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewAuthService 创建凭证服务
func NewAuthService(client *shopee.Client, tokenRepo repository.TokenRepository, shopRepo repository.ShopRepository, log *zap.SugaredLogger) *AuthService {
	return &AuthService{
		client:    client,
		tokenRepo: tokenRepo,
		shopRepo:  shopRepo,
		log:       log,
		locks:     make(map[int64]*sync.Mutex),
	}
}

// ExchangeCode 授权回调: 用 code 换取首个 token 并落库
func (s *AuthService) ExchangeCode(ctx context.Context, code string, shopID int64, region string) (*model.ShopToken, error) {
	res, err := s.client.GetAccessToken(ctx, code, shopID)
	if err != nil {
		return nil, fmt.Errorf("授权换 token 失败: %w", err)
	}
	return s.storeToken(ctx, shopID, region, res)
}

// EnsureFresh 取一个可用凭证：有效直接返回，过期则刷新
func (s *AuthService) EnsureFresh(ctx context.Context, shopID int64) (*model.ShopToken, error) {
	token, err := s.tokenRepo.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("店铺 %d 未授权: %w", shopID, err)
	}
	if token.IsUsable(time.Now()) {
		return token, nil
	}
	return s.Refresh(ctx, shopID)
}

// Refresh 执行刷新交换
// 上游报错时不改动任何存量记录；成功后幂等 upsert 主记录，
// 再镜像到 shops 表 (镜像失败只记日志，主记录已持久化)
func (s *AuthService) Refresh(ctx context.Context, shopID int64) (*model.ShopToken, error) {
	lock := s.shopLock(shopID)
	lock.Lock()
	defer lock.Unlock()

	// 拿到锁后重读，可能别的协程刚刷完
	token, err := s.tokenRepo.GetByShopID(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("店铺 %d 未授权: %w", shopID, err)
	}
	if token.IsUsable(time.Now()) {
		return token, nil
	}
	// refresh_token 也过期了只能走人工重新授权，不必再打上游
	if !time.Now().Before(token.RefreshExpiresAt) {
		return nil, fmt.Errorf("店铺 %d %w，需重新授权", shopID, ErrTokenExpired)
	}

	res, err := s.client.RefreshAccessToken(ctx, token.RefreshToken, shopID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}

	return s.storeToken(ctx, shopID, token.Region, res)
}

// storeToken 落库：主记录必须成功，shops 镜像尽力而为
func (s *AuthService) storeToken(ctx context.Context, shopID int64, region string, res *shopee.TokenResp) (*model.ShopToken, error) {
	now := time.Now()
	token := &model.ShopToken{
		ShopID:           shopID,
		AccessToken:      res.AccessToken,
		RefreshToken:     res.RefreshToken,
		AccessExpiresAt:  now.Add(time.Duration(res.ExpireIn) * time.Second),
		RefreshExpiresAt: now.Add(refreshTokenTTL),
		Region:           region,
	}

	if err := s.tokenRepo.Upsert(ctx, token); err != nil {
		return nil, fmt.Errorf("凭证写入失败: %w", err)
	}

	if err := s.shopRepo.UpsertTokenMirror(ctx, shopID, region, token.AccessToken, token.AccessExpiresAt); err != nil {
		// 镜像只是展示冗余，失败不向上抛
		s.log.Warnw("店铺凭证镜像写入失败", "shop_id", shopID, "err", err)
	}

	return token, nil
}

func (s *AuthService) shopLock(shopID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.locks[shopID]; !ok {
		s.locks[shopID] = &sync.Mutex{}
	}
	return s.locks[shopID]
}
