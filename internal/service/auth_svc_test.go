package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopee_dev_v1_202609/internal/model"
	"shopee_dev_v1_202609/internal/repository"
	"shopee_dev_v1_202609/pkg/shopee"
)

// ==================== 凭证生命周期测试 ====================

func newAuthFixture(t *testing.T, handler http.Handler) (*AuthService, repository.TokenRepository, repository.ShopRepository, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := shopee.NewClient(100005203, "test_partner_key",
		shopee.WithBaseURL(srv.URL),
		shopee.WithRateLimit(1000, 1000),
	)
	if err != nil {
		t.Fatal(err)
	}

	db := setupTestDB(t)
	tokenRepo := repository.NewTokenRepository(db)
	shopRepo := repository.NewShopRepository(db)
	return NewAuthService(client, tokenRepo, shopRepo, testLogger()), tokenRepo, shopRepo, srv
}

func TestEnsureFresh_UsableTokenSkipsUpstream(t *testing.T) {
	called := false
	svc, tokenRepo, _, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	ctx := context.Background()
	seed := &model.ShopToken{
		ShopID:           900001,
		AccessToken:      "still_good",
		RefreshToken:     "r1",
		AccessExpiresAt:  time.Now().Add(2 * time.Hour),
		RefreshExpiresAt: time.Now().Add(20 * 24 * time.Hour),
		Region:           "TW",
	}
	if err := tokenRepo.Upsert(ctx, seed); err != nil {
		t.Fatal(err)
	}

	token, err := svc.EnsureFresh(ctx, 900001)
	if err != nil {
		t.Fatal(err)
	}
	if token.AccessToken != "still_good" {
		t.Errorf("AccessToken = %s, want still_good", token.AccessToken)
	}
	if called {
		t.Error("有效凭证不应触发上游请求")
	}
}

func TestRefresh_StoresNewTokenAndMirror(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != shopee.PathRefreshToken {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"request_id":"req-1","access_token":"fresh_token","refresh_token":"r2","expire_in":14400}`)
	})
	svc, tokenRepo, shopRepo, _ := newAuthFixture(t, handler)

	ctx := context.Background()
	_ = tokenRepo.Upsert(ctx, &model.ShopToken{
		ShopID:           900001,
		AccessToken:      "stale",
		RefreshToken:     "r1",
		AccessExpiresAt:  time.Now().Add(-time.Hour),
		RefreshExpiresAt: time.Now().Add(10 * 24 * time.Hour),
		Region:           "TW",
	})

	before := time.Now()
	token, err := svc.Refresh(ctx, 900001)
	if err != nil {
		t.Fatal(err)
	}
	if token.AccessToken != "fresh_token" || token.RefreshToken != "r2" {
		t.Errorf("刷新结果错误: %+v", token)
	}

	// 主记录已持久化
	stored, err := tokenRepo.GetByShopID(ctx, 900001)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AccessToken != "fresh_token" {
		t.Errorf("落库 AccessToken = %s, want fresh_token", stored.AccessToken)
	}
	wantExpiry := before.Add(14400 * time.Second)
	if stored.AccessExpiresAt.Before(wantExpiry.Add(-time.Minute)) ||
		stored.AccessExpiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("AccessExpiresAt = %v, want ~%v", stored.AccessExpiresAt, wantExpiry)
	}

	// shops 表镜像也应同步
	shop, err := shopRepo.GetByShopeeID(ctx, 900001)
	if err != nil {
		t.Fatal(err)
	}
	if shop.AccessToken != "fresh_token" {
		t.Errorf("镜像 AccessToken = %s, want fresh_token", shop.AccessToken)
	}
	if shop.TokenStatus != model.TokenStatusValid {
		t.Errorf("镜像 TokenStatus = %s, want %s", shop.TokenStatus, model.TokenStatusValid)
	}
}

func TestRefresh_UpstreamErrorLeavesStateUntouched(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"error_auth","message":"invalid refresh_token","request_id":"req-err"}`)
	})
	svc, tokenRepo, _, _ := newAuthFixture(t, handler)

	ctx := context.Background()
	_ = tokenRepo.Upsert(ctx, &model.ShopToken{
		ShopID:           900001,
		AccessToken:      "stale",
		RefreshToken:     "r1",
		AccessExpiresAt:  time.Now().Add(-time.Hour),
		RefreshExpiresAt: time.Now().Add(10 * 24 * time.Hour),
		Region:           "TW",
	})

	_, err := svc.Refresh(ctx, 900001)
	if !errors.Is(err, ErrRefreshFailed) {
		t.Fatalf("err = %v, want ErrRefreshFailed", err)
	}

	// 失败不改写存量记录
	stored, err := tokenRepo.GetByShopID(ctx, 900001)
	if err != nil {
		t.Fatal(err)
	}
	if stored.AccessToken != "stale" || stored.RefreshToken != "r1" {
		t.Errorf("刷新失败后记录被改动: %+v", stored)
	}
}

func TestRefresh_ExpiredRefreshTokenSkipsUpstream(t *testing.T) {
	called := false
	svc, tokenRepo, _, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	ctx := context.Background()
	_ = tokenRepo.Upsert(ctx, &model.ShopToken{
		ShopID:           900001,
		AccessToken:      "stale",
		RefreshToken:     "r1",
		AccessExpiresAt:  time.Now().Add(-31 * 24 * time.Hour),
		RefreshExpiresAt: time.Now().Add(-24 * time.Hour),
		Region:           "TW",
	})

	_, err := svc.Refresh(ctx, 900001)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
	if called {
		t.Error("refresh_token 过期不应请求上游")
	}
}

func TestEnsureFresh_UnknownShop(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	if _, err := svc.EnsureFresh(context.Background(), 123456); err == nil {
		t.Fatal("未授权店铺应报错")
	}
}

func TestShopToken_IsUsable(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		token model.ShopToken
		want  bool
	}{
		{"有效", model.ShopToken{AccessToken: "t", AccessExpiresAt: now.Add(time.Hour)}, true},
		{"已过期", model.ShopToken{AccessToken: "t", AccessExpiresAt: now.Add(-time.Second)}, false},
		{"空凭证", model.ShopToken{AccessExpiresAt: now.Add(time.Hour)}, false},
	}
	for _, c := range cases {
		if got := c.token.IsUsable(now); got != c.want {
			t.Errorf("%s: IsUsable = %v, want %v", c.name, got, c.want)
		}
	}
}
