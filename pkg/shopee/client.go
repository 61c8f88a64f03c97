package shopee

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL 生产环境网关
	DefaultBaseURL = "https://partner.shopeemobile.com"

	PathGetItemList     = "/api/v2/product/get_item_list"
	PathGetItemBaseInfo = "/api/v2/product/get_item_base_info"
	PathGetToken        = "/api/v2/auth/token/get"
	PathRefreshToken    = "/api/v2/auth/access_token/get"
)

// ErrMissingCredentials partner_id / partner_key 未配置
// 属于调用方配置错误，出现时不应发起任何请求
var ErrMissingCredentials = errors.New("shopee: partner_id 或 partner_key 未配置")

// Client Shopee OpenAPI 客户端
// 统一处理公共参数、签名与平台限流
type Client struct {
	partnerID  int64
	partnerKey string
	baseURL    string
	http       *resty.Client
	limiter    *rate.Limiter
}

// Option 客户端可选配置
type Option func(*Client)

// WithBaseURL 覆盖网关地址 (测试环境 / mock server)
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimit 覆盖限流参数 (默认 10 QPS)
func WithRateLimit(qps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
}

// WithTimeout 覆盖请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// NewClient 创建客户端
// partner 凭证缺失直接报错，避免带着空签名去请求
func NewClient(partnerID int64, partnerKey string, opts ...Option) (*Client, error) {
	if partnerID == 0 || partnerKey == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		partnerID:  partnerID,
		partnerKey: partnerKey,
		baseURL:    DefaultBaseURL,
		http: resty.New().
			SetTimeout(20 * time.Second).
			SetHeader("Content-Type", "application/json").
			SetHeader("User-Agent", "Shopee-Go-App/1.0"),
		// Shopee 平台配额按 partner 计，默认压在 10 QPS
		limiter: rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PartnerID 返回当前 partner_id (日志用)
func (c *Client) PartnerID() int64 { return c.partnerID }

// ==================== 商品接口 (店铺级) ====================

// GetItemList 分页拉取商品 ID 列表
// statuses 可传多个 (NORMAL / UNLIST 等)，参数重复出现
func (c *Client) GetItemList(ctx context.Context, accessToken string, shopID int64, offset, pageSize int, statuses []string) (*ItemListResp, error) {
	var res ItemListResp

	req := c.shopRequest(ctx, PathGetItemList, accessToken, shopID).
		SetQueryParam("offset", strconv.Itoa(offset)).
		SetQueryParam("page_size", strconv.Itoa(pageSize)).
		SetResult(&res)
	for _, st := range statuses {
		req.QueryParam.Add("item_status", st)
	}

	if err := c.do(ctx, req, resty.MethodGet, PathGetItemList); err != nil {
		return nil, err
	}
	if err := res.AsError(); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetItemBaseInfo 批量拉取商品详情
// item_id_list 逗号拼接，单次上限 50 个
func (c *Client) GetItemBaseInfo(ctx context.Context, accessToken string, shopID int64, itemIDs []int64) (*ItemBaseInfoResp, error) {
	ids := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	var res ItemBaseInfoResp
	req := c.shopRequest(ctx, PathGetItemBaseInfo, accessToken, shopID).
		SetQueryParam("item_id_list", strings.Join(ids, ",")).
		SetResult(&res)

	if err := c.do(ctx, req, resty.MethodGet, PathGetItemBaseInfo); err != nil {
		return nil, err
	}
	if err := res.AsError(); err != nil {
		return nil, err
	}
	return &res, nil
}

// ==================== 授权接口 (平台级) ====================

// GetAccessToken 用授权 code 换取首个 token
func (c *Client) GetAccessToken(ctx context.Context, code string, shopID int64) (*TokenResp, error) {
	var res TokenResp
	req := c.partnerRequest(ctx, PathGetToken).
		SetBody(map[string]interface{}{
			"code":       code,
			"shop_id":    shopID,
			"partner_id": c.partnerID,
		}).
		SetResult(&res)

	if err := c.do(ctx, req, resty.MethodPost, PathGetToken); err != nil {
		return nil, err
	}
	if err := res.AsError(); err != nil {
		return nil, err
	}
	return &res, nil
}

// RefreshAccessToken 用 refresh_token 续期
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string, shopID int64) (*TokenResp, error) {
	var res TokenResp
	req := c.partnerRequest(ctx, PathRefreshToken).
		SetBody(map[string]interface{}{
			"refresh_token": refreshToken,
			"shop_id":       shopID,
			"partner_id":    c.partnerID,
		}).
		SetResult(&res)

	if err := c.do(ctx, req, resty.MethodPost, PathRefreshToken); err != nil {
		return nil, err
	}
	if err := res.AsError(); err != nil {
		return nil, err
	}
	return &res, nil
}

// ==================== 内部方法 ====================

// shopRequest 构建店铺级请求 (签名含 access_token + shop_id)
func (c *Client) shopRequest(ctx context.Context, path, accessToken string, shopID int64) *resty.Request {
	ts := time.Now().Unix()
	sign := Sign(c.partnerKey, ShopBaseString(c.partnerID, path, ts, accessToken, shopID))

	return c.http.R().
		SetContext(ctx).
		SetQueryParam("partner_id", strconv.FormatInt(c.partnerID, 10)).
		SetQueryParam("timestamp", strconv.FormatInt(ts, 10)).
		SetQueryParam("sign", sign).
		SetQueryParam("access_token", accessToken).
		SetQueryParam("shop_id", strconv.FormatInt(shopID, 10))
}

// partnerRequest 构建平台级请求 (仅 partner 三件套)
func (c *Client) partnerRequest(ctx context.Context, path string) *resty.Request {
	ts := time.Now().Unix()
	sign := Sign(c.partnerKey, PartnerBaseString(c.partnerID, path, ts))

	return c.http.R().
		SetContext(ctx).
		SetQueryParam("partner_id", strconv.FormatInt(c.partnerID, 10)).
		SetQueryParam("timestamp", strconv.FormatInt(ts, 10)).
		SetQueryParam("sign", sign)
}

// do 统一发送入口：先过限流器，再发请求，HTTP 层错误直接透出
func (c *Client) do(ctx context.Context, req *resty.Request, method, path string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("限流等待被取消: %w", err)
	}

	resp, err := req.Execute(method, c.baseURL+path)
	if err != nil {
		return fmt.Errorf("请求 %s 失败: %w", path, err)
	}
	if resp.IsError() {
		return &APIError{
			Code:    strconv.Itoa(resp.StatusCode()),
			Message: resp.String(),
		}
	}
	return nil
}
