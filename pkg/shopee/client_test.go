package shopee

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// ==================== 客户端测试 ====================

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(100001, "unit_test_key", WithBaseURL(srv.URL), WithRateLimit(1000, 1000))
	if err != nil {
		t.Fatalf("创建客户端失败: %v", err)
	}
	return client, srv
}

func TestNewClient_MissingCredentials(t *testing.T) {
	if _, err := NewClient(0, "key"); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("partner_id=0 应报凭证缺失, got %v", err)
	}
	if _, err := NewClient(100001, ""); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("空 key 应报凭证缺失, got %v", err)
	}
}

func TestGetItemList_CommonParams(t *testing.T) {
	var gotQuery map[string][]string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"request_id": "req-1",
			"response": map[string]interface{}{
				"item":          []map[string]interface{}{{"item_id": 1001, "item_status": "NORMAL"}},
				"has_next_page": false,
			},
		})
	}))

	res, err := client.GetItemList(context.Background(), "at-token", 880001, 0, 50, []string{"NORMAL", "UNLIST"})
	if err != nil {
		t.Fatalf("请求失败: %v", err)
	}

	// 公共参数齐全
	for _, key := range []string{"partner_id", "timestamp", "sign", "access_token", "shop_id"} {
		if len(gotQuery[key]) == 0 {
			t.Errorf("缺少公共参数 %s", key)
		}
	}
	// item_status 重复出现
	if len(gotQuery["item_status"]) != 2 {
		t.Errorf("item_status 个数 = %d, want 2", len(gotQuery["item_status"]))
	}
	if len(res.Response.Items) != 1 || res.Response.Items[0].ItemID != 1001 {
		t.Errorf("响应解析错误: %+v", res.Response.Items)
	}
}

func TestGetItemBaseInfo_JoinsIDs(t *testing.T) {
	var gotIDs string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIDs = r.URL.Query().Get("item_id_list")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"response": map[string]interface{}{"item_list": []interface{}{}},
		})
	}))

	if _, err := client.GetItemBaseInfo(context.Background(), "tk", 1, []int64{1, 2, 3}); err != nil {
		t.Fatalf("请求失败: %v", err)
	}
	if gotIDs != "1,2,3" {
		t.Errorf("item_id_list = %q, want \"1,2,3\"", gotIDs)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error":      "error_auth",
			"message":    "Invalid access_token",
			"request_id": "req-err",
		})
	}))

	_, err := client.GetItemList(context.Background(), "bad", 1, 0, 50, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("应返回 APIError, got %v", err)
	}
	if apiErr.Code != "error_auth" || apiErr.RequestID != "req-err" {
		t.Errorf("错误字段透传不完整: %+v", apiErr)
	}
}

func TestRefreshAccessToken_Body(t *testing.T) {
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token":  "new-at",
			"refresh_token": "new-rt",
			"expire_in":     14400,
		})
	}))

	res, err := client.RefreshAccessToken(context.Background(), "old-rt", 880001)
	if err != nil {
		t.Fatalf("刷新失败: %v", err)
	}
	if gotBody["refresh_token"] != "old-rt" {
		t.Errorf("body.refresh_token = %v", gotBody["refresh_token"])
	}
	if res.AccessToken != "new-at" || res.ExpireIn != 14400 {
		t.Errorf("响应解析错误: %+v", res)
	}
}
