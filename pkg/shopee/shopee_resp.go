package shopee

import "fmt"

// ==========================================
// Resp: Shopee API 各接口的响应外壳
// 所有接口共用 error/message/request_id 三件套
// ==========================================

// BaseResp 通用响应头
type BaseResp struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// APIError Shopee 返回了业务错误码 (error 字段非空)
type APIError struct {
	Code      string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shopee api error [%s]: %s (request_id=%s)", e.Code, e.Message, e.RequestID)
}

// AsError error 非空时转换为 APIError，否则返回 nil
func (r *BaseResp) AsError() error {
	if r.Error == "" {
		return nil
	}
	return &APIError{Code: r.Error, Message: r.Message, RequestID: r.RequestID}
}

// ItemListResp GET /api/v2/product/get_item_list
type ItemListResp struct {
	BaseResp
	Response struct {
		Items       []ItemBrief `json:"item"`
		TotalCount  int         `json:"total_count"`
		HasNextPage bool        `json:"has_next_page"`
		NextOffset  int         `json:"next_offset"`
	} `json:"response"`
}

// ItemBaseInfoResp GET /api/v2/product/get_item_base_info
type ItemBaseInfoResp struct {
	BaseResp
	Response struct {
		ItemList []ItemBaseInfoDTO `json:"item_list"`
	} `json:"response"`
}

// TokenResp POST /api/v2/auth/token/get 与 /api/v2/auth/access_token/get
// 两个接口返回结构一致
type TokenResp struct {
	BaseResp
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpireIn     int64  `json:"expire_in"`
}
