package shopee

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ==========================================
// 签名模块: Shopee OpenAPI v2 要求每个请求携带
// HMAC-SHA256 签名 (小写 hex, 64 位)
// ==========================================

// Sign 计算签名
// 纯函数，无状态。key 的合法性由调用方保证
func Sign(partnerKey, baseString string) string {
	mac := hmac.New(sha256.New, []byte(partnerKey))
	mac.Write([]byte(baseString))
	return hex.EncodeToString(mac.Sum(nil))
}

// ShopBaseString 店铺级接口的签名基串
// 格式: partner_id + path + timestamp + access_token + shop_id
func ShopBaseString(partnerID int64, path string, timestamp int64, accessToken string, shopID int64) string {
	return fmt.Sprintf("%d%s%d%s%d", partnerID, path, timestamp, accessToken, shopID)
}

// PartnerBaseString 平台级接口 (获取/刷新 token、店铺授权) 的签名基串
// 格式: partner_id + path + timestamp
func PartnerBaseString(partnerID int64, path string, timestamp int64) string {
	return fmt.Sprintf("%d%s%d", partnerID, path, timestamp)
}
