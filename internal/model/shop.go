package model

import (
	"time"
)

// Shop 店铺状态常量
const (
	ShopStatusPending  = 0 // 待授权
	ShopStatusActive   = 1 // 正常
	ShopStatusInactive = 2 // 已停用
)

// Token 状态常量
const (
	TokenStatusValid   = "valid"        // 有效
	TokenStatusExpired = "expired"      // 已过期
	TokenStatusInvalid = "auth_invalid" // 需重新授权
)

// Shop 店铺运营记录
// Token 的权威数据在 ShopToken 表，这里冗余一份供列表页直接展示；
// 镜像写入失败只记日志，不影响主记录
type Shop struct {
	BaseModel
	// 1. 核心身份
	ShopeeShopID int64  `gorm:"uniqueIndex;not null"` // 对应 Shopee 平台的 shop_id
	ShopName     string `gorm:"size:100"`
	Region       string `gorm:"size:10;not null;default:'TW'"` // 站点区域，决定币种与费率配置

	// 2. 运营状态
	Status   int  `gorm:"default:0;comment:状态 0-待授权 1-正常 2-已停用"`
	IsActive bool `gorm:"default:false"`

	// 3. Token 镜像 (展示用)
	TokenStatus     string    `gorm:"index;size:20;default:'auth_invalid'"`
	AccessToken     string    `gorm:"size:512"`
	AccessExpiresAt time.Time // Token 具体的过期时间点

	// 4. 同步信息
	LastSyncedAt *time.Time `gorm:"comment:最后商品同步时间"`

	// 5. 关联关系
	Products []Product `gorm:"foreignKey:ShopID;references:ShopeeShopID"`
}

func (Shop) TableName() string {
	return "shops"
}

// ShopToken 店铺凭证 (权威记录，一店一条)
// 只由授权回调与刷新流程写入；一旦授权成功，所有字段都非空
type ShopToken struct {
	BaseModel
	ShopID           int64     `gorm:"uniqueIndex;not null"` // Shopee shop_id
	AccessToken      string    `gorm:"size:512;not null"`
	RefreshToken     string    `gorm:"size:512;not null"`
	AccessExpiresAt  time.Time `gorm:"not null"` // 签发时刻 now + expire_in 计算得出
	RefreshExpiresAt time.Time `gorm:"not null"` // 固定 30 天
	Region           string    `gorm:"size:10"`
}

func (ShopToken) TableName() string {
	return "shop_tokens"
}

// IsUsable access_token 存在且未过期
func (t *ShopToken) IsUsable(now time.Time) bool {
	return t.AccessToken != "" && now.Before(t.AccessExpiresAt)
}
