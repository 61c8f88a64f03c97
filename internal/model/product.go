package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// 商品状态 (Shopee 侧)
const (
	ItemStatusNormal = "NORMAL"
	ItemStatusUnlist = "UNLIST"
	ItemStatusBanned = "BANNED"
)

// Product 商品镜像
// 分两类字段：远端字段每次同步整行覆盖；本地运营字段 (成本/货源/备注/自定义价)
// 永远不被同步路径触碰
type Product struct {
	BaseModel
	ShopID int64 `gorm:"index:idx_shop_status;not null"` // Shopee shop_id (多店铺隔离核心)

	// --- Shopee 核心身份字段 ---
	ItemID int64 `gorm:"uniqueIndex;not null"` // Shopee 侧唯一 ID

	// --- 远端字段 (同步覆盖) ---
	Name             string         `gorm:"size:255"`
	Description      string         `gorm:"type:text"`
	SKU              string         `gorm:"size:100;index"`
	CategoryID       int64          `gorm:"default:0"`
	OriginalPrice    float64        `gorm:"type:decimal(14,2);default:0"`
	CurrentPrice     float64        `gorm:"type:decimal(14,2);default:0"`
	Currency         string         `gorm:"size:5"`
	Stock            int            `gorm:"default:0"`
	Images           pq.StringArray `gorm:"type:text[]"`
	Attributes       datatypes.JSON `gorm:"type:jsonb"`
	Status           string         `gorm:"size:20;index:idx_shop_status"` // NORMAL, UNLIST, BANNED
	Sold             int            `gorm:"default:0"`
	Views            int            `gorm:"default:0"`
	Likes            int            `gorm:"default:0"`
	RemoteCreateTime int64          `gorm:"default:0"` // Shopee 侧时间戳 (秒)
	RemoteUpdateTime int64          `gorm:"default:0"`
	LastSyncedAt     *time.Time

	// --- 本地运营字段 (同步不触碰) ---
	CostPrice   *float64       `gorm:"type:decimal(14,2)"` // 采购成本，币种为货源币种
	SourceURLs  pq.StringArray `gorm:"type:text[]"`        // 货源链接
	Notes       string         `gorm:"type:text"`
	Tags        pq.StringArray `gorm:"type:text[]"` // 运营自打标签，调价规则按此过滤
	CustomPrice *float64       `gorm:"type:decimal(14,2)"` // 人工定价，优先于推荐价
	PriceRuleID *int64         `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
