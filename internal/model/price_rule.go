package model

// 调价规则类型
const (
	RuleTypePercent = "percent" // adjustment_value 为小数，0.1 表示 10%
	RuleTypeFixed   = "fixed"   // adjustment_value 为固定金额
)

// 调价方向
const (
	AdjustIncrease = "increase"
	AdjustDecrease = "decrease"
)

// PriceRule 调价规则
// 同店多条规则按 priority 降序取第一条命中的；priority 相同先建先生效。
// 数据层不保证规则互斥，由评估器裁决
type PriceRule struct {
	BaseModel
	ShopID int64 `gorm:"index;not null"` // Shopee shop_id

	RuleType            string  `gorm:"size:20;not null"` // percent / fixed，两者互斥
	AdjustmentValue     float64 `gorm:"type:decimal(12,4);not null"`
	AdjustmentDirection string  `gorm:"size:10;not null"` // increase / decrease

	// 结果约束 (可空表示无约束)
	MinPrice         *float64 `gorm:"type:decimal(14,2)"`
	MaxPrice         *float64 `gorm:"type:decimal(14,2)"`
	MinMarginPercent *float64 `gorm:"type:decimal(8,4)"` // 利润率安全线，跌破则放弃应用

	// 命中条件 (可空表示命中所有)
	CategoryID *int64 `gorm:"index"`
	Tag        string `gorm:"size:50;index"`

	IsActive bool `gorm:"default:true;index"`
	Priority int  `gorm:"default:0;index"`
}

func (PriceRule) TableName() string {
	return "price_rules"
}
