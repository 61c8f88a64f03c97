package model

// FeeRegion 站点费率配置
// 定价引擎只读；后台设置页可改。一个站点一条
type FeeRegion struct {
	BaseModel
	Region   string `gorm:"uniqueIndex;size:10;not null"` // TW / JP / SG ...
	Currency string `gorm:"size:5;not null"`              // 销售币种
	Symbol   string `gorm:"size:5"`

	// 销售币种 -> 成本币种的换算率 (简单乘法因子，不做实时汇率)
	// 例: TW 站填 4.7 表示 1 NT$ 折合成本币 ¥4.7
	ExchangeRate float64 `gorm:"type:decimal(10,4);not null"`

	// 平台费率 (小数，0.1077 表示 10.77%)
	CommissionRate     float64 `gorm:"type:decimal(8,6);default:0"`
	ServiceFeeRate     float64 `gorm:"type:decimal(8,6);default:0"`
	TransactionFeeRate float64 `gorm:"type:decimal(8,6);default:0"`

	// 运费 (本地段以销售币种计，国际段以货源币种计)
	ShippingCostLocal float64 `gorm:"type:decimal(12,2);default:0"`
	ShippingCostIntl  float64 `gorm:"type:decimal(12,2);default:0"`
}

func (FeeRegion) TableName() string {
	return "fee_regions"
}
