package shopee

// ==========================================
// DTO: 用于接收 Shopee API 返回的原始 JSON 数据
// ==========================================

// ItemBrief get_item_list 返回的商品摘要 (只有 ID 和状态)
type ItemBrief struct {
	ItemID     int64  `json:"item_id"`
	ItemStatus string `json:"item_status"`
	UpdateTime int64  `json:"update_time"`
}

// PriceInfoDTO 价格嵌套结构
type PriceInfoDTO struct {
	Currency      string  `json:"currency"`
	OriginalPrice float64 `json:"original_price"`
	CurrentPrice  float64 `json:"current_price"`
}

// StockInfoDTO 库存嵌套结构
type StockInfoDTO struct {
	StockType   int `json:"stock_type"`
	NormalStock int `json:"normal_stock"`
}

// ImageDTO 图片嵌套结构
type ImageDTO struct {
	ImageURLList []string `json:"image_url_list"`
	ImageIDList  []string `json:"image_id_list"`
}

// AttributeDTO 商品属性
type AttributeDTO struct {
	AttributeID    int64  `json:"attribute_id"`
	AttributeName  string `json:"attribute_name"`
	AttributeValue string `json:"attribute_value"`
}

// ItemBaseInfoDTO get_item_base_info 返回的完整商品结构
// 缺失的数字字段按 0 处理，缺失的列表字段按空处理 (反序列化边界统一兜底)
type ItemBaseInfoDTO struct {
	ItemID      int64          `json:"item_id"`
	ShopID      int64          `json:"shop_id"`
	ItemName    string         `json:"item_name"`
	Description string         `json:"description"`
	ItemSKU     string         `json:"item_sku"`
	CategoryID  int64          `json:"category_id"`
	ItemStatus  string         `json:"item_status"`
	PriceInfo   []PriceInfoDTO `json:"price_info"`
	StockInfo   []StockInfoDTO `json:"stock_info"`
	Image       ImageDTO       `json:"image"`
	Attributes  []AttributeDTO `json:"attribute_list"`
	Sold        int            `json:"sold"`
	Views       int            `json:"views"`
	Likes       int            `json:"liked_count"`
	CreateTime  int64          `json:"create_time"`
	UpdateTime  int64          `json:"update_time"`
}

// CurrentPrice 取第一组价格的现价，缺失按 0
func (d *ItemBaseInfoDTO) CurrentPrice() float64 {
	if len(d.PriceInfo) == 0 {
		return 0
	}
	return d.PriceInfo[0].CurrentPrice
}

// OriginalPrice 取第一组价格的原价，缺失按 0
func (d *ItemBaseInfoDTO) OriginalPrice() float64 {
	if len(d.PriceInfo) == 0 {
		return 0
	}
	return d.PriceInfo[0].OriginalPrice
}

// Currency 取第一组价格的币种，缺失返回空串
func (d *ItemBaseInfoDTO) Currency() string {
	if len(d.PriceInfo) == 0 {
		return ""
	}
	return d.PriceInfo[0].Currency
}

// TotalStock 汇总所有仓库库存
func (d *ItemBaseInfoDTO) TotalStock() int {
	total := 0
	for _, s := range d.StockInfo {
		total += s.NormalStock
	}
	return total
}
