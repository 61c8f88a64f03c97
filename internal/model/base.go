package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 各表公共字段
// 统一带软删除，删除一律走 deleted_at 标记，同步与审计数据不做物理清除
type BaseModel struct {
	ID        int64          `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
