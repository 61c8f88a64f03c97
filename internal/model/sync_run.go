package model

import "time"

// 同步结果状态
const (
	SyncStatusSuccess = "success" // 全部成功
	SyncStatusPartial = "partial" // 有单条失败但整体完成
	SyncStatusFailure = "failure" // 首次调用即失败，未写入任何数据
)

// 同步类型
const (
	SyncTypeManual    = "manual"
	SyncTypeScheduled = "scheduled"
)

// SyncRun 一次全量同步的审计记录，只追加不修改
type SyncRun struct {
	BaseModel
	RunID        string `gorm:"size:36;uniqueIndex"` // uuid
	ShopID       int64  `gorm:"index;not null"`
	SyncType     string `gorm:"size:20"`
	Status       string `gorm:"size:10;index"`
	ItemsSynced  int    `gorm:"default:0"`
	ItemsFailed  int    `gorm:"default:0"`
	TotalFetched int    `gorm:"default:0"`
	ErrorMessage string `gorm:"type:text"`
	StartedAt    time.Time
	CompletedAt  *time.Time
}

func (SyncRun) TableName() string {
	return "sync_runs"
}
