package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopee_dev_v1_202609/internal/model"
)

// ==================== 测试辅助 ====================

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func f64(v float64) *float64 { return &v }

func i64(v int64) *int64 { return &v }

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Shop{}, &model.ShopToken{}, &model.Product{},
		&model.FeeRegion{}, &model.PriceRule{}, &model.SyncRun{},
	); err != nil {
		t.Fatalf("测试库建表失败: %v", err)
	}
	return db
}
