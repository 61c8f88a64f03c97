package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config 进程配置
// 环境变量优先于 config.yaml，键名大写加 SHOPEE_/SERVER_ 等前缀
type Config struct {
	Server struct {
		Addr  string `mapstructure:"addr"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"server"`

	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Shopee struct {
		PartnerID  int64   `mapstructure:"partner_id"`
		PartnerKey string  `mapstructure:"partner_key"`
		BaseURL    string  `mapstructure:"base_url"`
		RateQPS    float64 `mapstructure:"rate_qps"`
	} `mapstructure:"shopee"`

	Sync struct {
		PageSize int `mapstructure:"page_size"`
		MaxPages int `mapstructure:"max_pages"`
	} `mapstructure:"sync"`

	Task struct {
		TokenCron string `mapstructure:"token_cron"`
		SyncCron  string `mapstructure:"sync_cron"`
		Enabled   bool   `mapstructure:"enabled"`
	} `mapstructure:"task"`
}

// Load 读取配置
// 先找工作目录下的 config.yaml (允许不存在)，再叠加环境变量
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.debug", false)
	v.SetDefault("shopee.base_url", "")
	v.SetDefault("shopee.rate_qps", 10.0)
	v.SetDefault("sync.page_size", 50)
	v.SetDefault("sync.max_pages", 200)
	v.SetDefault("task.token_cron", "0 0/40 * * * *")
	v.SetDefault("task.sync_cron", "0 0 3 * * *")
	v.SetDefault("task.enabled", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("配置文件解析失败: %w", err)
		}
	}

	// 环境变量: SHOPEE_PARTNER_ID / SHOPEE_PARTNER_KEY / DATABASE_DSN / SERVER_ADDR ...
	_ = v.BindEnv("shopee.partner_id", "SHOPEE_PARTNER_ID")
	_ = v.BindEnv("shopee.partner_key", "SHOPEE_PARTNER_KEY")
	_ = v.BindEnv("shopee.base_url", "SHOPEE_BASE_URL")
	_ = v.BindEnv("database.dsn", "DATABASE_DSN")
	_ = v.BindEnv("server.addr", "SERVER_ADDR")
	_ = v.BindEnv("server.debug", "SERVER_DEBUG")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("配置反序列化失败: %w", err)
	}

	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN 未配置")
	}
	return &cfg, nil
}
