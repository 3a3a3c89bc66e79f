package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Media   MediaConfig   `mapstructure:"media"`
	Store   StoreConfig   `mapstructure:"store"`
	Catalog CatalogConfig `mapstructure:"catalog"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`
	Output    string `mapstructure:"output"` // console | file | both
	Format    string `mapstructure:"format"` // text | json
	FilePath  string `mapstructure:"file_path"`
	AddSource bool   `mapstructure:"add_source"`
}

type MediaConfig struct {
	SiteName        string   `mapstructure:"site_name"`
	CacheMinutes    int      `mapstructure:"cache_minutes"`    // 媒体库/文件缓存分钟数，默认60
	CleanupMinutes  int      `mapstructure:"cleanup_minutes"`  // 过期缓存清理间隔
	SkipSegments    []string `mapstructure:"skip_segments"`    // 第三段命中时跳过媒体库解析，如 "assets"
	ResolvedMarkers []string `mapstructure:"resolved_markers"` // URL包含时视为已解析，如 "getmedia"
}

type StoreConfig struct {
	CatalogFile string `mapstructure:"catalog_file"`
	QPS         int    `mapstructure:"qps"` // 每秒查询数限制，0表示不限制
}

type CatalogConfig struct {
	SyncCron string `mapstructure:"sync_cron"` // 为空时不启用定时同步
}

// CacheTTL 缓存有效期
func (m MediaConfig) CacheTTL() time.Duration {
	return time.Duration(m.CacheMinutes) * time.Minute
}

// CleanupInterval 过期缓存清理间隔
func (m MediaConfig) CleanupInterval() time.Duration {
	return time.Duration(m.CleanupMinutes) * time.Minute
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom("")
}

// LoadConfigFrom 从指定文件加载配置，path为空时按默认目录查找config.yaml
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MEDIAURL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "console")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file_path", "./logs/media-url-resolver.log")

	// 媒体解析默认值
	v.SetDefault("media.site_name", "default")
	v.SetDefault("media.cache_minutes", 60)
	v.SetDefault("media.cleanup_minutes", 10)
	v.SetDefault("media.skip_segments", []string{"assets"})
	v.SetDefault("media.resolved_markers", []string{"getmedia"})

	v.SetDefault("store.catalog_file", "./data/catalog.yaml")
	v.SetDefault("store.qps", 0)

	v.SetDefault("catalog.sync_cron", "")
}
