package container

import (
	"fmt"

	"github.com/easayliu/media-url-resolver/internal/application/services"
	"github.com/easayliu/media-url-resolver/internal/application/services/media"
	"github.com/easayliu/media-url-resolver/internal/domain/services/mediaurl"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/cache"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/config"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/repository"
	"github.com/easayliu/media-url-resolver/pkg/logger"
)

// ServiceContainer 服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	// 基础设施层
	catalog  *repository.MediaRepository
	tagCache *cache.MemoryTagCache

	// 应用层服务
	resolver    *media.Resolver
	catalogSync *services.CatalogSyncService
}

// NewServiceContainer 创建服务容器并初始化所有服务
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	logger.Info("Initializing service container")

	catalog, err := repository.NewMediaRepository(cfg.Store.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create media repository: %w", err)
	}

	return NewServiceContainerWithCatalog(cfg, catalog)
}

// NewServiceContainerWithCatalog 使用已创建的媒体目录初始化服务
func NewServiceContainerWithCatalog(cfg *config.Config, catalog *repository.MediaRepository) (*ServiceContainer, error) {
	tagCache := cache.NewMemoryTagCache(cfg.Media.CacheTTL(), cfg.Media.CleanupInterval())

	// 目录变更即依赖标签触发
	catalog.Subscribe(func(tag string) {
		if n := tagCache.InvalidateTag(tag); n > 0 {
			logger.Debug("Cache entries invalidated", "tag", tag, "entries", n)
		}
	})

	store := repository.NewRateLimitedStore(catalog, cfg.Store.QPS)

	resolver := media.NewResolver(store, tagCache, media.Options{
		SiteName: cfg.Media.SiteName,
		TTL:      cfg.Media.CacheTTL(),
		SkipRule: mediaurl.NewSegmentSkipRule(cfg.Media.SkipSegments, cfg.Media.ResolvedMarkers),
		EventLog: media.LoggerEventLog{SiteName: cfg.Media.SiteName},
	})

	catalogSync, err := services.NewCatalogSyncService(catalog, cfg.Catalog.SyncCron)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog sync service: %w", err)
	}

	logger.Info("Service container initialized",
		"site", cfg.Media.SiteName,
		"cache_ttl", cfg.Media.CacheTTL().String(),
		"libraries", len(catalog.Libraries()))

	return &ServiceContainer{
		config:      cfg,
		catalog:     catalog,
		tagCache:    tagCache,
		resolver:    resolver,
		catalogSync: catalogSync,
	}, nil
}

// Start 启动后台服务
func (c *ServiceContainer) Start() error {
	return c.catalogSync.Start()
}

// Stop 停止后台服务
func (c *ServiceContainer) Stop() {
	c.catalogSync.Stop()
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetResolver 获取URL解析器
func (c *ServiceContainer) GetResolver() *media.Resolver {
	return c.resolver
}

// GetCatalog 获取媒体目录
func (c *ServiceContainer) GetCatalog() *repository.MediaRepository {
	return c.catalog
}

// GetTagCache 获取缓存
func (c *ServiceContainer) GetTagCache() cache.TagCache {
	return c.tagCache
}

// GetCatalogSync 获取目录同步服务
func (c *ServiceContainer) GetCatalogSync() *services.CatalogSyncService {
	return c.catalogSync
}
