package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/easayliu/media-url-resolver/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CatalogReloader 可重新加载的媒体目录，返回触发失效的记录数
type CatalogReloader interface {
	Reload() (int, error)
}

// SyncResult 最近一次同步结果
type SyncResult struct {
	At      time.Time `json:"at"`
	Changed int       `json:"changed"`
	Error   string    `json:"error,omitempty"`
}

// CatalogSyncService 定时重新加载媒体目录，使变更的记录在TTL到期前失效
type CatalogSyncService struct {
	cron     *cron.Cron
	catalog  CatalogReloader
	schedule string

	mu      sync.RWMutex
	running bool
	last    *SyncResult
}

// NewCatalogSyncService schedule为标准5字段cron表达式，为空时只支持手动同步
func NewCatalogSyncService(catalog CatalogReloader, schedule string) (*CatalogSyncService, error) {
	if schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return nil, fmt.Errorf("invalid cron expression: %w", err)
		}
	}

	return &CatalogSyncService{
		cron:     cron.New(),
		catalog:  catalog,
		schedule: schedule,
	}, nil
}

// Start 启动定时同步
func (s *CatalogSyncService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("catalog sync already running")
	}
	if s.schedule == "" {
		logger.Info("Catalog sync disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.schedule, func() { s.SyncNow() }); err != nil {
		return fmt.Errorf("failed to schedule catalog sync: %w", err)
	}

	s.cron.Start()
	s.running = true
	logger.Info("Catalog sync started", "cron", s.schedule)
	return nil
}

// Stop 停止定时同步，等待正在执行的同步完成
func (s *CatalogSyncService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	// 同步任务本身需要获取s.mu，等待时不能持有锁
	<-s.cron.Stop().Done()
	logger.Info("Catalog sync stopped")
}

// SyncNow 立即同步一次
func (s *CatalogSyncService) SyncNow() SyncResult {
	changed, err := s.catalog.Reload()
	result := SyncResult{At: time.Now(), Changed: changed}
	if err != nil {
		result.Error = err.Error()
		logger.Error("Catalog sync failed", "error", err)
	}

	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()

	return result
}

// LastResult 最近一次同步结果，未同步过时返回nil
func (s *CatalogSyncService) LastResult() *SyncResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	copied := *s.last
	return &copied
}

// IsRunning 定时同步是否在运行
func (s *CatalogSyncService) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}
