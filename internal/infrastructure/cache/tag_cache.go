package cache

import (
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TagCache 带依赖标签的缓存
// 条目在TTL到期或任一依赖标签被触发时移除
type TagCache interface {
	Get(key string) (interface{}, bool)
	Put(key string, value interface{}, ttl time.Duration, tags ...string)
	InvalidateTag(tag string) int
	Flush()
	Stats() Stats
}

// Stats 缓存统计
type Stats struct {
	Items  int   `json:"items"`
	Tags   int   `json:"tags"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

type entry struct {
	value interface{}
	tags  []string
}

// MemoryTagCache 基于go-cache的进程内实现，并维护 tag -> keys 索引
type MemoryTagCache struct {
	items *gocache.Cache

	mu     sync.Mutex
	byKey  map[string]*entry
	byTag  map[string]map[string]struct{}
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryTagCache 创建缓存，cleanupInterval 为过期条目清理间隔
func NewMemoryTagCache(defaultTTL, cleanupInterval time.Duration) *MemoryTagCache {
	c := &MemoryTagCache{
		items: gocache.New(defaultTTL, cleanupInterval),
		byKey: make(map[string]*entry),
		byTag: make(map[string]map[string]struct{}),
	}
	c.items.OnEvicted(c.onEvicted)
	return c
}

func (c *MemoryTagCache) Get(key string) (interface{}, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return v.(*entry).value, true
}

// Put 写入缓存，同一key后写覆盖先写
func (c *MemoryTagCache) Put(key string, value interface{}, ttl time.Duration, tags ...string) {
	e := &entry{value: value, tags: tags}

	c.mu.Lock()
	c.unindexLocked(key)
	c.byKey[key] = e
	for _, tag := range tags {
		keys, ok := c.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
	c.items.Set(key, e, ttl)
	c.mu.Unlock()
}

// InvalidateTag 移除所有依赖该标签的条目，返回移除数量
func (c *MemoryTagCache) InvalidateTag(tag string) int {
	c.mu.Lock()
	keys := make([]string, 0, len(c.byTag[tag]))
	for key := range c.byTag[tag] {
		keys = append(keys, key)
	}
	c.mu.Unlock()

	// go-cache在自身锁外回调onEvicted，这里不能持有c.mu
	for _, key := range keys {
		c.items.Delete(key)
	}
	return len(keys)
}

func (c *MemoryTagCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Flush()
	c.byKey = make(map[string]*entry)
	c.byTag = make(map[string]map[string]struct{})
}

func (c *MemoryTagCache) Stats() Stats {
	c.mu.Lock()
	tags := len(c.byTag)
	c.mu.Unlock()

	return Stats{
		Items:  c.items.ItemCount(),
		Tags:   tags,
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
	}
}

func (c *MemoryTagCache) onEvicted(key string, v interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 被覆盖后的旧条目过期回调不能清掉新条目的索引
	if current, ok := c.byKey[key]; ok && current == v.(*entry) {
		c.unindexLocked(key)
	}
}

func (c *MemoryTagCache) unindexLocked(key string) {
	old, ok := c.byKey[key]
	if !ok {
		return
	}
	for _, tag := range old.tags {
		if keys, ok := c.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.byTag, tag)
			}
		}
	}
	delete(c.byKey, key)
}
