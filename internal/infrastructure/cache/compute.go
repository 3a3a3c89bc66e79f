package cache

import "time"

// GetOrCompute 命中直接返回；未命中时回源，compute成功时返回值与依赖标签
// 只有成功的结果才写入缓存。并发未命中时可能重复回源，回源必须是只读幂等的
func GetOrCompute[T any](c TagCache, key string, ttl time.Duration, compute func() (T, []string, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, tags, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	c.Put(key, value, ttl, tags...)
	return value, nil
}
