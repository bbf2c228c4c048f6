package cache

import "errors"

var (
	// ErrNotFound key不存在或者缓存为空
	ErrNotFound = errors.New("cache: key not found")
	// ErrCacheEmpty 没有可以淘汰的元素
	ErrCacheEmpty = errors.New("cache: cannot evict from empty cache")
	// ErrNoEvictable Volatile缓存里没有可淘汰的key
	ErrNoEvictable = errors.New("cache: no evictable keys")
	// ErrInvalidArgument 参数错误
	ErrInvalidArgument = errors.New("cache: invalid argument")
)
