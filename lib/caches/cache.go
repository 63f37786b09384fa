package caches

import (
	"sync"
)

type Cache[K comparable, V any] struct {
	mutex sync.RWMutex
	m     map[K]*Lazy[V]
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		m: make(map[K]*Lazy[V]),
	}
}

func (c *Cache[K, V]) Get(key K, loader func(K) (V, error)) (V, error) {
	c.mutex.RLock()
	val, ok := c.m[key]
	c.mutex.RUnlock()

	if ok {
		return val.Get()
	}

	c.mutex.Lock()
	val, ok = c.m[key]
	if !ok {
		val = NewLazy[V](func() (V, error) { return loader(key) })
		c.m[key] = val
	}
	c.mutex.Unlock()

	return val.Get()
}

func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.m, key)
}

func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.m = make(map[K]*Lazy[V])
}

func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.m)
}
