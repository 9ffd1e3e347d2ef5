package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore 以 ttlcache 保存 session，到期時間固定，讀取不會延長
type MemoryStore struct {
	cache     *ttlcache.Cache[string, model.Session]
	closeOnce sync.Once
}

// NewMemoryStore 會啟動背景清除過期項目的 goroutine，結束時呼叫 Close
func NewMemoryStore() *MemoryStore {
	c := ttlcache.New[string, model.Session](
		ttlcache.WithDisableTouchOnHit[string, model.Session](),
	)
	go c.Start()
	return &MemoryStore{cache: c}
}

func (m *MemoryStore) Save(_ context.Context, s model.Session) error {
	ttl := s.ExpiresAt.Sub(timeNow())
	if ttl <= 0 {
		return fmt.Errorf("MemoryStore.Save: session %s already expired", s.ID)
	}
	m.cache.Set(s.ID, s, ttl)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	item := m.cache.Get(id)
	if item == nil {
		return nil, ErrNotFound
	}
	s := item.Value()
	if s.Expired(timeNow()) {
		m.cache.Delete(id)
		return nil, ErrNotFound
	}
	return &s, nil
}

// Delete 不存在時也回傳 nil
func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

// Close 停止背景清除，可重複呼叫
func (m *MemoryStore) Close() {
	m.closeOnce.Do(m.cache.Stop)
}
