package session

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/panjf2000/ants/v2"
)

const defaultWorkers = 1000

// Pool 会话池，所有会话的转动任务共用一个 ants 协程池
type Pool struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	workers *ants.Pool
	log     *log.Helper
}

// NewPool 创建会话池，workers<=0 时使用默认容量
func NewPool(workers int, logger log.Logger) (*Pool, error) {
	if workers <= 0 {
		workers = defaultWorkers
	}
	helper := log.NewHelper(logger)
	wp, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(v any) {
			helper.Errorf("spin task panic: %v", v)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ants pool: %v", err)
	}
	return &Pool{
		sessions: make(map[string]*Session),
		workers:  wp,
		log:      helper,
	}, nil
}

// Submit 满足 slot.SubmitFunc
func (p *Pool) Submit(task func()) error {
	return p.workers.Submit(task)
}

// Add 添加会话，id 重复时返回 false
func (p *Pool) Add(s *Session) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[s.GetID()]; ok {
		return false
	}
	p.sessions[s.GetID()] = s
	return true
}

// Get 获取会话
func (p *Pool) Get(id string) (*Session, bool) {
	p.mu.RLock()
	s, ok := p.sessions[id]
	p.mu.RUnlock()
	return s, ok
}

// List 列出所有会话（按创建时间倒序）
func (p *Pool) List() []*Session {
	p.mu.RLock()
	out := make([]*Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		out = append(out, s)
	}
	p.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].createdAt.After(out[j].createdAt)
	})
	return out
}

// Len 当前会话数
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sessions)
}

// Remove 移除会话并拆除机器
func (p *Pool) Remove(id string) (*Session, bool) {
	p.mu.Lock()
	s, ok := p.sessions[id]
	if ok {
		delete(p.sessions, id)
	}
	p.mu.Unlock()
	if ok {
		s.Close()
	}
	return s, ok
}

// StartAutoCleanup 周期性关闭空闲会话，onEvict 在会话被拆除后调用
func (p *Pool) StartAutoCleanup(ctx context.Context, ttl, interval time.Duration, onEvict func(*Session)) {
	p.log.Infof("session cleaner started, ttl=%v, interval=%v", ttl, interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("closing session cleaner")
			return
		case <-ticker.C:
			evicted := p.CleanupIdle(time.Now(), ttl)
			if len(evicted) > 0 {
				p.log.Infof("session cleanup: closed %d idle sessions", len(evicted))
			}
			if onEvict != nil {
				for _, s := range evicted {
					onEvict(s)
				}
			}
		}
	}
}

// CleanupIdle 关闭 now 之前 ttl 内无操作的会话，返回被关闭的会话
func (p *Pool) CleanupIdle(now time.Time, ttl time.Duration) []*Session {
	p.mu.Lock()
	var evicted []*Session
	for id, s := range p.sessions {
		if s.Idle(now, ttl) {
			delete(p.sessions, id)
			evicted = append(evicted, s)
		}
	}
	p.mu.Unlock()

	for _, s := range evicted {
		s.Close()
	}
	return evicted
}

// Close 拆除所有会话并释放协程池
func (p *Pool) Close() {
	p.mu.Lock()
	all := make([]*Session, 0, len(p.sessions))
	for id, s := range p.sessions {
		all = append(all, s)
		delete(p.sessions, id)
	}
	p.mu.Unlock()

	for _, s := range all {
		s.Close()
	}
	p.workers.Release()
}
