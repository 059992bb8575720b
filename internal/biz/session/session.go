package session

import (
	"sync"
	"time"

	"royalslots/internal/biz/slot"
)

// Session 一次打开的游戏会话，持有一台 slot.Machine
type Session struct {
	mu         sync.RWMutex
	id         string
	gameID     int64
	createdAt  time.Time
	lastActive time.Time

	machine *slot.Machine
}

// New 创建会话，machine 由调用方按配置构造
func New(id string, gameID int64, machine *slot.Machine) *Session {
	now := time.Now()
	return &Session{
		id:         id,
		gameID:     gameID,
		createdAt:  now,
		lastActive: now,
		machine:    machine,
	}
}

func (s *Session) GetID() string {
	return s.id
}

func (s *Session) GetGameID() int64 {
	return s.gameID
}

func (s *Session) GetCreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) Machine() *slot.Machine {
	return s.machine
}

// Touch 刷新活跃时间
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *Session) GetLastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// Idle 转动中的会话永远不算空闲
func (s *Session) Idle(now time.Time, ttl time.Duration) bool {
	if s.machine.Snapshot().Spinning {
		return false
	}
	return now.Sub(s.GetLastActive()) > ttl
}

// Close 拆除机器
func (s *Session) Close() {
	s.machine.Close()
}
