package utils

import "sync"

// UserLocker 按用户ID串行化提交处理。同一用户的纵向分析（回归、
// z-score、配对）依赖截至当前的完整有序历史，并发提交必须排队；
// 不同用户之间互不阻塞。
type UserLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewUserLocker() *UserLocker {
	return &UserLocker{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock 获取指定用户的锁，返回对应的解锁函数
func (l *UserLocker) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
