// Package publish 提供审计记录的外发实现。
//
// 所有实现都只承担"尽力通知"职责：审计记录以数据库为准，
// 外发失败由调用方记日志后继续。
package publish

import (
	"context"
	"sync"

	"bookery/audit"
)

// Memory is an in-process publisher that retains every record it receives.
// Intended for tests and local development.
type Memory struct {
	mu      sync.Mutex
	records []*audit.Record
}

// NewMemory constructs an in-process publisher.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Publish(ctx context.Context, rec *audit.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Records returns a snapshot of everything published so far.
func (m *Memory) Records() []*audit.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*audit.Record, len(m.records))
	copy(out, m.records)
	return out
}

// Reset clears the retained records.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}
