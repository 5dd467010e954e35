package mocks

import (
	"context"
	"sync"

	"github.com/user/memecli/pkg/ports"
)

// SyncCall records one Sync invocation.
type SyncCall struct {
	URL string
	Dir string
}

// SourceSyncer is a mock implementation of ports.SourceSyncer.
type SourceSyncer struct {
	mu    sync.Mutex
	Calls []SyncCall

	SyncFunc func(ctx context.Context, url, dir string) (ports.SyncResult, error)
}

func (m *SourceSyncer) Sync(ctx context.Context, url, dir string) (ports.SyncResult, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, SyncCall{URL: url, Dir: dir})
	m.mu.Unlock()

	if m.SyncFunc != nil {
		return m.SyncFunc(ctx, url, dir)
	}
	return ports.SyncResult{UpToDate: true}, nil
}

var _ ports.SourceSyncer = (*SourceSyncer)(nil)
