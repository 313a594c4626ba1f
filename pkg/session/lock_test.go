package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/scena/pkg/adapters/memory"
	"github.com/aretw0/scena/pkg/group"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewSelectionStore())
	ctx := context.Background()
	count := 1000

	// 1. Create and Delete many sessions
	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_ = mgr.Save(ctx, sid, group.Leaves("A"))
		_ = mgr.Delete(ctx, sid)
	}

	// 2. Count locks remaining in map
	lockCount := len(mgr.locks)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
