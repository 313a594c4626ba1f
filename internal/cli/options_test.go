package cli

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/scena"
	"github.com/aretw0/scena/internal/logging"
	"github.com/aretw0/scena/pkg/adapters/file"
	"github.com/aretw0/scena/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/scena/pkg/adapters/redis"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *domain.Document {
	return &domain.Document{
		Layers: []domain.LayerInfo{
			{ID: "A"},
			{ID: "B", Scope: domain.Scope{"g1"}},
			{ID: "C", Scope: domain.Scope{"g1"}},
		},
		Groups: []domain.GroupInfo{{ID: "g1", Title: "Header"}},
	}
}

func TestSplitDocumentPath(t *testing.T) {
	dir, id, ok := splitDocumentPath(filepath.Join("docs", "canvas.yaml"))
	assert.Equal(t, "docs", dir)
	assert.Equal(t, "canvas", id)
	assert.True(t, ok)

	_, id, ok = splitDocumentPath("canvas.yml")
	assert.Equal(t, "canvas", id)
	assert.False(t, ok)
}

func TestNewWorkspace_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "canvas.yaml")
	data, err := file.Encode(sampleDocument())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	ws, err := NewWorkspace(ctx, Options{File: path}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "canvas", ws.Name)

	group, err := ws.Group("g1")
	require.NoError(t, err)
	assert.Equal(t, "Header", group.Title)

	require.NoError(t, ws.SetCSS("A", "opacity: 0.5"))
	require.NoError(t, ws.Commit(ctx))

	reloaded, err := file.NewSource(path).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.5", reloaded.Layers[0].Style["opacity"])
}

func TestNewWorkspace_FileWithoutStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "canvas.yml")
	data, err := file.Encode(sampleDocument())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	ws, err := NewWorkspace(ctx, Options{File: path}, logging.NewNop())
	require.NoError(t, err)
	assert.ErrorIs(t, ws.Commit(ctx), scena.ErrNoStore)
}

func TestNewWorkspace_MissingFile(t *testing.T) {
	_, err := NewWorkspace(context.Background(), Options{File: filepath.Join(t.TempDir(), "none.yaml")}, logging.NewNop())
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestNewWorkspace_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()
	require.NoError(t, redisAdapter.NewFromClient(client).Save(ctx, "board", sampleDocument()))

	var rebuilds int
	ws, err := NewWorkspace(ctx, Options{
		RedisURL: "redis://" + mr.Addr(),
		DocID:    "board",
		Hooks: domain.LifecycleHooks{
			OnRebuild: func(ctx context.Context, e *domain.RebuildEvent) { rebuilds++ },
		},
	}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, rebuilds)
	assert.Equal(t, "board", ws.Name)

	children := ws.Children(nil)
	require.Len(t, children, 2)

	require.NoError(t, ws.Commit(ctx))
	assert.False(t, mr.Exists(redisAdapter.DefaultPrefix+"lock:board"), "lock released after commit")
}

func TestNewWorkspace_InvalidRedisURL(t *testing.T) {
	_, err := NewWorkspace(context.Background(), Options{RedisURL: "not-a-url"}, logging.NewNop())
	assert.Error(t, err)
}

func TestWatchReload(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := memory.NewSource(&domain.Document{Layers: []domain.LayerInfo{{ID: "A"}}})
	ws, err := scena.New("", scena.WithSource(src))
	require.NoError(t, err)
	require.NoError(t, ws.Load(ctx))

	reloaded := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- WatchReload(ctx, ws, logging.NewNop(), func() { reloaded <- struct{}{} })
	}()

	// The watcher registers asynchronously; keep updating until it sees one.
	require.Eventually(t, func() bool {
		src.Update(sampleDocument())
		select {
		case <-reloaded:
			return true
		default:
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)

	assert.Len(t, ws.Children(nil), 2)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("WatchReload did not return after cancel")
	}
}

func TestNewSessionManager(t *testing.T) {
	ctx := context.Background()

	mgr, err := NewSessionManager(Options{}, logging.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &memory.SelectionStore{}, mgr.Store())

	mr := miniredis.RunT(t)
	mgr, err = NewSessionManager(Options{RedisURL: "redis://" + mr.Addr()}, logging.NewNop())
	require.NoError(t, err)
	require.NoError(t, mgr.Save(ctx, "tab", group.Leaves("A")))
	assert.True(t, mr.Exists(redisAdapter.DefaultSessionPrefix+"item:tab"))
	assert.False(t, mr.Exists(redisAdapter.DefaultSessionPrefix+"lock:session:tab"), "lock released")
}

func TestSignalContext(t *testing.T) {
	t.Run("Cancel without a signal", func(t *testing.T) {
		sc := NewSignalContext(context.Background())
		sc.Cancel()
		<-sc.Done()
		assert.Nil(t, sc.Signal())
		assert.NoError(t, sc.ExitErr())
		assert.ErrorIs(t, sc.Err(), context.Canceled)
	})

	t.Run("Stop signal is kept with its exit code", func(t *testing.T) {
		sc := NewSignalContext(context.Background())
		sc.stopBy(syscall.SIGTERM)
		sc.stopBy(os.Interrupt)
		<-sc.Done()

		assert.Equal(t, syscall.SIGTERM, sc.Signal(), "the first signal wins")
		var exit *ExitError
		require.ErrorAs(t, sc.ExitErr(), &exit)
		assert.Equal(t, 128+int(syscall.SIGTERM), exit.Code)
		assert.Equal(t, "stopped by signal: terminated", exit.Error())
	})
}
