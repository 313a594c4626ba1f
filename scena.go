package scena

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/loam"
	loamAdapter "github.com/aretw0/scena/pkg/adapters/loam"
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/aretw0/scena/pkg/layer"
	"github.com/aretw0/scena/pkg/ports"
)

// ErrNoStore is returned by Commit when the workspace has no LayerStore.
var ErrNoStore = errors.New("workspace has no store")

// DefaultLockTTL bounds how long a Commit may hold the document lock.
const DefaultLockTTL = 10 * time.Second

// Workspace is the high-level entry point of the library.
// It owns the layer manager of one canvas and serializes access to it, so a
// Workspace is safe for concurrent use by HTTP and MCP hosts.
//
// Elements are identified by layer ID.
type Workspace struct {
	mu     sync.Mutex
	layers *layer.Manager[string]

	source ports.LayerSource
	store  ports.LayerStore
	docID  string
	locker ports.DistributedLocker
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	Name   string
}

// Option defines a functional option for configuring the Workspace.
type Option func(*Workspace)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Workspace) {
		w.hooks = hooks
	}
}

// WithSource injects a custom LayerSource, bypassing the default Loam initialization.
func WithSource(s ports.LayerSource) Option {
	return func(w *Workspace) {
		w.source = s
	}
}

// WithStore sets the store Commit writes the document to, under id.
func WithStore(s ports.LayerStore, id string) Option {
	return func(w *Workspace) {
		w.store = s
		w.docID = id
	}
}

// WithLocker serializes Commit across replicas sharing a store.
func WithLocker(l ports.DistributedLocker) Option {
	return func(w *Workspace) {
		w.locker = l
	}
}

// WithLogger sets a custom structured logger for the workspace.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// WithName labels the workspace in logs and events.
func WithName(name string) Option {
	return func(w *Workspace) {
		w.Name = name
	}
}

// New initializes a Workspace.
// By default, it reads layer documents from a Loam repository at repoPath.
// If WithSource is provided, repoPath can be empty and Loam is skipped.
// The workspace starts empty until Load is called.
func New(repoPath string, opts ...Option) (*Workspace, error) {
	w := &Workspace{
		layers: layer.NewManager[string](nil, nil),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.source == nil {
		if repoPath == "" {
			return nil, fmt.Errorf("repoPath is required when no custom source is provided")
		}
		absPath, err := filepath.Abs(repoPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}

		// The workspace never writes layer documents back through Loam.
		repo, err := loam.Init(absPath,
			loam.WithStrict(true),
			loam.WithReadOnly(true),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}
		w.source = loamAdapter.New(loam.NewTypedRepository[loamAdapter.LayerMetadata](repo))
	}

	if w.Name == "" && repoPath != "" {
		w.Name = filepath.Base(repoPath)
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if w.Name != "" {
		w.logger = w.logger.With("workspace", w.Name)
	}
	return w, nil
}

// Load reads the document from the source and rebuilds the layer tree.
// Group metadata not referenced by any layer is pruned.
func (w *Workspace) Load(ctx context.Context) error {
	doc, err := w.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	w.SetDocument(ctx, doc)
	return nil
}

// SetDocument replaces the canvas with doc.
func (w *Workspace) SetDocument(ctx context.Context, doc *domain.Document) {
	layers := make([]*layer.Layer[string], 0, len(doc.Layers))
	for _, info := range doc.Layers {
		layers = append(layers, layer.FromInfo(info, info.ID))
	}
	groups := make([]*layer.Group[string], 0, len(doc.Groups))
	for _, info := range doc.Groups {
		groups = append(groups, layer.GroupFromInfo[string](info))
	}

	w.mu.Lock()
	w.layers = layer.NewManager(layers, groups)
	pruned := w.layers.Pruned()
	liveGroups := len(w.layers.Groups())
	w.mu.Unlock()

	w.logger.Debug("document loaded", "layers", len(layers), "groups", liveGroups, "pruned", len(pruned))
	if len(pruned) > 0 {
		w.logger.Info("pruned stale groups", "ids", pruned)
	}
	if w.hooks.OnRebuild != nil {
		w.hooks.OnRebuild(ctx, &domain.RebuildEvent{
			EventBase: w.event(domain.EventRebuild),
			Layers:    len(layers),
			Groups:    liveGroups,
			Pruned:    pruned,
		})
	}
}

// Watch returns a channel that signals when the source changes.
// Returns error if the source does not support watching.
func (w *Workspace) Watch(ctx context.Context) (<-chan struct{}, error) {
	if wt, ok := w.source.(ports.Watchable); ok {
		return wt.Watch(ctx)
	}
	return nil, fmt.Errorf("current source does not support watching")
}

// Select applies a gesture to the current selection and returns the new one.
//
// Clicks and drag starts use completed mode, or single mode when Meta is
// held; Shift keeps the members outside the touched groups. Any other
// gesture is a marquee update and uses same-depth mode, which reports
// group.ErrMixedDepth along with a usable result when current spans depths.
func (w *Workspace) Select(ctx context.Context, current group.Targets[string], g domain.Gesture) (group.Targets[string], error) {
	mode := g.Mode()

	var (
		result group.Targets[string]
		err    error
	)
	w.mu.Lock()
	switch mode {
	case domain.ModeSingle:
		result = w.layers.SelectSingleChilds(current, g.Added, g.Removed)
	case domain.ModeCompleted:
		result = w.layers.SelectCompletedChilds(current, g.Added, g.Removed, g.Shift)
	default:
		result, err = w.layers.SelectSameDepthChilds(current, g.Added, g.Removed)
	}
	w.mu.Unlock()

	w.report(ctx, mode, len(g.Added), len(g.Removed), result, err)
	if err != nil {
		w.logger.Warn("selection spans depths", "mode", mode, "error", err)
	}
	return result, err
}

// Drill handles a double click on target: it narrows the selection to the
// child of the selected group that encloses target.
func (w *Workspace) Drill(ctx context.Context, current group.Targets[string], target string) group.Targets[string] {
	w.mu.Lock()
	result := w.layers.SelectSubChilds(current, target)
	w.mu.Unlock()

	w.report(ctx, domain.ModeSub, 1, 0, result, nil)
	return result
}

func (w *Workspace) report(ctx context.Context, mode domain.SelectionMode, added, removed int, result group.Targets[string], err error) {
	w.logger.Debug("selection computed", "mode", mode, "members", len(result))
	if w.hooks.OnSelect == nil {
		return
	}
	w.hooks.OnSelect(ctx, &domain.SelectEvent{
		EventBase: w.event(domain.EventSelect),
		Mode:      mode,
		Added:     added,
		Removed:   removed,
		Selected:  len(result),
		Leaves:    len(result.Flatten()),
		Err:       err,
	})
}

func (w *Workspace) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Workspace: w.Name}
}

// Tree returns the whole group tree as a selection value: top-level layers
// as leaves and groups with their nested children.
func (w *Workspace) Tree() group.Targets[string] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return group.ToTargetList(w.layers.Engine().Children()).Targets()
}

// Children lists the layers and groups directly inside scope. The entries
// are copies and carry no keyframes.
func (w *Workspace) Children(scope domain.Scope) []layer.Entry[string] {
	w.mu.Lock()
	defer w.mu.Unlock()
	return cloneEntries(w.layers.FindChildren(scope))
}

func cloneEntries(entries []layer.Entry[string]) []layer.Entry[string] {
	out := make([]layer.Entry[string], 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case *layer.Layer[string]:
			out = append(out, &layer.Layer[string]{ID: e.ID, Title: e.Title, Scope: e.Scope.Clone(), Ref: e.Ref})
		case *layer.Group[string]:
			out = append(out, &layer.Group[string]{
				ID:       e.ID,
				Title:    e.Title,
				Scope:    e.Scope.Clone(),
				Metadata: e.Metadata,
				Children: cloneEntries(e.Children),
			})
		}
	}
	return out
}

// Scope returns the scope of the layer with id.
func (w *Workspace) Scope(id string) (domain.Scope, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.layers.LayerByElement(id)
	if !ok {
		return nil, fmt.Errorf("scope of %s: %w", id, domain.ErrLayerNotFound)
	}
	return l.Scope.Clone(), nil
}

// Group returns the stored form of a live group.
func (w *Workspace) Group(id string) (domain.GroupInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	g, ok := w.layers.GroupByID(id)
	if !ok {
		return domain.GroupInfo{}, fmt.Errorf("group %s: %w", id, domain.ErrGroupNotFound)
	}
	return g.Info(), nil
}

// CSS returns the properties of a layer at time zero.
func (w *Workspace) CSS(id string) (map[string]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.layers.CSSByElement(id)
}

// SetCSS applies declaration text to a layer at time zero.
func (w *Workspace) SetCSS(id, css string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.layers.SetCSSByElement(id, css)
}

// Document returns the current canvas in stored form.
func (w *Workspace) Document() *domain.Document {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := &domain.Document{}
	for _, l := range w.layers.Layers() {
		doc.Layers = append(doc.Layers, l.Info())
	}
	for _, g := range w.layers.Groups() {
		doc.Groups = append(doc.Groups, g.Info())
	}
	return doc
}

// Commit writes the current document to the configured store, holding the
// document lock when a locker is configured.
func (w *Workspace) Commit(ctx context.Context) error {
	if w.store == nil {
		return ErrNoStore
	}
	if w.locker != nil {
		unlock, err := w.locker.Lock(ctx, w.docID, DefaultLockTTL)
		if err != nil {
			return fmt.Errorf("failed to lock document %s: %w", w.docID, err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				w.logger.Warn("failed to release document lock", "id", w.docID, "error", err)
			}
		}()
	}

	doc := w.Document()
	if err := w.store.Save(ctx, w.docID, doc); err != nil {
		return fmt.Errorf("failed to commit document %s: %w", w.docID, err)
	}
	w.logger.Info("document committed", "id", w.docID, "layers", len(doc.Layers))
	return nil
}

// Source returns the LayerSource the workspace loads from.
func (w *Workspace) Source() ports.LayerSource {
	return w.source
}
