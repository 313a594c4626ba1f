package layer

import (
	"fmt"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
)

// Manager binds a layer list to the selection engine.
//
// The group tree is derived from the layers and cached; any change to the
// layer list marks it dirty and the next selection query rebuilds it, so
// callers never invalidate it themselves.
//
// A Manager is not safe for concurrent use.
type Manager[E comparable] struct {
	engine   *group.Manager[E]
	layers   []*Layer[E]
	groups   []*Group[E]
	groupMap map[string]*Group[E]
	byPath   map[string]*Group[E]
	byRef    map[E]*Layer[E]
	tree     *group.Tree[*Layer[E]]
	dirty    bool
}

// NewManager creates a manager over layers and the known group metadata.
func NewManager[E comparable](layers []*Layer[E], groups []*Group[E]) *Manager[E] {
	m := &Manager[E]{engine: group.NewManager[E]()}
	m.SetLayers(layers, groups...)
	return m
}

// SetLayers replaces the layer list. When groups is empty the current group
// metadata is kept. Groups no layer refers to are dropped.
func (m *Manager[E]) SetLayers(layers []*Layer[E], groups ...*Group[E]) {
	if len(groups) == 0 {
		groups = m.groups
	}

	infos := make([]domain.GroupInfo, 0, len(groups))
	existing := make(map[string]*Group[E], len(groups))
	for _, g := range groups {
		infos = append(infos, g.Info())
		if _, dup := existing[g.ID]; !dup {
			existing[g.ID] = g
		}
	}

	scoped := make([]group.Scoped[*Layer[E]], 0, len(layers))
	byRef := make(map[E]*Layer[E], len(layers))
	for _, l := range layers {
		if l.Item == nil {
			l.Item = NewItem()
		}
		scoped = append(scoped, group.Scoped[*Layer[E]]{Value: l, Scope: l.Scope})
		if _, dup := byRef[l.Ref]; !dup {
			byRef[l.Ref] = l
		}
	}
	tree := group.Build(scoped, infos)

	groupMap := make(map[string]*Group[E], len(tree.Groups))
	byPath := make(map[string]*Group[E], len(tree.Groups))
	live := make([]*Group[E], 0, len(tree.Groups))
	nodes := make(map[*group.GroupNode[*Layer[E]]]*Group[E], len(tree.Groups))
	for _, node := range tree.Groups {
		g, ok := existing[node.ID]
		if !ok || groupMap[node.ID] != nil {
			g = &Group[E]{ID: node.ID}
		}
		g.Title = node.Title
		g.Scope = node.Scope.Clone()
		g.Metadata = node.Metadata
		g.Children = nil
		nodes[node] = g
		byPath[node.Path().Key()] = g
		if _, dup := groupMap[node.ID]; !dup {
			groupMap[node.ID] = g
		}
		live = append(live, g)
	}
	for node, g := range nodes {
		for _, c := range node.Children {
			switch c := c.(type) {
			case *group.LeafNode[*Layer[E]]:
				g.Children = append(g.Children, c.Value)
			case *group.GroupNode[*Layer[E]]:
				g.Children = append(g.Children, nodes[c])
			}
		}
	}

	m.layers = layers
	m.groups = live
	m.groupMap = groupMap
	m.byPath = byPath
	m.byRef = byRef
	m.tree = tree
	m.dirty = true
}

// CalculateLayers pushes the derived tree into the engine.
func (m *Manager[E]) CalculateLayers() {
	children := group.TargetsOf(m.tree, func(l *Layer[E]) E { return l.Ref })
	m.engine.Set(children, m.Refs())
	m.dirty = false
}

func (m *Manager[E]) ensure() {
	if m.dirty {
		m.CalculateLayers()
	}
}

// Engine returns the selection engine, rebuilt if the layer list changed.
func (m *Manager[E]) Engine() *group.Manager[E] {
	m.ensure()
	return m.engine
}

// Dirty reports whether the next query will rebuild the engine tree.
func (m *Manager[E]) Dirty() bool {
	return m.dirty
}

// Pruned returns the ids of supplied groups dropped by the last SetLayers.
func (m *Manager[E]) Pruned() []string {
	return m.tree.Pruned
}

// SelectCompletedChilds delegates to the engine; see group.Manager.
func (m *Manager[E]) SelectCompletedChilds(targets group.Targets[E], added, removed []E, continueSelect bool) group.Targets[E] {
	m.ensure()
	return m.engine.SelectCompletedChilds(targets, added, removed, continueSelect)
}

// SelectSubChilds delegates to the engine; see group.Manager.
func (m *Manager[E]) SelectSubChilds(targets group.Targets[E], target E) group.Targets[E] {
	m.ensure()
	return m.engine.SelectSubChilds(targets, target)
}

// SelectSameDepthChilds delegates to the engine; see group.Manager.
func (m *Manager[E]) SelectSameDepthChilds(targets group.Targets[E], added, removed []E) (group.Targets[E], error) {
	m.ensure()
	return m.engine.SelectSameDepthChilds(targets, added, removed)
}

// SelectSingleChilds delegates to the engine; see group.Manager.
func (m *Manager[E]) SelectSingleChilds(targets group.Targets[E], added, removed []E) group.Targets[E] {
	m.ensure()
	return m.engine.SelectSingleChilds(targets, added, removed)
}

// FindChildren lists the layers and groups directly inside parentScope, in
// layer order. Groups are synthesized from the scopes of the layers below
// them, carry the stored metadata when there is some, and appear once.
// Their Children are filled recursively.
func (m *Manager[E]) FindChildren(parentScope domain.Scope) []Entry[E] {
	parentScope = parentScope.Compact()
	length := len(parentScope)
	children := []Entry[E]{}
	seen := make(map[string]struct{})

	for _, l := range m.layers {
		scope := l.Scope.Compact()
		if !scope.HasPrefix(parentScope) {
			continue
		}
		if len(scope) == length {
			children = append(children, l)
			continue
		}
		id := scope[length]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		g := &Group[E]{
			ID:    id,
			Title: domain.PlaceholderGroupTitle,
			Scope: scope[:length].Clone(),
		}
		if stored, ok := m.groupMap[id]; ok {
			if stored.Title != "" {
				g.Title = stored.Title
			}
			g.Metadata = stored.Metadata
		}
		children = append(children, g)
	}

	for _, c := range children {
		if g, ok := c.(*Group[E]); ok {
			g.Children = m.FindChildren(g.Scope.Child(g.ID))
		}
	}
	return children
}

// Layers returns the current layer list.
func (m *Manager[E]) Layers() []*Layer[E] {
	return m.layers
}

// Groups returns the live groups in creation order.
func (m *Manager[E]) Groups() []*Group[E] {
	return m.groups
}

// GroupByID returns a live group.
func (m *Manager[E]) GroupByID(id string) (*Group[E], bool) {
	g, ok := m.groupMap[id]
	return g, ok
}

// Refs returns the element of every layer in layer order.
func (m *Manager[E]) Refs() []E {
	refs := make([]E, 0, len(m.layers))
	for _, l := range m.layers {
		refs = append(refs, l.Ref)
	}
	return refs
}

// Elements returns the elements of layers whose element is set.
func (m *Manager[E]) Elements() []E {
	var zero E
	out := make([]E, 0, len(m.layers))
	for _, l := range m.layers {
		if l.Ref != zero {
			out = append(out, l.Ref)
		}
	}
	return out
}

// LayerByElement returns the layer owning element.
func (m *Manager[E]) LayerByElement(element E) (*Layer[E], bool) {
	l, ok := m.byRef[element]
	return l, ok
}

// Frame returns the layer's frame at time, creating it when missing.
func (m *Manager[E]) Frame(l *Layer[E], time float64) *Frame {
	if l.Item == nil {
		l.Item = NewItem()
	}
	return l.Item.NewFrame(time)
}

// CSSByElement returns the properties of the element's frame at time zero.
func (m *Manager[E]) CSSByElement(element E) (map[string]string, error) {
	l, ok := m.LayerByElement(element)
	if !ok {
		return nil, fmt.Errorf("css of %v: %w", element, domain.ErrLayerNotFound)
	}
	return m.Frame(l, 0).ToCSSObject(), nil
}

// SetCSS applies declaration text to the layer's frame at time zero.
func (m *Manager[E]) SetCSS(l *Layer[E], css string) error {
	return m.Frame(l, 0).SetCSS(css)
}

// SetStyle applies properties to the layer's frame at time zero.
func (m *Manager[E]) SetStyle(l *Layer[E], css map[string]string) {
	m.Frame(l, 0).Merge(css)
}

// SetCSSByElement applies declaration text to the element's layer.
func (m *Manager[E]) SetCSSByElement(element E, css string) error {
	l, ok := m.LayerByElement(element)
	if !ok {
		return fmt.Errorf("set css of %v: %w", element, domain.ErrLayerNotFound)
	}
	return m.SetCSS(l, css)
}

// ToLayerGroups maps the nodes of a TargetList to layers and groups.
func (m *Manager[E]) ToLayerGroups(list *group.TargetList[E]) []Entry[E] {
	out := make([]Entry[E], 0, list.Len())
	for _, c := range list.Raw() {
		switch c := c.(type) {
		case *group.Single[E]:
			if l, ok := m.LayerByElement(c.Value); ok {
				out = append(out, l)
			}
		case *group.Array[E]:
			if g, ok := m.byPath[c.Path().Key()]; ok {
				out = append(out, g)
			}
		}
	}
	return out
}

// ToFlatten returns every layer of entries, descending into groups.
func (m *Manager[E]) ToFlatten(entries []Entry[E]) []*Layer[E] {
	var out []*Layer[E]
	for _, e := range entries {
		switch e := e.(type) {
		case *Layer[E]:
			out = append(out, e)
		case *Group[E]:
			out = append(out, m.ToFlatten(e.Children)...)
		}
	}
	return out
}

// ToFlattenElement returns the elements of every layer of entries.
func (m *Manager[E]) ToFlattenElement(entries []Entry[E]) []E {
	layers := m.ToFlatten(entries)
	out := make([]E, 0, len(layers))
	for _, l := range layers {
		out = append(out, l.Ref)
	}
	return out
}

// ToTargetList resolves layers and groups to live engine nodes. Entries no
// longer in the tree are dropped.
func (m *Manager[E]) ToTargetList(entries []Entry[E]) *group.TargetList[E] {
	m.ensure()
	children := make([]group.Child[E], 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case *Group[E]:
			if a, ok := m.engine.FindArray(e.Scope.Compact().Child(e.ID)); ok {
				children = append(children, a)
			}
		case *Layer[E]:
			if s, ok := m.engine.FindSingle(e.Ref); ok {
				children = append(children, s)
			}
		}
	}
	return group.ToTargetList(children)
}
