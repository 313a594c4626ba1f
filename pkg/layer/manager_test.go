package layer_test

import (
	"testing"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/aretw0/scena/pkg/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLayer(id string, scope ...string) *layer.Layer[string] {
	return layer.FromInfo(domain.LayerInfo{ID: id, Title: id, Scope: domain.Scope(scope)}, id)
}

func scenario() *layer.Manager[string] {
	return layer.NewManager([]*layer.Layer[string]{
		newLayer("A"),
		newLayer("B", "g1"),
		newLayer("C", "g1"),
	}, nil)
}

func TestManager_FindChildren(t *testing.T) {
	m := scenario()

	children := m.FindChildren(domain.Scope{})
	require.Len(t, children, 2)

	a, ok := children[0].(*layer.Layer[string])
	require.True(t, ok)
	assert.Equal(t, "A", a.ID)

	g1, ok := children[1].(*layer.Group[string])
	require.True(t, ok)
	assert.Equal(t, "g1", g1.ID)
	assert.Empty(t, g1.Scope)
	require.Len(t, g1.Children, 2)
	assert.Equal(t, "B", g1.Children[0].(*layer.Layer[string]).ID)
	assert.Equal(t, "C", g1.Children[1].(*layer.Layer[string]).ID)

	inner := m.FindChildren(domain.Scope{"g1"})
	assert.Len(t, inner, 2)
	assert.Empty(t, m.FindChildren(domain.Scope{"missing"}))
}

func TestManager_FindChildren_PlaceholdersAndMetadata(t *testing.T) {
	m := layer.NewManager([]*layer.Layer[string]{
		newLayer("A", "g1", "g2"),
		newLayer("B"),
		newLayer("C", "g1"),
	}, []*layer.Group[string]{
		{ID: "g1", Title: "Hero"},
	})

	children := m.FindChildren(nil)
	require.Len(t, children, 2, "g1 must appear once")

	g1 := children[0].(*layer.Group[string])
	assert.Equal(t, "Hero", g1.Title)
	require.Len(t, g1.Children, 2)

	g2 := g1.Children[0].(*layer.Group[string])
	assert.Equal(t, "g2", g2.ID)
	// g2 was synthesized by the tree builder, so it has a stored default title.
	assert.Equal(t, domain.DefaultGroupTitle, g2.Title)
	assert.Equal(t, domain.Scope{"g1"}, g2.Scope)
	assert.Equal(t, "C", g1.Children[1].(*layer.Layer[string]).ID)

	assert.Equal(t, "B", children[1].(*layer.Layer[string]).ID)
}

func TestManager_GroupsFollowLayers(t *testing.T) {
	stale := &layer.Group[string]{ID: "old", Title: "Old"}
	m := layer.NewManager([]*layer.Layer[string]{newLayer("A", "g1")}, []*layer.Group[string]{
		{ID: "g1", Title: "Hero"},
		stale,
	})

	require.Len(t, m.Groups(), 1)
	g1, ok := m.GroupByID("g1")
	require.True(t, ok)
	assert.Equal(t, "Hero", g1.Title)
	require.Len(t, g1.Children, 1)
	_, ok = m.GroupByID("old")
	assert.False(t, ok)
	assert.Equal(t, []string{"old"}, m.Pruned())

	// Metadata survives a rebuild without explicit groups.
	m.SetLayers([]*layer.Layer[string]{newLayer("A", "g1"), newLayer("B", "g1")})
	g1, ok = m.GroupByID("g1")
	require.True(t, ok)
	assert.Equal(t, "Hero", g1.Title)
	assert.Len(t, g1.Children, 2)
}

func TestManager_SelectionScenario(t *testing.T) {
	m := scenario()

	selected := m.SelectCompletedChilds(nil, []string{"B", "C"}, nil, false)
	require.Equal(t, group.Targets[string]{
		group.Group[string]{ID: "g1", Children: group.Leaves("B", "C")},
	}, selected)

	selected = m.SelectCompletedChilds(selected, nil, []string{"C"}, false)
	assert.Equal(t, group.Leaves("B"), selected)
}

func TestManager_LazyRecalculation(t *testing.T) {
	m := scenario()
	assert.True(t, m.Dirty())

	assert.Equal(t, group.Leaves("A"), m.SelectSingleChilds(nil, []string{"A"}, nil))
	assert.False(t, m.Dirty())

	// A layer added between gestures is selectable without an explicit rebuild.
	m.SetLayers(append(m.Layers(), newLayer("D", "g1")))
	assert.True(t, m.Dirty())

	got := m.SelectCompletedChilds(nil, []string{"B", "C"}, nil, true)
	assert.Equal(t, group.Leaves("B", "C"), got, "g1 now has D and is incomplete")

	got = m.SelectCompletedChilds(got, []string{"D"}, nil, true)
	assert.Equal(t, group.Targets[string]{
		group.Group[string]{ID: "g1", Children: group.Leaves("B", "C", "D")},
	}, got)

	// A removed layer is no longer selectable.
	m.SetLayers(m.Layers()[:1])
	assert.Empty(t, m.SelectSingleChilds(nil, []string{"B"}, nil))
}

func TestManager_SameDepthAndSub(t *testing.T) {
	m := scenario()

	got, err := m.SelectSameDepthChilds(group.Leaves("A"), []string{"B", "C"}, nil)
	require.NoError(t, err)
	assert.Equal(t, group.Targets[string]{
		group.Leaf[string]{Value: "A"},
		group.Group[string]{ID: "g1", Children: group.Leaves("B", "C")},
	}, got)

	sub := m.SelectSubChilds(got, "C")
	assert.Equal(t, group.Leaves("C"), sub)
}

func TestManager_Conversions(t *testing.T) {
	m := scenario()
	g1, _ := m.GroupByID("g1")
	a, _ := m.LayerByElement("A")

	list := m.ToTargetList([]layer.Entry[string]{g1, a})
	assert.Equal(t, []string{"B", "C", "A"}, list.Flatten())

	entries := m.ToLayerGroups(list)
	require.Len(t, entries, 2)
	assert.Same(t, g1, entries[0])
	assert.Same(t, a, entries[1])

	flat := m.ToFlatten(entries)
	require.Len(t, flat, 3)
	assert.Equal(t, []string{"B", "C", "A"}, m.ToFlattenElement(entries))

	assert.Equal(t, []string{"A", "B", "C"}, m.Refs())
	assert.Equal(t, []string{"A", "B", "C"}, m.Elements())
}

func TestManager_CSS(t *testing.T) {
	m := layer.NewManager([]*layer.Layer[string]{
		layer.FromInfo(domain.LayerInfo{ID: "A", Style: map[string]string{"left": "10px"}}, "A"),
		{ID: "B", Ref: "B"},
	}, nil)

	css, err := m.CSSByElement("A")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"left": "10px"}, css)

	// A layer without frames gets an empty frame at time zero.
	css, err = m.CSSByElement("B")
	require.NoError(t, err)
	assert.Empty(t, css)
	b, _ := m.LayerByElement("B")
	assert.True(t, b.Item.HasFrame(0))

	require.NoError(t, m.SetCSSByElement("B", "top: 5px; color: red"))
	css, _ = m.CSSByElement("B")
	assert.Equal(t, map[string]string{"top": "5px", "color": "red"}, css)

	_, err = m.CSSByElement("missing")
	assert.ErrorIs(t, err, domain.ErrLayerNotFound)
	assert.ErrorIs(t, m.SetCSSByElement("missing", "top: 1px"), domain.ErrLayerNotFound)
}

func TestManager_RepeatedGroupIDs(t *testing.T) {
	m := layer.NewManager([]*layer.Layer[string]{
		newLayer("X", "g"),
		newLayer("Y", "g", "g"),
		newLayer("P", "a", "x"),
		newLayer("Q", "b", "x"),
	}, nil)

	children := m.FindChildren(nil)
	require.Len(t, children, 3)
	outer := children[0].(*layer.Group[string])
	inner := outer.Children[1].(*layer.Group[string])
	bx := children[2].(*layer.Group[string]).Children[0].(*layer.Group[string])

	list := m.ToTargetList([]layer.Entry[string]{inner})
	assert.Equal(t, []string{"Y"}, list.Flatten())
	entries := m.ToLayerGroups(list)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.Scope{"g"}, entries[0].(*layer.Group[string]).Scope)

	assert.Equal(t, []string{"Q"}, m.ToTargetList([]layer.Entry[string]{bx}).Flatten())

	sel := m.SelectCompletedChilds(nil, []string{"Q"}, nil, true)
	again := m.SelectCompletedChilds(sel, nil, nil, true)
	assert.Equal(t, sel, again)
	assert.Equal(t, []string{"Q"}, again.Flatten())
}

func TestManager_EmptyScopeSegments(t *testing.T) {
	m := layer.NewManager([]*layer.Layer[string]{
		newLayer("A", ""),
		newLayer("B", "", "g1"),
	}, nil)

	children := m.FindChildren(nil)
	require.Len(t, children, 2)
	assert.Equal(t, "A", children[0].(*layer.Layer[string]).ID)
	g1 := children[1].(*layer.Group[string])
	assert.Equal(t, "g1", g1.ID)
	assert.Empty(t, g1.Scope)

	assert.Equal(t, group.Leaves("A"), m.SelectCompletedChilds(nil, []string{"A"}, nil, false))
	assert.Equal(t, group.Targets[string]{
		group.Group[string]{ID: "g1", Children: group.Leaves("B")},
	}, m.SelectCompletedChilds(nil, []string{"B"}, nil, false))
}
