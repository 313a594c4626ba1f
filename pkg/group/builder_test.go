package group_test

import (
	"testing"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoped(value string, scope ...string) group.Scoped[string] {
	return group.Scoped[string]{Value: value, Scope: domain.Scope(scope)}
}

func TestBuild_RootAndGroup(t *testing.T) {
	tree := group.Build([]group.Scoped[string]{
		scoped("A"),
		scoped("B", "g1"),
		scoped("C", "g1"),
	}, nil)

	require.Len(t, tree.Root.Children, 2)
	leaf, ok := tree.Root.Children[0].(*group.LeafNode[string])
	require.True(t, ok, "first child should be leaf A")
	assert.Equal(t, "A", leaf.Value)

	g1, ok := tree.Root.Children[1].(*group.GroupNode[string])
	require.True(t, ok, "second child should be group g1")
	assert.Equal(t, "g1", g1.ID)
	assert.Equal(t, domain.DefaultGroupTitle, g1.Title)
	assert.Empty(t, g1.Scope)
	require.Len(t, g1.Children, 2)
	assert.Equal(t, "B", g1.Children[0].(*group.LeafNode[string]).Value)
	assert.Equal(t, "C", g1.Children[1].(*group.LeafNode[string]).Value)

	assert.Equal(t, []string{"A", "B", "C"}, tree.Leaves())
}

func TestBuild_Deterministic(t *testing.T) {
	input := []group.Scoped[string]{
		scoped("A", "g1", "g2"),
		scoped("B"),
		scoped("C", "g1"),
		scoped("D", "g3"),
		scoped("E", "g1", "g2"),
	}
	groups := []domain.GroupInfo{{ID: "g2", Title: "Inner"}}

	first := group.Build(input, groups)
	second := group.Build(input, groups)
	assert.Equal(t, first, second)

	ids := func(tr *group.Tree[string]) []string {
		var out []string
		for _, g := range tr.Groups {
			out = append(out, g.ID)
		}
		return out
	}
	assert.Equal(t, []string{"g1", "g2", "g3"}, ids(first))
}

func TestBuild_ScopeInvariant(t *testing.T) {
	tree := group.Build([]group.Scoped[string]{
		scoped("A", "g1", "g2", "g3"),
	}, nil)

	var check func(g *group.GroupNode[string])
	check = func(g *group.GroupNode[string]) {
		for _, c := range g.Children {
			switch c := c.(type) {
			case *group.GroupNode[string]:
				assert.Equal(t, g.Path(), c.Scope, "group %s scope", c.ID)
				check(c)
			case *group.LeafNode[string]:
				assert.Equal(t, g.Path(), c.Scope)
			}
		}
	}
	check(tree.Root)

	inner, ok := tree.Find(domain.Scope{"g1", "g2", "g3"})
	require.True(t, ok)
	assert.Equal(t, "g3", inner.ID)
	assert.Equal(t, domain.Scope{"g1", "g2"}, inner.Scope)
}

func TestBuild_MetadataAndPruning(t *testing.T) {
	groups := []domain.GroupInfo{
		{ID: "g1", Title: "Hero", Metadata: map[string]any{"locked": true}},
		{ID: "old", Title: "Stale"},
	}
	tree := group.Build([]group.Scoped[string]{scoped("A", "g1")}, groups)

	g1, ok := tree.GroupByID("g1")
	require.True(t, ok)
	assert.Equal(t, "Hero", g1.Title)
	assert.Equal(t, true, g1.Metadata["locked"])

	_, ok = tree.GroupByID("old")
	assert.False(t, ok, "stale group must not be in the tree")
	assert.Equal(t, []string{"old"}, tree.Pruned)

	// The stale id is forgotten: reusing it later makes a fresh, empty group.
	next := group.Build([]group.Scoped[string]{scoped("B", "old")}, nil)
	old, ok := next.GroupByID("old")
	require.True(t, ok)
	assert.Equal(t, domain.DefaultGroupTitle, old.Title)
	assert.Len(t, old.Children, 1)
}

func TestBuild_RepeatedIDInPath(t *testing.T) {
	tree := group.Build([]group.Scoped[string]{scoped("A", "x", "x")}, nil)

	require.Len(t, tree.Groups, 2)
	outer, inner := tree.Groups[0], tree.Groups[1]
	assert.Equal(t, "x", outer.ID)
	assert.Equal(t, "x", inner.ID)
	assert.NotSame(t, outer, inner)
	assert.Equal(t, domain.Scope{"x"}, inner.Scope)
	assert.Same(t, inner, outer.Children[0])
}

func TestBuild_SameIDUnderDifferentParents(t *testing.T) {
	tree := group.Build([]group.Scoped[string]{
		scoped("A", "a", "x"),
		scoped("B", "b", "x"),
	}, nil)

	ax, ok := tree.Find(domain.Scope{"a", "x"})
	require.True(t, ok)
	bx, ok := tree.Find(domain.Scope{"b", "x"})
	require.True(t, ok)
	assert.NotSame(t, ax, bx)
}

func TestTargetsOf(t *testing.T) {
	tree := group.Build([]group.Scoped[string]{
		scoped("A"),
		scoped("B", "g1"),
		scoped("C", "g1"),
	}, nil)

	targets := group.TargetsOf(tree, func(v string) string { return "el-" + v })
	assert.Equal(t, group.Targets[string]{
		group.Leaf[string]{Value: "el-A"},
		group.Group[string]{ID: "g1", Children: group.Leaves("el-B", "el-C")},
	}, targets)
}

func TestBuild_SkipsEmptySegments(t *testing.T) {
	tree := group.Build([]group.Scoped[string]{
		scoped("A", ""),
		scoped("B", "", "g1", ""),
	}, nil)

	require.Len(t, tree.Root.Children, 2)
	a := tree.Root.Children[0].(*group.LeafNode[string])
	assert.Equal(t, "A", a.Value)
	assert.Empty(t, a.Scope)

	require.Len(t, tree.Groups, 1)
	g1 := tree.Groups[0]
	assert.Equal(t, "g1", g1.ID)
	assert.Same(t, g1, tree.Root.Children[1])
	assert.Equal(t, domain.Scope{"g1"}, g1.Children[0].(*group.LeafNode[string]).Scope)
}
