package dsl

import (
	"fmt"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/layer"
)

// LayerBuilder provides a fluent API for configuring a layer.
type LayerBuilder struct {
	info    domain.LayerInfo
	builder *Builder
}

// Title sets the display title of the layer.
func (l *LayerBuilder) Title(title string) *LayerBuilder {
	l.info.Title = title
	return l
}

// Style sets one CSS property of the layer at time zero.
func (l *LayerBuilder) Style(name, value string) *LayerBuilder {
	f := layer.NewFrame()
	f.Set(name, value)
	l.merge(f.ToCSSObject())
	return l
}

// CSS parses declaration text ("left: 10px; top: 5px") into the layer style.
// Parse errors are reported by Build.
func (l *LayerBuilder) CSS(text string) *LayerBuilder {
	f := layer.NewFrame()
	if err := f.SetCSS(text); err != nil {
		l.builder.errs = append(l.builder.errs, fmt.Errorf("layer %s: %w", l.info.ID, err))
		return l
	}
	l.merge(f.ToCSSObject())
	return l
}

func (l *LayerBuilder) merge(css map[string]string) {
	if l.info.Style == nil {
		l.info.Style = make(map[string]string, len(css))
	}
	for k, v := range css {
		l.info.Style[k] = v
	}
}

// Build returns the underlying domain.LayerInfo.
func (l *LayerBuilder) Build() domain.LayerInfo {
	return l.info
}

// GroupBuilder provides a fluent API for a group and its members.
type GroupBuilder struct {
	info    domain.GroupInfo
	builder *Builder
}

// Title sets the stored title of the group.
func (g *GroupBuilder) Title(title string) *GroupBuilder {
	g.info.Title = title
	return g
}

// Meta adds a metadata entry to the group.
func (g *GroupBuilder) Meta(key string, value any) *GroupBuilder {
	if g.info.Metadata == nil {
		g.info.Metadata = make(map[string]any)
	}
	g.info.Metadata[key] = value
	return g
}

// Layer adds a layer inside the group.
func (g *GroupBuilder) Layer(id string) *LayerBuilder {
	return g.builder.layer(id, g.path())
}

// Group starts a nested group.
func (g *GroupBuilder) Group(id string) *GroupBuilder {
	return g.builder.group(id, g.path())
}

func (g *GroupBuilder) path() domain.Scope {
	return g.info.Scope.Child(g.info.ID)
}

// Build returns the underlying domain.GroupInfo.
func (g *GroupBuilder) Build() domain.GroupInfo {
	return g.info
}
