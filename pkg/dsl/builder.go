package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/scena/pkg/adapters/memory"
	"github.com/aretw0/scena/pkg/domain"
)

// Builder manages the document construction. Layers keep the order in
// which they are added, which is their paint order.
type Builder struct {
	layers []*LayerBuilder
	ids    map[string]*LayerBuilder
	groups []*GroupBuilder
	byPath map[string]*GroupBuilder
	errs   []error
}

// New creates a new document builder.
func New() *Builder {
	return &Builder{
		ids:    make(map[string]*LayerBuilder),
		byPath: make(map[string]*GroupBuilder),
	}
}

// Layer adds a top-level layer.
// If the layer already exists, it returns the existing builder.
func (b *Builder) Layer(id string) *LayerBuilder {
	return b.layer(id, domain.Scope{})
}

// Group starts a top-level group.
func (b *Builder) Group(id string) *GroupBuilder {
	return b.group(id, domain.Scope{})
}

func (b *Builder) layer(id string, scope domain.Scope) *LayerBuilder {
	if lb, ok := b.ids[id]; ok {
		if !lb.info.Scope.Equal(scope) {
			b.errs = append(b.errs, fmt.Errorf("layer %s: added at %q and %q", id, lb.info.Scope, scope))
		}
		return lb
	}
	lb := &LayerBuilder{info: domain.LayerInfo{ID: id, Scope: scope.Clone()}, builder: b}
	b.layers = append(b.layers, lb)
	b.ids[id] = lb
	return lb
}

func (b *Builder) group(id string, parent domain.Scope) *GroupBuilder {
	path := parent.Child(id)
	if gb, ok := b.byPath[path.Key()]; ok {
		return gb
	}
	gb := &GroupBuilder{info: domain.GroupInfo{ID: id, Scope: parent.Clone()}, builder: b}
	b.groups = append(b.groups, gb)
	b.byPath[path.Key()] = gb
	return gb
}

// Document returns the document described so far.
func (b *Builder) Document() (*domain.Document, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}
	doc := &domain.Document{
		Layers: make([]domain.LayerInfo, 0, len(b.layers)),
	}
	for _, lb := range b.layers {
		if lb.info.ID == "" {
			return nil, fmt.Errorf("layer missing ID")
		}
		doc.Layers = append(doc.Layers, lb.info)
	}
	for _, gb := range b.groups {
		if gb.info.Title != "" || len(gb.info.Metadata) > 0 {
			doc.Groups = append(doc.Groups, gb.info)
		}
	}
	return doc.Clone(), nil
}

// Build compiles the document into a memory source.
func (b *Builder) Build() (*memory.Source, error) {
	doc, err := b.Document()
	if err != nil {
		return nil, fmt.Errorf("failed to build document: %w", err)
	}
	return memory.NewSource(doc), nil
}
