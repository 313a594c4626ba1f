package layer

import "github.com/aretw0/scena/pkg/domain"

// Entry is a member of a layer listing: a *Layer or a *Group.
type Entry[E comparable] interface {
	isEntry()
}

// Layer is one element of the canvas. Ref is the externally owned element
// the engine selects; Item holds its keyframes.
type Layer[E comparable] struct {
	ID    string
	Title string
	Scope domain.Scope
	Ref   E
	Item  *Item
}

// Group is a group of layers. Children is filled by the Manager.
type Group[E comparable] struct {
	ID       string
	Title    string
	Scope    domain.Scope
	Metadata map[string]any
	Children []Entry[E]
}

func (*Layer[E]) isEntry() {}
func (*Group[E]) isEntry() {}

// FromInfo creates a layer for info bound to ref. The info style becomes the
// layer's frame at time zero.
func FromInfo[E comparable](info domain.LayerInfo, ref E) *Layer[E] {
	l := &Layer[E]{
		ID:    info.ID,
		Title: info.Title,
		Scope: info.Scope.Clone(),
		Ref:   ref,
		Item:  NewItem(),
	}
	if len(info.Style) > 0 {
		l.Item.NewFrame(0).Merge(info.Style)
	}
	return l
}

// Info converts the layer back into its document form.
func (l *Layer[E]) Info() domain.LayerInfo {
	info := domain.LayerInfo{
		ID:    l.ID,
		Title: l.Title,
		Scope: l.Scope.Clone(),
	}
	if l.Item != nil {
		if f, ok := l.Item.Frame(0); ok && f.Len() > 0 {
			info.Style = f.ToCSSObject()
		}
	}
	return info
}

// GroupFromInfo creates a group from stored metadata.
func GroupFromInfo[E comparable](info domain.GroupInfo) *Group[E] {
	return &Group[E]{
		ID:       info.ID,
		Title:    info.Title,
		Scope:    info.Scope.Clone(),
		Metadata: info.Metadata,
	}
}

// Info converts the group back into its document form.
func (g *Group[E]) Info() domain.GroupInfo {
	return domain.GroupInfo{
		ID:       g.ID,
		Title:    g.Title,
		Scope:    g.Scope.Clone(),
		Metadata: g.Metadata,
	}
}
