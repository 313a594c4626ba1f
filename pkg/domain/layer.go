package domain

// LayerInfo describes one selectable element of a canvas.
// The ID doubles as the element identity hosts use in gestures.
type LayerInfo struct {
	ID    string            `json:"id" yaml:"id"`
	Title string            `json:"title,omitempty" yaml:"title,omitempty"`
	Scope Scope             `json:"scope,omitempty" yaml:"scope,omitempty"`
	Style map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
}

// GroupInfo holds stored metadata of a group.
// Scope is informative only: the tree builder derives positions from layer scopes.
type GroupInfo struct {
	ID       string         `json:"id" yaml:"id"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Scope    Scope          `json:"scope,omitempty" yaml:"scope,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Document is the flat description of a canvas: layers in paint order plus
// whatever group metadata is known.
type Document struct {
	Layers []LayerInfo `json:"layers" yaml:"layers"`
	Groups []GroupInfo `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Clone returns a deep copy so stores can isolate their contents from callers.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Layers: make([]LayerInfo, len(d.Layers)),
		Groups: make([]GroupInfo, len(d.Groups)),
	}
	for i, l := range d.Layers {
		l.Scope = l.Scope.Clone()
		if l.Style != nil {
			style := make(map[string]string, len(l.Style))
			for k, v := range l.Style {
				style[k] = v
			}
			l.Style = style
		}
		out.Layers[i] = l
	}
	for i, g := range d.Groups {
		g.Scope = g.Scope.Clone()
		if g.Metadata != nil {
			meta := make(map[string]any, len(g.Metadata))
			for k, v := range g.Metadata {
				meta[k] = v
			}
			g.Metadata = meta
		}
		out.Groups[i] = g
	}
	return out
}
