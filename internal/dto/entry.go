package dto

import (
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/layer"
)

// Entry kinds.
const (
	KindLayer = "layer"
	KindGroup = "group"
)

// Entry is the wire shape of a layer listing.
type Entry struct {
	Kind     string         `json:"kind" jsonschema_description:"layer or group"`
	ID       string         `json:"id"`
	Title    string         `json:"title,omitempty"`
	Scope    []string       `json:"scope"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Children []Entry        `json:"children,omitempty"`
}

// FromEntries converts layers and groups, recursively.
func FromEntries(entries []layer.Entry[string]) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case *layer.Layer[string]:
			out = append(out, Entry{Kind: KindLayer, ID: e.ID, Title: e.Title, Scope: scope(e.Scope)})
		case *layer.Group[string]:
			out = append(out, Entry{
				Kind:     KindGroup,
				ID:       e.ID,
				Title:    e.Title,
				Scope:    scope(e.Scope),
				Metadata: e.Metadata,
				Children: FromEntries(e.Children),
			})
		}
	}
	return out
}

func scope(s domain.Scope) []string {
	if s == nil {
		return []string{}
	}
	return []string(s)
}
