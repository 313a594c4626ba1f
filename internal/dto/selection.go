package dto

import (
	"github.com/aretw0/scena/pkg/domain"
	"github.com/aretw0/scena/pkg/group"
)

// Target is the wire shape of a selection member: either an element or a
// group with its nested members.
type Target struct {
	Element  string   `json:"element,omitempty" jsonschema_description:"Layer ID, set for single layers"`
	Group    string   `json:"group,omitempty" jsonschema_description:"Group ID, set for groups"`
	Scope    []string `json:"scope,omitempty" jsonschema_description:"IDs of the groups enclosing the group, outermost first"`
	Children []Target `json:"children,omitempty" jsonschema_description:"Members of the group"`
}

// FromTargets converts a selection to its wire shape.
func FromTargets(ts group.Targets[string]) []Target {
	out := make([]Target, 0, len(ts))
	for _, t := range ts {
		switch t := t.(type) {
		case group.Leaf[string]:
			out = append(out, Target{Element: t.Value})
		case group.Group[string]:
			out = append(out, Target{Group: t.ID, Scope: t.Scope.Clone(), Children: FromTargets(t.Children)})
		}
	}
	return out
}

// ToTargets converts the wire shape back to a selection. Entries naming
// neither an element nor a group are skipped.
func ToTargets(ts []Target) group.Targets[string] {
	out := make(group.Targets[string], 0, len(ts))
	for _, t := range ts {
		switch {
		case t.Group != "":
			out = append(out, group.Group[string]{ID: t.Group, Scope: scopeOf(t.Scope), Children: ToTargets(t.Children)})
		case t.Element != "":
			out = append(out, group.Leaf[string]{Value: t.Element})
		}
	}
	return out
}

func scopeOf(ids []string) domain.Scope {
	if len(ids) == 0 {
		return nil
	}
	return domain.Scope(ids).Clone()
}

// SelectRequest carries a gesture applied to the client's current selection.
// Session, when set, broadcasts the result to event stream subscribers.
type SelectRequest struct {
	Session  string         `json:"session,omitempty"`
	Selected []Target       `json:"selected"`
	Gesture  domain.Gesture `json:"gesture"`
}

// DrillRequest carries a double click on Target.
type DrillRequest struct {
	Session  string   `json:"session,omitempty"`
	Selected []Target `json:"selected"`
	Target   string   `json:"target"`
}

// SelectResponse is the computed selection.
type SelectResponse struct {
	Mode     domain.SelectionMode `json:"mode" jsonschema_description:"Selection algebra applied"`
	Selected []Target             `json:"selected" jsonschema_description:"New selection"`
	Elements []string             `json:"elements" jsonschema_description:"Layer IDs covered by the selection"`
	Warning  string               `json:"warning,omitempty" jsonschema_description:"Non fatal issue, e.g. mixed depths"`
}

// NewSelectResponse builds the response for a computed selection.
func NewSelectResponse(mode domain.SelectionMode, sel group.Targets[string], err error) SelectResponse {
	resp := SelectResponse{
		Mode:     mode,
		Selected: FromTargets(sel),
		Elements: sel.Flatten(),
	}
	if err != nil {
		resp.Warning = err.Error()
	}
	return resp
}
