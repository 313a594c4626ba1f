package group

import (
	"encoding/json"
	"errors"

	"github.com/aretw0/scena/pkg/domain"
)

// errEmptyTarget is returned when decoding a member that names neither an
// element nor a group.
var errEmptyTarget = errors.New("target has neither element nor group")

type wireTarget[L comparable] struct {
	Element  *L         `json:"element,omitempty"`
	Group    string       `json:"group,omitempty"`
	Scope    domain.Scope `json:"scope,omitempty"`
	Children Targets[L]   `json:"children,omitempty"`
}

// MarshalJSON encodes leaves as {"element": v} and group wrappers as
// {"group": id, "scope": [...], "children": [...]}, scope being omitted at
// the top level.
func (ts Targets[L]) MarshalJSON() ([]byte, error) {
	wire := make([]wireTarget[L], 0, len(ts))
	for _, t := range ts {
		switch t := t.(type) {
		case Leaf[L]:
			v := t.Value
			wire = append(wire, wireTarget[L]{Element: &v})
		case Group[L]:
			wire = append(wire, wireTarget[L]{Group: t.ID, Scope: t.Scope, Children: t.Children})
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (ts *Targets[L]) UnmarshalJSON(data []byte) error {
	var wire []wireTarget[L]
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	out := make(Targets[L], 0, len(wire))
	for _, w := range wire {
		switch {
		case w.Group != "":
			out = append(out, Group[L]{ID: w.Group, Scope: nonEmpty(w.Scope), Children: w.Children})
		case w.Element != nil:
			out = append(out, Leaf[L]{Value: *w.Element})
		default:
			return errEmptyTarget
		}
	}
	*ts = out
	return nil
}
