package domain

// SelectionMode names the selection algebra applied to a gesture.
type SelectionMode string

const (
	// ModeSingle selects leaves only, ignoring group boundaries (meta held).
	ModeSingle SelectionMode = "single"
	// ModeCompleted promotes fully covered groups (default click/drag start).
	ModeCompleted SelectionMode = "completed"
	// ModeSameDepth restricts a marquee drag to the depth of the current selection.
	ModeSameDepth SelectionMode = "same_depth"
	// ModeSub drills one level into the group containing a target (double click).
	ModeSub SelectionMode = "sub"
)

// Gesture is the outcome of a hit test for one selection-relevant pointer event.
// Added and Removed hold element ids newly covered / uncovered by the gesture.
type Gesture struct {
	Added       []string `json:"added,omitempty"`
	Removed     []string `json:"removed,omitempty"`
	IsDragStart bool     `json:"is_drag_start,omitempty"`
	IsClick     bool     `json:"is_click,omitempty"`
	// Meta is the command/meta modifier.
	Meta bool `json:"meta,omitempty"`
	// Shift continues the current selection instead of replacing it.
	Shift bool `json:"shift,omitempty"`
}

// Mode resolves which selection algebra the gesture maps onto.
func (g Gesture) Mode() SelectionMode {
	if g.IsDragStart || g.IsClick {
		if g.Meta {
			return ModeSingle
		}
		return ModeCompleted
	}
	return ModeSameDepth
}
