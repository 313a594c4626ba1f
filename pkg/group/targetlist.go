package group

// TargetList is an immutable view over a set of tree nodes.
type TargetList[L comparable] struct {
	children []Child[L]
}

// ToTargetList captures children; nil entries are skipped.
func ToTargetList[L comparable](children []Child[L]) *TargetList[L] {
	raw := make([]Child[L], 0, len(children))
	for _, c := range children {
		if c != nil {
			raw = append(raw, c)
		}
	}
	return &TargetList[L]{children: raw}
}

// Raw returns the typed tree nodes.
func (t *TargetList[L]) Raw() []Child[L] {
	out := make([]Child[L], len(t.children))
	copy(out, t.children)
	return out
}

// Flatten returns every leaf below the nodes, pre-order, without duplicates.
func (t *TargetList[L]) Flatten() []L {
	return t.Targets().Flatten()
}

// Targets returns the nested view mirroring containment, with groups as
// Group wrappers.
func (t *TargetList[L]) Targets() Targets[L] {
	return toTargets(t.children)
}

// Len returns the number of top-level nodes.
func (t *TargetList[L]) Len() int {
	return len(t.children)
}
