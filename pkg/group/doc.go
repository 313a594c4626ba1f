/*
Package group implements the hierarchical grouping and multi-select resolution
engine.

A Manager owns a tree of groups (Array) and leaves (Single) built from a
nested description, plus an index from leaf identity to its tree node. Its
selection operations turn the delta of a hit test (leaves newly covered or
uncovered by a gesture) into a new selection value made of leaves and group
wrappers:

  - SelectSingleChilds: leaves only, group boundaries ignored.
  - SelectCompletedChilds: a group is selected once all of its leaves are.
  - SelectSameDepthChilds: additions restricted to the depth of the current selection.
  - SelectSubChilds: drill one level into the selected group containing a leaf.

Selections are plain values owned by the caller. Every operation returns
members in tree pre-order, so identical gestures give identical results
whatever order the hit test reported them in.

Build converts a flat list of (leaf, scope path) pairs into the nested
description the Manager consumes.
*/
package group
