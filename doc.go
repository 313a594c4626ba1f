/*
Package scena resolves pointer gestures on a layered canvas into group-aware selections.

A canvas is a flat list of layers, each carrying a scope: the ordered ids of
the groups containing it. Scena derives the group tree from those scopes and
maps clicks, marquee drags and double clicks onto selections that respect
group boundaries, the way design editors do.

# Concept

The engine (pkg/group) is pure: it owns a tree and answers selection queries.
The layer adapter (pkg/layer) binds layers and stored group metadata to it.
A Workspace wraps both behind a mutex, loads documents from a ports.LayerSource
(Loam directory, YAML file, Redis, memory) and reports every selection through
lifecycle hooks. Hosts (CLI, HTTP, MCP) only translate their I/O into gestures.

# Selection modes

  - Click or drag start: completed mode. A group is selected once all of its
    layers are; Shift continues the current selection.
  - Meta held: single mode. Layers only, ignoring groups.
  - Marquee drag: same-depth mode. Only members at the depth of the current
    selection are added or removed.
  - Double click: drill one level into the selected group under the pointer.

# Usage

	ws, err := scena.New("./canvas")
	if err != nil {
		log.Fatal(err)
	}
	if err := ws.Load(ctx); err != nil {
		log.Fatal(err)
	}

	sel, err := ws.Select(ctx, nil, domain.Gesture{IsClick: true, Added: []string{"title"}})
	if err != nil {
		log.Fatal(err)
	}
	sel = ws.Drill(ctx, sel, "title")
*/
package scena
