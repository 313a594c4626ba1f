/*
Package domain contains the core domain models for the scena selection engine.

It defines the layer and group documents an editor canvas is made of, the
scope paths that locate them in the group tree, and the pointer gestures a
host feeds into the engine. This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - Scope: the ordered chain of ancestor group ids of a layer or group.
  - LayerInfo: a selectable element on the canvas.
  - GroupInfo: stored metadata (title, custom fields) of a group.
  - Document: the flat layer list plus group metadata of one canvas.
  - Gesture: the hit-test delta and modifier flags of a pointer event.
*/
package domain
