// Package layer binds editor layers and group metadata to the selection
// engine of package group. A Manager keeps the flat layer list, derives the
// group tree from it lazily and answers selection queries, child lookups and
// per-layer CSS frames.
package layer
