/*
Package session keeps the current selection of each editing session.

A session is one editor view (a browser tab, an agent) applying gestures to
a shared workspace. The Manager serializes read-modify-write cycles per
session with reference counted local locks and, when configured, a
distributed lock, so replicas sharing a Redis SelectionStore never lose a
gesture.
*/
package session
