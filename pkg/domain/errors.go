package domain

import "errors"

// ErrDocumentNotFound is returned when a document ID cannot be found in the store.
var ErrDocumentNotFound = errors.New("document not found")

// ErrLayerNotFound is returned when an element does not belong to any layer.
var ErrLayerNotFound = errors.New("layer not found")

// ErrGroupNotFound is returned when a group ID is not part of the current tree.
var ErrGroupNotFound = errors.New("group not found")

// ErrSessionNotFound is returned when no selection is stored for a session.
var ErrSessionNotFound = errors.New("session not found")
