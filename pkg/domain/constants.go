package domain

// Field constants for mapstructure and JSON standardization.
const (
	// KeyScope is the document field holding the scope path of a layer or group.
	KeyScope = "scope"

	// KeyStyle is the document field holding the CSS declarations of a layer.
	KeyStyle = "style"
)

// Title defaults for groups that have no stored metadata.
const (
	// DefaultGroupTitle is assigned to groups synthesized while building the tree.
	DefaultGroupTitle = "New Group"

	// PlaceholderGroupTitle is assigned to groups synthesized by child lookups.
	PlaceholderGroupTitle = "No Named"
)

// DocumentTypeGroup marks a stored document as group metadata instead of a layer.
const DocumentTypeGroup = "group"
