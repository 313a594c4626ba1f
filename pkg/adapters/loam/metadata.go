package loam

// LayerMetadata is the frontmatter of a layer or group document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type LayerMetadata struct {
	ID    string   `json:"id" mapstructure:"id"`
	Type  string   `json:"type" mapstructure:"type"`
	Title string   `json:"title" mapstructure:"title"`
	Scope []string `json:"scope" mapstructure:"scope"`

	// Order positions the layer in paint order. Documents without it keep
	// their listing order after every ordered one.
	Order *int `json:"order,omitempty" mapstructure:"order"`

	// Style values may be written unquoted (opacity: 0.5); they are
	// normalized to strings on load.
	Style map[string]any `json:"style" mapstructure:"style"`

	// Metadata is free-form group metadata, kept as written.
	Metadata map[string]any `json:"metadata" mapstructure:"metadata"`
}
