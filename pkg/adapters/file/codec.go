package file

import (
	"fmt"
	"reflect"

	"github.com/aretw0/scena/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var scopeType = reflect.TypeOf(domain.Scope{})

// scopeHook accepts "g1/g2" wherever a scope list is expected.
func scopeHook(from, to reflect.Type, data any) (any, error) {
	if to != scopeType || from.Kind() != reflect.String {
		return data, nil
	}
	return domain.ParseScope(data.(string)), nil
}

// Decode parses a YAML layer document.
//
// The document is decoded in two steps: YAML into generic maps, then
// mapstructure into domain.Document. This allows hand written files to use
// slash separated scopes and unquoted numeric style values.
func Decode(data []byte) (*domain.Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	var doc domain.Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       scopeHook,
		WeaklyTypedInput: true,
		TagName:          "yaml",
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(doc.Layers))
	for i, l := range doc.Layers {
		if l.ID == "" {
			return nil, fmt.Errorf("layer %d: missing id", i)
		}
		if _, dup := seen[l.ID]; dup {
			return nil, fmt.Errorf("layer %s: duplicate id", l.ID)
		}
		seen[l.ID] = struct{}{}
	}
	return &doc, nil
}

// Encode renders a document as YAML.
func Encode(doc *domain.Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return data, nil
}
