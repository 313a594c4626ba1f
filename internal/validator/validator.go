package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/scena/pkg/domain"
)

// Report lists the problems found in a document. Errors make the document
// ambiguous to select on; warnings are repaired silently when it loads.
type Report struct {
	Errors   []string
	Warnings []string
}

// Err folds the errors into one error, or nil when there are none.
func (r Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(r.Errors), strings.Join(r.Errors, "\n- "))
}

// ValidateDocument checks layer identities and scope paths against the
// group metadata of doc.
func ValidateDocument(doc *domain.Document) Report {
	var r Report

	layers := make(map[string]bool, len(doc.Layers))
	for i, l := range doc.Layers {
		switch {
		case l.ID == "":
			r.Errors = append(r.Errors, fmt.Sprintf("Layer #%d has no id", i))
			continue
		case layers[l.ID]:
			r.Errors = append(r.Errors, fmt.Sprintf("Duplicate layer id: '%s'", l.ID))
		}
		layers[l.ID] = true
	}

	// Every prefix of a layer scope is a live group.
	live := make(map[string]domain.Scope)
	for _, l := range doc.Layers {
		for i, id := range l.Scope {
			switch {
			case strings.TrimSpace(id) == "":
				r.Errors = append(r.Errors, fmt.Sprintf("Layer '%s' has an empty scope segment", l.ID))
				continue
			case layers[id]:
				r.Errors = append(r.Errors, fmt.Sprintf("Group id '%s' in scope of '%s' is also a layer id", id, l.ID))
			}
			parent := l.Scope[:i]
			if prev, ok := live[id]; ok && !prev.Equal(parent) {
				r.Errors = append(r.Errors, fmt.Sprintf("Group '%s' appears under '%s' and '%s'", id, prev, parent))
				continue
			}
			live[id] = parent
		}
	}

	seen := make(map[string]bool, len(doc.Groups))
	for _, g := range doc.Groups {
		if seen[g.ID] {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Duplicate group metadata: '%s'", g.ID))
		}
		seen[g.ID] = true
		if _, ok := live[g.ID]; !ok {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Group '%s' contains no layers and will be pruned", g.ID))
		}
	}
	return r
}
