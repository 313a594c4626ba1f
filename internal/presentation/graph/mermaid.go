package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/scena/internal/dto"
)

// SelectionOverlay marks entries to highlight on the graph.
type SelectionOverlay struct {
	// Selected holds layer and group IDs of the current selection.
	Selected []string
	// Focus is the layer the last gesture hit.
	Focus string
}

// GenerateMermaid produces a Mermaid flowchart of a layer listing.
// Groups become subgraphs and layers become nodes:
// - Layer: [Rectangle]
// - Empty group: [(Database)] placeholder, since Mermaid drops empty subgraphs
// Sibling layers are chained in paint order with invisible links so the
// layout keeps the stacking order top to bottom.
func GenerateMermaid(entries []dto.Entry, overlay *SelectionOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	writeEntries(&sb, entries, 1)

	if overlay != nil {
		sb.WriteString("\n    %% Selection Styles\n")
		sb.WriteString("    classDef selected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Selected {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || seen[safeID] {
				continue
			}
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s selected;\n", safeID))
		}
		if overlay.Focus != "" {
			sb.WriteString(fmt.Sprintf("    class %s focus;\n", sanitizeMermaidID(overlay.Focus)))
		}
	}

	return sb.String()
}

func writeEntries(sb *strings.Builder, entries []dto.Entry, depth int) {
	indent := strings.Repeat("    ", depth)
	var prev string
	for _, e := range entries {
		safeID := sanitizeMermaidID(e.ID)
		switch {
		case e.Kind == dto.KindGroup && len(e.Children) > 0:
			sb.WriteString(fmt.Sprintf("%ssubgraph %s[\"%s\"]\n", indent, safeID, label(e)))
			writeEntries(sb, e.Children, depth+1)
			sb.WriteString(fmt.Sprintf("%send\n", indent))
		case e.Kind == dto.KindGroup:
			sb.WriteString(fmt.Sprintf("%s%s[(\"%s\")]\n", indent, safeID, label(e)))
		default:
			sb.WriteString(fmt.Sprintf("%s%s[\"%s\"]\n", indent, safeID, label(e)))
		}
		if prev != "" {
			sb.WriteString(fmt.Sprintf("%s%s ~~~ %s\n", indent, prev, safeID))
		}
		prev = safeID
	}
}

func label(e dto.Entry) string {
	text := e.ID
	if e.Title != "" && e.Title != e.ID {
		text = fmt.Sprintf("%s <br/> %s", e.Title, e.ID)
	}
	return strings.ReplaceAll(text, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
