package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/scena/internal/dto"
)

// TreeMarkdown renders a layer listing as a nested markdown list.
// Entries whose ID is in selected are shown in bold.
func TreeMarkdown(title string, entries []dto.Entry, selected ...string) string {
	marked := make(map[string]bool, len(selected))
	for _, id := range selected {
		marked[id] = true
	}

	var sb strings.Builder
	if title != "" {
		sb.WriteString("# " + title + "\n\n")
	}
	if len(entries) == 0 {
		sb.WriteString("_No layers._\n")
		return sb.String()
	}
	writeTree(&sb, entries, 0, marked)
	return sb.String()
}

func writeTree(sb *strings.Builder, entries []dto.Entry, depth int, marked map[string]bool) {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		name := "`" + e.ID + "`"
		if e.Title != "" && e.Title != e.ID {
			name = fmt.Sprintf("%s %s", e.Title, name)
		}
		if marked[e.ID] {
			name = "**" + name + "**"
		}
		if e.Kind == dto.KindGroup {
			sb.WriteString(fmt.Sprintf("%s- 📁 %s\n", indent, name))
			writeTree(sb, e.Children, depth+1, marked)
			continue
		}
		sb.WriteString(fmt.Sprintf("%s- %s\n", indent, name))
	}
}
