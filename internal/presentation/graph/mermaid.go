package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/localsettings/pkg/domain"
)

// Page groups the fields of one settings page.
type Page struct {
	Title  string
	Fields []domain.FieldDescriptor
}

// Overlay contains snapshot data to visualize on the graph.
type Overlay struct {
	// Disabled lists the ids of fields whose dependencies are not met.
	Disabled []string
}

// GenerateMermaid produces a Mermaid flowchart of settings fields and their
// dependencies. It applies semantic styling:
// - Checkbox: [Rectangle]
// - Radio group: [/Parallelogram/]
// - Text: [[Subroutine]]
// A solid edge means "requires", a dotted edge means "requires not".
func GenerateMermaid(pages []Page, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i, page := range pages {
		sb.WriteString(fmt.Sprintf("    subgraph page%d[\"%s\"]\n", i, escape(page.Title)))
		for _, f := range page.Fields {
			opener, closer := "[", "]"
			switch f.Mode() {
			case domain.ControlRadio:
				opener, closer = "[/", "/]"
			case domain.ControlText:
				opener, closer = "[[", "]]"
			}
			sb.WriteString(fmt.Sprintf("        %s%s\"%s\"%s\n", sanitizeMermaidID(f.ID), opener, escape(f.Label), closer))
		}
		sb.WriteString("    end\n")
	}

	for _, page := range pages {
		for _, f := range page.Fields {
			safeID := sanitizeMermaidID(f.ID)
			for _, dep := range f.DependsOn {
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", sanitizeMermaidID(dep.String()), safeID))
			}
			for _, dep := range f.DependsOnNot {
				sb.WriteString(fmt.Sprintf("    %s -. \"not\" .-> %s\n", sanitizeMermaidID(dep.String()), safeID))
			}
		}
	}

	if overlay != nil && len(overlay.Disabled) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast regardless of theme
		sb.WriteString("    classDef disabled fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:3 3,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Disabled {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s disabled;\n", safeID))
			}
		}
	}

	return sb.String()
}

func escape(label string) string {
	return strings.ReplaceAll(label, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
