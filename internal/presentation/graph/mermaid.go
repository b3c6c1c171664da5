// Package graph renders the workflow transition table as a Mermaid flowchart.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/domain"
)

// Overlay contains run data to visualize on the graph.
type Overlay struct {
	// Visited lists executed steps, typically State.History. Repeats are fine.
	Visited []string
	// Current highlights one step, e.g. where a run failed.
	Current string
}

// OverlayFromState marks the steps of s.History as visited and the last one as current.
func OverlayFromState(s domain.State) *Overlay {
	o := &Overlay{Visited: s.History}
	if n := len(s.History); n > 0 {
		o.Current = s.History[n-1]
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart from the transition table.
// It applies semantic styling:
// - Entry: ((Circle))
// - Fork (labelled exits): {Diamond}
// - End: ([Stadium])
// - Default: [Rectangle]
// Visit counts are appended to the labels of visited steps.
func GenerateMermaid(entry string, transitions []domain.Transition, overlay *Overlay) string {
	forks := make(map[string]bool)
	var order []string
	seen := make(map[string]bool)
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	add(entry)
	for _, t := range transitions {
		add(t.From)
		add(t.To)
		if t.Branch != "" {
			forks[t.From] = true
		}
	}

	visits := make(map[string]int)
	if overlay != nil {
		for _, id := range overlay.Visited {
			visits[id]++
		}
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, id := range order {
		opener, closer := "[", "]"
		switch {
		case id == entry:
			opener, closer = "((", "))"
		case id == domain.StepEnd:
			opener, closer = "([", "])"
		case forks[id]:
			opener, closer = "{", "}"
		}
		label := id
		if n := visits[id]; n > 1 {
			label = fmt.Sprintf("%s ×%d", id, n)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeID(id), opener, label, closer)
	}

	for _, t := range transitions {
		arrow := "-->"
		if t.Branch != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", t.Branch)
			if t.Branch == domain.BranchRetry {
				arrow = fmt.Sprintf("-. \"%s\" .->", t.Branch)
			}
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeID(t.From), arrow, sanitizeID(t.To))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		styled := make(map[string]bool)
		for _, id := range overlay.Visited {
			if id == "" || styled[id] || !seen[id] {
				continue
			}
			styled[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", sanitizeID(id))
		}
		if overlay.Current != "" && seen[overlay.Current] {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeID(overlay.Current))
		}
	}

	return sb.String()
}

// sanitizeID makes id safe as a Mermaid node ID. Lowercase "end" is a keyword.
func sanitizeID(id string) string {
	if id == "end" {
		return "End"
	}
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
