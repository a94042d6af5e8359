package specialist

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractText collects text from a task's status message and artifacts,
// without duplicates. It returns the empty string for a nil task.
//
// Specialists often repeat a terse status line verbatim inside a longer
// artifact report; when the artifacts fully subsume every status block, the
// status blocks are dropped. A final pass removes exact duplicate lines
// while preserving order, collapsing runs of blank lines and separating
// blocks by a single blank line.
func ExtractText(task *Task) string {
	if task == nil {
		return ""
	}

	var statusTexts []string
	if task.Status.Message != nil {
		statusTexts = partsToText(task.Status.Message.Parts)
	}

	var artifactTexts []string
	for _, art := range task.Artifacts {
		artifactTexts = append(artifactTexts, partsToText(art.Parts)...)
	}

	// If artifacts fully subsume the status snippets, prefer artifacts-only.
	// Containment is all-or-nothing: a partial overlap keeps the status.
	if len(statusTexts) > 0 && len(artifactTexts) > 0 {
		blob := strings.Join(artifactTexts, "\n")
		subsumed := true
		for _, s := range statusTexts {
			if !strings.Contains(blob, strings.TrimSpace(s)) {
				subsumed = false
				break
			}
		}
		if subsumed {
			statusTexts = nil
		}
	}

	blocks := append(statusTexts, artifactTexts...)

	seen := make(map[string]struct{})
	var lines []string
	for _, block := range blocks {
		for _, line := range strings.Split(block, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				// Collapse runs of blank lines down to a single one.
				if len(lines) > 0 && lines[len(lines)-1] != "" {
					lines = append(lines, "")
				}
				continue
			}
			if _, ok := seen[trimmed]; !ok {
				seen[trimmed] = struct{}{}
				lines = append(lines, trimmed)
			}
		}
		// Paragraph break between blocks.
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
	}

	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

// partsToText renders each part independently. Malformed parts are skipped,
// not fatal: one bad fragment must never sink the whole response.
func partsToText(parts []Part) []string {
	var out []string
	for _, p := range parts {
		switch p.Type {
		case PartTypeText:
			out = append(out, p.Text)
		case PartTypeData:
			rendered, err := json.MarshalIndent(p.Data, "", "  ")
			if err != nil {
				continue
			}
			out = append(out, string(rendered))
		case PartTypeFile:
			mime := "unknown mime type"
			if p.File != nil && p.File.MimeType != "" {
				mime = p.File.MimeType
			}
			out = append(out, fmt.Sprintf("Received file content (%s).", mime))
		}
	}
	return out
}
