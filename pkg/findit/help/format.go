package help

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatText formats a TopicResult for terminal output.
func FormatText(result *TopicResult) string {
	var sb strings.Builder

	if result.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", result.Description)
	}

	if len(result.Groups) > 0 {
		for _, group := range result.Groups {
			fmt.Fprintf(&sb, "%s:\n", strings.ToUpper(group.Name[:1])+group.Name[1:])
			writeEntries(&sb, group.Entries)
			sb.WriteString("\n")
		}
		return strings.TrimRight(sb.String(), "\n") + "\n"
	}

	writeEntries(&sb, result.Entries)
	return sb.String()
}

func writeEntries(sb *strings.Builder, entries []Entry) {
	if len(entries) == 0 {
		sb.WriteString("  (none)\n")
		return
	}

	maxLen := 0
	for _, e := range entries {
		label := e.Name
		if e.Signature != "" {
			label = e.Signature
		}
		if len(label) > maxLen {
			maxLen = len(label)
		}
	}

	for _, e := range entries {
		label := e.Name
		if e.Signature != "" {
			label = e.Signature
		}
		padding := strings.Repeat(" ", maxLen-len(label)+2)
		if e.Description != "" {
			fmt.Fprintf(sb, "  %s%s%s\n", label, padding, e.Description)
		} else {
			fmt.Fprintf(sb, "  %s\n", label)
		}
	}
}

// FormatJSON formats a TopicResult as JSON.
func FormatJSON(result *TopicResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
