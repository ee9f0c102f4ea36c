package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/rctx/internal/state"
)

// buildFooterHelpText returns the footer string with leading/trailing padding.
func buildFooterHelpText(state *statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " | ") + " "
}

// buildFooterHelpSegments puts the contextual hint ahead of the fixed keys.
func buildFooterHelpSegments(state *statepkg.AppState) []string {
	if state == nil {
		return nil
	}

	var segments []string
	if hint := state.ContextualHint(); hint != "" {
		segments = append(segments, hint)
	}
	return append(segments, persistentHelpSegments(state)...)
}

func persistentHelpSegments(state *statepkg.AppState) []string {
	if state.HelpVisible {
		return nil
	}

	segments := []string{"a/A: add", "S: save"}
	if state.ClipboardAvailable {
		segments = append(segments, "C: copy")
	}
	return append(segments, "?: help", "q: quit")
}
